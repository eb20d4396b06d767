package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nivalis-labs/gcdctl/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/nivalis-labs/gcdctl/internal/core/domain"
	"github.com/nivalis-labs/gcdctl/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore persists import results in a SQLite database.
type HistoryStore struct {
	db   *sql.DB
	path string
}

// NewHistoryStore creates a new SQLite history store at the specified
// data directory. If dataDir is empty, defaults to ~/.gcdctl/data/history.db.
func NewHistoryStore(dataDir string) (*HistoryStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".gcdctl", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &HistoryStore{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *HistoryStore) Path() string {
	return s.path
}

// RecordImport appends one import result to the history.
func (s *HistoryStore) RecordImport(ctx context.Context, res domain.ImportResult) error {
	var records, failed int
	if res.Upload != nil {
		records = res.Upload.Count
		failed = res.Upload.Failed
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO imports (id, source, type, endpoint, records, failed, success, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		uuid.New().String(),
		res.Source,
		string(res.Type),
		string(res.Endpoint),
		records,
		failed,
		boolToInt(res.Success),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting import record: %w", err)
	}
	return nil
}

// ListImports returns the most recent imports, newest first.
// A limit of zero or less returns everything.
func (s *HistoryStore) ListImports(ctx context.Context, limit int) ([]domain.ImportRecord, error) {
	query := `
		SELECT id, source, type, endpoint, records, failed, success, created_at
		FROM imports
		ORDER BY created_at DESC, rowid DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying imports: %w", err)
	}
	defer rows.Close()

	var records []domain.ImportRecord
	for rows.Next() {
		var rec domain.ImportRecord
		var rtype, endpoint, createdAt string
		var success int

		if err := rows.Scan(&rec.ID, &rec.Source, &rtype, &endpoint,
			&rec.Records, &rec.Failed, &success, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning import record: %w", err)
		}

		rec.Type = domain.RecordType(rtype)
		rec.Endpoint = domain.Endpoint(endpoint)
		rec.Success = success != 0
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			rec.CreatedAt = ts
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating import records: %w", err)
	}
	return records, nil
}

// migrate runs all pending migrations.
func (s *HistoryStore) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_imports.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version,
		); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
