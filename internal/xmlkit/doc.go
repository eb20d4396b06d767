// Package xmlkit provides a generic XML element tree and the scalar
// coercion rules shared by every schema converter.
//
// The converters navigate documents by tag name (find a child, read its
// text, iterate descendants) rather than unmarshalling into fixed
// structs, because the five supported schemas are mutually incompatible
// and carry open-ended per-record fields.
package xmlkit
