package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointForCollection(t *testing.T) {
	tests := []struct {
		collection string
		expected   Endpoint
	}{
		{"calibrations", EndpointCalibration},
		{"domcals", EndpointCalibration},
		{"spe_fits", EndpointCalibration},
		{"baselines", EndpointDetectorStatus},
		{"geometry", EndpointGeometry},
	}

	for _, tt := range tests {
		t.Run(tt.collection, func(t *testing.T) {
			got, err := EndpointForCollection(tt.collection)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEndpointForCollection_Unmapped(t *testing.T) {
	_, err := EndpointForCollection("snow_heights")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownDestination)
	assert.Contains(t, err.Error(), "snow_heights")
}

func TestParseEndpoint(t *testing.T) {
	got, err := ParseEndpoint("Detector-Status")
	require.NoError(t, err)
	assert.Equal(t, EndpointDetectorStatus, got)

	_, err = ParseEndpoint("run-metadata")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownDestination)
}

func TestEndpointPath(t *testing.T) {
	assert.Equal(t, "/calibration", EndpointCalibration.Path())
	assert.Equal(t, "/detector-status", EndpointDetectorStatus.Path())
	assert.Equal(t, "/geometry", EndpointGeometry.Path())
}

func TestEndpointRequiresRunNumber(t *testing.T) {
	assert.True(t, EndpointDetectorStatus.RequiresRunNumber())
	assert.False(t, EndpointCalibration.RequiresRunNumber())
	assert.False(t, EndpointGeometry.RequiresRunNumber())
}
