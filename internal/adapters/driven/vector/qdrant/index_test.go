package qdrant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointID_Deterministic(t *testing.T) {
	a := pointID("content-1")
	b := pointID("content-1")
	c := pointID("content-2")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 36) // canonical UUID form
}

func TestGRPCEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantHost string
		wantPort int
	}{
		{"empty defaults", "", "localhost", 6334},
		{"http port derives grpc", "http://qdrant.internal:6333", "qdrant.internal", 6334},
		{"custom port", "http://localhost:7000", "localhost", 7001},
		{"no port", "http://qdrant.internal", "qdrant.internal", 6334},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, port, err := grpcEndpoint(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantPort, port)
		})
	}
}

func TestGRPCEndpoint_Invalid(t *testing.T) {
	_, _, err := grpcEndpoint("://bad")
	assert.Error(t, err)
}
