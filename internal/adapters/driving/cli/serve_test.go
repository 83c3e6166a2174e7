package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_Use(t *testing.T) {
	assert.Equal(t, "serve", serveCmd.Use)
}

func TestServeCmd_HasAddrFlag(t *testing.T) {
	flag := serveCmd.Flags().Lookup("addr")
	require.NotNil(t, flag, "addr flag should exist")
	assert.Equal(t, ":8080", flag.DefValue)
}

func TestMCPCmd_Registered(t *testing.T) {
	assert.Equal(t, "mcp", mcpCmd.Use)

	port := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, port, "port flag should exist")
	assert.Equal(t, "p", port.Shorthand)
}
