// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Sanara. It lets AI assistants search the therapeutic content
// corpus and read individual items.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
