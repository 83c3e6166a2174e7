package mcp

import (
	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
	"github.com/mindwell-labs/sanara/internal/core/ports/driving"
)

// Ports aggregates the port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides ranked content retrieval.
	Search driving.SearchService

	// Content provides read access to individual content items for
	// the content resource. Optional.
	Content driven.ContentStore
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Content is optional; the resource degrades to not-found.
	return nil
}
