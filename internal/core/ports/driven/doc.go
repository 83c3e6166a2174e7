// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the content store, embedding service,
// vector index, personalization provider, analytics sink, cache tiers,
// dictionaries, and configuration. The core never depends on concrete
// adapters, only on these interfaces.
package driven
