// Package domain contains the core business entities for sanara:
// content items, processed queries, retrieval candidates, ranking
// results, and the search option/response types. It has no
// dependencies on adapters or infrastructure.
package domain
