package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidStrategy indicates an unknown ranking strategy.
	ErrInvalidStrategy = errors.New("invalid ranking strategy")

	// ErrInvalidOption indicates a search option outside its valid
	// range.
	ErrInvalidOption = errors.New("invalid search option")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or failed. The semantic strategy is skipped without
	// it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrContentStoreUnavailable indicates the content store cannot be
	// reached. Retrieval degrades to an empty candidate set.
	ErrContentStoreUnavailable = errors.New("content store unavailable")

	// ErrCacheUnavailable indicates a cache tier cannot be reached.
	// The request proceeds without caching.
	ErrCacheUnavailable = errors.New("cache unavailable")

	// ErrStrategyTimeout indicates a retrieval strategy exceeded its
	// timeout. The strategy contributes zero candidates.
	ErrStrategyTimeout = errors.New("retrieval strategy timed out")

	// ErrNoStrategies indicates no retrieval strategy was applicable
	// or every applicable strategy failed.
	ErrNoStrategies = errors.New("no retrieval strategies produced candidates")

	// ErrProfileUnavailable indicates the personalization provider has
	// no profile for the user.
	ErrProfileUnavailable = errors.New("personalization profile unavailable")
)
