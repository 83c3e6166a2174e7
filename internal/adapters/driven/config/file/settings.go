package file

import (
	"time"

	"github.com/mindwell-labs/sanara/internal/core/domain"
	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
)

// Config keys recognized in config.toml. Nested TOML tables flatten to
// these dot-notation keys.
const (
	KeySearchMaxResults      = "search.max_results"
	KeySearchStrategy        = "search.strategy"
	KeySearchBiasThreshold   = "search.bias_threshold"
	KeySearchDiversityFactor = "search.diversity_factor"
	KeySearchTimeoutMS       = "search.timeout_ms"
	KeyStrategyTimeoutMS     = "search.strategy_timeout_ms"

	KeyCacheTTLSeconds = "cache.ttl_seconds"
	KeyCacheLocalSize  = "cache.local_size"
	KeyCacheSharedPath = "cache.shared_path"

	KeyStoragePath = "storage.path"

	KeyEmbeddingProvider = "embedding.provider"
	KeyEmbeddingModel    = "embedding.model"
	KeyEmbeddingBaseURL  = "embedding.base_url"
	KeyEmbeddingAPIKey   = "embedding.api_key"

	KeyVectorEnabled = "vector.enabled"
	KeyVectorURL     = "vector.url"
	KeyVectorAPIKey  = "vector.api_key"

	KeyDictionaryDir = "dictionary.dir"
)

// Settings is the typed view of config.toml the CLI assembles the
// pipeline from. Zero values mean "use the built-in default".
type Settings struct {
	Search     SearchSettings
	Cache      CacheSettings
	Storage    StorageSettings
	Embedding  EmbeddingSettings
	Vector     VectorSettings
	Dictionary DictionarySettings
}

// SearchSettings are the ranking and pipeline defaults.
type SearchSettings struct {
	MaxResults      int
	Strategy        domain.RankingStrategy
	BiasThreshold   float64
	DiversityFactor float64
	SearchTimeout   time.Duration
	StrategyTimeout time.Duration
}

// CacheSettings tune the two-tier result cache.
type CacheSettings struct {
	TTL        time.Duration
	LocalSize  int
	SharedPath string
}

// StorageSettings locate the content database.
type StorageSettings struct {
	Path string
}

// EmbeddingSettings configure the embedding provider.
type EmbeddingSettings struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
}

// VectorSettings configure the external vector index.
type VectorSettings struct {
	Enabled bool
	URL     string
	APIKey  string
}

// DictionarySettings locate the term dictionary files.
type DictionarySettings struct {
	Dir string
}

// LoadSettings reads the typed settings from a config store. Keys
// absent from the store stay at their zero value.
func LoadSettings(store driven.ConfigStore) Settings {
	s := Settings{
		Search: SearchSettings{
			MaxResults:      store.GetInt(KeySearchMaxResults),
			Strategy:        domain.RankingStrategy(store.GetString(KeySearchStrategy)),
			BiasThreshold:   store.GetFloat(KeySearchBiasThreshold),
			DiversityFactor: store.GetFloat(KeySearchDiversityFactor),
		},
		Cache: CacheSettings{
			LocalSize:  store.GetInt(KeyCacheLocalSize),
			SharedPath: store.GetString(KeyCacheSharedPath),
		},
		Storage: StorageSettings{
			Path: store.GetString(KeyStoragePath),
		},
		Embedding: EmbeddingSettings{
			Provider: store.GetString(KeyEmbeddingProvider),
			Model:    store.GetString(KeyEmbeddingModel),
			BaseURL:  store.GetString(KeyEmbeddingBaseURL),
			APIKey:   store.GetString(KeyEmbeddingAPIKey),
		},
		Vector: VectorSettings{
			Enabled: store.GetBool(KeyVectorEnabled),
			URL:     store.GetString(KeyVectorURL),
			APIKey:  store.GetString(KeyVectorAPIKey),
		},
		Dictionary: DictionarySettings{
			Dir: store.GetString(KeyDictionaryDir),
		},
	}

	if ms := store.GetInt(KeySearchTimeoutMS); ms > 0 {
		s.Search.SearchTimeout = time.Duration(ms) * time.Millisecond
	}
	if ms := store.GetInt(KeyStrategyTimeoutMS); ms > 0 {
		s.Search.StrategyTimeout = time.Duration(ms) * time.Millisecond
	}
	if sec := store.GetInt(KeyCacheTTLSeconds); sec > 0 {
		s.Cache.TTL = time.Duration(sec) * time.Second
	}

	return s
}
