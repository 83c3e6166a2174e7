package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	logsink "github.com/mindwell-labs/sanara/internal/adapters/driven/analytics/log"
	badgercache "github.com/mindwell-labs/sanara/internal/adapters/driven/cache/badger"
	"github.com/mindwell-labs/sanara/internal/adapters/driven/cache/local"
	"github.com/mindwell-labs/sanara/internal/adapters/driven/config/file"
	filedict "github.com/mindwell-labs/sanara/internal/adapters/driven/dictionary/file"
	"github.com/mindwell-labs/sanara/internal/adapters/driven/embedding/ollama"
	"github.com/mindwell-labs/sanara/internal/adapters/driven/embedding/openai"
	"github.com/mindwell-labs/sanara/internal/adapters/driven/storage/memory"
	"github.com/mindwell-labs/sanara/internal/adapters/driven/storage/sqlite"
	"github.com/mindwell-labs/sanara/internal/adapters/driven/vector/qdrant"
	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
	"github.com/mindwell-labs/sanara/internal/core/ports/driving"
	"github.com/mindwell-labs/sanara/internal/core/services"
	"github.com/mindwell-labs/sanara/internal/logger"
)

// Shared services wired by initServices and used by the subcommands.
var (
	version string

	configStore    driven.ConfigStore
	settings       file.Settings
	searchService  driving.SearchService
	contentStore   driven.ContentStore
	contentManager *services.ContentManager

	closers []io.Closer
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "sanara",
	Short: "Culturally-grounded therapeutic content retrieval",
	Long: `Sanara retrieves culturally-tagged therapeutic content: stories,
practices, proverbs, and meditations drawn from wisdom traditions and
matched to the issues a person describes.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute wires the service graph and runs the root command.
func Execute(v string) error {
	version = v

	if err := initServices(); err != nil {
		return fmt.Errorf("initializing services: %w", err)
	}
	defer shutdown()

	return rootCmd.Execute()
}

// initServices assembles the search pipeline from configuration.
// Optional adapters degrade to nil or in-memory fallbacks so the CLI
// stays usable without external services.
func initServices() error {
	store, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}
	configStore = store
	settings = file.LoadSettings(configStore)

	var (
		writer    driven.ContentWriter
		analytics driven.AnalyticsSink
	)

	db, err := sqlite.NewStore(settings.Storage.Path)
	if err != nil {
		logger.Warn("content database unavailable, using in-memory store: %v", err)
		mem := memory.NewContentStore()
		contentStore = mem
		writer = mem
		analytics = logsink.New()
	} else {
		closers = append(closers, db)
		cs := db.ContentStore()
		contentStore = cs
		writer = cs.(driven.ContentWriter)
		analytics = db.AnalyticsSink()
	}

	embedder := newEmbedder()
	if embedder != nil {
		closers = append(closers, embedder)
	}

	var vectors driven.VectorIndex
	if settings.Vector.Enabled {
		dims := 0
		if embedder != nil {
			dims = embedder.Dimensions()
		}
		idx, err := qdrant.New(context.Background(), qdrant.Config{
			URL:        settings.Vector.URL,
			APIKey:     settings.Vector.APIKey,
			Dimensions: dims,
		})
		if err != nil {
			logger.Warn("vector index unavailable: %v", err)
		} else {
			vectors = idx
		}
	}

	dict, err := filedict.New(settings.Dictionary.Dir)
	if err != nil {
		return fmt.Errorf("loading dictionary: %w", err)
	}
	closers = append(closers, dict)

	shared, err := badgercache.Open(settings.Cache.SharedPath)
	if err != nil {
		return fmt.Errorf("opening result cache: %w", err)
	}

	normalizer := services.NewNormalizer(services.NormalizerConfig{}, dict, embedder)
	orchestrator := services.NewOrchestrator(services.OrchestratorConfig{
		StrategyTimeout: settings.Search.StrategyTimeout,
	}, contentStore, vectors)
	popularity := services.NewPopularityTracker()
	ranker := services.NewRanker(popularity, nil)
	cache := services.NewResultCache(local.New(settings.Cache.LocalSize), shared, settings.Cache.TTL)
	profiles := memory.NewPersonalizationStore()

	search := services.NewSearch(services.SearchConfig{
		SearchTimeout: settings.Search.SearchTimeout,
	}, normalizer, orchestrator, ranker, cache, popularity, profiles, analytics)
	closers = append(closers, search)
	searchService = search

	contentManager = services.NewContentManager(writer, embedder, vectors, searchService)

	return nil
}

// newEmbedder selects the embedding provider from settings. A
// misconfigured provider disables semantic retrieval rather than
// failing startup.
func newEmbedder() driven.EmbeddingService {
	switch settings.Embedding.Provider {
	case "openai":
		svc, err := openai.NewEmbeddingService(openai.Config{
			APIKey:  settings.Embedding.APIKey,
			BaseURL: settings.Embedding.BaseURL,
			Model:   settings.Embedding.Model,
		})
		if err != nil {
			logger.Warn("openai embeddings unavailable: %v", err)
			return nil
		}
		return svc
	default:
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL: settings.Embedding.BaseURL,
			Model:   settings.Embedding.Model,
		})
	}
}

func shutdown() {
	// Close in reverse wiring order.
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			logger.Warn("closing resources: %v", err)
		}
	}
	closers = nil
}
