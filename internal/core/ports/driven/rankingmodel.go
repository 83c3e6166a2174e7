package driven

import (
	"context"

	"github.com/mindwell-labs/sanara/internal/core/domain"
)

// RankingModel is the optional learning-to-rank hook. When configured
// together with a user profile, its prediction over the extracted
// feature vector replaces the composite score. It is an injectable
// strategy, not required for correctness.
type RankingModel interface {
	// Predict returns a relevance score for the feature vector.
	Predict(ctx context.Context, userID string, factors domain.RankingFactors) (float64, error)

	// Ready reports whether a trained model is loaded.
	Ready() bool
}
