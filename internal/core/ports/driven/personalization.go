package driven

import (
	"context"

	"github.com/mindwell-labs/sanara/internal/core/domain"
)

// UserProfile is the read model the core consumes for scoring.
// Profile learning internals live behind the provider.
type UserProfile struct {
	// UserID identifies the user.
	UserID string

	// PreferredCultures are cultural tags the user engages with.
	PreferredCultures []string

	// PreferredContentTypes are content types the user engages with.
	PreferredContentTypes []domain.ContentType

	// SimilarUserIDs are users with overlapping taste, for the
	// collaborative strategy.
	SimilarUserIDs []string

	// ContentAffinity maps content IDs to affinity scores in [0,1]
	// derived from similar users' engagement.
	ContentAffinity map[string]float64
}

// PersonalizationProvider is the opaque profile collaborator. It is
// consumed for scoring weights and updated with session outcomes,
// fire-and-forget.
type PersonalizationProvider interface {
	// GetProfile returns the profile for a user, or
	// domain.ErrProfileUnavailable when none exists.
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)

	// RecordOutcome reports a served result list back to the learner.
	// Called asynchronously after responding; failures are logged and
	// ignored.
	RecordOutcome(ctx context.Context, userID string, query *domain.ProcessedQuery, results []domain.RankingResult) error
}
