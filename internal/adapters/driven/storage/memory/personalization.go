package memory

import (
	"context"
	"sync"

	"github.com/mindwell-labs/sanara/internal/core/domain"
	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
)

// Ensure PersonalizationStore implements the interface.
var _ driven.PersonalizationProvider = (*PersonalizationStore)(nil)

// Affinity learning rate for recorded outcomes. Higher-ranked served
// results move the user's affinity more.
const affinityStep = 0.05

// PersonalizationStore is an in-memory implementation of
// driven.PersonalizationProvider. Profiles are seeded explicitly and
// refined by recorded outcomes.
type PersonalizationStore struct {
	mu       sync.RWMutex
	profiles map[string]driven.UserProfile
}

// NewPersonalizationStore creates a new in-memory personalization
// store.
func NewPersonalizationStore() *PersonalizationStore {
	return &PersonalizationStore{
		profiles: make(map[string]driven.UserProfile),
	}
}

// SaveProfile stores or replaces a user profile.
func (s *PersonalizationStore) SaveProfile(profile driven.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = profile
}

// GetProfile returns the profile for a user.
func (s *PersonalizationStore) GetProfile(_ context.Context, userID string) (*driven.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileUnavailable
	}

	// Copy the affinity map so callers never observe a concurrent
	// outcome update.
	copied := profile
	copied.ContentAffinity = make(map[string]float64, len(profile.ContentAffinity))
	for id, a := range profile.ContentAffinity {
		copied.ContentAffinity[id] = a
	}
	return &copied, nil
}

// RecordOutcome nudges the user's affinity toward the served results,
// higher-ranked results more strongly. Unknown users get a profile
// created on first outcome.
func (s *PersonalizationStore) RecordOutcome(_ context.Context, userID string, _ *domain.ProcessedQuery, results []domain.RankingResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		profile = driven.UserProfile{UserID: userID}
	}
	if profile.ContentAffinity == nil {
		profile.ContentAffinity = make(map[string]float64)
	}

	for _, res := range results {
		boost := affinityStep / float64(res.Rank)
		affinity := profile.ContentAffinity[res.Item.ID] + boost
		if affinity > 1 {
			affinity = 1
		}
		profile.ContentAffinity[res.Item.ID] = affinity
	}

	s.profiles[userID] = profile
	return nil
}
