package domain

import "time"

// ContentType classifies a therapeutic content item.
type ContentType string

// Known content types.
const (
	ContentTypeNarrative  ContentType = "narrative"
	ContentTypePractice   ContentType = "practice"
	ContentTypeProverb    ContentType = "proverb"
	ContentTypeMeditation ContentType = "meditation"
	ContentTypeWisdom     ContentType = "wisdom"
	ContentTypeStory      ContentType = "story"
	ContentTypeRitual     ContentType = "ritual"
)

// Valid reports whether the content type is one of the known values.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeNarrative, ContentTypePractice, ContentTypeProverb,
		ContentTypeMeditation, ContentTypeWisdom, ContentTypeStory, ContentTypeRitual:
		return true
	}
	return false
}

// ContentItem is a culturally-tagged therapeutic content record.
// It is owned by the Content Store; the core treats it as read-only
// once published.
type ContentItem struct {
	// ID is the unique identifier for the item.
	ID string

	// Type classifies the item (narrative, practice, proverb, ...).
	Type ContentType

	// Title is the human-readable title.
	Title string

	// Body is the full text content.
	Body string

	// CulturalTags identifies the cultural traditions the item belongs to.
	CulturalTags []string

	// TherapeuticThemes identifies the therapeutic themes the item addresses.
	TherapeuticThemes []string

	// TargetIssues lists the issues the item is intended to help with.
	TargetIssues []string

	// Source names where the item came from (collection, text, archive).
	Source string

	// Author is the attributed author, if known.
	Author string

	// Period is the historical period of origin, if dated.
	Period string

	// Embedding is the vector representation for semantic search.
	// May be nil when the item has not been embedded.
	Embedding []float32

	// Validated indicates the item passed cultural/clinical review.
	Validated bool

	// BiasScore is the assessed bias in [0,1]; higher means more biased.
	BiasScore float64

	// CreatedAt is when the item was first published.
	CreatedAt time.Time

	// UpdatedAt is when the item was last revised.
	UpdatedAt time.Time
}

// SensitiveIssues are target issues that unvalidated content must never
// be returned for, regardless of score.
var SensitiveIssues = map[string]bool{
	"trauma":            true,
	"abuse":             true,
	"self-harm":         true,
	"suicidal-ideation": true,
	"grief":             false, // reviewed content preferred but not a hard floor
}

// HasSensitiveIssue reports whether the item targets any hard-floor
// sensitive issue.
func (c *ContentItem) HasSensitiveIssue() bool {
	for _, issue := range c.TargetIssues {
		if SensitiveIssues[issue] {
			return true
		}
	}
	return false
}
