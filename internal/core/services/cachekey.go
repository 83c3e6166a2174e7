package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/mindwell-labs/sanara/internal/core/domain"
)

// CacheKey derives a stable, order-independent key for a search
// request. Set-valued options are sorted before hashing so
// semantically identical requests with differently-ordered contexts
// share an entry.
func CacheKey(enhancedQuery string, opts domain.SearchOptions) string {
	cultural := sortedLower(opts.CulturalContext)
	therapeutic := sortedLower(opts.TherapeuticContext)

	h := sha256.New()
	fmt.Fprintf(h, "q=%s|c=%s|t=%s|n=%d|s=%s|p=%t",
		strings.ToLower(enhancedQuery),
		strings.Join(cultural, ","),
		strings.Join(therapeutic, ","),
		opts.MaxResults,
		opts.Strategy,
		opts.IncludePersonalization,
	)
	return hex.EncodeToString(h.Sum(nil))
}

// sortedLower returns a sorted, lowercased copy of the values.
func sortedLower(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	sort.Strings(out)
	return out
}
