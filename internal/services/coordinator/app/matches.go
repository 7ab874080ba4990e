package app

import (
	"github.com/collabhub/coordinator/internal/services/coordinator/domain"
)

// ExcludeKnown filters candidates whose email matches any known email,
// preserving the ranking order of the rest. Comparison is case-insensitive.
func ExcludeKnown(candidates []domain.User, known []string) []domain.User {
	if len(known) == 0 {
		return candidates
	}
	excluded := make(map[string]struct{}, len(known))
	for _, email := range known {
		excluded[domain.NormalizeEmail(email)] = struct{}{}
	}
	result := make([]domain.User, 0, len(candidates))
	for _, candidate := range candidates {
		if _, ok := excluded[domain.NormalizeEmail(candidate.Email)]; ok {
			continue
		}
		result = append(result, candidate)
	}
	return result
}

// TopN returns the first n candidates in ranking order. It never copies
// beyond the slice bounds and returns the input unchanged when it already
// fits.
func TopN(candidates []domain.User, n int) []domain.User {
	if n < 0 {
		n = 0
	}
	if len(candidates) <= n {
		return candidates
	}
	return candidates[:n]
}
