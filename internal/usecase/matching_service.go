package usecase

import (
	"strings"

	"github.com/listafacil/backend/internal/domain"
)

// Default scoring constants. These are tuning knobs calibrated against real
// materials lists, not derived values; change them only with test evidence.
const (
	defaultContainmentScore = 0.9
)

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	// ContainmentScore is awarded when one normalized name contains the
	// other as a substring (a strong but not exact signal).
	ContainmentScore float64
}

// MatchingService scores how well a freeform item description matches a
// catalog product name.
type MatchingService struct {
	containmentScore float64
}

// NewMatchingService creates a new matching service with the given configuration
func NewMatchingService(config MatchConfig) *MatchingService {
	score := config.ContainmentScore
	if score <= 0 || score > 1 {
		score = defaultContainmentScore
	}
	return &MatchingService{containmentScore: score}
}

// Similarity computes a 0-1 match score between two names. Rules apply in
// order, first hit wins:
//
//  1. equal normalized forms -> 1.0
//  2. one normalized form contains the other -> ContainmentScore
//  3. shared significant tokens divided by the larger token-set size
//
// Either side normalizing to empty scores 0.
func (s *MatchingService) Similarity(a, b string) float64 {
	na := Normalize(a)
	nb := Normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1.0
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return s.containmentScore
	}

	tokensA := significantTokens(na)
	tokensB := significantTokens(nb)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	shared := 0
	for tok := range tokensA {
		if tokensB[tok] {
			shared++
		}
	}

	larger := len(tokensA)
	if len(tokensB) > larger {
		larger = len(tokensB)
	}
	return float64(shared) / float64(larger)
}

// ScoredCandidate pairs a catalog candidate with its similarity score.
type ScoredCandidate struct {
	Candidate domain.CatalogCandidate
	Score     float64
}

// ScoreCandidates scores every candidate against the item name.
func (s *MatchingService) ScoreCandidates(name string, candidates []domain.CatalogCandidate) []ScoredCandidate {
	scored := make([]ScoredCandidate, len(candidates))
	for i, c := range candidates {
		scored[i] = ScoredCandidate{Candidate: c, Score: s.Similarity(name, c.Name)}
	}
	return scored
}

// BestCandidate scores all candidates and returns the highest-scoring one.
// On equal scores the first-seen candidate wins, so catalog result order is
// the tie-breaker. ok is false when the candidate list is empty.
func (s *MatchingService) BestCandidate(name string, candidates []domain.CatalogCandidate) (best ScoredCandidate, ok bool) {
	scored := s.ScoreCandidates(name, candidates)
	if len(scored) == 0 {
		return ScoredCandidate{}, false
	}
	best = scored[0]
	for _, sc := range scored[1:] {
		if sc.Score > best.Score {
			best = sc
		}
	}
	return best, true
}
