package app

import (
	"context"
	"sync"

	"github.com/collabhub/coordinator/internal/services/coordinator/api"
	"github.com/collabhub/coordinator/internal/services/coordinator/domain"
)

// MatchSearcher runs matchmaking searches where only the most recent search
// may deliver results. Each new search supersedes the previous one: the old
// request is cancelled and its results, should they still arrive, are
// dropped. Result order within a delivery is the backend's ranking order.
type MatchSearcher struct {
	matchmaker api.Matchmaker

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
}

// NewMatchSearcher creates a searcher over matchmaker.
func NewMatchSearcher(matchmaker api.Matchmaker) *MatchSearcher {
	return &MatchSearcher{matchmaker: matchmaker}
}

// Search starts a search for query and invokes deliver with the outcome,
// unless a newer Search superseded it first. deliver runs on the search
// goroutine with the searcher's lock held, so it must not call back into
// the searcher. Superseded searches never call it.
func (s *MatchSearcher) Search(ctx context.Context, query string, deliver func([]domain.User, error)) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.generation++
	generation := s.generation
	s.mu.Unlock()

	go func() {
		defer cancel()
		matches, err := s.matchmaker.Match(ctx, query)

		// The generation check and the delivery share one lock hold.
		// A search superseded between the check and deliver would
		// otherwise publish stale results after the newer ones.
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.generation != generation {
			return
		}
		deliver(matches, err)
	}()
}

// Cancel stops the in-flight search, if any, without starting a new one.
func (s *MatchSearcher) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
}
