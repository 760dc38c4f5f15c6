package server

import (
	"context"
	"sync"
	"time"

	"github.com/matst80/slask-storefront/pkg/storefront"
	"github.com/matst80/slask-storefront/pkg/tracking"
	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

var activePages = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "storefront_session_pages",
	Help: "The number of mounted session pages",
})

type sessionKey struct {
	session  string
	category types.Category
}

type sessionPage struct {
	page     *storefront.Page
	lastUsed time.Time
}

// Sessions keeps one mounted page per browsing session and category, so
// filters survive between requests of the same visitor.
type Sessions struct {
	mu         sync.Mutex
	storefront *storefront.Storefront
	tracking   tracking.Tracking
	pages      map[sessionKey]*sessionPage
	MaxIdle    time.Duration
	now        func() time.Time
}

func NewSessions(sf *storefront.Storefront, trk tracking.Tracking) *Sessions {
	if trk == nil {
		trk = tracking.NoopTracking{}
	}
	return &Sessions{
		storefront: sf,
		tracking:   trk,
		pages:      make(map[sessionKey]*sessionPage),
		MaxIdle:    30 * time.Minute,
		now:        time.Now,
	}
}

// Page returns the session's page for category, mounting it on first use.
func (s *Sessions) Page(sessionId string, category types.Category) (*storefront.Page, error) {
	key := sessionKey{session: sessionId, category: category}
	s.mu.Lock()
	defer s.mu.Unlock()
	if sp, ok := s.pages[key]; ok {
		sp.lastUsed = s.now()
		return sp.page, nil
	}
	page, err := s.storefront.NewPage(category)
	if err != nil {
		return nil, err
	}
	page.Subscribe(s.filterTracker(sessionId, category))
	s.pages[key] = &sessionPage{page: page, lastUsed: s.now()}
	activePages.Inc()
	return page, nil
}

// filterTracker reports each new filter state once; layout switches re-render
// the same version and are not reported.
func (s *Sessions) filterTracker(sessionId string, category types.Category) func(*storefront.View) {
	var mu sync.Mutex
	var tracked uint64
	return func(v *storefront.View) {
		mu.Lock()
		if v.Version <= tracked {
			mu.Unlock()
			return
		}
		tracked = v.Version
		mu.Unlock()
		s.tracking.TrackFilter(sessionId, category, v.State, v.Total)
	}
}

// Reset unmounts the session's page; the next request starts unfiltered.
func (s *Sessions) Reset(sessionId string, category types.Category) bool {
	key := sessionKey{session: sessionId, category: category}
	s.mu.Lock()
	defer s.mu.Unlock()
	sp, ok := s.pages[key]
	if !ok {
		return false
	}
	s.remove(key, sp)
	return true
}

func (s *Sessions) remove(key sessionKey, sp *sessionPage) {
	sp.page.Close()
	delete(s.pages, key)
	activePages.Dec()
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// Evict unmounts pages idle for longer than MaxIdle.
func (s *Sessions) Evict() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	limit := s.now().Add(-s.MaxIdle)
	evicted := 0
	for key, sp := range s.pages {
		if sp.lastUsed.Before(limit) {
			s.remove(key, sp)
			evicted++
		}
	}
	return evicted
}

// RunEviction evicts idle pages every interval until ctx is done.
func (s *Sessions) RunEviction(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Evict(); n > 0 {
				log.Debug().Int("evicted", n).Int("remaining", s.Len()).Msg("evicted idle session pages")
			}
		}
	}
}
