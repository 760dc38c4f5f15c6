package tracking

import (
	"net/http"

	"github.com/matst80/slask-storefront/pkg/types"
)

type Tracking interface {
	TrackSession(sessionId string, r *http.Request)
	TrackFilter(sessionId string, category types.Category, state types.FilterState, total int)
	Close() error
}

type NoopTracking struct{}

func (NoopTracking) TrackSession(string, *http.Request) {}

func (NoopTracking) TrackFilter(string, types.Category, types.FilterState, int) {}

func (NoopTracking) Close() error {
	return nil
}
