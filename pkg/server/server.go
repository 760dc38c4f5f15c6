package server

import (
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/matst80/slask-storefront/pkg/common"
	"github.com/matst80/slask-storefront/pkg/store"
	"github.com/matst80/slask-storefront/pkg/storefront"
	"github.com/matst80/slask-storefront/pkg/tracking"
	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	noRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_requests_total",
		Help: "The total number of handled api requests",
	}, []string{"handler"})
)

type WebServer struct {
	Storefront *storefront.Storefront
	Tracking   tracking.Tracking
	Sessions   *Sessions
}

func NewWebServer(sf *storefront.Storefront, trk tracking.Tracking) *WebServer {
	if trk == nil {
		trk = tracking.NoopTracking{}
	}
	return &WebServer{
		Storefront: sf,
		Tracking:   trk,
		Sessions:   NewSessions(sf, trk),
	}
}

// parseCategory maps the path segment to a shelf; "all" is the whole catalog.
func parseCategory(r *http.Request) (types.Category, error) {
	value := r.PathValue("category")
	if value == "" || value == "all" {
		return "", nil
	}
	category, err := types.ParseCategory(value)
	if err != nil {
		return "", common.NotFound(err)
	}
	return category, nil
}

func (ws *WebServer) Categories(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	noRequests.WithLabelValues("categories").Inc()
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(ws.Storefront.Catalog.Categories())
}

// Products evaluates the filter state described by the query string without
// touching the caller's session. Values the shelf rejects are left out.
func (ws *WebServer) Products(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	noRequests.WithLabelValues("products").Inc()
	category, err := parseCategory(r)
	if err != nil {
		return err
	}
	shelf, err := ws.Storefront.Shelf(category)
	if err != nil {
		return common.NotFound(err)
	}
	fr, err := FilterRequestFromQuery(r.URL.Query())
	if err != nil {
		return common.BadRequest(err)
	}
	s := store.NewFilterStore(shelf.Evaluator.Handler, category)
	s.SetSort(ws.Storefront.Settings.GetDefaultSort())
	if err = fr.Apply(s); err != nil {
		log.Debug().Err(err).Str("query", r.URL.RawQuery).Msg("ignored rejected filters")
	}
	view := shelf.Render(s.Snapshot(), fr.GetLayout())
	w.Header().Set("Cache-Control", "public, stale-while-revalidate=120")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(view)
}

func (ws *WebServer) sessionPage(r *http.Request, sessionId string) (*storefront.Page, error) {
	category, err := parseCategory(r)
	if err != nil {
		return nil, err
	}
	page, err := ws.Sessions.Page(sessionId, category)
	if err != nil {
		return nil, common.NotFound(err)
	}
	return page, nil
}

// SessionView returns the caller's page. A layout query switches the
// presentation without touching filters.
func (ws *WebServer) SessionView(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	noRequests.WithLabelValues("session").Inc()
	page, err := ws.sessionPage(r, sessionId)
	if err != nil {
		return err
	}
	if layout := r.URL.Query().Get("layout"); layout != "" {
		page.SetLayout(types.ParseLayout(layout))
	}
	w.Header().Set("Cache-Control", "private, no-store")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(page.View())
}

// SessionIntent applies one intent to the caller's page and returns the
// resulting view. Rejected intents leave the page as it was.
func (ws *WebServer) SessionIntent(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	noRequests.WithLabelValues("intent").Inc()
	page, err := ws.sessionPage(r, sessionId)
	if err != nil {
		return err
	}
	intent := types.Intent{}
	if err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&intent); err != nil {
		return common.BadRequest(fmt.Errorf("intent body: %w", err))
	}
	if err = page.Dispatch(intent); err != nil {
		return common.BadRequest(err)
	}
	w.Header().Set("Cache-Control", "private, no-store")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(page.View())
}

func (ws *WebServer) SessionReset(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	noRequests.WithLabelValues("reset").Inc()
	category, err := parseCategory(r)
	if err != nil {
		return err
	}
	ws.Sessions.Reset(sessionId, category)
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (ws *WebServer) GetSettings(w http.ResponseWriter, r *http.Request, sessionId string, enc sonic.Encoder) error {
	settings := ws.Storefront.Settings
	settings.RLock()
	defer settings.RUnlock()
	w.WriteHeader(http.StatusOK)
	return enc.Encode(settings)
}

func (ws *WebServer) Handle() *http.ServeMux {
	srv := http.NewServeMux()

	srv.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	srv.Handle("/metrics", promhttp.Handler())
	srv.HandleFunc("GET /api/categories", common.JsonHandler(ws.Tracking, ws.Categories))
	srv.HandleFunc("GET /api/settings", common.JsonHandler(ws.Tracking, ws.GetSettings))
	srv.HandleFunc("GET /api/products", common.JsonHandler(ws.Tracking, ws.Products))
	srv.HandleFunc("GET /api/products/{category}", common.JsonHandler(ws.Tracking, ws.Products))
	srv.HandleFunc("GET /api/session/{category}", common.JsonHandler(ws.Tracking, ws.SessionView))
	srv.HandleFunc("DELETE /api/session/{category}", common.JsonHandler(ws.Tracking, ws.SessionReset))
	srv.HandleFunc("POST /api/session/{category}/intent", common.JsonHandler(ws.Tracking, ws.SessionIntent))
	srv.HandleFunc("OPTIONS /api/", common.RespondToOptions)

	return srv
}
