package facet

import (
	"time"

	"github.com/matst80/slask-storefront/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	noEvaluations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_facet_evaluations_total",
		Help: "The total number of facet evaluations",
	})
	noCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_facet_cache_hits_total",
		Help: "The total number of evaluations served from cache",
	})
	evaluationTime = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_facet_evaluation_seconds",
		Help:    "Time spent computing uncached evaluations",
		Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
	})
)

// Evaluator runs evaluations against one candidate set, optionally memoized.
type Evaluator struct {
	Handler *FacetItemHandler
	cache   ResultCache
}

func NewEvaluator(handler *FacetItemHandler, cache ResultCache) *Evaluator {
	return &Evaluator{
		Handler: handler,
		cache:   cache,
	}
}

func (e *Evaluator) Evaluate(state types.FilterState) *Result {
	noEvaluations.Inc()
	var key uint64
	if e.cache != nil {
		key = state.FilterHash()
		if r, ok := e.cache.Get(key); ok {
			noCacheHits.Inc()
			return r
		}
	}
	start := time.Now()
	r := e.Handler.Evaluate(state)
	evaluationTime.Observe(time.Since(start).Seconds())
	if e.cache != nil {
		e.cache.Set(key, r)
	}
	return r
}

// Items resolves the narrowed ids of a result to products in catalog order.
func (e *Evaluator) Items(r *Result) []types.Product {
	return e.Handler.GetItems(r.Ids)
}
