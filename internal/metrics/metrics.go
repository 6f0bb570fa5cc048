package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/freegames-hub/freegames/pkg/offers"
)

type Registry struct {
	reg             *prometheus.Registry
	FetchTotal      *prometheus.CounterVec
	FetchDuration   *prometheus.HistogramVec
	DroppedTotal    *prometheus.CounterVec
	ClassifiedTotal *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	fetchTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "freegames_vendor_fetch_total",
		Help: "Vendor fetches by source and outcome.",
	}, []string{"source", "result"})
	fetchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "freegames_vendor_fetch_duration_seconds",
		Help:    "Wall time of one vendor fetch.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	dropped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "freegames_records_dropped_total",
		Help: "Vendor records dropped by the normalizer.",
	}, []string{"source"})
	classified := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "freegames_offers_classified_total",
		Help: "Offers classified, by resulting state.",
	}, []string{"state"})

	r.MustRegister(fetchTotal, fetchDuration, dropped, classified)
	return &Registry{
		reg:             r,
		FetchTotal:      fetchTotal,
		FetchDuration:   fetchDuration,
		DroppedTotal:    dropped,
		ClassifiedTotal: classified,
	}
}

func (r *Registry) ObserveFetch(src offers.Source, result string, elapsed time.Duration) {
	r.FetchTotal.WithLabelValues(string(src), result).Inc()
	r.FetchDuration.WithLabelValues(string(src)).Observe(elapsed.Seconds())
}

func (r *Registry) RecordDropped(src offers.Source) {
	r.DroppedTotal.WithLabelValues(string(src)).Inc()
}

func (r *Registry) RecordClassified(state offers.State) {
	r.ClassifiedTotal.WithLabelValues(string(state)).Inc()
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
