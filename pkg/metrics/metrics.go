package metrics

import (
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder instruments gateway calls on a private Prometheus registry and
// provides lightweight snapshots for the stats command.
type Recorder struct {
	registry        *prometheus.Registry
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewRecorder registers the gateway collectors.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_requests_total",
		Help: "Total number of gateway calls",
	}, []string{"entity", "verb", "outcome"})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gateway_request_duration_seconds",
		Help:    "Duration of gateway calls in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"entity", "verb"})

	registry.MustRegister(requestTotal, requestDuration)

	return &Recorder{
		registry:        registry,
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
	}
}

// Observe records one gateway call.
func (r *Recorder) Observe(entity, verb, outcome string, duration time.Duration) {
	if r == nil {
		return
	}
	r.requestTotal.WithLabelValues(entity, verb, outcome).Inc()
	r.requestDuration.WithLabelValues(entity, verb).Observe(duration.Seconds())
}

// Row is one aggregated line of the stats table.
type Row struct {
	Entity  string
	Verb    string
	Outcome string
	Count   float64
}

// Snapshot gathers the registry and flattens the call counters into sorted
// rows for display.
func (r *Recorder) Snapshot() ([]Row, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, err
	}

	var rows []Row
	for _, family := range families {
		if family.GetName() != "gateway_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			row := Row{Count: metric.GetCounter().GetValue()}
			for _, label := range metric.GetLabel() {
				switch label.GetName() {
				case "entity":
					row.Entity = label.GetValue()
				case "verb":
					row.Verb = label.GetValue()
				case "outcome":
					row.Outcome = label.GetValue()
				}
			}
			rows = append(rows, row)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Entity != rows[j].Entity {
			return rows[i].Entity < rows[j].Entity
		}
		if rows[i].Verb != rows[j].Verb {
			return rows[i].Verb < rows[j].Verb
		}
		return rows[i].Outcome < rows[j].Outcome
	})

	return rows, nil
}
