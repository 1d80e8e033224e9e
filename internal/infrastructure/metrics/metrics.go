package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "loan_origination"

// Metrics holds the service counters. It satisfies the recorder interfaces
// of the application and receipt usecases.
type Metrics struct {
	ApplicationsCreated prometheus.Counter
	DraftSaves          *prometheus.CounterVec
	Transitions         *prometheus.CounterVec
	NumberCollisions    *prometheus.CounterVec
	ReceiptsIssued      *prometheus.CounterVec
	ReceiptsVoided      prometheus.Counter
	HTTPRequests        *prometheus.HistogramVec
}

// NewRegistry returns a registry carrying the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// New creates and registers every metric on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ApplicationsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "applications_created_total",
			Help:      "Draft applications created.",
		}),
		DraftSaves: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "draft_saves_total",
			Help:      "Wizard step saves by step number.",
		}, []string{"step"}),
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Lifecycle transition attempts by action and outcome.",
		}, []string{"action", "outcome"}),
		NumberCollisions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "number_collisions_total",
			Help:      "Generated document numbers rejected by a unique index.",
		}, []string{"kind"}),
		ReceiptsIssued: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipts_issued_total",
			Help:      "Receipts issued by receipt type.",
		}, []string{"type"}),
		ReceiptsVoided: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipts_voided_total",
			Help:      "Receipts voided.",
		}),
		HTTPRequests: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}
}

func (m *Metrics) ApplicationCreated() { m.ApplicationsCreated.Inc() }

func (m *Metrics) DraftSaved(step int) { m.DraftSaves.WithLabelValues(strconv.Itoa(step)).Inc() }

func (m *Metrics) TransitionRecorded(action, outcome string) {
	m.Transitions.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) NumberCollision(kind string) { m.NumberCollisions.WithLabelValues(kind).Inc() }

func (m *Metrics) ReceiptIssued(receiptType string) {
	m.ReceiptsIssued.WithLabelValues(receiptType).Inc()
}

func (m *Metrics) ReceiptVoided() { m.ReceiptsVoided.Inc() }

// Middleware observes request latency labelled by the route template.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			code := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				code = he.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			m.HTTPRequests.WithLabelValues(c.Request().Method, route, strconv.Itoa(code)).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler exposes g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
