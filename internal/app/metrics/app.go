package metricsapp

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/avelkov/sporthub/internal/lib/logger/sl"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	log  *slog.Logger
	port int
	reg  *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ActionsTotal    *prometheus.CounterVec
	PanicsTotal     prometheus.Counter
}

func New(log *slog.Logger, port int) *App {
	reg := prometheus.NewRegistry()

	requestsTotal := promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	requestDuration := promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: []float64{0.001, 0.01, 0.1, 0.3, 0.6, 1, 3, 6, 9, 20, 30, 60},
	}, []string{"method", "path"})

	actionsTotal := promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "actions_total",
		Help: "Total number of action invocations by outcome.",
	}, []string{"action", "outcome"})

	panicsTotal := promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "http_req_panics_recovered_total",
		Help: "Total number of HTTP requests recovered from internal panic.",
	})

	return &App{
		log:             log,
		port:            port,
		reg:             reg,
		RequestsTotal:   requestsTotal,
		RequestDuration: requestDuration,
		ActionsTotal:    actionsTotal,
		PanicsTotal:     panicsTotal,
	}
}

func (a *App) MustRun() {
	err := a.Run()
	if errors.Is(err, http.ErrServerClosed) {
		a.log.Info("Prometheus server closed", sl.Err(err))
	} else if err != nil {
		a.log.Error("Failed to start Prometheus", sl.Err(err))
		panic(err)
	}
}

func (a *App) Run() error {
	const op = "metricsapp.Run"
	log := a.log.With(slog.String("op", op), slog.Int("port", a.port))

	log.Info("exposing Prometheus metrics")

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(
		a.reg,
		promhttp.HandlerOpts{
			// Opt into OpenMetrics e.g. to support exemplars.
			EnableOpenMetrics: true,
		},
	))

	return http.ListenAndServe(fmt.Sprintf(":%d", a.port), mux)
}
