// Package metrics provides Prometheus metrics for the device command line.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"dlccontrol/internal/decop"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeOK          = "ok"
	OutcomeDeviceError = "device_error"
	OutcomeTransport   = "transport_error"
	OutcomeCanceled    = "canceled"
	OutcomeOther       = "error"
)

var (
	commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dlccontrol",
		Subsystem: "decop",
		Name:      "commands_total",
		Help:      "Commands sent to the laser controller by operation and outcome",
	}, []string{"op", "outcome"})

	commandDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dlccontrol",
		Subsystem: "decop",
		Name:      "command_duration_seconds",
		Help:      "Round-trip time of controller commands",
		Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"op"})
)

// InstrumentedClient decorates a decop.Client with command metrics.
type InstrumentedClient struct {
	next decop.Client
	now  func() time.Time
}

var _ decop.Client = (*InstrumentedClient)(nil)

func NewInstrumentedClient(next decop.Client) *InstrumentedClient {
	return &InstrumentedClient{next: next, now: time.Now}
}

func (c *InstrumentedClient) Get(ctx context.Context, path string) (decop.Value, error) {
	start := c.now()
	v, err := c.next.Get(ctx, path)
	c.observe("get", start, err)
	return v, err
}

func (c *InstrumentedClient) Set(ctx context.Context, path string, value any) error {
	start := c.now()
	err := c.next.Set(ctx, path, value)
	c.observe("set", start, err)
	return err
}

func (c *InstrumentedClient) Exec(ctx context.Context, name string, args ...any) (decop.Value, error) {
	start := c.now()
	v, err := c.next.Exec(ctx, name, args...)
	c.observe("exec", start, err)
	return v, err
}

func (c *InstrumentedClient) Close() error { return c.next.Close() }

func (c *InstrumentedClient) observe(op string, start time.Time, err error) {
	commandDuration.WithLabelValues(op).Observe(c.now().Sub(start).Seconds())
	commandsTotal.WithLabelValues(op, Outcome(err)).Inc()
}

// Outcome classifies a command error for the outcome label.
func Outcome(err error) string {
	var devErr *decop.DeviceError
	switch {
	case err == nil:
		return OutcomeOK
	case errors.As(err, &devErr):
		return OutcomeDeviceError
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	case errors.Is(err, decop.ErrConnection), errors.Is(err, decop.ErrClosed):
		return OutcomeTransport
	default:
		return OutcomeOther
	}
}

// Handler serves every promauto-registered metric.
func Handler() http.Handler {
	return promhttp.Handler()
}
