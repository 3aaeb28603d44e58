package source

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	elementsReadCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "readkit",
		Subsystem: "source",
		Name:      "elements_read_total",
		Help:      "total number of elements produced by instrumented sources",
	}, []string{"source"})

	readFailureCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "readkit",
		Subsystem: "source",
		Name:      "read_failures_total",
		Help:      "number of reads from instrumented sources that returned an error",
	}, []string{"source"})

	exhaustedCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "readkit",
		Subsystem: "source",
		Name:      "exhausted_total",
		Help:      "number of reads from instrumented sources that observed the end of the sequence",
	}, []string{"source"})
)

type meteredSource[T any] struct {
	src       Source[T]
	elements  prometheus.Counter
	failures  prometheus.Counter
	exhausted prometheus.Counter
}

// WithMetrics wraps src so that every element, failure and end-of-sequence
// observation is counted under the given source label.
func WithMetrics[T any](src Source[T], name string) Source[T] {
	return &meteredSource[T]{
		src:       src,
		elements:  elementsReadCount.WithLabelValues(name),
		failures:  readFailureCount.WithLabelValues(name),
		exhausted: exhaustedCount.WithLabelValues(name),
	}
}

func (m *meteredSource[T]) Next(ctx context.Context) (T, bool, error) {
	value, ok, err := m.src.Next(ctx)
	switch {
	case err != nil:
		m.failures.Inc()
	case ok:
		m.elements.Inc()
	default:
		m.exhausted.Inc()
	}
	return value, ok, err
}
