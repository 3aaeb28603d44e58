package framing

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/authzed/readkit/pkg/cursor"
	"github.com/authzed/readkit/pkg/readerloop"
)

var (
	recordsDecodedCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "readkit",
		Subsystem: "framing",
		Name:      "records_decoded_total",
		Help:      "number of records decoded, by format",
	}, []string{"format"})

	decodeFailureCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "readkit",
		Subsystem: "framing",
		Name:      "decode_failures_total",
		Help:      "number of records that failed to decode, by format",
	}, []string{"format"})
)

func instrumented[E, O any](format string, read readerloop.ReadFunc[E, O]) readerloop.ReadFunc[E, O] {
	decoded := recordsDecodedCount.WithLabelValues(format)
	failed := decodeFailureCount.WithLabelValues(format)

	return func(ctx context.Context, c *cursor.Cursor[E]) (O, bool, error) {
		value, ok, err := read(ctx, c)
		switch {
		case err != nil:
			failed.Inc()
		case ok:
			decoded.Inc()
		}
		return value, ok, err
	}
}
