package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

const metricsPrefix = "readkit_"

// WriteMetrics writes every readkit metric family known to gatherer to w in the
// Prometheus text format.
func WriteMetrics(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	for _, family := range filterFamilies(families, metricsPrefix) {
		if _, err := expfmt.MetricFamilyToText(w, family); err != nil {
			return fmt.Errorf("failed to write metric %s: %w", family.GetName(), err)
		}
	}
	return nil
}

func filterFamilies(families []*dto.MetricFamily, prefix string) []*dto.MetricFamily {
	filtered := make([]*dto.MetricFamily, 0, len(families))
	for _, family := range families {
		if strings.HasPrefix(family.GetName(), prefix) {
			filtered = append(filtered, family)
		}
	}
	return filtered
}
