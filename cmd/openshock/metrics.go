package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// writeMetrics prints the client's request counters and latency totals
func writeMetrics(w io.Writer) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		_, _ = fmt.Fprintf(w, "metrics unavailable: %v\n", err)
		return
	}

	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "openshock_client_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				_, _ = fmt.Fprintf(w, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				_, _ = fmt.Fprintf(w, "%s{%s} count=%d sum=%.3fs\n", mf.GetName(), strings.Join(labels, ","), h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
}
