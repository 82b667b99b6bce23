package main

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// logMetrics collects the cache counters once and logs their totals at debug
// level.
func logMetrics(ctx context.Context, reader sdkmetric.Reader, logger zerolog.Logger) {
	totals, err := counterTotals(ctx, reader)
	if err != nil {
		logger.Debug().Err(err).Msg("collect metrics")
		return
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	event := logger.Debug()
	for _, name := range names {
		event = event.Int64(name, totals[name])
	}
	event.Msg("cache metrics")
}

func counterTotals(ctx context.Context, reader sdkmetric.Reader) (map[string]int64, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return nil, err
	}
	totals := make(map[string]int64)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, point := range sum.DataPoints {
				totals[m.Name] += point.Value
			}
		}
	}
	return totals, nil
}
