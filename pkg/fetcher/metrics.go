package fetcher

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/goliatone/go-megamenu/pkg/fetcher"

type metrics struct {
	hits        metric.Int64Counter
	misses      metric.Int64Counter
	corrupt     metric.Int64Counter
	fetchErrors metric.Int64Counter
}

func newMetrics(meter metric.Meter) (*metrics, error) {
	hits, err := meter.Int64Counter(
		"megamenu.cache.hits",
		metric.WithDescription("Term tree lookups served from cache"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	misses, err := meter.Int64Counter(
		"megamenu.cache.misses",
		metric.WithDescription("Term tree lookups that fell through to the term store"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	corrupt, err := meter.Int64Counter(
		"megamenu.cache.corrupt",
		metric.WithDescription("Cached term trees that could not be decoded"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	fetchErrors, err := meter.Int64Counter(
		"megamenu.fetch.errors",
		metric.WithDescription("Term store calls that failed"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	return &metrics{
		hits:        hits,
		misses:      misses,
		corrupt:     corrupt,
		fetchErrors: fetchErrors,
	}, nil
}

func termSetAttrs(termSetID, locale string) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("termset", termSetID),
		attribute.String("locale", locale),
	)
}

func (m *metrics) hit(ctx context.Context, termSetID, locale string) {
	m.hits.Add(ctx, 1, termSetAttrs(termSetID, locale))
}

func (m *metrics) miss(ctx context.Context, termSetID, locale string) {
	m.misses.Add(ctx, 1, termSetAttrs(termSetID, locale))
}

func (m *metrics) corruptEntry(ctx context.Context, termSetID, locale string) {
	m.corrupt.Add(ctx, 1, termSetAttrs(termSetID, locale))
}

func (m *metrics) fetchError(ctx context.Context, termSetID, locale string) {
	m.fetchErrors.Add(ctx, 1, termSetAttrs(termSetID, locale))
}
