package models

import "context"

// SeriesSource supplies raw observations to the pipeline
type SeriesSource interface {
	LoadSeries(ctx context.Context) ([]RawPoint, error)
}

// Notifier delivers a rendered report to its recipients
type Notifier interface {
	Broadcast(ctx context.Context, chatIDs []int64, text string) error
}
