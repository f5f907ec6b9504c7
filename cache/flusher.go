package cache

import (
	"context"
	"time"

	"github.com/TemaXo00/musium-web-application/logger"
)

// ViewSink receives drained view counters; satisfied by the entity
// repository.
type ViewSink interface {
	AddViews(ctx context.Context, entityID int64, delta int64) error
}

// counterSource is satisfied by *ViewCache.
type counterSource interface {
	Drain(ctx context.Context) (map[int64]int64, error)
}

// ViewFlusher periodically moves pending view counters from Redis into
// the database: one UPDATE per entity per interval instead of one per
// page view.
type ViewFlusher struct {
	source   counterSource
	sink     ViewSink
	interval time.Duration
}

// NewViewFlusher creates a flusher over the view cache.
func NewViewFlusher(source *ViewCache, sink ViewSink, interval time.Duration) *ViewFlusher {
	return &ViewFlusher{source: source, sink: sink, interval: interval}
}

// Run flushes on every tick until ctx is cancelled, then performs one
// final flush so shutdown does not lose counted views.
func (f *ViewFlusher) Run(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			f.Flush(context.Background())
			return
		case <-ticker.C:
			f.Flush(ctx)
		}
	}
}

// Flush drains the pending counters and applies each delta to the sink.
// A failing entity does not block the rest of the batch.
func (f *ViewFlusher) Flush(ctx context.Context) {
	pending, err := f.source.Drain(ctx)
	if err != nil {
		logger.Warn("failed to drain view counters", logger.ErrorField(err))
	}

	for id, delta := range pending {
		if err := f.sink.AddViews(ctx, id, delta); err != nil {
			logger.Error("failed to persist view counter",
				logger.Int64("entityId", id), logger.ErrorField(err))
		}
	}
}
