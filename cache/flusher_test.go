package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeCounterSource struct {
	pending map[int64]int64
	err     error
	drained int
}

func (s *fakeCounterSource) Drain(ctx context.Context) (map[int64]int64, error) {
	s.drained++
	out := s.pending
	s.pending = map[int64]int64{}
	return out, s.err
}

type fakeViewSink struct {
	applied map[int64]int64
	failID  int64
}

func (s *fakeViewSink) AddViews(ctx context.Context, entityID int64, delta int64) error {
	if entityID == s.failID {
		return errors.New("database gone")
	}
	if s.applied == nil {
		s.applied = map[int64]int64{}
	}
	s.applied[entityID] += delta
	return nil
}

func TestFlushAppliesDrainedCounters(t *testing.T) {
	source := &fakeCounterSource{pending: map[int64]int64{7: 3, 12: 1}}
	sink := &fakeViewSink{}
	flusher := &ViewFlusher{source: source, sink: sink}

	flusher.Flush(context.Background())

	assert.Equal(t, 1, source.drained)
	assert.Equal(t, map[int64]int64{7: 3, 12: 1}, sink.applied)
}

func TestFlushContinuesPastFailingEntity(t *testing.T) {
	source := &fakeCounterSource{pending: map[int64]int64{1: 5, 2: 2, 3: 9}}
	sink := &fakeViewSink{failID: 2}
	flusher := &ViewFlusher{source: source, sink: sink}

	flusher.Flush(context.Background())

	assert.Equal(t, map[int64]int64{1: 5, 3: 9}, sink.applied)
}

func TestFlushAppliesPartialDrain(t *testing.T) {
	// A drain error can still carry the counters read before the failure;
	// those must not be lost.
	source := &fakeCounterSource{
		pending: map[int64]int64{4: 2},
		err:     errors.New("redis connection reset"),
	}
	sink := &fakeViewSink{}
	flusher := &ViewFlusher{source: source, sink: sink}

	flusher.Flush(context.Background())

	assert.Equal(t, map[int64]int64{4: 2}, sink.applied)
}
