package transfer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moyoez/filestation-go/types"
)

func TestEmitterProcessingAfterFullProgress(t *testing.T) {
	rec := &recorder{}
	em := newEmitter(1, rec.report, 0)

	em.dispatched()
	em.advance(50, 100)
	em.advance(40, 100) // stale
	em.advance(100, 100)
	em.advance(100, 100)
	em.settle(nil)
	em.settle(errors.New("late"))

	events := rec.snapshot()
	kinds := make([]types.EventKind, 0, len(events))
	for _, ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	assert.Equal(t, []types.EventKind{
		types.EventStatusChange,
		types.EventProgress,
		types.EventProgress,
		types.EventStatusChange,
		types.EventTerminal,
	}, kinds)
	assert.Equal(t, types.StatusProcessing, events[3].Status)
	assert.Equal(t, types.StatusSuccess, events[4].Status)
	assert.NoError(t, events[4].Err)
}

func TestEmitterThrottleAlwaysDeliversFull(t *testing.T) {
	rec := &recorder{}
	em := newEmitter(0, rec.report, time.Hour)

	em.dispatched()
	for sent := int64(1); sent <= 100; sent++ {
		em.advance(sent, 100)
	}

	var progress []int
	for _, ev := range rec.snapshot() {
		if ev.Kind == types.EventProgress {
			progress = append(progress, ev.Progress)
		}
	}
	// the first intermediate update passes, the rest are throttled until 100%
	require.Len(t, progress, 2)
	assert.Equal(t, 1, progress[0])
	assert.Equal(t, 100, progress[1])
}

func TestEmitterErrorKeepsProgress(t *testing.T) {
	rec := &recorder{}
	em := newEmitter(0, rec.report, 0)

	em.dispatched()
	em.advance(30, 100)
	em.settle(&NetworkError{Err: errors.New("connection reset")})
	em.advance(90, 100)

	events := rec.snapshot()
	last := events[len(events)-1]
	assert.Equal(t, types.EventTerminal, last.Kind)
	assert.Equal(t, types.StatusError, last.Status)
	assert.Equal(t, 30, last.Progress)
}

func TestKindOfWrapped(t *testing.T) {
	err := errors.Join(errors.New("batch"), &ServerError{StatusCode: 502})
	assert.Equal(t, types.ErrorKindServerError, KindOf(err))
	assert.Equal(t, types.ErrorKindNone, KindOf(nil))
	assert.Equal(t, types.ErrorKindNetwork, KindOf(errors.New("boom")))
}
