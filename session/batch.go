package session

import (
	"slices"
	"sync"
	"time"

	"github.com/moyoez/filestation-go/transfer"
	"github.com/moyoez/filestation-go/types"
)

type batch struct {
	id        string
	files     []types.FileDescriptor
	meta      types.SubmissionMetadata
	transfers []types.TransferState
	completed int
	succeeded int
	failed    int

	startedAt  time.Time
	finishedAt time.Time

	events        chan types.TransferEvent
	done          chan struct{}
	finalized     chan struct{}
	completeOnce  sync.Once
	finalizeOnce  sync.Once
	finalizeTimer *time.Timer // guarded by the session lock
}

func newBatch(id string, files []types.FileDescriptor, meta types.SubmissionMetadata) *batch {
	transfers := make([]types.TransferState, len(files))
	for i, f := range files {
		transfers[i] = types.TransferState{
			Name:     f.Name,
			Size:     f.Size,
			Status:   types.StatusPending,
			Progress: 0,
		}
	}
	return &batch{
		id:        id,
		files:     files,
		meta:      meta,
		transfers: transfers,
		startedAt: time.Now(),
		events:    make(chan types.TransferEvent, len(files)),
		done:      make(chan struct{}),
		finalized: make(chan struct{}),
	}
}

// finished must be called with the session lock held.
func (b *batch) finished() bool {
	return b.completed == len(b.files)
}

// summary must be called with the session lock held.
func (b *batch) summary() types.BatchSummary {
	meta := b.meta
	meta.Password = ""
	return types.BatchSummary{
		ID:         b.id,
		Total:      len(b.files),
		Completed:  b.completed,
		Succeeded:  b.succeeded,
		Failed:     b.failed,
		Metadata:   meta,
		Transfers:  slices.Clone(b.transfers),
		StartedAt:  b.startedAt,
		FinishedAt: b.finishedAt,
	}
}

func errorKind(err error) types.ErrorKind {
	return transfer.KindOf(err)
}

// Handle observes one batch.
type Handle struct {
	s *Session
	b *batch
}

func (h *Handle) ID() string {
	return h.b.id
}

// Done is closed when every transfer of the batch has settled.
func (h *Handle) Done() <-chan struct{} {
	return h.b.done
}

// Finalized is closed after the presenter's finalize navigation ran, or once the batch was
// replaced by a new batch or a reset before its finalize delay elapsed.
func (h *Handle) Finalized() <-chan struct{} {
	return h.b.finalized
}

// Wait blocks until the batch has settled and returns its summary.
func (h *Handle) Wait() types.BatchSummary {
	<-h.b.done
	return h.Snapshot()
}

func (h *Handle) Snapshot() types.BatchSummary {
	h.s.mu.RLock()
	defer h.s.mu.RUnlock()
	return h.b.summary()
}

// Finalize runs finalization now instead of waiting for the delay. Calling it again, or
// after the delayed finalization ran, does nothing. It is a no-op before the batch settled.
func (h *Handle) Finalize() {
	select {
	case <-h.b.done:
		h.s.finalize(h.b)
	default:
	}
}
