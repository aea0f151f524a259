package session

import (
	"context"
	"slices"
	"sync"
	"time"

	ttlworker "github.com/FloatTech/ttl"
	"golang.org/x/sync/errgroup"

	"github.com/moyoez/filestation-go/tool"
	"github.com/moyoez/filestation-go/types"
)

const DefaultHistoryTTL = 60 * time.Minute

// Uploader performs one transfer. It must report events for index only and finish with
// exactly one terminal event.
type Uploader interface {
	Upload(ctx context.Context, index int, file types.FileDescriptor, meta types.SubmissionMetadata, report func(types.TransferEvent)) error
}

type Config struct {
	// FinalizeDelay is how long the final statuses stay visible before finalizing.
	FinalizeDelay time.Duration
	// MaxConcurrent caps transfers in flight per batch. Zero means no cap.
	MaxConcurrent int
	HistoryTTL    time.Duration
}

// Session owns the current upload batch. Only one batch runs at a time.
type Session struct {
	uploader  Uploader
	presenter types.Presenter
	cfg       Config

	mu      sync.RWMutex
	current *batch
	history *ttlworker.Cache[string, types.BatchSummary]
}

// New creates a session and registers its navigation guard with the presenter.
func New(uploader Uploader, presenter types.Presenter, cfg Config) *Session {
	if cfg.FinalizeDelay < 0 {
		cfg.FinalizeDelay = 0
	}
	if cfg.HistoryTTL <= 0 {
		cfg.HistoryTTL = DefaultHistoryTTL
	}
	s := &Session{
		uploader:  uploader,
		presenter: presenter,
		cfg:       cfg,
		history:   ttlworker.NewCache[string, types.BatchSummary](cfg.HistoryTTL),
	}
	presenter.OnBeforeUnload(s.InFlight)
	return s
}

// Start validates files and starts one transfer per file. No transfer is dispatched when
// a ValidationError is returned.
func (s *Session) Start(ctx context.Context, files []types.FileDescriptor, meta types.SubmissionMetadata) (*Handle, error) {
	if err := validateSelection(files); err != nil {
		tool.DefaultLogger.Warnf("Rejected upload batch: %v", err)
		return nil, err
	}

	s.mu.Lock()
	if s.current != nil && !s.current.finished() {
		s.mu.Unlock()
		return nil, ErrBatchInFlight
	}
	previous := s.current
	b := newBatch(tool.GenerateRandomUUID(), slices.Clone(files), meta)
	s.current = b
	s.retireLocked(previous)
	s.mu.Unlock()

	tool.DefaultLogger.Infof("Starting upload batch %s with %d file(s)", b.id, len(b.files))
	s.presenter.RenderFileList(b.files)
	s.presenter.RenderBatchSummary(len(b.files), 0)
	for i := range b.files {
		s.presenter.RenderTransfer(i, types.StatusPending, 0, "")
	}

	go s.loop(b)
	go s.dispatch(ctx, b)

	return &Handle{s: s, b: b}, nil
}

// dispatch runs every transfer and closes the event stream once all have returned.
// A failed transfer never cancels its siblings: workers always return nil to the group.
func (s *Session) dispatch(ctx context.Context, b *batch) {
	var g errgroup.Group
	if s.cfg.MaxConcurrent > 0 {
		g.SetLimit(s.cfg.MaxConcurrent)
	}
	for i, file := range b.files {
		g.Go(func() error {
			s.runTransfer(ctx, b, i, file)
			return nil
		})
	}
	_ = g.Wait()
	close(b.events)
}

func (s *Session) runTransfer(ctx context.Context, b *batch, index int, file types.FileDescriptor) {
	var (
		mu      sync.Mutex
		settled bool
	)
	report := func(ev types.TransferEvent) {
		mu.Lock()
		defer mu.Unlock()
		if ev.Index != index || settled {
			return
		}
		if ev.Kind == types.EventTerminal {
			settled = true
		}
		b.events <- ev
	}
	err := s.uploader.Upload(ctx, index, file, b.meta, report)

	mu.Lock()
	defer mu.Unlock()
	if !settled {
		// the uploader returned without a terminal event; settle from its result
		status := types.StatusSuccess
		if err != nil {
			status = types.StatusError
		}
		settled = true
		b.events <- types.TransferEvent{Index: index, Kind: types.EventTerminal, Status: status, Err: err}
	}
}

// loop is the only writer of the batch's transfer states and completed count.
func (s *Session) loop(b *batch) {
	for ev := range b.events {
		s.apply(b, ev)
	}
}

func (s *Session) apply(b *batch, ev types.TransferEvent) {
	if ev.Index < 0 || ev.Index >= len(b.files) {
		tool.DefaultLogger.Warnf("Batch %s: dropping event for unknown transfer %d", b.id, ev.Index)
		return
	}

	s.mu.Lock()
	st := &b.transfers[ev.Index]
	if st.Status.IsTerminal() {
		s.mu.Unlock()
		return
	}
	switch ev.Kind {
	case types.EventProgress:
		if st.Status == types.StatusPending {
			st.Status = types.StatusUploading
		}
		if ev.Progress > st.Progress {
			st.Progress = min(ev.Progress, 100)
		}
		if st.Progress == 100 && st.Status == types.StatusUploading {
			st.Status = types.StatusProcessing
		}
	case types.EventStatusChange:
		if ev.Status.IsTerminal() {
			break
		}
		st.Status = ev.Status
		if st.Progress == 100 && st.Status == types.StatusUploading {
			st.Status = types.StatusProcessing
		}
	case types.EventTerminal:
		s.mu.Unlock()
		outcome := ev.Err
		if outcome == nil && ev.Status == types.StatusError {
			outcome = errTransferFailed
		}
		s.onTransferSettled(b, ev.Index, outcome)
		return
	}
	state := *st
	s.mu.Unlock()

	s.presenter.RenderTransfer(ev.Index, state.Status, state.Progress, "")
}

// onTransferSettled records the outcome of one transfer and checks whether the batch is done.
func (s *Session) onTransferSettled(b *batch, index int, outcome error) {
	s.mu.Lock()
	st := &b.transfers[index]
	if st.Status.IsTerminal() {
		s.mu.Unlock()
		return
	}
	if outcome != nil {
		st.Status = types.StatusError
		st.ErrorKind = errorKind(outcome)
		st.ErrorMessage = outcome.Error()
		b.failed++
	} else {
		st.Status = types.StatusSuccess
		st.Progress = 100
		b.succeeded++
	}
	b.completed++
	state := *st
	completed, total := b.completed, len(b.files)
	var summary types.BatchSummary
	if completed == total {
		b.finishedAt = time.Now()
		summary = b.summary()
	}
	s.mu.Unlock()

	s.presenter.RenderTransfer(index, state.Status, state.Progress, state.ErrorMessage)
	s.presenter.RenderBatchSummary(total, completed)

	if completed == total {
		s.batchComplete(b, summary)
	}
}

// batchComplete fires once per batch and schedules finalization after FinalizeDelay.
func (s *Session) batchComplete(b *batch, summary types.BatchSummary) {
	b.completeOnce.Do(func() {
		s.history.Set(b.id, summary)
		tool.DefaultLogger.Infof("Upload batch %s finished: %d succeeded, %d failed", b.id, summary.Succeeded, summary.Failed)
		close(b.done)
		s.mu.Lock()
		b.finalizeTimer = time.AfterFunc(s.cfg.FinalizeDelay, func() {
			s.finalize(b)
		})
		s.mu.Unlock()
	})
}

// retireLocked drops the pending finalize of a batch that is no longer current, so a
// late navigation never lands on top of the next batch. Must be called with s.mu held.
func (s *Session) retireLocked(b *batch) {
	if b == nil {
		return
	}
	if b.finalizeTimer != nil {
		b.finalizeTimer.Stop()
	}
	b.finalizeOnce.Do(func() {
		tool.DefaultLogger.Debugf("Batch %s replaced before finalizing", b.id)
		close(b.finalized)
	})
}

// finalize runs the presenter's navigation at most once per batch.
func (s *Session) finalize(b *batch) {
	b.finalizeOnce.Do(func() {
		mode := types.FinalizeRedirectToListing
		if s.presenter.ModalActive() {
			mode = types.FinalizeReloadInPlace
		}
		tool.DefaultLogger.Debugf("Finalizing batch %s: %s", b.id, mode)
		s.presenter.FinalizeNavigation(mode)
		close(b.finalized)
	})
}

// InFlight reports whether any transfer of the current batch has not settled.
func (s *Session) InFlight() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && !s.current.finished()
}

// Reset clears the current selection. It fails while a batch is in flight.
func (s *Session) Reset() error {
	s.mu.Lock()
	if s.current != nil && !s.current.finished() {
		s.mu.Unlock()
		return ErrBatchInFlight
	}
	s.retireLocked(s.current)
	s.current = nil
	s.mu.Unlock()

	s.presenter.RenderFileList(nil)
	s.presenter.RenderBatchSummary(0, 0)
	return nil
}

// Current returns a snapshot of the current batch.
func (s *Session) Current() (types.BatchSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return types.BatchSummary{}, false
	}
	return s.current.summary(), true
}

// Batch returns a finished batch from history.
func (s *Session) Batch(id string) (types.BatchSummary, bool) {
	summary := s.history.Get(id)
	return summary, summary.ID != ""
}
