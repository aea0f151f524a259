package transfer

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/moyoez/filestation-go/types"
)

// emitter serializes the events of one transfer. Progress comes from the transport's
// body writer while the terminal event comes from the caller, so both go through mu.
type emitter struct {
	index    int
	report   func(types.TransferEvent)
	throttle *rate.Sometimes

	mu       sync.Mutex
	status   types.TransferStatus
	progress int
	settled  bool
}

func newEmitter(index int, report func(types.TransferEvent), interval time.Duration) *emitter {
	e := &emitter{
		index:  index,
		report: report,
		status: types.StatusPending,
	}
	if interval > 0 {
		e.throttle = &rate.Sometimes{Interval: interval}
	}
	return e
}

func (e *emitter) emit(kind types.EventKind, err error) {
	if e.report == nil {
		return
	}
	e.report(types.TransferEvent{
		Index:    e.index,
		Kind:     kind,
		Status:   e.status,
		Progress: e.progress,
		Err:      err,
	})
}

func (e *emitter) dispatched() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.settled || e.status != types.StatusPending {
		return
	}
	e.status = types.StatusUploading
	e.emit(types.EventStatusChange, nil)
}

func (e *emitter) advance(sent, total int64) {
	if total <= 0 {
		return
	}
	pct := int(math.Round(float64(sent) * 100 / float64(total)))
	pct = min(max(pct, 0), 100)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.settled || pct <= e.progress {
		return
	}
	if pct < 100 && e.throttle != nil {
		due := false
		e.throttle.Do(func() { due = true })
		if !due {
			return
		}
	}
	e.progress = pct
	if pct < 100 || e.status != types.StatusUploading {
		e.emit(types.EventProgress, nil)
		return
	}
	// every byte is on the wire, the server is saving
	e.status = types.StatusProcessing
	e.emit(types.EventProgress, nil)
	e.emit(types.EventStatusChange, nil)
}

// settle reports the terminal event once. Later calls are ignored.
func (e *emitter) settle(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.settled {
		return
	}
	e.settled = true
	if err != nil {
		e.status = types.StatusError
	} else {
		e.status = types.StatusSuccess
		e.progress = 100
	}
	e.emit(types.EventTerminal, err)
}
