package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/skip2/go-qrcode"

	"github.com/moyoez/filestation-go/tool"
	"github.com/moyoez/filestation-go/types"
)

// Console renders upload state as log lines. It never hosts a modal, so finished batches
// always redirect to the listing.
type Console struct {
	logger     *log.Logger
	out        io.Writer
	listingURL string
	showQR     bool

	mu       sync.Mutex
	files    []types.FileDescriptor
	statuses []types.TransferStatus
	inFlight func() bool
	warned   bool
}

var _ types.Presenter = (*Console)(nil)

// NewConsole writes QR codes to out and everything else to tool.DefaultLogger.
func NewConsole(out io.Writer, listingURL string, showQR bool) *Console {
	return &Console{
		logger:     tool.DefaultLogger,
		out:        out,
		listingURL: listingURL,
		showQR:     showQR,
	}
}

func (c *Console) RenderFileList(files []types.FileDescriptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files = files
	c.statuses = make([]types.TransferStatus, len(files))
	for i, f := range files {
		c.logger.Infof("[%d] %s (%s)", i+1, f.Name, tool.FormatFileSize(f.Size))
	}
}

func (c *Console) RenderTransfer(index int, status types.TransferStatus, progress int, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	name := fmt.Sprintf("#%d", index+1)
	if index >= 0 && index < len(c.files) {
		name = c.files[index].Name
	}
	changed := true
	if index >= 0 && index < len(c.statuses) {
		changed = c.statuses[index] != status
		c.statuses[index] = status
	}
	switch {
	case status == types.StatusError:
		c.logger.Errorf("%s: %s", name, StatusText(status, message))
	case changed:
		c.logger.Infof("%s: %s %d%%", name, StatusText(status, message), progress)
	default:
		c.logger.Debugf("%s: %d%%", name, progress)
	}
}

func (c *Console) RenderBatchSummary(total, completed int) {
	if total == 0 {
		return
	}
	c.logger.Infof("Completed %d/%d", completed, total)
}

func (c *Console) OnBeforeUnload(inFlight func() bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = inFlight
}

// ConfirmLeave is the navigation guard. While uploads are running the first attempt to
// leave only warns and returns false; a repeated attempt is let through. In-flight
// requests are not aborted either way.
func (c *Console) ConfirmLeave() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight == nil || !c.inFlight() {
		return true
	}
	if c.warned {
		return true
	}
	c.warned = true
	c.logger.Warn(LeaveWarning + " (repeat to leave)")
	return false
}

func (c *Console) ModalActive() bool {
	return false
}

func (c *Console) FinalizeNavigation(mode types.FinalizeMode) {
	c.mu.Lock()
	c.warned = false
	c.mu.Unlock()

	if mode == types.FinalizeReloadInPlace {
		c.logger.Info("Upload finished, refreshing view")
		return
	}
	c.logger.Infof("Upload finished, files are listed at %s", c.listingURL)
	if !c.showQR || c.listingURL == "" {
		return
	}
	qr, err := qrcode.New(c.listingURL, qrcode.Medium)
	if err != nil {
		c.logger.Warnf("Failed to encode QR code: %v", err)
		return
	}
	if _, err := io.WriteString(c.out, qr.ToSmallString(false)); err != nil {
		c.logger.Warnf("Failed to print QR code: %v", err)
	}
}
