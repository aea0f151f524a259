package notify

import "github.com/moyoez/filestation-go/types"

// Multi fans every call out to several presenters.
type Multi []types.Presenter

var _ types.Presenter = Multi(nil)

func (m Multi) RenderFileList(files []types.FileDescriptor) {
	for _, p := range m {
		p.RenderFileList(files)
	}
}

func (m Multi) RenderTransfer(index int, status types.TransferStatus, progress int, message string) {
	for _, p := range m {
		p.RenderTransfer(index, status, progress, message)
	}
}

func (m Multi) RenderBatchSummary(total, completed int) {
	for _, p := range m {
		p.RenderBatchSummary(total, completed)
	}
}

func (m Multi) OnBeforeUnload(inFlight func() bool) {
	for _, p := range m {
		p.OnBeforeUnload(inFlight)
	}
}

// ModalActive is true when any presenter hosts the upload surface in a dialog.
func (m Multi) ModalActive() bool {
	for _, p := range m {
		if p.ModalActive() {
			return true
		}
	}
	return false
}

func (m Multi) FinalizeNavigation(mode types.FinalizeMode) {
	for _, p := range m {
		p.FinalizeNavigation(mode)
	}
}
