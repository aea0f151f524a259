package types

// FinalizeMode is what the presentation layer does once a batch has settled.
type FinalizeMode string

const (
	FinalizeReloadInPlace     FinalizeMode = "reload-in-place"
	FinalizeRedirectToListing FinalizeMode = "redirect-to-listing"
)

// Presenter renders session state. Calls arrive in the order state changes happen.
type Presenter interface {
	RenderFileList(files []FileDescriptor)
	RenderTransfer(index int, status TransferStatus, progress int, message string)
	RenderBatchSummary(total, completed int)
	// OnBeforeUnload registers a predicate that is true while leaving would interrupt uploads.
	OnBeforeUnload(inFlight func() bool)
	// ModalActive reports whether the upload surface is hosted in a dialog that can be
	// closed and refreshed in place.
	ModalActive() bool
	FinalizeNavigation(mode FinalizeMode)
}
