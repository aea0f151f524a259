package session

import (
	"errors"
	"fmt"

	"github.com/moyoez/filestation-go/types"
)

// ValidationError rejects a batch before any transfer is dispatched.
type ValidationError struct {
	Reason string
	// Index is the offending entry, or -1 for the selection as a whole.
	Index int
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid selection: entry %d: %s", e.Index, e.Reason)
	}
	return "invalid selection: " + e.Reason
}

// errTransferFailed stands in for an error-status terminal event that carried no error.
var errTransferFailed = errors.New("upload failed")

var (
	ErrEmptySelection = &ValidationError{Reason: "no files selected", Index: -1}
	ErrBatchInFlight  = &ValidationError{Reason: "an upload batch is already in progress", Index: -1}
)

// looksLikeFolder is a best-effort check: browsers report dropped folders as entries
// with zero size and no type. A genuine empty file of unknown type matches too.
func looksLikeFolder(f types.FileDescriptor) bool {
	return f.Size == 0 && f.Type == ""
}

func validateSelection(files []types.FileDescriptor) error {
	if len(files) == 0 {
		return ErrEmptySelection
	}
	for i, f := range files {
		if looksLikeFolder(f) {
			return &ValidationError{Reason: fmt.Sprintf("%q looks like a folder, folders are not supported", f.Name), Index: i}
		}
	}
	return nil
}
