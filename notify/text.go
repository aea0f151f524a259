package notify

import "github.com/moyoez/filestation-go/types"

var statusText = map[types.TransferStatus]string{
	types.StatusPending:    "Waiting",
	types.StatusUploading:  "Uploading...",
	types.StatusProcessing: "Saving, please do not close...",
	types.StatusSuccess:    "Uploaded",
	types.StatusError:      "Upload failed",
}

// StatusText is the line shown under a file row. An error shows its message when present.
func StatusText(status types.TransferStatus, message string) string {
	if status == types.StatusError && message != "" {
		return message
	}
	if text, ok := statusText[status]; ok {
		return text
	}
	return statusText[types.StatusPending]
}

// LeaveWarning is shown when the user tries to leave while uploads are running.
const LeaveWarning = "Files are still uploading, are you sure you want to leave?"
