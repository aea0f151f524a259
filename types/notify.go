package types

const (
	NotifyTypeTransferUpdate = "transfer_update"
	NotifyTypeFileList       = "file_list"
	NotifyTypeBatchSummary   = "batch_summary"
	NotifyTypeBatchFinalize  = "batch_finalize"
)

// Notification represents a notification message structure
type Notification struct {
	Type    string         `json:"type,omitempty"`    // Notification type, e.g. "transfer_update", "batch_finalize", etc.
	Title   string         `json:"title,omitempty"`   // Notification title
	Message string         `json:"message,omitempty"` // Notification message/content
	Data    map[string]any `json:"data,omitempty"`    // Additional data fields
}
