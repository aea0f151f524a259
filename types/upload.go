package types

import (
	"io"
	"time"
)

// TransferStatus is the lifecycle state of a single file transfer.
type TransferStatus string

const (
	StatusPending    TransferStatus = "pending"
	StatusUploading  TransferStatus = "uploading"
	StatusProcessing TransferStatus = "processing" // bytes sent, server still saving
	StatusSuccess    TransferStatus = "success"
	StatusError      TransferStatus = "error"
)

// IsTerminal reports whether no further transitions can happen.
func (s TransferStatus) IsTerminal() bool {
	return s == StatusSuccess || s == StatusError
}

// ErrorKind classifies a failed transfer.
type ErrorKind string

const (
	ErrorKindNone           ErrorKind = ""
	ErrorKindServerRejected ErrorKind = "server_rejected"
	ErrorKindServerError    ErrorKind = "server_error"
	ErrorKindResponseParse  ErrorKind = "response_parse_error"
	ErrorKindNetwork        ErrorKind = "network_error"
)

// FileDescriptor is one selected file. Type is a MIME type and may be empty.
type FileDescriptor struct {
	Name string                        `json:"name"`
	Size int64                         `json:"size"`
	Type string                        `json:"type"`
	Path string                        `json:"path,omitempty"`
	Open func() (io.ReadCloser, error) `json:"-"`
}

// SubmissionMetadata is attached identically to every transfer of a batch.
type SubmissionMetadata struct {
	Description string `json:"description"`
	Password    string `json:"password,omitempty"`
	Expiration  string `json:"expiration"`
}

// TransferState is the observable state of one transfer.
type TransferState struct {
	Name         string         `json:"name"`
	Size         int64          `json:"size"`
	Status       TransferStatus `json:"status"`
	Progress     int            `json:"progress"`
	ErrorKind    ErrorKind      `json:"errorKind,omitempty"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
}

// EventKind tells the session how to apply a TransferEvent.
type EventKind string

const (
	EventProgress     EventKind = "progress"
	EventStatusChange EventKind = "status_change"
	EventTerminal     EventKind = "terminal"
)

// TransferEvent is emitted by a transfer for its own index only.
// Err is set on a terminal event of a failed transfer.
type TransferEvent struct {
	Index    int
	Kind     EventKind
	Status   TransferStatus
	Progress int
	Err      error
}

// UploadResponse is the JSON body returned by the upload endpoint.
// Success is a pointer so a body without the field can be told apart from `false`.
type UploadResponse struct {
	Success *bool  `json:"success"`
	Message string `json:"message,omitempty"`
}

// BatchSummary is a point-in-time copy of an upload batch.
type BatchSummary struct {
	ID         string             `json:"id"`
	Total      int                `json:"total"`
	Completed  int                `json:"completed"`
	Succeeded  int                `json:"succeeded"`
	Failed     int                `json:"failed"`
	Metadata   SubmissionMetadata `json:"metadata"`
	Transfers  []TransferState    `json:"transfers"`
	StartedAt  time.Time          `json:"startedAt"`
	FinishedAt time.Time          `json:"finishedAt"`
}

// Finished reports whether every transfer of the batch has settled.
func (b BatchSummary) Finished() bool {
	return b.Total > 0 && b.Completed == b.Total
}
