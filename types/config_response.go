package types

// UploadBatchRequest is the body of POST /api/self/v1/upload-batch.
type UploadBatchRequest struct {
	Files       []string `json:"files"`
	Description string   `json:"description"`
	Password    string   `json:"password,omitempty"`
	Expiration  string   `json:"expiration,omitempty"`
}

// StatusResponse is returned by GET /api/self/v1/status.
type StatusResponse struct {
	InFlight bool          `json:"inFlight"`
	Batch    *BatchSummary `json:"batch,omitempty"`
}
