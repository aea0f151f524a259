package transfer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/moyoez/filestation-go/tool"
	"github.com/moyoez/filestation-go/types"
)

const (
	DefaultProgressInterval = 100 * time.Millisecond
	defaultRejectMessage    = "upload failed"
	defaultFileType         = "application/octet-stream"
	maxResponseBody         = 1 << 20
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Uploader posts one file per request to the upload endpoint.
type Uploader struct {
	client           *http.Client
	endpoint         string
	progressInterval time.Duration
}

// NewUploader returns an Uploader for endpoint. A nil client uses tool.GetHttpClient.
func NewUploader(client *http.Client, endpoint string) *Uploader {
	if client == nil {
		client = tool.GetHttpClient()
	}
	return &Uploader{
		client:           client,
		endpoint:         endpoint,
		progressInterval: DefaultProgressInterval,
	}
}

// SetProgressInterval sets the minimum gap between two intermediate progress events.
// Zero or negative reports every percent change.
func (u *Uploader) SetProgressInterval(d time.Duration) {
	u.progressInterval = d
}

func (u *Uploader) Endpoint() string {
	return u.endpoint
}

// Upload sends file with meta as a single multipart request.
// Events for index are passed to report in order, and exactly one terminal event is
// reported last. The returned error is the terminal error, if any.
func (u *Uploader) Upload(ctx context.Context, index int, file types.FileDescriptor, meta types.SubmissionMetadata, report func(types.TransferEvent)) error {
	em := newEmitter(index, report, u.progressInterval)
	err := u.upload(ctx, file, meta, em)
	em.settle(err)
	if err != nil {
		tool.DefaultLogger.Warnf("Upload of %s failed: %v", file.Name, err)
		return err
	}
	tool.DefaultLogger.Infof("Uploaded %s (%s) to %s", file.Name, tool.FormatFileSize(file.Size), u.endpoint)
	return nil
}

func (u *Uploader) upload(ctx context.Context, file types.FileDescriptor, meta types.SubmissionMetadata, em *emitter) error {
	if file.Open == nil {
		return &NetworkError{Err: fmt.Errorf("file %s has no content", file.Name)}
	}
	select {
	case <-ctx.Done():
		return &NetworkError{Err: fmt.Errorf("upload cancelled: %w", ctx.Err())}
	default:
	}

	content, err := file.Open()
	if err != nil {
		return &NetworkError{Err: fmt.Errorf("failed to open %s: %w", file.Name, err)}
	}
	defer func() {
		if err := content.Close(); err != nil {
			tool.DefaultLogger.Debugf("Failed to close %s: %v", file.Name, err)
		}
	}()

	body, contentType, length := newMultipartBody(file, meta, content)
	if length >= 0 {
		body = &progressReader{r: body, total: length, onProgress: em.advance}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, body)
	if err != nil {
		return &NetworkError{Err: fmt.Errorf("failed to create upload request: %w", err)}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.ContentLength = length

	em.dispatched()
	resp, err := u.client.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close response body: %v", err)
		}
	}()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &ServerError{StatusCode: resp.StatusCode}
	}
	if readErr != nil {
		return &NetworkError{Err: fmt.Errorf("failed to read response body: %w", readErr)}
	}
	tool.DefaultLogger.Debugf("Upload response for %s: %s", file.Name, string(raw))
	return parseUploadResponse(raw)
}

func parseUploadResponse(raw []byte) error {
	var result types.UploadResponse
	if err := sonic.Unmarshal(raw, &result); err != nil {
		return &ResponseParseError{Detail: err.Error()}
	}
	if result.Success == nil {
		return &ResponseParseError{Detail: "missing success field"}
	}
	if !*result.Success {
		msg := result.Message
		if msg == "" {
			msg = defaultRejectMessage
		}
		return &ServerRejectedError{Message: msg}
	}
	return nil
}

// newMultipartBody streams the file between a pre-rendered head and tail so the total
// length is known up front. Field order: file, description, password, expiration.
// length is -1 when the file size is unknown.
func newMultipartBody(file types.FileDescriptor, meta types.SubmissionMetadata, content io.Reader) (io.Reader, string, int64) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fileType := file.Type
	if fileType == "" {
		fileType = defaultFileType
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(file.Name)))
	h.Set("Content-Type", fileType)
	// writes into buf never fail
	_, _ = mw.CreatePart(h)
	head := bytes.Clone(buf.Bytes())
	buf.Reset()

	_ = mw.WriteField("description", meta.Description)
	if meta.Password != "" {
		_ = mw.WriteField("password", meta.Password)
	}
	_ = mw.WriteField("expiration", meta.Expiration)
	_ = mw.Close()
	tail := bytes.Clone(buf.Bytes())

	length := int64(-1)
	if file.Size >= 0 {
		length = int64(len(head)) + file.Size + int64(len(tail))
	}
	return io.MultiReader(bytes.NewReader(head), content, bytes.NewReader(tail)), mw.FormDataContentType(), length
}

// progressReader counts bytes handed to the transport.
type progressReader struct {
	r          io.Reader
	total      int64
	sent       int64
	onProgress func(sent, total int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		p.onProgress(p.sent, p.total)
	}
	return n, err
}
