package transfer

import (
	"errors"
	"fmt"

	"github.com/moyoez/filestation-go/types"
)

// ServerRejectedError means the server answered but refused the file, e.g. a failed
// server-side validation. Message is the server's text.
type ServerRejectedError struct {
	Message string
}

func (e *ServerRejectedError) Error() string {
	return e.Message
}

// ServerError is a non-2xx response.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: %d", e.StatusCode)
}

// ResponseParseError means the response body was not the expected JSON shape.
type ResponseParseError struct {
	Detail string
}

func (e *ResponseParseError) Error() string {
	return "failed to parse response: " + e.Detail
}

// NetworkError means no response was obtained.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// KindOf maps an upload error to its ErrorKind. Unknown errors count as network failures
// since they were raised before a response could be interpreted.
func KindOf(err error) types.ErrorKind {
	if err == nil {
		return types.ErrorKindNone
	}
	var rejected *ServerRejectedError
	var serverErr *ServerError
	var parseErr *ResponseParseError
	switch {
	case errors.As(err, &rejected):
		return types.ErrorKindServerRejected
	case errors.As(err, &serverErr):
		return types.ErrorKindServerError
	case errors.As(err, &parseErr):
		return types.ErrorKindResponseParse
	default:
		return types.ErrorKindNetwork
	}
}
