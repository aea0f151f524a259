package tool

import (
	"github.com/gin-gonic/gin"
)

// ErrorReply is the body of every failed control API call.
type ErrorReply struct {
	Error string `json:"error"`
	// Index is the rejected entry of an upload selection, nil when the whole request failed.
	Index *int `json:"index,omitempty"`
}

func FastReturnError(msg string) ErrorReply {
	return ErrorReply{Error: msg}
}

// FastReturnSelectionError reports a rejected selection. A negative index means the
// selection as a whole, e.g. an empty one.
func FastReturnSelectionError(msg string, index int) ErrorReply {
	if index < 0 {
		return ErrorReply{Error: msg}
	}
	return ErrorReply{Error: msg, Index: &index}
}

func FastReturnSuccess() gin.H {
	return gin.H{
		"status": "ok",
	}
}

func FastReturnSuccessWithData(data any) gin.H {
	return gin.H{
		"data": data,
	}
}
