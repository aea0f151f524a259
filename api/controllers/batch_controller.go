package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/filestation-go/listing"
	"github.com/moyoez/filestation-go/session"
	"github.com/moyoez/filestation-go/tool"
	"github.com/moyoez/filestation-go/types"
)

type BatchController struct {
	session           *session.Session
	index             *listing.Index
	defaultExpiration string
}

func NewBatchController(sess *session.Session, index *listing.Index, defaultExpiration string) *BatchController {
	return &BatchController{
		session:           sess,
		index:             index,
		defaultExpiration: defaultExpiration,
	}
}

// HandleUploadBatch starts a batch from local paths.
// POST /api/self/v1/upload-batch
func (ctrl *BatchController) HandleUploadBatch(c *gin.Context) {
	var request types.UploadBatchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request body: "+err.Error()))
		return
	}

	files, err := tool.DescribeFiles(request.Files)
	if err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Failed to read files: "+err.Error()))
		return
	}

	meta := types.SubmissionMetadata{
		Description: request.Description,
		Password:    request.Password,
		Expiration:  strings.TrimSpace(request.Expiration),
	}
	if meta.Expiration == "" {
		meta.Expiration = ctrl.defaultExpiration
	}

	// transfers outlive the HTTP request
	handle, err := ctrl.session.Start(context.Background(), files, meta)
	if err != nil {
		if errors.Is(err, session.ErrBatchInFlight) {
			c.JSON(http.StatusConflict, tool.FastReturnError(err.Error()))
			return
		}
		var validationErr *session.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, tool.FastReturnSelectionError(err.Error(), validationErr.Index))
			return
		}
		c.JSON(http.StatusInternalServerError, tool.FastReturnError(err.Error()))
		return
	}

	if ctrl.index != nil {
		go func() {
			ctrl.index.Record(handle.Wait())
		}()
	}

	c.JSON(http.StatusAccepted, tool.FastReturnSuccessWithData(gin.H{
		"batchId": handle.ID(),
		"total":   len(files),
	}))
}

// HandleStatus returns the current batch.
// GET /api/self/v1/status
func (ctrl *BatchController) HandleStatus(c *gin.Context) {
	resp := types.StatusResponse{InFlight: ctrl.session.InFlight()}
	if summary, ok := ctrl.session.Current(); ok {
		resp.Batch = &summary
	}
	c.JSON(http.StatusOK, resp)
}

// HandleGetBatch returns a finished batch while it is kept in history.
// GET /api/self/v1/batches/:id
func (ctrl *BatchController) HandleGetBatch(c *gin.Context) {
	summary, ok := ctrl.session.Batch(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, tool.FastReturnError("Batch not found or expired"))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(summary))
}

// HandleReset clears the current selection.
// POST /api/self/v1/reset
func (ctrl *BatchController) HandleReset(c *gin.Context) {
	if err := ctrl.session.Reset(); err != nil {
		c.JSON(http.StatusConflict, tool.FastReturnError(err.Error()))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccess())
}
