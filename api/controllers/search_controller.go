package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/filestation-go/listing"
)

// HandleSearch filters the files uploaded by this process.
// GET /api/self/v1/search?q=
func HandleSearch(index *listing.Index) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, index.Search(c.Query("q")))
	}
}
