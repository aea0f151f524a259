package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/filestation-go/tool"
)

// OnlyAllowLocal rejects every client that is not on the loopback interface.
func OnlyAllowLocal(c *gin.Context) {
	ip := c.ClientIP()
	if ip == "127.0.0.1" || ip == "::1" {
		c.Next()
		return
	}
	tool.DefaultLogger.Warnf("Rejected control API request from %s", ip)
	c.AbortWithStatusJSON(http.StatusForbidden, tool.FastReturnError("Forbidden"))
}
