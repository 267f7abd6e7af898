package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ncsdigital/contact-details-service/pkg/logger"
)

// HeaderTouchpointID carries the identity of the calling system or channel.
// It is recorded as the last modifier on every write.
const HeaderTouchpointID = "TouchpointId"

// TouchpointKey is the gin context key the header value is stored under.
const TouchpointKey = "touchpointId"

// RequireTouchpoint rejects any request without a touchpoint header before
// the handler runs. Absence is always a 400, regardless of other input.
func RequireTouchpoint(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		touchpointID := c.GetHeader(HeaderTouchpointID)
		if touchpointID == "" {
			log.Warn("Request rejected: missing %s header for %s %s",
				HeaderTouchpointID, c.Request.Method, c.Request.RequestURI)
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "TouchpointId header is required"})
			return
		}

		c.Set(TouchpointKey, touchpointID)
		c.Next()
	}
}
