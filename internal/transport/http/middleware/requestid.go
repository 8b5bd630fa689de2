package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/holiday-promo/api/internal/requestid"
)

// RequestID makes sure every request has a correlation ID: reuses the one a
// proxy assigned, mints a fresh one otherwise, and echoes it back to the
// client.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestid.Header)
		if id == "" {
			id = requestid.New()
		}

		c.Request = c.Request.WithContext(requestid.NewContext(c.Request.Context(), id))
		c.Header(requestid.Header, id)
		c.Next()
	}
}
