package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
)

// HeaderRequestID carries the request correlation id
const HeaderRequestID = "X-Request-ID"

const maxRequestIDLength = 128

// RequestID propagates the inbound X-Request-ID, or generates one, into the
// request context and the response headers
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(coreport.WithRequestID(c.Request.Context(), id))
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
