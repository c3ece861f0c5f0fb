package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/oksasatya/go-profile-manager/pkg/response"
)

const RequestIDHeader = "X-Request-ID"

// RequestIDMiddleware tags every request with an id, echoed in the response
// header and the JSON envelope. A client-supplied id is kept only when it is a UUID.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.GetHeader(RequestIDHeader))
		if err != nil {
			id = uuid.New()
		}
		c.Set(response.RequestIDKey, id.String())
		c.Writer.Header().Set(RequestIDHeader, id.String())
		c.Next()
	}
}
