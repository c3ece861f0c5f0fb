package middleware

import (
	"github.com/gin-gonic/gin"
)

// RequestObserver counts finished requests.
type RequestObserver interface {
	ObserveRequest(method, route string, code int)
}

// Metrics records every request by matched route after the handler ran.
func Metrics(obs RequestObserver) gin.HandlerFunc {
	if obs == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		c.Next()
		obs.ObserveRequest(c.Request.Method, normalizePath(c), c.Writer.Status())
	}
}
