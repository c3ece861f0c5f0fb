package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIPKey is the gin context key holding the resolved client address.
const RealIPKey = "real_ip"

// Proxy headers in priority order. X-Forwarded-For is read left-most.
var realIPHeaders = []string{"CF-Connecting-IP", "X-Real-IP", "X-Forwarded-For"}

// RealIP resolves the client IP from proxy headers, falling back to
// c.ClientIP(). Used as the rate limit and access log key.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(RealIPKey, resolveIP(c))
		c.Next()
	}
}

func resolveIP(c *gin.Context) string {
	for _, h := range realIPHeaders {
		v := c.GetHeader(h)
		if v == "" {
			continue
		}
		first, _, _ := strings.Cut(v, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	return c.ClientIP()
}
