package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-profile-manager/pkg/response"
)

// ipFromCtx returns the address resolved by RealIP, then gin's view, then "unknown".
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString(RealIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

// normalizePath prefers the route template so /profiles/:id shares one bucket.
func normalizePath(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

// KeyFunc builds the counter key for a request.
type KeyFunc func(c *gin.Context) string

// AllowFunc returns true to bypass the limiter for a request.
type AllowFunc func(*gin.Context) bool

// KeyByIP limits by client IP across all routes using the limiter.
func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:ip:" + ipFromCtx(c)
	}
}

// KeyByIPAndPath limits by client IP per route.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:path:" + normalizePath(c) + ":ip:" + ipFromCtx(c)
	}
}

// INCR, setting the expiry only on the first hit of a window. Returns the
// count and the remaining window in ms.
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

// Limiter is a fixed-window counter in Redis. It fails open: when Redis
// errors the request goes through.
type Limiter struct {
	rdb    *redis.Client
	max    int
	window time.Duration
	key    KeyFunc
	allow  AllowFunc
}

func NewLimiter(rdb *redis.Client, limit int, window time.Duration, keyFn KeyFunc, allow AllowFunc) *Limiter {
	return &Limiter{rdb: rdb, max: limit, window: window, key: keyFn, allow: allow}
}

func (l *Limiter) enabled() bool {
	return l.rdb != nil && l.max > 0 && l.window > 0 && l.key != nil
}

// hit counts one request under key and reports the count and time to reset.
func (l *Limiter) hit(c *gin.Context, key string) (int, time.Duration, error) {
	res, err := incrExpireScript.Run(c.Request.Context(), l.rdb, []string{key}, l.window.Milliseconds()).Slice()
	if err != nil {
		return 0, 0, err
	}
	var count, pttl int
	if len(res) > 0 {
		count = toInt(res[0])
	}
	if len(res) > 1 {
		pttl = toInt(res[1])
	}
	return count, time.Duration(max(pttl, 0)) * time.Millisecond, nil
}

// Handler returns the gin middleware. OPTIONS requests are never counted.
func (l *Limiter) Handler() gin.HandlerFunc {
	if !l.enabled() {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (l.allow != nil && l.allow(c)) {
			c.Next()
			return
		}

		count, reset, err := l.hit(c, l.key(c))
		if err != nil {
			_ = c.Error(err)
			c.Next()
			return
		}

		resetSec := int(reset.Round(time.Second) / time.Second)
		c.Header("X-RateLimit-Limit", strconv.Itoa(l.max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(l.max-count, 0)))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if count > l.max {
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			response.Abort(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}

// RateLimit is shorthand for NewLimiter(...).Handler().
func RateLimit(rdb *redis.Client, limit int, window time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	return NewLimiter(rdb, limit, window, keyFn, allow).Handler()
}

func toInt(v any) int {
	switch x := v.(type) {
	case int64:
		return int(x)
	case int:
		return x
	case string:
		i, _ := strconv.Atoi(x)
		return i
	}
	return 0
}
