package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-profile-manager/internal/interface/middleware"
)

// DebugModule serves expvar under /api/debug/vars and Prometheus under /metrics.
// Private-network clients (scrapers) bypass the limiter.
type DebugModule struct {
	Gatherer prometheus.Gatherer
	Redis    *redis.Client
}

func NewDebugModule(g prometheus.Gatherer, rdb *redis.Client) *DebugModule {
	return &DebugModule{Gatherer: g, Redis: rdb}
}

func (m *DebugModule) limiter() gin.HandlerFunc {
	return middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/vars", m.limiter(), gin.WrapH(expvar.Handler()))
}

func (m *DebugModule) RegisterRoot(e *gin.Engine) {
	if m.Gatherer == nil {
		return
	}
	e.GET("/metrics", m.limiter(), gin.WrapH(promhttp.HandlerFor(m.Gatherer, promhttp.HandlerOpts{})))
}
