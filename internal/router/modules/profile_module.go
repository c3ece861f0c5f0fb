package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-profile-manager/internal/interface/http"
	"github.com/oksasatya/go-profile-manager/internal/interface/middleware"
)

// ProfileModule wires the profile, form, confirmation and toast routes.
// Mutating routes share a per-IP limiter when Redis is available.
type ProfileModule struct {
	Profiles *handlers.ProfileHandler
	UI       *handlers.UIHandler
	Avatars  *handlers.AvatarHandler
	Redis    *redis.Client
	PerMin   int
}

func NewProfileModule(p *handlers.ProfileHandler, ui *handlers.UIHandler, a *handlers.AvatarHandler, rdb *redis.Client, perMin int) *ProfileModule {
	return &ProfileModule{Profiles: p, UI: ui, Avatars: a, Redis: rdb, PerMin: perMin}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	rg.GET("/profiles", m.Profiles.List)
	rg.GET("/profiles/search", m.Profiles.Search)
	rg.GET("/form", m.UI.GetForm)
	rg.GET("/confirmation", m.UI.GetConfirmation)
	rg.GET("/toast", m.UI.GetToast)

	w := rg.Group("/")
	w.Use(middleware.RateLimit(m.Redis, m.PerMin, time.Minute, middleware.KeyByIP(), nil))
	{
		w.POST("/profiles", m.Profiles.Create)
		w.PUT("/profiles/:id", m.Profiles.Update)
		w.DELETE("/profiles", m.Profiles.ClearAll)
		w.POST("/profiles/reload", m.Profiles.Reload)
		w.POST("/profiles/:id/confirm-delete", m.UI.RequestDelete)

		w.POST("/confirmation/confirm", m.UI.Confirm)
		w.DELETE("/confirmation", m.UI.CancelConfirmation)

		w.POST("/form", m.UI.OpenCreate)
		w.POST("/form/edit/:id", m.UI.OpenEdit)
		w.PATCH("/form", m.UI.UpdateFields)
		w.POST("/form/submit", m.UI.Submit)
		w.DELETE("/form", m.UI.CancelForm)

		w.DELETE("/toast", m.UI.DismissToast)
		w.DELETE("/load-error", m.Profiles.DismissLoadError)
	}
	if m.Avatars != nil {
		// uploads are heavier; limit per path as well
		rg.POST("/avatars", middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil), m.Avatars.Upload)
	}
}
