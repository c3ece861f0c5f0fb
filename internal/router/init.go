package router

import (
	"github.com/prometheus/client_golang/prometheus"

	app "github.com/oksasatya/go-profile-manager/internal/application"
	"github.com/oksasatya/go-profile-manager/internal/container"
	handlers "github.com/oksasatya/go-profile-manager/internal/interface/http"
	"github.com/oksasatya/go-profile-manager/internal/interface/middleware"
	"github.com/oksasatya/go-profile-manager/internal/router/modules"
	"github.com/oksasatya/go-profile-manager/pkg/helpers"
)

type ProfileModuleDeps struct {
	Session  *app.Session
	Profiles *handlers.ProfileHandler
	UI       *handlers.UIHandler
	Avatars  *handlers.AvatarHandler
}

func buildProfileDeps() ProfileModuleDeps {
	session := container.GetSession()
	logger := container.GetLogger()

	var avatars *handlers.AvatarHandler
	if gcs, bucket := container.GetGCS(), container.GetConfig().GCSBucket; gcs != nil && bucket != "" {
		svc := app.NewAvatarService(helpers.BucketUploader(gcs, bucket))
		avatars = handlers.NewAvatarHandler(svc, logger)
	}

	return ProfileModuleDeps{
		Session:  session,
		Profiles: handlers.NewProfileHandler(session, logger),
		UI:       handlers.NewUIHandler(session),
		Avatars:  avatars,
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildProfileDeps()
	cfg := container.GetConfig()
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(container.GetLogger()))
	}
	r.Add(modules.NewProfileModule(deps.Profiles, deps.UI, deps.Avatars, container.GetRedis(), cfg.RateLimitPerMin))

	if cfg.DebugMetricsEnabled {
		var g prometheus.Gatherer
		if rec := container.GetMetrics(); rec != nil {
			g = rec.Registry
		}
		r.Add(modules.NewDebugModule(g, container.GetRedis()))
	}
}
