package container

import (
	"cloud.google.com/go/storage"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-profile-manager/config"
	"github.com/oksasatya/go-profile-manager/internal/application"
	"github.com/oksasatya/go-profile-manager/internal/infrastructure/metrics"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
	gcsClient   *storage.Client
	recorder    *metrics.Recorder
	session     *application.Session
)

func SetConfig(c *config.Config)        { cfg = c }
func GetConfig() *config.Config         { return cfg }
func SetLogger(l *logrus.Logger)        { logger = l }
func GetLogger() *logrus.Logger         { return logger }
func SetRedis(r *redis.Client)          { redisClient = r }
func GetRedis() *redis.Client           { return redisClient }
func SetGCS(s *storage.Client)          { gcsClient = s }
func GetGCS() *storage.Client           { return gcsClient }
func SetMetrics(r *metrics.Recorder)    { recorder = r }
func GetMetrics() *metrics.Recorder     { return recorder }
func SetSession(s *application.Session) { session = s }
func GetSession() *application.Session  { return session }
