package api

import (
	"time"

	"github.com/basaltlabs/basalt/internal/config"
	"github.com/basaltlabs/basalt/internal/db"
	"github.com/basaltlabs/basalt/internal/engine"
	"github.com/basaltlabs/basalt/internal/queue"
	"github.com/basaltlabs/basalt/internal/services"
	"gorm.io/gorm"
)

const (
	appName    = "basalt"
	appVersion = "1.2.0"

	loginAttemptLimit  = 5
	loginAttemptWindow = 15 * time.Minute
)

type Handler struct {
	repositories  *db.Repositories
	authService   *services.AuthService
	cycleService  *services.CycleService
	exportService *services.ExportService
	jobs          queue.Queue
	engineConfig  engine.Config
	secretKey     []byte
	location      *time.Location
	cookieSecure  bool
	accessTTL     time.Duration
	refreshTTL    time.Duration
	loginLimiter  *attemptLimiter
}

func NewHandler(database *gorm.DB, cfg *config.Config, jobs queue.Queue) *Handler {
	repositories := db.NewRepositories(database)
	return &Handler{
		repositories:  repositories,
		authService:   services.NewAuthService(repositories.Users),
		cycleService:  services.NewCycleService(repositories.States, repositories.Periods, cfg.Engine),
		exportService: services.NewExportService(repositories.Temperatures, repositories.Symptoms, cfg.Engine),
		jobs:          jobs,
		engineConfig:  cfg.Engine,
		secretKey:     cfg.SecretKey,
		location:      cfg.Location,
		cookieSecure:  cfg.CookieSecure,
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		loginLimiter:  newAttemptLimiter(),
	}
}
