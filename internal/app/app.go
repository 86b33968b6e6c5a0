package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/teampulse/server/internal/module/auth"
	"github.com/teampulse/server/internal/module/email"
	"github.com/teampulse/server/internal/module/invite"
	"github.com/teampulse/server/internal/module/organization"
	"github.com/teampulse/server/internal/module/tenant"
	"github.com/teampulse/server/internal/module/user"
	sharedcache "github.com/teampulse/server/internal/shared/cache"
	"github.com/teampulse/server/internal/shared/config"
	"github.com/teampulse/server/internal/shared/database"
	"github.com/teampulse/server/internal/shared/logger"
	"github.com/teampulse/server/internal/shared/middleware"
	"github.com/teampulse/server/internal/utils/metrics"
)

// App represents the application.
type App struct {
	config *config.Config
	db     *gorm.DB
	redis  redis.UniversalClient
	router *gin.Engine
	logger *zap.Logger

	metrics    *metrics.Metrics
	dispatcher *email.Dispatcher

	inviteHandler *invite.Handler
}

// New creates a new application instance.
func New(cfg *config.Config) (*App, error) {
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	app := &App{
		config: cfg,
		logger: log,
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	app.db = db

	if err := app.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Redis is optional: without it the resend cooldown degrades to
	// always-allow.
	if cfg.Redis.Address != "" {
		redisClient, err := sharedcache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("redis connection failed, continuing without it", zap.Error(err))
		} else {
			app.redis = redisClient
		}
	}

	app.metrics = metrics.New("")

	if err := app.initModules(); err != nil {
		return nil, fmt.Errorf("init modules: %w", err)
	}

	app.router = app.setupRouter()
	app.registerRoutes()

	return app, nil
}

// migrate applies the schema.
func (a *App) migrate() error {
	return a.db.AutoMigrate(
		&tenant.Tenant{}, &tenant.Role{},
		&organization.Organization{}, &organization.Contact{},
		&organization.Department{}, &organization.Project{}, &organization.Team{},
		&user.User{}, &user.Employee{}, &user.Membership{},
		&invite.Invite{},
	)
}

// initModules wires repositories, services and handlers.
func (a *App) initModules() error {
	// Email delivery
	var sender email.Sender
	if a.config.Email.Provider == "smtp" {
		sender = email.NewSMTPSender(&email.SMTPConfig{
			Host:        a.config.Email.SMTP.Host,
			Port:        a.config.Email.SMTP.Port,
			User:        a.config.Email.SMTP.User,
			Password:    a.config.Email.SMTP.Password,
			FromAddress: a.config.Email.FromAddress,
			FromName:    a.config.Email.FromName,
		}, a.logger)
	} else {
		sender = email.NewNoOpSender(a.logger)
	}
	a.dispatcher = email.NewDispatcher(sender, a.config.Email.QueueSize, a.config.Email.Workers, a.logger, a.metrics)
	mailer := email.NewService(a.dispatcher, a.logger)

	// Repositories
	inviteRepo := invite.NewRepository(a.db)
	orgRepo := organization.NewRepository(a.db)
	userRepo := user.NewRepository(a.db)
	tenantRepo := tenant.NewRepository(a.db)

	// Invite issuance
	issuer := invite.NewTokenIssuer(a.config.Auth.JWTSecret)
	throttle := invite.NewResendThrottle(a.redis, a.config.Invite.ResendCooldown, a.logger)
	inviteService := invite.NewService(
		inviteRepo, orgRepo, userRepo, tenantRepo,
		mailer, issuer, throttle,
		invite.Options{
			DefaultExpiryDays: a.config.Invite.DefaultExpiryDays,
			ClientBaseURL:     a.config.Invite.ClientBaseURL,
		},
		a.metrics, a.logger,
	)

	// Acceptance
	registrar := auth.NewService(a.db, a.logger)
	acceptService := invite.NewAcceptService(
		inviteRepo, orgRepo, userRepo, registrar, mailer, a.metrics, a.logger,
	)

	a.inviteHandler = invite.NewHandler(inviteService, acceptService)
	return nil
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	if a.config.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(a.logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(a.logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(a.config.Invite.ClientBaseURL)))
	r.Use(middleware.Language())
	r.Use(middleware.Metrics(a.metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// registerRoutes registers routes for all modules.
func (a *App) registerRoutes() {
	v1 := a.router.Group("/api/v1")

	// Validation and acceptance run before the invitee has an account.
	public := v1.Group("")
	a.inviteHandler.RegisterPublicRoutes(public)

	protected := v1.Group("")
	protected.Use(middleware.RequireAuth(a.config.Auth.JWTSecret))
	a.inviteHandler.RegisterRoutes(protected)
}

// Router returns the HTTP router.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Stop stops the application and releases resources. The email dispatcher
// drains before connections close so queued invitations still go out.
func (a *App) Stop() {
	if a.dispatcher != nil {
		a.dispatcher.Stop()
	}

	if a.logger != nil {
		_ = a.logger.Sync()
	}

	if a.redis != nil {
		_ = sharedcache.Close(a.redis)
	}

	if a.db != nil {
		_ = database.Close(a.db)
	}
}
