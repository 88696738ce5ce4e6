package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	authz "github.com/HarinChan/MirrorMirrorEngine/internal/app/auth"
	appControllers "github.com/HarinChan/MirrorMirrorEngine/internal/app/controllers"
	appMigrations "github.com/HarinChan/MirrorMirrorEngine/internal/app/migrations"
	appRepos "github.com/HarinChan/MirrorMirrorEngine/internal/app/repositories"
	appRoutes "github.com/HarinChan/MirrorMirrorEngine/internal/app/routes"
	appServices "github.com/HarinChan/MirrorMirrorEngine/internal/app/services"
	"github.com/HarinChan/MirrorMirrorEngine/internal/config"
	"github.com/HarinChan/MirrorMirrorEngine/internal/db"
	appMiddleware "github.com/HarinChan/MirrorMirrorEngine/internal/middleware"
	pkgAuth "github.com/HarinChan/MirrorMirrorEngine/internal/pkg/auth"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/helpers"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/logger"
	"github.com/HarinChan/MirrorMirrorEngine/internal/pkg/webex"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         appServices.AuthService
	ProfileService      appServices.ProfileService
	FriendService       appServices.FriendService
	PostService         appServices.PostService
	NotificationService appServices.NotificationService
	WebexService        appServices.WebexService
	MeetingService      appServices.MeetingService
	Controllers         appRoutes.Controllers
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	AuthzService        *authz.AuthorizationService
	WebexClient         *webex.Client
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: cfg.Logging.Format == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and applies migrations when enabled.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if !cfg.Database.AutoMigrate {
		lgr.Info().Msg("Automatic migrations disabled")
		return database, nil
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(cfg.GetMigrationURL(), lgr)
	if err := migrator.Up(); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	deps.AuthzService = authz.NewAuthorizationService(
		deps.Repos.ProfileRepository,
		deps.Repos.MeetingRepository,
	)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.WebexClient = webex.NewClient(webex.Config{
		ClientID:     cfg.Webex.ClientID,
		ClientSecret: cfg.Webex.ClientSecret,
		RedirectURI:  cfg.Webex.RedirectURI,
		AuthURL:      cfg.Webex.AuthURL,
		APIBaseURL:   cfg.Webex.APIBaseURL,
		Scopes:       cfg.Webex.Scopes,
		Timeout:      helpers.ParseDuration(cfg.Webex.Timeout, 15*time.Second),
	}, lgr)
	if cfg.Webex.ClientID == "" {
		lgr.Warn().Msg("Webex client ID not configured, meeting scheduling will fail")
	}

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.AccountRepository,
		deps.Repos.TokenRepository,
		deps.Repos.ProfileRepository,
		deps.Repos.FriendRepository,
		deps.Repos.NotificationRepository,
		deps.JWTService,
		lgr,
	)
	deps.ProfileService = appServices.NewProfileService(deps.Repos.ProfileRepository, deps.AuthzService, lgr)
	deps.FriendService = appServices.NewFriendService(deps.Repos.ProfileRepository, deps.Repos.FriendRepository, deps.AuthzService, lgr)
	deps.PostService = appServices.NewPostService(deps.Repos.PostRepository, deps.Repos.ProfileRepository, deps.AuthzService, lgr)
	deps.NotificationService = appServices.NewNotificationService(deps.Repos.NotificationRepository)
	deps.WebexService = appServices.NewWebexService(deps.Repos.AccountRepository, deps.WebexClient, lgr)
	deps.MeetingService = appServices.NewMeetingService(
		deps.Repos.MeetingRepository,
		deps.Repos.ProfileRepository,
		deps.Repos.AccountRepository,
		deps.AuthzService,
		deps.WebexClient,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(deps.AuthService, lgr),
		Profile:      appControllers.NewProfileController(deps.ProfileService),
		Friend:       appControllers.NewFriendController(deps.FriendService),
		Post:         appControllers.NewPostController(deps.PostService),
		Notification: appControllers.NewNotificationController(deps.NotificationService),
		Webex:        appControllers.NewWebexController(deps.WebexService),
		Meeting:      appControllers.NewMeetingController(deps.MeetingService),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr), gin.Recovery(), appMiddleware.CORS(cfg.CORS.AllowedOrigins))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router, nil
}
