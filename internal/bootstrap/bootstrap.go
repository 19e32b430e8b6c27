package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/avelin/formatrack/internal/app/controllers"
	appMigrations "github.com/avelin/formatrack/internal/app/migrations"
	appRepos "github.com/avelin/formatrack/internal/app/repositories"
	appRoutes "github.com/avelin/formatrack/internal/app/routes"
	appServices "github.com/avelin/formatrack/internal/app/services"
	"github.com/avelin/formatrack/internal/config"
	"github.com/avelin/formatrack/internal/db"
	appMiddleware "github.com/avelin/formatrack/internal/middleware"
	pkgAuth "github.com/avelin/formatrack/internal/pkg/auth"
	"github.com/avelin/formatrack/internal/pkg/email"
	"github.com/avelin/formatrack/internal/pkg/filestorage"
	"github.com/avelin/formatrack/internal/pkg/logger"
	"github.com/avelin/formatrack/internal/seed"
)

// Dependencies holds the wired application graph
type Dependencies struct {
	Database       *db.PostgresDB
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    *appControllers.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	FileStorage    *filestorage.LocalStorage
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to PostgreSQL, runs migrations and seeds the
// default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied")

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway")
	}

	return database, nil
}

// BuildDependencies initializes repositories, services, controllers and
// middleware over the database pool.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Database: database, Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	storageBaseURL := "http://localhost:" + cfg.Server.Port + cfg.Storage.BaseURL
	fileStorage, err := filestorage.NewLocalStorage(cfg.Storage.BasePath, storageBaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.FileStorage = fileStorage

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  cfg.AccessTokenTTL(),
		RefreshTokenExp: cfg.RefreshTokenTTL(),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	emailService := email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromAddress,
	}, lgr)

	deps.Services = appServices.NewServices(database, deps.Repos, deps.JWTService, emailService, fileStorage)
	deps.Controllers = appControllers.NewControllers(deps.Services)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Services.Auth)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.CORS())

	router.MaxMultipartMemory = 16 << 20

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	// Serve uploaded files directly
	router.Static(cfg.Storage.BaseURL, cfg.Storage.BasePath)

	lgr.Info().Str("mode", cfg.Server.Mode).Msg("Router configured")
	return router
}
