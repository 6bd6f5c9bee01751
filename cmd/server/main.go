package main

import (
	"net/http"
	"os"

	_ "cinelist/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"cinelist/internal/auth"
	"cinelist/internal/cache"
	"cinelist/internal/config"
	"cinelist/internal/db"
	"cinelist/internal/handler"
	"cinelist/internal/model"
	"cinelist/internal/repository"
	"cinelist/internal/router"
	"cinelist/internal/service"
	"cinelist/internal/storage"
	"cinelist/internal/tmdb"
)

// @title Cinelist API
// @version 1.0
// @description Movie cataloguing API with TMDB-backed browsing, personal movie lists, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.WithError(err).Fatal("database init")
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Warn("RESET_DB=true detected, dropping all tables")
		tables := []interface{}{
			&model.MovieListItem{},
			&model.MovieList{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.WithError(err).Warn("failed to drop table (may not exist)")
			}
		}
		log.Info("tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.MovieList{},
		&model.MovieListItem{},
	); err != nil {
		log.WithError(err).Fatal("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	tmdbClient := tmdb.NewClient(cfg.TMDBBaseURL, cfg.TMDBImageBaseURL, cfg.TMDBAPIKey, cfg.TMDBLanguage, cfg.TMDBTimeout)

	avatarStore, err := storage.NewAvatarStore(cfg.AvatarDir)
	if err != nil {
		log.WithError(err).Fatal("avatar store init")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	listRepo := repository.NewListRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	listService := service.NewListService(listRepo, tmdbClient)
	movieService := service.NewMovieService(tmdbClient, cacheClient)
	profileService := service.NewProfileService(userRepo, listRepo, avatarStore)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	listHandler := handler.NewListHandler(listService)
	movieHandler := handler.NewMovieHandler(movieService)
	profileHandler := handler.NewProfileHandler(profileService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		listHandler,
		movieHandler,
		profileHandler,
		avatarStore.Dir(),
	)

	if cfg.TMDBAPIKey == "" {
		log.Warn("TMDB_API_KEY is not set, catalog browsing and list additions will fail")
	}

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "http://localhost:" + cfg.ServerPort
	}
	log.WithField("url", swaggerHost+"/swagger/index.html").Info("swagger documentation available")

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server start")
	}
}
