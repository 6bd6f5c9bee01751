package router

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"cinelist/internal/auth"
	"cinelist/internal/config"
	"cinelist/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	listHandler *handler.ListHandler,
	movieHandler *handler.MovieHandler,
	profileHandler *handler.ProfileHandler,
	avatarDir string,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":    "ok",
			"timestamp": time.Now(),
			"service":   "cinelist",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/static/avatars", avatarDir)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Catalog browsing (public, proxied to TMDB)
	movies := api.Group("/movies")
	movies.GET("/popular", movieHandler.Popular)
	movies.GET("/trending", movieHandler.Trending)
	movies.GET("/top-rated", movieHandler.TopRated)
	movies.GET("/search", movieHandler.Search)
	movies.GET("/discover", movieHandler.Discover)
	movies.GET("/genres", movieHandler.Genres)
	movies.GET("/:id", movieHandler.Show)

	// Public lists and public profiles
	api.GET("/public-lists", listHandler.PublicLists)
	api.GET("/users/:userId", profileHandler.PublicProfile)
	api.GET("/users/:userId/lists", profileHandler.UserPublicLists)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/auth/me", authHandler.Me)

	// Movie list routes
	secured.GET("/movie-lists", listHandler.Index)
	secured.POST("/movie-lists", listHandler.Create)
	secured.GET("/movie-lists/:id", listHandler.Show)
	secured.PUT("/movie-lists/:id", listHandler.Update)
	secured.DELETE("/movie-lists/:id", listHandler.Delete)

	// Movie items in lists
	secured.POST("/movie-lists/:listId/movies", listHandler.AddMovie)
	secured.DELETE("/movie-lists/:listId/movies/:itemId", listHandler.RemoveMovie)
	secured.PUT("/movie-lists/:listId/movies/:itemId/notes", listHandler.UpdateNotes)

	// Profile routes
	secured.GET("/profile", profileHandler.Profile)
	secured.PUT("/profile", profileHandler.UpdateProfile)
	secured.PUT("/profile/password", profileHandler.ChangePassword)
	secured.DELETE("/profile/avatar", profileHandler.DeleteAvatar)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
