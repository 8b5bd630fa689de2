package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/holiday-promo/api/internal/domain"
	"github.com/holiday-promo/api/internal/transport/http/handler"
	"github.com/holiday-promo/api/internal/transport/http/middleware"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	userHandler *handler.UserHandler,
	facebookHandler *handler.FacebookHandler,
	healthCheckHandler *handler.HealthCheckHandler,
	hmacKey []byte,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	// Public auth routes; sign-in and sign-up are Turnstile-gated inside
	// the handlers, read-only verification is not.
	auth := r.Group("/auth")
	auth.POST("/sign-up", authHandler.SignUp)
	auth.POST("/sign-in", authHandler.SignIn)
	auth.POST("/magic-link", authHandler.RequestMagicLink)
	auth.GET("/verify", authHandler.Verify)

	// Public site endpoints
	r.POST("/subscribe", subscriptionHandler.Subscribe)
	r.POST("/facebook/data-deletion", facebookHandler.DataDeletion)
	r.POST("/health-check/log", healthCheckHandler.Log)

	authMW := middleware.Auth(hmacKey)

	// Signed-in user routes
	users := r.Group("/users", authMW)
	users.GET("/me", userHandler.Me)
	users.PATCH("/me", userHandler.UpdateProfile)
	users.DELETE("/me", userHandler.DeleteAccount)

	// Admin dashboard routes
	admin := r.Group("/admin", authMW, middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/users", userHandler.List)
	admin.GET("/subscriptions", subscriptionHandler.List)

	return r
}
