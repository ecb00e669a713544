package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"blogmedia/internal/handler"
	"blogmedia/internal/middleware"
	"blogmedia/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
// metricsH may be nil to leave /metrics unmounted.
func Setup(
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	imageH *handler.ImageHandler,
	articleH *handler.ArticleHandler,
	healthH *handler.HealthHandler,
	metricsH http.Handler,
	corsOrigins []string,
	logger *slog.Logger,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	if metricsH != nil {
		r.GET("/metrics", gin.WrapH(metricsH))
	}

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	images := protected.Group("/images")
	images.POST("", imageH.Upload)
	images.GET("", imageH.List)
	images.GET("/:id", imageH.GetByID)

	// Articles; write access is checked against the author in the service
	articles := protected.Group("/articles")
	articles.POST("", articleH.Create)
	articles.GET("", articleH.List)
	articles.GET("/:id", articleH.GetByID)
	articles.PUT("/:id", articleH.Update)
	articles.PATCH("/:id", articleH.PartialUpdate)
	articles.DELETE("/:id", articleH.Delete)

	return r
}
