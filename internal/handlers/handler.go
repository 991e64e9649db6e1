package handlers

import (
	_ "lightbulb/docs"
	"lightbulb/internal/logger"
	"lightbulb/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Minimal WebSocket connection (HTTP upgrade) — same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerStripRoutes(api)
		h.registerLogRoutes(api)
		h.registerWakeWordRoutes(api)
	}
}

func (h *Handler) registerStripRoutes(api *gin.RouterGroup) {
	strip := api.Group("/strip")
	{
		strip.GET("/state", h.getState)
		strip.GET("/scenes", h.getScenes)
		// Body example: {"name":"rainbow"}
		strip.POST("/scene", h.applyScene)
		strip.POST("/clear", h.clearStrip)
		strip.GET("/pixel/:index", h.getPixel)
		strip.PUT("/pixel/:index", h.setPixel)
		strip.PUT("/all", h.setAll)
		strip.PUT("/brightness", h.setBrightness)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}

func (h *Handler) registerWakeWordRoutes(api *gin.RouterGroup) {
	ww := api.Group("/wakeword")
	{
		ww.GET("/status", h.wakeWordStatus)
	}
}
