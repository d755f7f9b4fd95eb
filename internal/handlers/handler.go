package handlers

import (
	"dlccontrol/internal/logger"
	"dlccontrol/internal/metrics"
	"dlccontrol/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler. A nil logger discards output.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{services: services, log: log}
}

// InitRoutes builds the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// Parameter stream on the same port.
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
	api := r.Group("/api/v1", h.requireUser)
	{
		h.registerLaserRoutes(api)
		h.registerSnapshotRoutes(api)
		api.GET("/logs", h.getLogs)
	}
}

func (h *Handler) registerLaserRoutes(api *gin.RouterGroup) {
	laser := api.Group("/laser")
	{
		laser.GET("/parameters", h.getParameters)
		laser.GET("/limits", h.getLimits)
		laser.GET("/emission", h.getEmission)
		laser.PUT("/current", h.setCurrent)
		laser.PUT("/wavelength", h.setWavelength)
		laser.PUT("/temperature", h.setTemperature)
		// Body example: {"output_channel":"PC","offset":70,"amplitude":10}
		laser.PUT("/scan", h.setScan)
		laser.PUT("/remote/:unit", h.setRemote)
		laser.POST("/user-level", h.setUserLevel)
	}
}

func (h *Handler) registerSnapshotRoutes(api *gin.RouterGroup) {
	snapshots := api.Group("/snapshots")
	{
		snapshots.POST("", h.takeSnapshot)
		snapshots.GET("", h.listSnapshots)
	}
}
