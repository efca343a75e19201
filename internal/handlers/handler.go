package handlers

import (
	"net/http"

	"bloglist/internal/logger"
	"bloglist/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const statusOK = "ok"

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), corsMiddleware(), h.requestLogger, h.errorMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	h.registerAPIRoutes(router)

	// Live stats over WebSocket, same port
	router.GET("/ws", h.wsConnect)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown endpoint"})
	})

	return router
}

// registerAPIRoutes mounts /api. Only blog mutations resolve the bearer
// token, so a stale header never blocks login, signup or reads.
func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		h.registerBlogRoutes(api)
		h.registerUserRoutes(api)
		api.POST("/login", h.login)
		api.GET("/stats", h.getStats)
		api.GET("/events", h.getEvents)
	}
}

func (h *Handler) registerBlogRoutes(api *gin.RouterGroup) {
	blogs := api.Group("/blogs")
	{
		blogs.GET("", h.listBlogs)
		blogs.GET("/:id", h.getBlog)
	}

	owned := blogs.Group("", h.identityMiddleware)
	{
		owned.POST("", h.createBlog)
		owned.PUT("/:id", h.updateBlog)
		owned.DELETE("/:id", h.deleteBlog)
	}
}

func (h *Handler) registerUserRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	{
		users.GET("", h.listUsers)
		users.POST("", h.createUser)
		users.GET("/:id", h.getUser)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
