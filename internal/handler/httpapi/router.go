package httpapi

import (
	"dataroom-service/internal/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()

	// Enable CORS
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	// Embedded single-page UI
	web.Register(r)

	api := r.Group("/api")
	{
		// Auth routes
		api.POST("/auth/register", h.handleRegister)
		api.POST("/auth/login", h.handleLogin)
		api.POST("/auth/refresh", h.handleRefresh)

		// Document routes
		authorized := api.Group("/")
		authorized.Use(h.authMiddleware())
		{
			authorized.POST("/auth/logout", h.handleLogout)
			authorized.GET("/profile", h.handleGetProfile)
			authorized.GET("/documents", h.handleListDocuments)
			authorized.POST("/documents", h.handleUpload)
			authorized.DELETE("/documents/:id", h.handleDeleteDocument)
		}
	}

	return r
}
