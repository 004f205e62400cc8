package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"gemma-chat/cmd/api/handlers"
	"gemma-chat/cmd/api/middleware"
	"gemma-chat/cmd/api/services"
	_ "gemma-chat/docs"
	"gemma-chat/web"
)

type Dependencies struct {
	Sessions *services.SessionService
	Chat     *services.ChatService
}

func New(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace())

	r.GET("/health", handlers.HealthHandler())

	// Front-end
	r.GET("/", handlers.IndexHandler())
	r.StaticFS("/static", http.FS(web.Public()))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.GET("/sessions", handlers.ListSessionsHandler(deps.Sessions))
		api.POST("/sessions", handlers.CreateSessionHandler(deps.Sessions))
		api.POST("/sessions/:id/switch", handlers.SwitchSessionHandler(deps.Sessions))
		api.DELETE("/sessions/:id", handlers.DeleteSessionHandler(deps.Sessions))

		api.POST("/chat", handlers.ChatHandler(deps.Chat))
		api.POST("/clear", handlers.ClearHistoryHandler(deps.Sessions))
	}

	return r
}

// Handler wraps the router with a CORS policy that allows any origin.
func Handler(deps Dependencies) http.Handler {
	return cors.AllowAll().Handler(New(deps))
}
