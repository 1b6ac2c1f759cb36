package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/14kear/polls-api/internal/handlers"
	"github.com/14kear/polls-api/internal/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type App struct {
	engine *gin.Engine
	server *http.Server
	port   int
}

// NewApp builds the gin engine, mounts the route groups and prepares the
// HTTP server without starting it.
func NewApp(
	port int,
	pollsHandler *handlers.PollsHandler,
	authHandler *handlers.AuthHandler,
	authMiddleware gin.HandlerFunc,
) *App {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:4200"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Refresh-Token"},
		ExposeHeaders:    []string{"X-New-Access-Token", "X-New-Refresh-Token"},
		AllowCredentials: true,
		AllowWebSockets:  true,
	}))

	api := r.Group("/api")
	{
		publicGroup := api.Group("/polls")
		routes.RegisterPublicRoutes(publicGroup, pollsHandler, authHandler)

		privateGroup := api.Group("/polls", authMiddleware)
		routes.RegisterPrivateRoutes(privateGroup, pollsHandler, authHandler)
	}

	// Healthcheck
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	addr := fmt.Sprintf(":%d", port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	return &App{
		engine: r,
		server: httpServer,
		port:   port,
	}
}

func (a *App) Run() error {
	fmt.Println("HTTP server is running on", a.server.Addr)
	return a.server.ListenAndServe()
}

func (a *App) Stop(ctx context.Context) error {
	fmt.Println("HTTP server is stopping...")
	return a.server.Shutdown(ctx)
}

func (a *App) Engine() *gin.Engine {
	return a.engine
}
