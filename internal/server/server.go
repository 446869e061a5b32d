package server

import (
	"log"

	"ai-chatlog-be/internal/bootstrap"
	"ai-chatlog-be/internal/config"
	"ai-chatlog-be/internal/pkg/serverutils"
	internalWS "ai-chatlog-be/internal/websocket"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Routes
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.ConversationController.RegisterRoutes(api)
	c.SearchController.RegisterRoutes(api)
	c.QueryController.RegisterRoutes(api)

	registerWebSocket(app, c)
}

func registerWebSocket(app *fiber.App, c *bootstrap.Container) {
	ws := app.Group("/ws")

	ws.Use(func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	ws.Get("/chat/:conversation_id", websocket.New(func(conn *websocket.Conn) {
		conversationId, err := uuid.Parse(conn.Params("conversation_id"))
		if err != nil {
			conn.WriteJSON(map[string]string{
				"type":    "error",
				"message": "invalid conversation id",
			})
			conn.Close()
			return
		}
		internalWS.ServeWs(c.WebSocketHub, conn, conversationId, c.ChatService)
	}))
}
