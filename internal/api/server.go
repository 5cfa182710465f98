package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"taskmanager/internal/service"
	"taskmanager/web"
)

// Server exposes the task service over HTTP and serves the embedded
// frontend.
type Server struct {
	app   *fiber.App
	tasks *service.TaskService
}

// NewServer builds the fiber app with all routes and middleware attached.
// corsOrigins is a comma-separated list of allowed frontend origins.
func NewServer(tasks *service.TaskService, corsOrigins string) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "taskmanager",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	s := &Server{app: app, tasks: tasks}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health", s.health)

	tasks := s.app.Group("/api/tasks")
	tasks.Get("/", s.listTasks)
	tasks.Post("/", s.createTask)
	tasks.Get("/:id", s.getTask)
	tasks.Put("/:id", s.updateTask)
	tasks.Delete("/:id", s.deleteTask)

	// Frontend, registered last so API routes win.
	s.app.Use(filesystem.New(filesystem.Config{
		Root:  web.Static(),
		Index: "index.html",
	}))
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(healthResponse{Status: "ok"})
}

// Listen serves HTTP on the given address until Shutdown is called.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
