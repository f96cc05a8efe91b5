package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"resume-builder/internal/config"
	"resume-builder/internal/delivery/http/handler"
	"resume-builder/internal/delivery/http/middleware"
	"resume-builder/internal/delivery/http/routes"
	v1 "resume-builder/internal/delivery/http/routes/v1"
	"resume-builder/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
	// WS is nil when no websocket port is configured.
	WS        *http.Server
	Container *Container

	stopHub context.CancelFunc
}

// New builds the HTTP surface over an already wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	a := &App{Fiber: f, Container: c, stopHub: stopHub}
	if strings.TrimSpace(c.Config.App.WSPort) != "" {
		if addr, err := ListenAddr(c.Config.App.WSPort); err == nil {
			mux := http.NewServeMux()
			mux.Handle("/ws", ws.NewHandler(c.Hub, c.JWT, c.Logger))
			a.WS = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
		} else {
			c.Logger.Printf("[App] websocket disabled | err=%v", err)
		}
	}
	return a
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}
	a := New(c)
	cleanup := func() error {
		a.stopHub()
		return c.Close()
	}
	return a, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	auth := middleware.NewAuthMiddleware(c.JWT)
	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Cache),
		auth.Middleware(),
		v1.Handlers{
			Resume:     handler.NewResumeHandler(c.Resumes),
			Section:    handler.NewSectionHandler(c.Resumes),
			Suggestion: handler.NewSuggestionHandler(c.Suggestions),
		},
	)
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
