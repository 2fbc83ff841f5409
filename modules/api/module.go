package api

import (
	"context"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	drivemod "github.com/example/drive-gateway-demo/modules/drive"
)

// Module provides the gateway's HTTP surface.
type Module struct {
	app         *fiber.App
	handlers    *Handlers
	driveModule *drivemod.Module
	port        int
	logger      types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new API module.
func NewModule(port int, logger types.Logger) *Module {
	return &Module{
		port:   port,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// SetDriveModule sets the drive module dependency.
func (m *Module) SetDriveModule(dm *drivemod.Module) {
	m.driveModule = dm
}

// Start builds the Fiber app and starts the HTTP server.
func (m *Module) Start(_ context.Context) error {
	if m.driveModule == nil {
		return fmt.Errorf("drive module not set")
	}
	service := m.driveModule.Service()
	if service == nil {
		return fmt.Errorf("drive service not available")
	}

	m.handlers = NewHandlers(service, m.driveModule, m.logger)

	m.app = fiber.New(fiber.Config{
		AppName:               "Drive Folder Gateway",
		DisableStartupMessage: true,
		// The listing route is the exact path /files/; /files must not
		// silently alias it.
		StrictRouting: true,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	registerRoutes(m.app, m.handlers)

	go func() {
		addr := fmt.Sprintf(":%d", m.port)
		m.logger.Info("HTTP server starting", "addr", addr)
		if err := m.app.Listen(addr); err != nil {
			m.logger.Error("HTTP server error", "error", err)
		}
	}()

	return nil
}

// Stop shuts down the HTTP server gracefully.
func (m *Module) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	m.logger.Info("Shutting down HTTP server")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// registerRoutes configures the gateway routes. The inbound method is not
// interpreted; every route answers with GET semantics. Unmatched paths fall
// through to Fiber's 404.
func registerRoutes(app *fiber.App, h *Handlers) {
	app.Get("/health", h.Health)
	app.All("/files/", h.ListFiles)
	app.All("/files/:name", h.ServeFile)
}
