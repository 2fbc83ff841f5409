package drive

import (
	"context"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"

	"github.com/example/drive-gateway-demo/events"
)

// Config holds the gateway's provider credentials, read once at startup.
// Both fields are mandatory.
type Config struct {
	APIKey   string
	FolderID string
}

// Module wires the Drive client and gateway service into the application.
type Module struct {
	cfg      Config
	service  *Service
	eventBus mono.EventBus
	logger   types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new drive module.
func NewModule(cfg Config, logger types.Logger) *Module {
	return &Module{
		cfg:    cfg,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "drive"
}

// SetEventBus receives the EventBus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.FolderListedV1.ToBase(),
		events.FileServedV1.ToBase(),
	}
}

// Start validates the configuration and builds the client and service.
func (m *Module) Start(_ context.Context) error {
	if m.cfg.APIKey == "" {
		return fmt.Errorf("drive API key is required")
	}
	if m.cfg.FolderID == "" {
		return fmt.Errorf("drive folder id is required")
	}

	m.service = NewService(NewClient(m.cfg.APIKey), m.cfg.FolderID)

	m.logger.Info("Drive module started", "folderID", m.cfg.FolderID)
	return nil
}

// Stop gracefully shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Drive module stopped")
	return nil
}

// Service returns the gateway service instance.
func (m *Module) Service() *Service {
	return m.service
}

// FolderID returns the configured folder identifier.
func (m *Module) FolderID() string {
	return m.cfg.FolderID
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.service != nil,
		Message: "operational",
		Details: map[string]any{
			"folder_id": m.cfg.FolderID,
		},
	}
}

// PublishFolderListed publishes a FolderListed event, stamping it with the
// configured folder id.
func (m *Module) PublishFolderListed(event events.FolderListedEvent) error {
	if m.eventBus == nil {
		return nil
	}
	event.FolderID = m.cfg.FolderID
	return events.FolderListedV1.Publish(m.eventBus, event, nil)
}

// PublishFileServed publishes a FileServed event.
func (m *Module) PublishFileServed(event events.FileServedEvent) error {
	if m.eventBus == nil {
		return nil
	}
	return events.FileServedV1.Publish(m.eventBus, event, nil)
}
