package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"

	"github.com/example/drive-gateway-demo/events"
)

// Module consumes gateway access events and tracks usage counters.
type Module struct {
	store  *Store
	logger types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module              = (*Module)(nil)
	_ mono.EventConsumerModule = (*Module)(nil)
)

// NewModule creates a new analytics module.
func NewModule(logger types.Logger) *Module {
	return &Module{
		store:  NewStore(),
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "analytics"
}

// RegisterEventConsumers registers handlers for the drive module's events.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	listedDef, ok := registry.GetEventByName("FolderListed", "v1", "drive")
	if !ok {
		return fmt.Errorf("event FolderListed.v1 not found")
	}
	if err := registry.RegisterEventConsumer(listedDef, m.handleFolderListed, m); err != nil {
		return fmt.Errorf("failed to register FolderListed consumer: %w", err)
	}

	servedDef, ok := registry.GetEventByName("FileServed", "v1", "drive")
	if !ok {
		return fmt.Errorf("event FileServed.v1 not found")
	}
	if err := registry.RegisterEventConsumer(servedDef, m.handleFileServed, m); err != nil {
		return fmt.Errorf("failed to register FileServed consumer: %w", err)
	}

	m.logger.Info("Registered event consumers",
		"events", []string{"FolderListed.v1", "FileServed.v1"})
	return nil
}

// Start initializes the module.
func (m *Module) Start(_ context.Context) error {
	m.logger.Info("Analytics module started")
	return nil
}

// Stop gracefully shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("Analytics module stopped")
	return nil
}

// Store returns the analytics store instance.
func (m *Module) Store() *Store {
	return m.store
}

// handleFolderListed processes FolderListed events.
func (m *Module) handleFolderListed(_ context.Context, msg *mono.Msg) error {
	var event events.FolderListedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		m.logger.Error("Failed to unmarshal FolderListed event", "error", err)
		return nil // Don't retry on unmarshal errors
	}

	total := m.store.RecordListing()
	m.logger.Info("Recorded folder listing",
		"fileCount", event.FileCount,
		"totalListings", total)
	return nil
}

// handleFileServed processes FileServed events.
func (m *Module) handleFileServed(_ context.Context, msg *mono.Msg) error {
	var event events.FileServedEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		m.logger.Error("Failed to unmarshal FileServed event", "error", err)
		return nil // Don't retry on unmarshal errors
	}

	count := m.store.RecordServe(ServeRecord{
		FileID:   event.FileID,
		Name:     event.Name,
		MimeType: event.MimeType,
		Size:     event.Size,
		ServedAt: event.ServedAt,
	})
	m.logger.Debug("Recorded file serve",
		"name", event.Name,
		"serveCount", count)
	return nil
}
