package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	analyticsmod "github.com/example/drive-gateway-demo/modules/analytics"
	apimod "github.com/example/drive-gateway-demo/modules/api"
	drivemod "github.com/example/drive-gateway-demo/modules/drive"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration from environment
	httpPort := getEnvInt("HTTP_PORT", 3000)
	cfg := drivemod.Config{
		APIKey:   os.Getenv("GOOGLE_API_KEY"),
		FolderID: os.Getenv("GOOGLE_DRIVE_FOLDER_ID"),
	}
	if cfg.APIKey == "" {
		log.Fatal("GOOGLE_API_KEY is required")
	}
	if cfg.FolderID == "" {
		log.Fatal("GOOGLE_DRIVE_FOLDER_ID is required")
	}

	log.Println("=== Drive Folder Gateway ===")
	log.Printf("HTTP Port: %d", httpPort)
	log.Printf("Drive Folder: %s", cfg.FolderID)

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create mono application: %v", err)
	}

	// Create modules
	driveModule := drivemod.NewModule(cfg, app.Logger())
	analyticsModule := analyticsmod.NewModule(app.Logger())
	apiModule := apimod.NewModule(httpPort, app.Logger())

	// Wire up dependencies
	apiModule.SetDriveModule(driveModule)

	// Register modules
	// - analytics: event consumer (subscribes to drive events)
	// - drive: core domain (provider client, emits events)
	// - api: driving adapter (Fiber HTTP server, depends on drive)
	app.Register(analyticsModule)
	app.Register(driveModule)
	app.Register(apiModule)

	// Start the application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}

	printStartupInfo(httpPort)

	// Setup graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(port int) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Printf("Gateway available at http://localhost:%d", port)
	log.Println("Endpoints:")
	log.Println("  GET /files/        - HTML listing of the Drive folder")
	log.Println("  GET /files/<name>  - Serve a file by name (shortcuts resolved)")
	log.Println("  GET /health        - Health check")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}
