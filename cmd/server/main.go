package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/antonrybalko/mergington-activities/internal/app"
)

func main() {
	// Create a new service
	service, err := app.NewService()
	if err != nil {
		fmt.Printf("Failed to initialize service: %v\n", err)
		os.Exit(1)
	}

	// Stop on interrupt or termination
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	// Serve until shutdown completes
	err = service.Run(ctx)
	stop()
	service.Cleanup()
	if err != nil {
		fmt.Printf("Service stopped with error: %v\n", err)
		os.Exit(1)
	}
}
