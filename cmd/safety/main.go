package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/13bad37/Elevator-Control-System/internal/carmem"
	"github.com/13bad37/Elevator-Control-System/internal/config"
	"github.com/13bad37/Elevator-Control-System/internal/logger"
	"github.com/13bad37/Elevator-Control-System/internal/safety"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <car_name>\n", os.Args[0])
		os.Exit(1)
	}

	cfg := config.Load()
	log := logger.GetLoggerConfigured(cfg.Level())

	name := os.Args[1]
	client, err := carmem.Dial(cfg.SocketPath(name))
	if err != nil {
		fmt.Printf("Unable to access car %s.\n", name)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	go func() {
		// Unblock any in-flight wait when shutting down.
		<-ctx.Done()
		client.Close()
	}()

	if err := safety.NewMonitor(client).Run(ctx); err != nil {
		log.Error().Msgf("Safety monitor stopped: %v", err)
		os.Exit(1)
	}
}
