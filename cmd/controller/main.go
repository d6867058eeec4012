package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/13bad37/Elevator-Control-System/internal/config"
	"github.com/13bad37/Elevator-Control-System/internal/dispatch"
	"github.com/13bad37/Elevator-Control-System/internal/logger"
)

func main() {
	cfg := config.Load()
	log := logger.GetLoggerConfigured(cfg.Level())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	server := dispatch.NewServer(dispatch.NewDispatcher(), cfg.ControllerAddr)
	waitGroup := &sync.WaitGroup{}
	if err := server.Start(ctx, waitGroup); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	<-ctx.Done()
	log.Info().Msg("Controller shutting down")
	waitGroup.Wait()
}
