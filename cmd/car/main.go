package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/13bad37/Elevator-Control-System/internal/car"
	"github.com/13bad37/Elevator-Control-System/internal/config"
	"github.com/13bad37/Elevator-Control-System/internal/logger"
)

func main() {
	if len(os.Args) != 5 {
		fmt.Fprintf(os.Stderr, "Usage: %s <name> <lowest> <highest> <delay_ms>\n", os.Args[0])
		os.Exit(1)
	}

	cfg := config.Load()
	log := logger.GetLoggerConfigured(cfg.Level())

	name, lowest, highest := os.Args[1], os.Args[2], os.Args[3]
	delayMs, err := strconv.Atoi(os.Args[4])
	if err != nil || delayMs <= 0 {
		fmt.Fprintln(os.Stderr, "Invalid delay")
		os.Exit(1)
	}

	engine, err := car.NewEngine(cfg, name, lowest, highest, time.Duration(delayMs)*time.Millisecond)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Invalid floor range")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	waitGroup := &sync.WaitGroup{}
	if err := engine.Start(ctx, waitGroup); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Info().Msgf("Car %s serving floors %s to %s", name, lowest, highest)

	<-ctx.Done()
	waitGroup.Wait()
}
