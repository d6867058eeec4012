// Package car drives one elevator cabin: the door and motion state
// machine, the session with the dispatcher, and the state socket the
// button tools and safety monitor attach to.
package car

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/13bad37/Elevator-Control-System/internal/carmem"
	"github.com/13bad37/Elevator-Control-System/internal/carstate"
	"github.com/13bad37/Elevator-Control-System/internal/config"
	"github.com/13bad37/Elevator-Control-System/internal/floors"
	"github.com/13bad37/Elevator-Control-System/internal/logger"
)

var Log = logger.GetLogger()

const (
	idleDelay   = 50 * time.Millisecond
	maxDoorPoll = 10 * time.Millisecond
	pollTimeout = 10 * time.Millisecond
)

var ErrInvalidFloorRange = errors.New("invalid floor range")

type Engine struct {
	Name    string
	Lowest  string
	Highest string
	Delay   time.Duration

	store          *carstate.Store
	server         *carmem.Server
	controllerAddr string
}

func NewEngine(cfg config.Config, name, lowest, highest string, delay time.Duration) (*Engine, error) {
	if !floors.Valid(lowest) || !floors.Valid(highest) ||
		floors.Compare(lowest, highest) >= 0 {
		return nil, ErrInvalidFloorRange
	}

	store := carstate.NewStore(lowest)
	return &Engine{
		Name:           name,
		Lowest:         lowest,
		Highest:        highest,
		Delay:          delay,
		store:          store,
		server:         carmem.NewServer(store, cfg.SocketPath(name)),
		controllerAddr: cfg.ControllerAddr,
	}, nil
}

// Start launches the state socket, the door loop and the dispatcher
// session. All three unwind when ctx is cancelled.
func (e *Engine) Start(ctx context.Context, waitGroup *sync.WaitGroup) error {
	if err := e.server.Start(ctx, waitGroup); err != nil {
		return err
	}

	waitGroup.Add(2)
	go func() {
		defer waitGroup.Done()
		e.runDoors(ctx)
	}()
	go func() {
		defer waitGroup.Done()
		e.runSession(ctx)
	}()

	return nil
}

// Store exposes the state record for in-process collaborators and tests.
func (e *Engine) Store() *carstate.Store {
	return e.store
}

func (e *Engine) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
