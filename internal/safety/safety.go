// Package safety implements the independent monitor that watches one
// car's state record: it keeps the heartbeat alive, reverses the doors on
// obstruction, latches emergency mode on the stop button, the overload
// sensor or state corruption, and never clears emergency mode.
package safety

import (
	"context"
	"fmt"
	"time"

	"github.com/13bad37/Elevator-Control-System/internal/carmem"
	"github.com/13bad37/Elevator-Control-System/internal/carstate"
	"github.com/13bad37/Elevator-Control-System/internal/logger"
)

var Log = logger.GetLogger()

const cycleTimeout = 1000 * time.Millisecond

type Monitor struct {
	client *carmem.Client
}

func NewMonitor(client *carmem.Client) *Monitor {
	return &Monitor{client: client}
}

// Run watches the record until ctx is cancelled or the car goes away. Each
// cycle waits for a state change (or the timeout), then applies the
// failsafe rules to the snapshot it observed.
func (m *Monitor) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		rec, err := m.client.Wait(cycleTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := m.Cycle(rec); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
	return nil
}

// Cycle runs one pass of the failsafe rules against an observed record and
// writes whatever corrections they produce in a single atomic update.
func (m *Monitor) Cycle(rec carstate.Record) error {
	var pairs []string
	put := func(field, value string) {
		pairs = append(pairs, field, value)
	}

	// Heartbeat: the car ticks the counter up each network cycle in which
	// it is connected to the dispatcher, the
	// monitor pulls it back to 1. It reaches 3 only when this process has
	// been gone for multiple cycles.
	if rec.SafetySystem == 0 || rec.SafetySystem == 2 {
		put("safety_system", "1")
	}

	if rec.DoorObstruction == 1 && rec.Status == carstate.StatusClosing {
		put("status", carstate.StatusOpening)
	}

	if rec.EmergencyStop == 1 && rec.EmergencyMode == 0 {
		fmt.Println("The emergency stop button has been pressed!")
		put("emergency_stop", "0")
		put("emergency_mode", "1")
		rec.EmergencyMode = 1
	}

	if rec.Overload == 1 && rec.EmergencyMode == 0 {
		fmt.Println("The overload sensor has been tripped!")
		put("emergency_mode", "1")
		rec.EmergencyMode = 1
	}

	if rec.EmergencyMode == 0 {
		if err := carstate.Validate(rec); err != nil {
			fmt.Println("Data consistency error!")
			Log.Warn().Msgf("State validation failed: %v", err)
			put("emergency_mode", "1")
		}
	}

	if len(pairs) == 0 {
		return nil
	}
	return m.client.Put(pairs...)
}
