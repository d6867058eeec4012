package car

import (
	"context"
	"time"

	"github.com/13bad37/Elevator-Control-System/internal/carstate"
	"github.com/13bad37/Elevator-Control-System/internal/floors"
)

// runDoors is the door and motion state machine. Each pass consumes button
// flags, then acts on the status it observed. The record lock is never
// held across a delay; after every delay the status is re-read, so a
// safety-monitor override (Closing back to Opening) wins over the
// transition this loop was about to make.
func (e *Engine) runDoors(ctx context.Context) {
	var openStart time.Time

	for ctx.Err() == nil {
		rec := e.consumeButtons()

		switch rec.Status {
		case carstate.StatusOpening:
			e.sleep(ctx, e.Delay)
			opened := false
			e.store.Update(func(r *carstate.Record) {
				if r.Status == carstate.StatusOpening {
					r.Status = carstate.StatusOpen
					opened = true
				}
			})
			if opened {
				openStart = time.Now()
			}

		case carstate.StatusOpen:
			extend := false
			e.store.Update(func(r *carstate.Record) {
				if r.OpenButton == 1 {
					r.OpenButton = 0
					extend = true
				}
			})
			if extend {
				openStart = time.Now()
			}

			elapsed := time.Since(openStart)
			if elapsed >= e.Delay {
				e.store.Update(func(r *carstate.Record) {
					if r.Status == carstate.StatusOpen && r.IndividualServiceMode == 0 {
						r.Status = carstate.StatusClosing
					}
				})
				if rec.IndividualServiceMode == 1 {
					// Service mode holds the doors; wait for a state change
					// instead of spinning on the dwell clock.
					e.store.Wait(ctx, idleDelay)
				}
			} else {
				remaining := e.Delay - elapsed
				if remaining > maxDoorPoll {
					remaining = maxDoorPoll
				}
				e.sleep(ctx, remaining)
			}

		case carstate.StatusClosing:
			e.sleep(ctx, e.Delay)
			e.store.Update(func(r *carstate.Record) {
				if r.Status == carstate.StatusClosing {
					r.Status = carstate.StatusClosed
				}
			})

		case carstate.StatusClosed:
			moving := false
			e.store.Update(func(r *carstate.Record) {
				if r.CurrentFloor == r.DestinationFloor {
					return
				}
				if !floors.InRange(r.DestinationFloor, e.Lowest, e.Highest) {
					r.DestinationFloor = r.CurrentFloor
					return
				}
				if r.EmergencyMode == 1 {
					return
				}
				r.Status = carstate.StatusBetween
				moving = true
			})
			if !moving {
				e.store.Wait(ctx, idleDelay)
			}

		case carstate.StatusBetween:
			service := rec.IndividualServiceMode == 1
			e.sleep(ctx, e.Delay)
			e.store.Update(func(r *carstate.Record) {
				if r.Status != carstate.StatusBetween {
					return
				}
				next, err := floors.NextToward(r.CurrentFloor, r.DestinationFloor, e.Lowest, e.Highest)
				if err == nil {
					r.CurrentFloor = next
				}
				if r.CurrentFloor == r.DestinationFloor {
					if service {
						r.Status = carstate.StatusClosed
					} else {
						r.Status = carstate.StatusOpening
					}
				}
			})

		default:
			// Unrecognised status; the safety monitor owns recovery.
			e.sleep(ctx, idleDelay)
		}
	}
}

// consumeButtons resets the button flags it acts on. The open button while
// the doors sit Open is left for the dwell-extension check in runDoors.
func (e *Engine) consumeButtons() carstate.Record {
	return e.store.Update(func(r *carstate.Record) {
		if r.OpenButton == 1 &&
			(r.Status == carstate.StatusClosed || r.Status == carstate.StatusClosing) {
			r.OpenButton = 0
			r.Status = carstate.StatusOpening
		}
		if r.CloseButton == 1 {
			r.CloseButton = 0
			if r.Status == carstate.StatusOpen {
				r.Status = carstate.StatusClosing
			}
		}
	})
}
