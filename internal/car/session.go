package car

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/13bad37/Elevator-Control-System/internal/carstate"
	"github.com/13bad37/Elevator-Control-System/internal/floors"
	"github.com/13bad37/Elevator-Control-System/internal/wire"
)

// runSession keeps the car's dispatcher connection in line with the state
// record: connected while the safety heartbeat is healthy and the car is
// in normal service, disconnected otherwise. It mirrors status changes up,
// applies FLOOR targets coming down, and advances the heartbeat counter
// once per cycle while connected. Cycles without a connection leave the
// counter unchanged, so a missing safety monitor only trips emergency mode
// once the car is connected.
func (e *Engine) runSession(ctx context.Context) {
	var conn net.Conn
	lastSentStatus := ""

	defer func() {
		if conn != nil {
			conn.Close()
		}
	}()

	for ctx.Err() == nil {
		rec := e.store.Snapshot()
		intendConnected := rec.SafetySystem >= 1 && rec.SafetySystem < carstate.SafetySystemFailed &&
			rec.IndividualServiceMode == 0 && rec.EmergencyMode == 0

		if intendConnected && conn == nil {
			if c, err := net.Dial("tcp", e.controllerAddr); err == nil {
				lastSentStatus = ""
				if err := wire.WriteMessage(c, wire.CarMessage(e.Name, e.Lowest, e.Highest)); err != nil {
					c.Close()
				} else {
					conn = c
					Log.Debug().Msgf("Car %s connected to controller", e.Name)
				}
			}
		} else if !intendConnected && conn != nil {
			if rec.IndividualServiceMode == 1 {
				wire.WriteMessage(conn, wire.MsgService)
			}
			conn.Close()
			conn = nil
		}

		if conn != nil {
			status := wire.StatusMessage(rec.Status, rec.CurrentFloor, rec.DestinationFloor)
			if status != lastSentStatus {
				lastSentStatus = status
				if err := wire.WriteMessage(conn, status); err != nil {
					conn.Close()
					conn = nil
				}
			}
		}

		if conn != nil {
			msg, ok, err := wire.PollMessage(conn, pollTimeout)
			if err != nil {
				conn.Close()
				conn = nil
			} else if ok {
				e.handleControllerMessage(msg)
			}
		}

		if conn != nil {
			enteredEmergency := false
			e.store.Update(func(r *carstate.Record) {
				if r.SafetySystem < carstate.SafetySystemFailed {
					r.SafetySystem++
				}
				if r.SafetySystem >= carstate.SafetySystemFailed {
					r.EmergencyMode = 1
					enteredEmergency = true
				}
			})
			if enteredEmergency {
				wire.WriteMessage(conn, wire.MsgEmergency)
				conn.Close()
				conn = nil
				fmt.Println("Safety system disconnected! Entering emergency mode.")
			}
		}

		e.store.Wait(ctx, e.Delay)
	}
}

// handleControllerMessage applies one inbound dispatcher message. A FLOOR
// naming the floor the car already sits on reopens the doors if they are
// Closed and is otherwise ignored; any other valid floor becomes the new
// destination, also while the car is moving between floors.
func (e *Engine) handleControllerMessage(msg string) {
	target, ok := strings.CutPrefix(msg, wire.MsgFloor+" ")
	if !ok {
		return
	}

	e.store.Update(func(r *carstate.Record) {
		if target == r.CurrentFloor {
			if r.Status == carstate.StatusClosed {
				r.Status = carstate.StatusOpening
			}
			return
		}
		if floors.Valid(target) {
			r.DestinationFloor = target
		}
	})
}
