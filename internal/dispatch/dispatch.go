// Package dispatch is the central controller: it tracks every car that has
// ever registered, keeps a SCAN-ordered queue of pending floors per car,
// and picks the best car for each hall call.
package dispatch

import (
	"errors"
	"net"
	"sync"

	"github.com/13bad37/Elevator-Control-System/internal/carstate"
	"github.com/13bad37/Elevator-Control-System/internal/floors"
	"github.com/13bad37/Elevator-Control-System/internal/logger"
	"github.com/13bad37/Elevator-Control-System/internal/wire"
)

var Log = logger.GetLogger()

const MaxCarNameLen = 31

var ErrUnavailable = errors.New("no car available")

// Car is the dispatcher's view of one elevator. Records are created on
// first registration and kept for the life of the process; a reconnecting
// car reuses its record with the queue flushed.
type Car struct {
	Name             string
	Lowest           string
	Highest          string
	CurrentFloor     string
	DestinationFloor string
	Status           string
	Connected        bool

	conn  net.Conn
	queue []string
}

// Dispatcher serialises every car-table and queue mutation behind one
// mutex; connection handlers and call handlers all funnel through it.
type Dispatcher struct {
	mu   sync.Mutex
	cars map[string]*Car
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{cars: make(map[string]*Car)}
}

// Register binds a connection to the named car's record, creating the
// record on first sight and flushing any queue left from a previous
// session.
func (d *Dispatcher) Register(name, lowest, highest string, conn net.Conn) *Car {
	if len(name) > MaxCarNameLen {
		name = name[:MaxCarNameLen]
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	car, ok := d.cars[name]
	if !ok {
		car = &Car{Name: name}
		d.cars[name] = car
	}
	car.Lowest = lowest
	car.Highest = highest
	car.CurrentFloor = lowest
	car.DestinationFloor = lowest
	car.Status = carstate.StatusClosed
	car.Connected = true
	car.conn = conn
	car.queue = nil
	return car
}

// UpdateStatus records a STATUS report. A car Opening at the head of its
// queue has served that floor: the head is popped and the next target, if
// any, is pushed down to the car.
func (d *Dispatcher) UpdateStatus(car *Car, status, current, destination string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	car.Status = status
	car.CurrentFloor = current
	car.DestinationFloor = destination

	if len(car.queue) > 0 && status == carstate.StatusOpening && current == car.queue[0] {
		car.queue = car.queue[1:]
		if len(car.queue) > 0 {
			d.sendFloorLocked(car, car.queue[0])
		}
	}
}

// Disconnect takes a car out of service and drops its pending floors.
func (d *Dispatcher) Disconnect(car *Car) {
	d.mu.Lock()
	defer d.mu.Unlock()
	car.Connected = false
	car.queue = nil
}

func (d *Dispatcher) IsConnected(car *Car) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return car.Connected
}

// Call routes a hall call: pick the best car, queue the pickup and the
// drop-off, and nudge the car if its head target changed. The chosen car's
// name is returned.
func (d *Dispatcher) Call(src, dst string) (string, error) {
	if !floors.Valid(src) || !floors.Valid(dst) {
		return "", ErrUnavailable
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	car := d.bestCarLocked(src, dst)
	if car == nil {
		return "", ErrUnavailable
	}

	oldFront := ""
	if len(car.queue) > 0 {
		oldFront = car.queue[0]
	}

	car.insert(src)
	car.insert(dst)

	if len(car.queue) > 0 && car.queue[0] != oldFront {
		d.sendFloorLocked(car, car.queue[0])
	}
	return car.Name, nil
}

// bestCarLocked picks the connected car able to serve both floors with the
// lowest ETA to the pickup, breaking ties toward the lexicographically
// smaller name.
func (d *Dispatcher) bestCarLocked(src, dst string) *Car {
	var best *Car
	bestETA := 0
	for _, car := range d.cars {
		if !car.Connected {
			continue
		}
		if !floors.InRange(src, car.Lowest, car.Highest) ||
			!floors.InRange(dst, car.Lowest, car.Highest) {
			continue
		}
		eta := car.eta(src)
		if best == nil || eta < bestETA || (eta == bestETA && car.Name < best.Name) {
			best = car
			bestETA = eta
		}
	}
	return best
}

func (d *Dispatcher) sendFloorLocked(car *Car, target string) {
	if err := wire.WriteMessage(car.conn, wire.FloorMessage(target)); err != nil {
		Log.Warn().Msgf("Error sending floor %s to car %s: %v", target, car.Name, err)
	}
}

// Queue returns a copy of the car's pending floors.
func (d *Dispatcher) Queue(car *Car) []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(car.queue))
	copy(out, car.queue)
	return out
}
