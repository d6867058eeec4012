// The internal tool presses the buttons inside a car: door controls, the
// emergency stop, service mode, and stepwise movement while in service
// mode. Each invocation applies one operation to the car's state record
// and exits.
package main

import (
	"fmt"
	"os"

	"github.com/13bad37/Elevator-Control-System/internal/carmem"
	"github.com/13bad37/Elevator-Control-System/internal/carstate"
	"github.com/13bad37/Elevator-Control-System/internal/config"
	"github.com/13bad37/Elevator-Control-System/internal/floors"
	"github.com/13bad37/Elevator-Control-System/internal/logger"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <car_name> <operation>\n", os.Args[0])
		os.Exit(1)
	}

	cfg := config.Load()
	logger.GetLoggerConfigured(cfg.Level())

	name, operation := os.Args[1], os.Args[2]
	client, err := carmem.Dial(cfg.SocketPath(name))
	if err != nil {
		fmt.Printf("Unable to access car %s.\n", name)
		os.Exit(1)
	}
	defer client.Close()

	switch operation {
	case "open":
		err = client.Put("open_button", "1")
	case "close":
		err = client.Put("close_button", "1")
	case "stop":
		err = client.Put("emergency_stop", "1")
	case "service_on":
		// Entering individual service is the one path that clears a
		// latched emergency.
		err = client.Put("individual_service_mode", "1", "emergency_mode", "0")
	case "service_off":
		err = client.Put("individual_service_mode", "0")
	case "up":
		err = step(client, 1)
	case "down":
		err = step(client, -1)
	default:
		fmt.Println("Invalid operation.")
		return
	}

	if err != nil {
		fmt.Printf("Unable to access car %s.\n", name)
		os.Exit(1)
	}
}

// step moves the car one floor in the given direction. Only valid in
// service mode with the doors closed and the car parked.
func step(client *carmem.Client, direction int) error {
	rec, err := client.Get()
	if err != nil {
		return err
	}

	if rec.IndividualServiceMode != 1 {
		fmt.Println("Operation only allowed in service mode.")
		return nil
	}
	switch rec.Status {
	case carstate.StatusClosed:
	case carstate.StatusOpen, carstate.StatusOpening, carstate.StatusClosing:
		fmt.Println("Operation not allowed while doors are open.")
		return nil
	default:
		fmt.Println("Operation not allowed while elevator is moving.")
		return nil
	}

	next, err := floors.StepFrom(rec.CurrentFloor, direction)
	if err != nil {
		// Already at the end of the labelled range; nothing to do.
		return nil
	}
	return client.Put("destination_floor", next)
}
