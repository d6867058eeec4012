package carstate

import (
	"fmt"

	"github.com/13bad37/Elevator-Control-System/internal/floors"
)

var validStatuses = []string{
	StatusOpening, StatusOpen, StatusClosing, StatusClosed, StatusBetween,
}

func ValidStatus(status string) bool {
	for _, s := range validStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// Validate checks the full consistency of a record: floor labels well
// formed, status one of the five states, flags 0/1, heartbeat 0-3, and
// obstruction only reported while the doors are in motion. Floors are
// checked as labels only; they are not checked against the car's range.
func Validate(r Record) error {
	if !floors.Valid(r.CurrentFloor) {
		return fmt.Errorf("current floor %q is not a valid label", r.CurrentFloor)
	}
	if !floors.Valid(r.DestinationFloor) {
		return fmt.Errorf("destination floor %q is not a valid label", r.DestinationFloor)
	}
	if !ValidStatus(r.Status) {
		return fmt.Errorf("status %q is not a recognised state", r.Status)
	}

	flags := []struct {
		name  string
		value uint8
		max   uint8
	}{
		{"open_button", r.OpenButton, 1},
		{"close_button", r.CloseButton, 1},
		{"door_obstruction", r.DoorObstruction, 1},
		{"overload", r.Overload, 1},
		{"emergency_stop", r.EmergencyStop, 1},
		{"individual_service_mode", r.IndividualServiceMode, 1},
		{"emergency_mode", r.EmergencyMode, 1},
		{"safety_system", r.SafetySystem, SafetySystemFailed},
	}
	for _, f := range flags {
		if f.value > f.max {
			return fmt.Errorf("%s has out-of-band value %d", f.name, f.value)
		}
	}

	if r.DoorObstruction == 1 &&
		r.Status != StatusOpening && r.Status != StatusClosing {
		return fmt.Errorf("obstruction reported while doors are %s", r.Status)
	}
	return nil
}
