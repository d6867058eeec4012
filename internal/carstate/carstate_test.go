package carstate

import (
	"context"
	"testing"
	"time"
)

const TEST_DELAY = 100 * time.Millisecond

func TestNewStoreInitialRecord(t *testing.T) {
	store := NewStore("B2")
	rec := store.Snapshot()

	if rec.CurrentFloor != "B2" || rec.DestinationFloor != "B2" {
		t.Errorf("initial floors = %q/%q, expected B2/B2", rec.CurrentFloor, rec.DestinationFloor)
	}
	if rec.Status != StatusClosed {
		t.Errorf("initial status = %q, expected %q", rec.Status, StatusClosed)
	}
	if rec.SafetySystem != 0 || rec.EmergencyMode != 0 {
		t.Errorf("initial flags not clear: %+v", rec)
	}
}

func TestUpdateWakesWaiter(t *testing.T) {
	store := NewStore("1")

	done := make(chan Record, 1)
	go func() {
		done <- store.Wait(context.Background(), 10*time.Second)
	}()

	time.Sleep(TEST_DELAY)
	store.Update(func(r *Record) { r.OpenButton = 1 })

	select {
	case rec := <-done:
		if rec.OpenButton != 1 {
			t.Errorf("Wait returned record with open_button = %d, expected 1", rec.OpenButton)
		}
	case <-time.After(time.Second):
		t.Errorf("Wait did not wake after an update")
	}
}

func TestWaitTimesOut(t *testing.T) {
	store := NewStore("1")

	start := time.Now()
	store.Wait(context.Background(), 50*time.Millisecond)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Wait blocked %v, expected the 50ms timeout to fire", elapsed)
	}
}

func TestNoBroadcastWithoutChange(t *testing.T) {
	store := NewStore("1")

	done := make(chan struct{})
	go func() {
		store.Wait(context.Background(), 300*time.Millisecond)
		close(done)
	}()

	time.Sleep(TEST_DELAY)
	store.Update(func(r *Record) {}) // no-op must not wake the waiter

	select {
	case <-done:
		t.Errorf("Wait woke on a no-op update")
	case <-time.After(TEST_DELAY):
	}
	<-done
}

func TestApply(t *testing.T) {
	store := NewStore("1")

	err := store.Apply([][2]string{
		{"destination_floor", "5"},
		{"open_button", "1"},
		{"safety_system", "2"},
	})
	if err != nil {
		t.Fatalf("Apply returned error %v, expected nil", err)
	}

	rec := store.Snapshot()
	if rec.DestinationFloor != "5" || rec.OpenButton != 1 || rec.SafetySystem != 2 {
		t.Errorf("Apply result = %+v, expected destination 5, open_button 1, safety_system 2", rec)
	}
}

func TestApplyUnknownFieldLeavesRecordUntouched(t *testing.T) {
	store := NewStore("1")
	before := store.Snapshot()

	err := store.Apply([][2]string{
		{"destination_floor", "5"},
		{"no_such_field", "1"},
	})
	if err == nil {
		t.Fatalf("Apply with an unknown field = nil error, expected rejection")
	}
	if store.Snapshot() != before {
		t.Errorf("Apply with an unknown field modified the record")
	}
}

func TestApplyBadValue(t *testing.T) {
	store := NewStore("1")
	if err := store.Apply([][2]string{{"open_button", "many"}}); err == nil {
		t.Errorf("Apply with a non-numeric flag value = nil error, expected rejection")
	}
}

func TestRecordTextRoundTrip(t *testing.T) {
	rec := Record{
		CurrentFloor:     "3",
		DestinationFloor: "B1",
		Status:           StatusBetween,
		OpenButton:       1,
		SafetySystem:     2,
	}

	text := rec.String()
	if text == "" {
		t.Fatalf("String() returned an empty rendering")
	}
	got, err := ParseRecord(text)
	if err != nil {
		t.Fatalf("ParseRecord returned error %v", err)
	}
	if got != rec {
		t.Errorf("round trip = %+v, expected %+v", got, rec)
	}
}

func TestValidate(t *testing.T) {
	good := Record{CurrentFloor: "1", DestinationFloor: "1", Status: StatusClosed}
	if err := Validate(good); err != nil {
		t.Errorf("Validate(healthy record) = %v, expected nil", err)
	}

	cases := []struct {
		name   string
		mutate func(*Record)
	}{
		{"bad current floor", func(r *Record) { r.CurrentFloor = "0" }},
		{"bad destination floor", func(r *Record) { r.DestinationFloor = "zzz" }},
		{"bad status", func(r *Record) { r.Status = "Falling" }},
		{"flag out of band", func(r *Record) { r.Overload = 2 }},
		{"heartbeat out of band", func(r *Record) { r.SafetySystem = 4 }},
		{"obstruction while closed", func(r *Record) { r.DoorObstruction = 1 }},
	}
	for _, c := range cases {
		rec := good
		c.mutate(&rec)
		if err := Validate(rec); err == nil {
			t.Errorf("Validate(%s) = nil error, expected a violation", c.name)
		}
	}

	// Obstruction is consistent while the doors are in motion.
	rec := good
	rec.Status = StatusClosing
	rec.DoorObstruction = 1
	if err := Validate(rec); err != nil {
		t.Errorf("Validate(obstruction while closing) = %v, expected nil", err)
	}
}
