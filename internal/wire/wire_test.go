package wire

import (
	"net"
	"strings"
	"testing"
	"time"
)

func TestMessageRoundTrip(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	messages := []string{
		"CAR A 1 10",
		"STATUS Closed 1 1",
		"FLOOR B2",
		"",
		strings.Repeat("x", MaxMessageLen),
	}

	for _, msg := range messages {
		go func() {
			if err := WriteMessage(client, msg); err != nil {
				t.Errorf("WriteMessage(%d bytes) returned error %v", len(msg), err)
			}
		}()
		got, err := ReadMessage(server)
		if err != nil {
			t.Fatalf("ReadMessage returned error %v", err)
		}
		if got != msg {
			t.Errorf("ReadMessage = %q, expected %q", got, msg)
		}
	}
}

func TestWriteMessageTooLong(t *testing.T) {
	client, _ := net.Pipe()
	defer client.Close()

	if err := WriteMessage(client, strings.Repeat("x", MaxMessageLen+1)); err == nil {
		t.Errorf("WriteMessage over the length limit = nil error, expected rejection")
	}
}

func TestReadMessageClosedConnection(t *testing.T) {
	client, server := net.Pipe()
	client.Close()

	if _, err := ReadMessage(server); err == nil {
		t.Errorf("ReadMessage on a closed connection = nil error, expected failure")
	}
}

func TestPollMessageTimeout(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	msg, ok, err := PollMessage(server, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("PollMessage returned error %v, expected timeout", err)
	}
	if ok {
		t.Errorf("PollMessage = %q with no sender, expected no message", msg)
	}
}

func TestPollMessageDelivers(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go WriteMessage(client, "FLOOR 3")

	msg, ok, err := PollMessage(server, time.Second)
	if err != nil || !ok {
		t.Fatalf("PollMessage = ok %v, error %v, expected a message", ok, err)
	}
	if msg != "FLOOR 3" {
		t.Errorf("PollMessage = %q, expected FLOOR 3", msg)
	}
}

func TestMessageBuilders(t *testing.T) {
	if got := CarMessage("A", "B2", "10"); got != "CAR A B2 10" {
		t.Errorf("CarMessage = %q, expected CAR A B2 10", got)
	}
	if got := StatusMessage("Closed", "1", "5"); got != "STATUS Closed 1 5" {
		t.Errorf("StatusMessage = %q, expected STATUS Closed 1 5", got)
	}
	if got := FloorMessage("7"); got != "FLOOR 7" {
		t.Errorf("FloorMessage = %q, expected FLOOR 7", got)
	}
	if got := CallMessage("3", "7"); got != "CALL 3 7" {
		t.Errorf("CallMessage = %q, expected CALL 3 7", got)
	}
}
