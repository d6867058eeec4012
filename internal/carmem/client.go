package carmem

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/13bad37/Elevator-Control-System/internal/carstate"
	"github.com/13bad37/Elevator-Control-System/internal/wire"
)

// Client attaches to a car's state socket. It is not safe for concurrent
// use; each process in this system holds at most one and uses it from a
// single task.
type Client struct {
	conn net.Conn
}

func Dial(path string) (*Client, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("error attaching to car state: %w", err)
	}
	return &Client{conn: conn}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Get reads a snapshot of the car's record.
func (c *Client) Get() (carstate.Record, error) {
	return c.roundTripState(wire.MsgGet)
}

// Wait blocks until the car's record changes or the timeout elapses on the
// car's side, then returns a snapshot.
func (c *Client) Wait(timeout time.Duration) (carstate.Record, error) {
	ms := int(timeout / time.Millisecond)
	return c.roundTripState(wire.MsgWait + " " + strconv.Itoa(ms))
}

// Put writes raw field/value pairs to the record in one atomic step.
func (c *Client) Put(pairs ...string) error {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return fmt.Errorf("Put takes field value pairs")
	}
	if err := wire.WriteMessage(c.conn, wire.MsgPut+" "+strings.Join(pairs, " ")); err != nil {
		return err
	}
	reply, err := wire.ReadMessage(c.conn)
	if err != nil {
		return err
	}
	if reply != wire.MsgOK {
		return fmt.Errorf("put rejected: %s", strings.TrimPrefix(reply, wire.MsgErr+" "))
	}
	return nil
}

func (c *Client) roundTripState(request string) (carstate.Record, error) {
	if err := wire.WriteMessage(c.conn, request); err != nil {
		return carstate.Record{}, err
	}
	reply, err := wire.ReadMessage(c.conn)
	if err != nil {
		return carstate.Record{}, err
	}
	text, ok := strings.CutPrefix(reply, wire.MsgState+" ")
	if !ok {
		return carstate.Record{}, fmt.Errorf("unexpected reply %q", reply)
	}
	return carstate.ParseRecord(text)
}
