// Package carmem exposes a car's state record over a Unix domain socket,
// the local stand-in for a named shared-memory segment. The car process
// serves; the button tools and the safety monitor are clients. Three
// operations cover what direct memory access would: GET (read a snapshot),
// PUT (write raw fields under the record lock), and WAIT (block for the
// next change, the condition-variable rendition).
package carmem

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/13bad37/Elevator-Control-System/internal/carstate"
	"github.com/13bad37/Elevator-Control-System/internal/logger"
	"github.com/13bad37/Elevator-Control-System/internal/wire"
)

var Log = logger.GetLogger()

const maxWaitTimeout = 60 * time.Second

type Server struct {
	store    *carstate.Store
	path     string
	listener net.Listener
}

func NewServer(store *carstate.Store, path string) *Server {
	return &Server{store: store, path: path}
}

// Start claims the socket path and begins serving clients. An existing
// socket file means another car already owns the name, so Start fails
// rather than stealing it.
func (s *Server) Start(ctx context.Context, waitGroup *sync.WaitGroup) error {
	listener, err := net.Listen("unix", s.path)
	if err != nil {
		return fmt.Errorf("error creating state socket: %w", err)
	}
	s.listener = listener

	go func() {
		<-ctx.Done()
		listener.Close()
		os.Remove(s.path)
	}()

	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		for {
			conn, err := listener.Accept()
			if err != nil {
				if ctx.Err() == nil {
					Log.Error().Msgf("State socket accept failed: %v", err)
				}
				return
			}
			go s.serve(ctx, conn)
		}
	}()

	return nil
}

func (s *Server) serve(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	for ctx.Err() == nil {
		msg, err := wire.ReadMessage(conn)
		if err != nil {
			return
		}

		reply, err := s.handle(ctx, msg)
		if err != nil {
			reply = wire.MsgErr + " " + err.Error()
		}
		if err := wire.WriteMessage(conn, reply); err != nil {
			return
		}
	}
}

func (s *Server) handle(ctx context.Context, msg string) (string, error) {
	fields := strings.Fields(msg)
	if len(fields) == 0 {
		return "", fmt.Errorf("empty request")
	}

	switch fields[0] {
	case wire.MsgGet:
		return stateReply(s.store.Snapshot()), nil

	case wire.MsgWait:
		if len(fields) != 2 {
			return "", fmt.Errorf("WAIT takes a timeout in ms")
		}
		ms, err := strconv.Atoi(fields[1])
		if err != nil || ms < 0 {
			return "", fmt.Errorf("bad WAIT timeout %q", fields[1])
		}
		timeout := time.Duration(ms) * time.Millisecond
		if timeout > maxWaitTimeout {
			timeout = maxWaitTimeout
		}
		return stateReply(s.store.Wait(ctx, timeout)), nil

	case wire.MsgPut:
		if len(fields) < 3 || len(fields)%2 == 0 {
			return "", fmt.Errorf("PUT takes field value pairs")
		}
		var pairs [][2]string
		for i := 1; i < len(fields); i += 2 {
			pairs = append(pairs, [2]string{fields[i], fields[i+1]})
		}
		if err := s.store.Apply(pairs); err != nil {
			return "", err
		}
		return wire.MsgOK, nil
	}

	return "", fmt.Errorf("unknown request %q", fields[0])
}

func stateReply(rec carstate.Record) string {
	return wire.MsgState + " " + rec.String()
}
