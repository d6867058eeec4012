package dispatch

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/xyproto/randomstring"

	"github.com/13bad37/Elevator-Control-System/internal/wire"
)

const connTagLen = 8

// Server owns the dispatcher's listening socket. Each accepted connection
// is classified by its first message: a CAR registration stays for the
// life of the connection, a CALL is answered and closed.
type Server struct {
	dispatcher *Dispatcher
	addr       string
	listener   net.Listener
}

func NewServer(dispatcher *Dispatcher, addr string) *Server {
	return &Server{dispatcher: dispatcher, addr: addr}
}

func (s *Server) Start(ctx context.Context, waitGroup *sync.WaitGroup) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("error binding %s: %w", s.addr, err)
	}
	s.listener = listener
	Log.Info().Msgf("Controller listening on %s", listener.Addr())

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		for {
			conn, err := listener.Accept()
			if err != nil {
				if ctx.Err() == nil {
					Log.Error().Msgf("Accept failed: %v", err)
				}
				return
			}
			go s.handle(ctx, conn)
		}
	}()

	return nil
}

// Addr reports the bound listen address, useful when the configured port
// is 0.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	log := Log.With().Str("conn", randomstring.CookieFriendlyString(connTagLen)).Logger()

	first, err := wire.ReadMessage(conn)
	if err != nil {
		return
	}

	fields := strings.Fields(first)
	switch {
	case len(fields) == 4 && fields[0] == wire.MsgCar:
		s.serveCar(ctx, conn, &log, fields[1], fields[2], fields[3])

	case len(fields) == 3 && fields[0] == wire.MsgCall:
		s.serveCall(conn, &log, fields[1], fields[2])

	default:
		log.Warn().Msgf("Unrecognised message %q", first)
	}
}

func (s *Server) serveCall(conn net.Conn, log *zerolog.Logger, src, dst string) {
	name, err := s.dispatcher.Call(src, dst)
	if err != nil {
		log.Info().Msgf("Call %s to %s: no car available", src, dst)
		wire.WriteMessage(conn, wire.MsgUnavailable)
		return
	}
	log.Info().Msgf("Call %s to %s assigned to car %s", src, dst, name)
	wire.WriteMessage(conn, wire.MsgCar+" "+name)
}

func (s *Server) serveCar(ctx context.Context, conn net.Conn, log *zerolog.Logger, name, lowest, highest string) {
	car := s.dispatcher.Register(name, lowest, highest, conn)
	log.Info().Msgf("Car %s registered, serving %s to %s", car.Name, lowest, highest)

	for ctx.Err() == nil {
		msg, err := wire.ReadMessage(conn)
		if err != nil {
			// Connection lost; the car reconnects on its next cycle if it
			// still wants service.
			s.dispatcher.Disconnect(car)
			log.Info().Msgf("Car %s connection closed", car.Name)
			return
		}

		fields := strings.Fields(msg)
		switch {
		case len(fields) == 4 && fields[0] == wire.MsgStatus:
			s.dispatcher.UpdateStatus(car, fields[1], fields[2], fields[3])

		case msg == wire.MsgEmergency:
			s.dispatcher.Disconnect(car)
			log.Warn().Msgf("Car %s reported an emergency", car.Name)

		case msg == wire.MsgService:
			s.dispatcher.Disconnect(car)
			log.Info().Msgf("Car %s entered individual service", car.Name)

		default:
			log.Warn().Msgf("Unrecognised message from car %s: %q", car.Name, msg)
		}
	}
}
