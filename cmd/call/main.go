package main

import (
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/13bad37/Elevator-Control-System/internal/config"
	"github.com/13bad37/Elevator-Control-System/internal/floors"
	"github.com/13bad37/Elevator-Control-System/internal/logger"
	"github.com/13bad37/Elevator-Control-System/internal/wire"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <source> <destination>\n", os.Args[0])
		os.Exit(1)
	}

	cfg := config.Load()
	logger.GetLoggerConfigured(cfg.Level())

	src, dst := os.Args[1], os.Args[2]
	if !floors.Valid(src) || !floors.Valid(dst) {
		fmt.Println("Invalid floor(s) specified.")
		os.Exit(1)
	}
	if src == dst {
		fmt.Println("You are already on that floor!")
		os.Exit(1)
	}

	conn, err := net.Dial("tcp", cfg.ControllerAddr)
	if err != nil {
		fmt.Println("Unable to connect to elevator system.")
		os.Exit(1)
	}
	defer conn.Close()

	if err := wire.WriteMessage(conn, wire.CallMessage(src, dst)); err != nil {
		fmt.Println("Unable to connect to elevator system.")
		os.Exit(1)
	}
	reply, err := wire.ReadMessage(conn)
	if err != nil {
		fmt.Println("Unable to connect to elevator system.")
		os.Exit(1)
	}

	if name, ok := strings.CutPrefix(reply, wire.MsgCar+" "); ok && name != "" {
		fmt.Printf("Car %s is arriving.\n", name)
		return
	}
	fmt.Println("Sorry, no car is available to take this request.")
}
