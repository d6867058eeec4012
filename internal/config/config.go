package config

import (
	"os"
	"path/filepath"

	"github.com/go-yaml/yaml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/13bad37/Elevator-Control-System/internal/logger"
)

var Log = logger.GetLogger()

const (
	DefaultControllerAddr = "127.0.0.1:3000"
	DefaultConfigFile     = "elevator.yaml"
)

// Config carries the settings shared by every binary in the system. Values
// come from built-in defaults, then elevator.yaml if present, then a .env
// file, then plain environment variables, each layer overriding the last.
type Config struct {
	ControllerAddr string `yaml:"controller_addr"`
	SocketDir      string `yaml:"socket_dir"`
	LogLevel       string `yaml:"log_level"`
}

func Load() Config {
	cfg := Config{
		ControllerAddr: DefaultControllerAddr,
		SocketDir:      os.TempDir(),
		LogLevel:       "info",
	}

	if file, err := os.Open(DefaultConfigFile); err == nil {
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			Log.Warn().Msgf("Error decoding %s: %v", DefaultConfigFile, err)
		}
		file.Close()
	}

	if err := godotenv.Load(); err == nil {
		Log.Debug().Msg("Loaded .env file")
	}

	if v := os.Getenv("CONTROLLER_ADDR"); v != "" {
		cfg.ControllerAddr = v
	}
	if v := os.Getenv("SOCKET_DIR"); v != "" {
		cfg.SocketDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg
}

func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// SocketPath returns the state socket path for the named car. The socket
// stands in for the named shared-memory segment of a conventional
// multi-process elevator rig.
func (c Config) SocketPath(carName string) string {
	return filepath.Join(c.SocketDir, "car"+carName+".sock")
}
