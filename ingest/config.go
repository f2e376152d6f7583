package ingest

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type StubConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Host                   string `yaml:"host"`
	Port                   int    `yaml:"port"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
}

type StorageConfig struct {
	MaxEvents int `yaml:"max_events"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// LoadConfig decodes the YAML file at configPath and validates it. Unknown
// keys are rejected so a misspelled setting fails at startup.
func LoadConfig(configPath string) (*StubConfig, error) {
	f, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open stub config: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)

	var stubConfig StubConfig
	if err := decoder.Decode(&stubConfig); err != nil {
		return nil, fmt.Errorf("failed to decode stub config %s: %w", configPath, err)
	}
	if err := stubConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid stub config %s: %w", configPath, err)
	}
	return &stubConfig, nil
}

// Address is the host:port the stub listens on.
func (config *StubConfig) Address() string {
	return net.JoinHostPort(config.Server.Host, strconv.Itoa(config.Server.Port))
}

// LogLevel is the parsed log.level. Call it on a validated config.
func (config *StubConfig) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(config.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func (config *StubConfig) Validate() error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range 1-65535", config.Server.Port)
	}
	if config.Server.ShutdownTimeoutSeconds < 1 {
		return fmt.Errorf("server.shutdown_timeout_seconds must be at least 1, got %d", config.Server.ShutdownTimeoutSeconds)
	}
	if config.Storage.MaxEvents < 1 {
		return fmt.Errorf("storage.max_events must be at least 1, got %d", config.Storage.MaxEvents)
	}

	// ParseLevel maps "" to NoLevel without an error
	if config.Log.Level == "" {
		return fmt.Errorf("log.level is required")
	}
	if _, err := zerolog.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
