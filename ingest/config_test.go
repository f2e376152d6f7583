package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func validStubConfig() *StubConfig {
	return &StubConfig{
		Server: ServerConfig{
			Host:                   "localhost",
			Port:                   5004,
			ShutdownTimeoutSeconds: 5,
		},
		Storage: StorageConfig{
			MaxEvents: 100,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func TestValidateConfig(t *testing.T) {
	err := validStubConfig().Validate()
	if err != nil {
		t.Errorf("Expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidateInvalidPort(t *testing.T) {
	config := validStubConfig()
	config.Server.Port = 0 // Invalid

	err := config.Validate()
	if err == nil {
		t.Error("Expected error for invalid port, got nil")
	}
}

func TestValidatePortTooLarge(t *testing.T) {
	config := validStubConfig()
	config.Server.Port = 70000 // Invalid

	err := config.Validate()
	if err == nil {
		t.Error("Expected error for port above 65535, got nil")
	}
}

func TestValidateInvalidShutdownTimeout(t *testing.T) {
	config := validStubConfig()
	config.Server.ShutdownTimeoutSeconds = 0 // Invalid

	err := config.Validate()
	if err == nil {
		t.Error("Expected error for invalid shutdown timeout, got nil")
	}
}

func TestValidateInvalidMaxEvents(t *testing.T) {
	config := validStubConfig()
	config.Storage.MaxEvents = -1 // Invalid

	err := config.Validate()
	if err == nil {
		t.Error("Expected error for invalid max_events, got nil")
	}
}

func TestValidateLogLevel(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"warn", false},
		{"error", false},
		{"trace", false},
		{"invalid", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			config := validStubConfig()
			config.Log.Level = tt.level

			err := config.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("Expected error for log level %q, got nil", tt.level)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected log level %q to pass, got error: %v", tt.level, err)
			}
		})
	}
}

func TestLogLevel(t *testing.T) {
	config := validStubConfig()
	config.Log.Level = "warn"

	if config.LogLevel() != zerolog.WarnLevel {
		t.Errorf("Expected warn level, got %s", config.LogLevel())
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := `
server:
  host: "0.0.0.0"
  port: 6000
  shutdown_timeout_seconds: 3
storage:
  max_events: 50
log:
  level: "debug"
`
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Address() != "0.0.0.0:6000" {
		t.Errorf("Expected address 0.0.0.0:6000, got %s", config.Address())
	}
	if config.Storage.MaxEvents != 50 {
		t.Errorf("Expected max_events=50, got %d", config.Storage.MaxEvents)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("Expected error for missing config file, got nil")
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 5004\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	_, err := LoadConfig(path)
	if err == nil {
		t.Error("Expected validation error for incomplete config, got nil")
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := `
server:
  host: "localhost"
  port: 5004
  shutdown_timeout_seconds: 5
storage:
  max_event: 50
log:
  level: "info"
`
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	_, err := LoadConfig(path)
	if err == nil {
		t.Error("Expected error for misspelled key, got nil")
	}
}
