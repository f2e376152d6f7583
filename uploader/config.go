package uploader

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	APIURLEnv     = "API_URL"
	DefaultAPIURL = "http://localhost:5004"
	DashboardURL  = "http://localhost:5174"

	DefaultTimeout = 30 * time.Second
)

type Config struct {
	APIURL  string        `koanf:"api_url" validate:"required,url"`
	Timeout time.Duration `koanf:"-" validate:"gt=0"`
}

// LoadConfig reads API_URL from the environment. An unset or empty value
// falls back to DefaultAPIURL.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(APIURLEnv, ".", strings.ToLower), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	cfg := &Config{Timeout: DefaultTimeout}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	switch fe := fieldErrs[0]; fe.Field() {
	case "APIURL":
		return fmt.Errorf("%s must be an absolute URL, got %q", APIURLEnv, c.APIURL)
	default:
		return fmt.Errorf("invalid %s: failed %q check", fe.Field(), fe.Tag())
	}
}
