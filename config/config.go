package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// InstanceConfig holds the connection settings for one Zendesk instance.
type InstanceConfig struct {
	Name     string `validate:"required"`
	BaseURL  string `validate:"required,url"`
	Email    string `validate:"required,email"`
	APIToken string `validate:"required"`
}

// BasicAuth returns the base64 token for Zendesk API token authentication
// (email/token:token).
func (ic InstanceConfig) BasicAuth() string {
	return base64.StdEncoding.EncodeToString([]byte(ic.Email + "/token:" + ic.APIToken))
}

// Config holds application configuration loaded from environment variables.
type Config struct {
	AppName    string
	Env        string // development, staging, production
	OutputFile string `validate:"required"`

	// VI is the primary instance, VDE the secondary one.
	VI  InstanceConfig
	VDE InstanceConfig
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		AppName:    getenv("APP_NAME", "zendesk-user-reports"),
		Env:        getenv("APP_ENV", "development"),
		OutputFile: getenv("OUTPUT_FILE", "user_report.xlsx"),
		VI: InstanceConfig{
			Name:     "VI",
			BaseURL:  os.Getenv("ZENDESK_VI_BASE_URL"),
			Email:    os.Getenv("ZENDESK_VI_EMAIL"),
			APIToken: os.Getenv("ZENDESK_VI_API_TOKEN"),
		},
		VDE: InstanceConfig{
			Name:     "VDE",
			BaseURL:  os.Getenv("ZENDESK_VDE_BASE_URL"),
			Email:    os.Getenv("ZENDESK_VDE_EMAIL"),
			APIToken: os.Getenv("ZENDESK_VDE_API_TOKEN"),
		},
	}
}

// Validate checks that every required setting is present before any fetch
// is attempted.
func (c *Config) Validate() error {
	v := validator.New()
	err := v.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("configuration: %s", strings.Join(msgs, "; "))
	}
	return fmt.Errorf("configuration: %w", err)
}
