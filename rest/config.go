package rest

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Header names used by the dispatch core.
const (
	HeaderAccept        = "Accept"
	HeaderContentType   = "Content-Type"
	HeaderContentLength = "Content-Length"
	HeaderAPIVersion    = "X-Api-Version"
	HeaderRequestID     = "X-Request-Id"
	HeaderResponseTime  = "X-Response-Time"
	HeaderServer        = "Server"
	HeaderAllow         = "Allow"
)

// Content types the parser pipeline knows about.
const (
	ContentTypeJSON      = "application/json"
	ContentTypeForm      = "application/x-www-form-urlencoded"
	ContentTypeMultipart = "multipart/form-data"
)

// Defaults applied by Config when the corresponding field is unset.
const (
	DefaultVersion      = "1.0.0"
	DefaultServerName   = "restkit"
	DefaultMaxBodyBytes = 8192
)

// Config configures a Server. The zero value is usable: every field has
// a documented default. Config is copied at server construction and
// immutable afterwards.
type Config struct {
	// Version is the API version string served and validated against the
	// X-Api-Version request header. Defaults to DefaultVersion.
	Version string `yaml:"apiVersion"`

	// ServerName is written to the Server response header.
	// Defaults to DefaultServerName.
	ServerName string `yaml:"serverName"`

	// RequireVersion makes the X-Api-Version request header mandatory.
	// When false, the header is validated only if the client sends it.
	RequireVersion bool `yaml:"requireApiVersion"`

	// MaxBodyBytes caps the accumulated request body size. The cap is
	// enforced as bytes arrive, so oversized bodies are rejected before
	// the stream completes. Defaults to DefaultMaxBodyBytes.
	MaxBodyBytes int64 `yaml:"maxBodyBytes"`

	// GenerateID produces the request ID assigned to each inbound
	// request. Defaults to GenerateUUIDv4.
	GenerateID func() string `yaml:"-"`

	// Logger receives structured request-lifecycle logs. Per-request
	// match details are logged only when the logger has the Trace level
	// enabled. Defaults to slog.Default.
	Logger *slog.Logger `yaml:"-"`
}

// withDefaults returns a copy of the config with defaults applied.
func (c Config) withDefaults() Config {
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.ServerName == "" {
		c.ServerName = DefaultServerName
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.GenerateID == nil {
		c.GenerateID = GenerateUUIDv4
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// ConfigFromFile loads a Config from a YAML file. Fields absent from the
// file keep their defaults.
func ConfigFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("rest: read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("rest: parse config: %w", err)
	}

	return cfg, nil
}

// GenerateUUIDv4 returns a new UUID v4 string.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.4
func GenerateUUIDv4() string {
	return uuid.New().String()
}

// GenerateUUIDv7 returns a new UUID v7 string. UUIDs are time-ordered:
// IDs generated later sort lexicographically after earlier ones.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.7
func GenerateUUIDv7() string {
	return uuid.Must(uuid.NewV7()).String()
}
