// Package config loads and validates the liftkit.json configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "liftkit.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultTemplatesDir is the default template root.
	DefaultTemplatesDir = "templates"

	// DefaultDeferredTimeoutMS bounds the wait for deferred snippets.
	DefaultDeferredTimeoutMS = 10000
)

// Config is the complete liftkit.json configuration.
type Config struct {
	// Host and Port form the listen address.
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`

	// Templates is the directory served templates are read from.
	Templates string `json:"templates,omitempty"`

	// DevMode enables structural validation and disables script
	// minification.
	DevMode bool `json:"devMode,omitempty"`

	// StripComments drops HTML comments from merged output.
	StripComments bool `json:"stripComments,omitempty"`

	// GCTracking emits the page GC token on stateful pages.
	GCTracking bool `json:"gcTracking,omitempty"`

	// AutoIncludeAJAX appends the client runtime script to every page.
	AutoIncludeAJAX bool `json:"autoIncludeAjax,omitempty"`

	// AutoIncludeComet emits comet session attributes on stateful pages.
	AutoIncludeComet bool `json:"autoIncludeComet,omitempty"`

	// DeferredTimeoutMS is the deferred-snippet wait bound in
	// milliseconds.
	DeferredTimeoutMS int `json:"deferredTimeoutMs,omitempty" validate:"omitempty,min=1"`

	// ScriptStore selects where published page scripts live.
	ScriptStore ScriptStoreConfig `json:"scriptStore,omitempty"`
}

// ScriptStoreConfig selects and configures the page-script store backend.
type ScriptStoreConfig struct {
	// Backend is "memory" or "s3".
	Backend string `json:"backend,omitempty" validate:"omitempty,oneof=memory s3"`

	// Bucket and Prefix apply to the s3 backend.
	Bucket string `json:"bucket,omitempty"`
	Prefix string `json:"prefix,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Host:              DefaultHost,
		Port:              DefaultPort,
		Templates:         DefaultTemplatesDir,
		DeferredTimeoutMS: DefaultDeferredTimeoutMS,
		ScriptStore:       ScriptStoreConfig{Backend: "memory"},
	}
}

// Load reads and validates the configuration file at path. A missing file
// yields the defaults without error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Templates == "" {
		c.Templates = DefaultTemplatesDir
	}
	if c.DeferredTimeoutMS == 0 {
		c.DeferredTimeoutMS = DefaultDeferredTimeoutMS
	}
	if c.ScriptStore.Backend == "" {
		c.ScriptStore.Backend = "memory"
	}
}

// Validate checks the configuration against its struct constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.ScriptStore.Backend == "s3" && c.ScriptStore.Bucket == "" {
		return fmt.Errorf("invalid config: s3 script store requires a bucket")
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// DeferredTimeout returns the deferred wait bound as a duration.
func (c *Config) DeferredTimeout() time.Duration {
	return time.Duration(c.DeferredTimeoutMS) * time.Millisecond
}
