// Package config loads the YAML configuration of the bridge binaries.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host" default:"0.0.0.0"`
	Port int    `yaml:"port" default:"8080" validate:"min=1,max=65535"`
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host" default:"localhost"`
	Port     int    `yaml:"port" default:"5432"`
	User     string `yaml:"user" default:"postgres"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode" default:"disable"`
	// MaxOpenConns caps the connection pool. Zero leaves database/sql unbounded.
	MaxOpenConns    int           `yaml:"max_open_conns" default:"10"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" default:"30m"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info"`
	Format     string `yaml:"format" default:"json" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" default:"stdout"`
}

// ShutdownConfig contains graceful shutdown settings
type ShutdownConfig struct {
	Timeout time.Duration `yaml:"timeout" default:"30s"`
}

// KeyConfig describes a secp256k1 private key, either as hex or encrypted with a master key.
type KeyConfig struct {
	PrivateKey      string `yaml:"private_key"`
	EncryptedKey    string `yaml:"encrypted_key"`
	MasterKeyBase64 string `yaml:"master_key"`
}

// IsSet reports whether any key material is configured.
func (c KeyConfig) IsSet() bool {
	return c.PrivateKey != "" || c.EncryptedKey != ""
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// load reads path into cfg and applies struct defaults. Environment variables under
// prefix are decoded into env and merged by apply before the validation tags run.
// Only the fields listed in env can be overridden.
func load(path, prefix string, cfg, env any, apply func()) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := defaults.Set(cfg); err != nil {
		return fmt.Errorf("failed to apply config defaults: %w", err)
	}
	if err := envconfig.Process(prefix, env); err != nil {
		return fmt.Errorf("failed to read environment overrides: %w", err)
	}
	apply()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
