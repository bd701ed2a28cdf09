package config

import (
	"fmt"
	"time"
)

// RelayerConfig is the configuration of the relayer service, which submits signed
// claims to the destination bridge on behalf of custodial recipients.
type RelayerConfig struct {
	Server       ServerConfig   `yaml:"server"`
	NodeURL      string         `yaml:"node_url" validate:"required,url"`
	ValidatorURL string         `yaml:"validator_url" validate:"required,url"`
	Recipients   []KeyConfig    `yaml:"recipients" validate:"required,min=1"`
	MasterKey    string         `yaml:"master_key"`
	PollInterval time.Duration  `yaml:"poll_interval" default:"5s"`
	MaxRetries   int            `yaml:"max_retries" default:"10"`
	Store        string         `yaml:"store" default:"memory" validate:"oneof=memory postgres"`
	Database     DatabaseConfig `yaml:"database"`
	Logging      LoggingConfig  `yaml:"logging"`
	Shutdown     ShutdownConfig `yaml:"shutdown"`
}

// LoadRelayer loads the relayer configuration from path
func LoadRelayer(path string) (*RelayerConfig, error) {
	cfg := &RelayerConfig{}
	env := &relayerEnv{}
	if err := load(path, "RELAYER", cfg, env, func() { env.apply(cfg) }); err != nil {
		return nil, err
	}
	for i, r := range cfg.Recipients {
		if !r.IsSet() {
			return nil, fmt.Errorf("recipients[%d]: key material is required", i)
		}
		if r.EncryptedKey != "" && r.MasterKeyBase64 == "" && cfg.MasterKey == "" {
			return nil, fmt.Errorf("recipients[%d]: encrypted key requires a master key", i)
		}
	}
	if cfg.Store == StorePostgres && cfg.Database.Database == "" {
		return nil, fmt.Errorf("database.database is required for the postgres store")
	}
	return cfg, nil
}

// relayerEnv lists the relayer settings that can be overridden from the environment.
type relayerEnv struct {
	ServerPort       *int    `envconfig:"SERVER_PORT"`
	NodeURL          *string `envconfig:"NODE_URL"`
	ValidatorURL     *string `envconfig:"VALIDATOR_URL"`
	MasterKey        *string `envconfig:"MASTER_KEY"`
	DatabaseHost     *string `envconfig:"DATABASE_HOST"`
	DatabasePassword *string `envconfig:"DATABASE_PASSWORD"`
	LogLevel         *string `envconfig:"LOG_LEVEL"`
}

func (e *relayerEnv) apply(c *RelayerConfig) {
	setInt(&c.Server.Port, e.ServerPort)
	setString(&c.NodeURL, e.NodeURL)
	setString(&c.ValidatorURL, e.ValidatorURL)
	setString(&c.MasterKey, e.MasterKey)
	setString(&c.Database.Host, e.DatabaseHost)
	setString(&c.Database.Password, e.DatabasePassword)
	setString(&c.Logging.Level, e.LogLevel)
}
