package config

import (
	"fmt"
	"time"
)

// ValidatorConfig is the configuration of the validator service, which watches swaps
// and signs redemption claims.
type ValidatorConfig struct {
	Server       ServerConfig   `yaml:"server"`
	NodeURL      string         `yaml:"node_url" validate:"required,url"`
	Key          KeyConfig      `yaml:"key"`
	Routes       []RouteConfig  `yaml:"routes" validate:"required,min=1,dive"`
	PollInterval time.Duration  `yaml:"poll_interval" default:"5s"`
	BatchSize    int            `yaml:"batch_size" default:"100" validate:"min=1,max=1000"`
	ClaimStore   string         `yaml:"claim_store" default:"memory" validate:"oneof=memory redis"`
	Redis        RedisConfig    `yaml:"redis"`
	Logging      LoggingConfig  `yaml:"logging"`
	Shutdown     ShutdownConfig `yaml:"shutdown"`
}

// RouteConfig connects a source bridge, whose swaps are watched, to the destination
// bridge the signed claims are redeemed on.
type RouteConfig struct {
	Source      string `yaml:"source" validate:"required"`
	Destination string `yaml:"destination" validate:"required,nefield=Source"`
}

// RedisConfig configures the redis connection pool.
type RedisConfig struct {
	Address   string `yaml:"address" default:"localhost:6379"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix" default:"bridge-validator"`
	MaxIdle   int    `yaml:"max_idle" default:"4"`
}

// LoadValidator loads the validator configuration from path
func LoadValidator(path string) (*ValidatorConfig, error) {
	cfg := &ValidatorConfig{}
	env := &validatorEnv{}
	if err := load(path, "VALIDATOR", cfg, env, func() { env.apply(cfg) }); err != nil {
		return nil, err
	}
	if !cfg.Key.IsSet() {
		return nil, fmt.Errorf("validator key is required")
	}

	// nonces are source sequence numbers, so a destination may only be fed by one source
	destinations := make(map[string]string, len(cfg.Routes))
	for _, r := range cfg.Routes {
		if src, ok := destinations[r.Destination]; ok {
			return nil, fmt.Errorf("destination %s is fed by both %s and %s", r.Destination, src, r.Source)
		}
		destinations[r.Destination] = r.Source
	}
	return cfg, nil
}

// validatorEnv lists the validator settings that can be overridden from the environment.
type validatorEnv struct {
	ServerPort    *int    `envconfig:"SERVER_PORT"`
	NodeURL       *string `envconfig:"NODE_URL"`
	PrivateKey    *string `envconfig:"PRIVATE_KEY"`
	EncryptedKey  *string `envconfig:"ENCRYPTED_KEY"`
	MasterKey     *string `envconfig:"MASTER_KEY"`
	RedisAddress  *string `envconfig:"REDIS_ADDRESS"`
	RedisPassword *string `envconfig:"REDIS_PASSWORD"`
	LogLevel      *string `envconfig:"LOG_LEVEL"`
}

func (e *validatorEnv) apply(c *ValidatorConfig) {
	setInt(&c.Server.Port, e.ServerPort)
	setString(&c.NodeURL, e.NodeURL)
	setString(&c.Key.PrivateKey, e.PrivateKey)
	setString(&c.Key.EncryptedKey, e.EncryptedKey)
	setString(&c.Key.MasterKeyBase64, e.MasterKey)
	setString(&c.Redis.Address, e.RedisAddress)
	setString(&c.Redis.Password, e.RedisPassword)
	setString(&c.Logging.Level, e.LogLevel)
}
