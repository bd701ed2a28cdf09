package config

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/chainsafe/burnmint-bridge/pkg/bridge"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// NodeConfig is the configuration of the bridge node, which hosts token ledgers and
// the bridge instances operating on them.
type NodeConfig struct {
	Server     ServerConfig   `yaml:"server"`
	Store      string         `yaml:"store" default:"memory" validate:"oneof=memory postgres"`
	Database   DatabaseConfig `yaml:"database"`
	Ledgers    []LedgerConfig `yaml:"ledgers" validate:"required,min=1,dive"`
	Bridges    []BridgeEntry  `yaml:"bridges" validate:"required,min=1,dive"`
	GrantRoles bool           `yaml:"grant_roles"`
	Auth       AuthConfig     `yaml:"auth"`
	NATS       NATSConfig     `yaml:"nats"`
	Logging    LoggingConfig  `yaml:"logging"`
	Shutdown   ShutdownConfig `yaml:"shutdown"`
}

// LedgerConfig describes one hosted token ledger.
type LedgerConfig struct {
	ID              string            `yaml:"id" validate:"required"`
	ChainID         uint64            `yaml:"chain_id" validate:"required"`
	Admin           string            `yaml:"admin" validate:"required,eth_addr"`
	InitialBalances map[string]string `yaml:"initial_balances"`
}

// BridgeEntry describes one bridge instance.
type BridgeEntry struct {
	ID          string `yaml:"id" validate:"required,excludes=/"`
	Address     string `yaml:"address" validate:"required,eth_addr"`
	Validator   string `yaml:"validator" validate:"required,eth_addr"`
	Ledger      string `yaml:"ledger" validate:"required"`
	ChainIDFrom uint64 `yaml:"chain_id_from" validate:"required"`
	ChainIDTo   uint64 `yaml:"chain_id_to" validate:"required,nefield=ChainIDFrom"`
}

// AuthConfig configures request authentication.
type AuthConfig struct {
	// SignatureWindow bounds the age of X-Timestamp on signed requests.
	SignatureWindow time.Duration `yaml:"signature_window" default:"5m"`
	JWKSURL         string        `yaml:"jwks_url"`
	JWTIssuer       string        `yaml:"jwt_issuer"`
}

// NATSConfig configures optional event publishing.
type NATSConfig struct {
	URL           string `yaml:"url"`
	SubjectPrefix string `yaml:"subject_prefix" default:"bridge"`
}

// LoadNode loads the bridge node configuration from path
func LoadNode(path string) (*NodeConfig, error) {
	cfg := &NodeConfig{}
	env := &nodeEnv{}
	if err := load(path, "BRIDGE_NODE", cfg, env, func() { env.apply(cfg) }); err != nil {
		return nil, err
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// nodeEnv lists the node settings that can be overridden from the environment.
type nodeEnv struct {
	ServerPort       *int    `envconfig:"SERVER_PORT"`
	Store            *string `envconfig:"STORE"`
	DatabaseHost     *string `envconfig:"DATABASE_HOST"`
	DatabasePort     *int    `envconfig:"DATABASE_PORT"`
	DatabaseUser     *string `envconfig:"DATABASE_USER"`
	DatabasePassword *string `envconfig:"DATABASE_PASSWORD"`
	DatabaseName     *string `envconfig:"DATABASE_NAME"`
	JWKSURL          *string `envconfig:"AUTH_JWKS_URL"`
	NATSURL          *string `envconfig:"NATS_URL"`
	LogLevel         *string `envconfig:"LOG_LEVEL"`
}

func (e *nodeEnv) apply(c *NodeConfig) {
	setInt(&c.Server.Port, e.ServerPort)
	setString(&c.Store, e.Store)
	setString(&c.Database.Host, e.DatabaseHost)
	setInt(&c.Database.Port, e.DatabasePort)
	setString(&c.Database.User, e.DatabaseUser)
	setString(&c.Database.Password, e.DatabasePassword)
	setString(&c.Database.Database, e.DatabaseName)
	setString(&c.Auth.JWKSURL, e.JWKSURL)
	setString(&c.NATS.URL, e.NATSURL)
	setString(&c.Logging.Level, e.LogLevel)
}

func (c *NodeConfig) check() error {
	ledgers := make(map[string]struct{}, len(c.Ledgers))
	for _, l := range c.Ledgers {
		if _, dup := ledgers[l.ID]; dup {
			return fmt.Errorf("duplicate ledger id %q", l.ID)
		}
		ledgers[l.ID] = struct{}{}
		if _, err := l.Setup(); err != nil {
			return err
		}
	}

	bridges := make(map[string]struct{}, len(c.Bridges))
	for _, b := range c.Bridges {
		if _, dup := bridges[b.ID]; dup {
			return fmt.Errorf("duplicate bridge id %q", b.ID)
		}
		bridges[b.ID] = struct{}{}
		if _, ok := ledgers[b.Ledger]; !ok {
			return fmt.Errorf("bridge %s: unknown ledger %q", b.ID, b.Ledger)
		}
	}

	if c.Store == StorePostgres && c.Database.Database == "" {
		return fmt.Errorf("database.database is required for the postgres store")
	}
	return nil
}

// LedgerIDs returns the configured ledger IDs.
func (c *NodeConfig) LedgerIDs() []string {
	ids := make([]string, 0, len(c.Ledgers))
	for _, l := range c.Ledgers {
		ids = append(ids, l.ID)
	}
	return ids
}

// BridgeConfigs converts the bridge entries into instance configs.
func (c *NodeConfig) BridgeConfigs() []bridge.Config {
	out := make([]bridge.Config, 0, len(c.Bridges))
	for _, b := range c.Bridges {
		out = append(out, bridge.Config{
			ID:          b.ID,
			Address:     common.HexToAddress(b.Address),
			Validator:   common.HexToAddress(b.Validator),
			Ledger:      b.Ledger,
			ChainIDFrom: b.ChainIDFrom,
			ChainIDTo:   b.ChainIDTo,
		})
	}
	return out
}

// LedgerSetups converts the ledger entries into bootstrap descriptions.
func (c *NodeConfig) LedgerSetups() ([]bridge.LedgerSetup, error) {
	out := make([]bridge.LedgerSetup, 0, len(c.Ledgers))
	for _, l := range c.Ledgers {
		setup, err := l.Setup()
		if err != nil {
			return nil, err
		}
		out = append(out, setup)
	}
	return out, nil
}

// Setup converts the ledger entry into a bootstrap description.
func (l LedgerConfig) Setup() (bridge.LedgerSetup, error) {
	setup := bridge.LedgerSetup{
		ID:              l.ID,
		Admin:           common.HexToAddress(l.Admin),
		InitialBalances: make(map[common.Address]*big.Int, len(l.InitialBalances)),
	}
	for account, amount := range l.InitialBalances {
		if !common.IsHexAddress(account) {
			return bridge.LedgerSetup{}, fmt.Errorf("ledger %s: invalid account %q", l.ID, account)
		}
		v, ok := new(big.Int).SetString(amount, 10)
		if !ok || bridge.CheckAmount(v) != nil {
			return bridge.LedgerSetup{}, fmt.Errorf("ledger %s: invalid initial balance %q for %s", l.ID, amount, account)
		}
		setup.InitialBalances[common.HexToAddress(account)] = v
	}
	return setup, nil
}
