package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nodeYAML = `
store: memory
ledgers:
  - id: mumbai
    chain_id: 80001
    admin: "0x00000000000000000000000000000000000000a1"
    initial_balances:
      "0x000000000000000000000000000000000000000a": "100000000000000000000"
  - id: bsc
    chain_id: 97
    admin: "0x00000000000000000000000000000000000000a2"
bridges:
  - id: mumbai-bsc
    address: "0x00000000000000000000000000000000000000b1"
    validator: "0x00000000000000000000000000000000000000ff"
    ledger: mumbai
    chain_id_from: 80001
    chain_id_to: 97
  - id: bsc-mumbai
    address: "0x00000000000000000000000000000000000000b2"
    validator: "0x00000000000000000000000000000000000000ff"
    ledger: bsc
    chain_id_from: 97
    chain_id_to: 80001
grant_roles: true
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadNode(t *testing.T) {
	cfg, err := LoadNode(writeConfig(t, nodeYAML))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 5*time.Minute, cfg.Auth.SignatureWindow)
	assert.Equal(t, 30*time.Second, cfg.Shutdown.Timeout)
	assert.True(t, cfg.GrantRoles)
	assert.Equal(t, []string{"mumbai", "bsc"}, cfg.LedgerIDs())

	bridges := cfg.BridgeConfigs()
	require.Len(t, bridges, 2)
	assert.Equal(t, uint64(80001), bridges[0].ChainIDFrom)
	assert.Equal(t, uint64(97), bridges[0].ChainIDTo)
	assert.Equal(t, common.HexToAddress("0x00000000000000000000000000000000000000ff"), bridges[0].Validator)

	setups, err := cfg.LedgerSetups()
	require.NoError(t, err)
	balance := setups[0].InitialBalances[common.HexToAddress("0x000000000000000000000000000000000000000a")]
	require.NotNil(t, balance)
	assert.Equal(t, "100000000000000000000", balance.String())
}

func TestLoadNode_EnvOverrides(t *testing.T) {
	t.Setenv("BRIDGE_NODE_SERVER_PORT", "9999")
	t.Setenv("BRIDGE_NODE_DATABASE_PASSWORD", "secret")
	t.Setenv("BRIDGE_NODE_AUTH_JWKS_URL", "https://issuer.example/jwks")
	t.Setenv("BRIDGE_NODE_LOG_LEVEL", "debug")

	cfg, err := LoadNode(writeConfig(t, nodeYAML))
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "https://issuer.example/jwks", cfg.Auth.JWKSURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// settings without an override keep their file or default value
	assert.Equal(t, "memory", cfg.Store)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestLoadNode_EnvOverrideFailsValidation(t *testing.T) {
	t.Setenv("BRIDGE_NODE_STORE", "sqlite")
	_, err := LoadNode(writeConfig(t, nodeYAML))
	require.Error(t, err)
}

func TestLoadNode_Invalid(t *testing.T) {
	tests := map[string]string{
		"same chain": `
ledgers: [{id: a, chain_id: 1, admin: "0x00000000000000000000000000000000000000a1"}]
bridges: [{id: b, address: "0x00000000000000000000000000000000000000b1", validator: "0x00000000000000000000000000000000000000ff", ledger: a, chain_id_from: 1, chain_id_to: 1}]
`,
		"unknown ledger": `
ledgers: [{id: a, chain_id: 1, admin: "0x00000000000000000000000000000000000000a1"}]
bridges: [{id: b, address: "0x00000000000000000000000000000000000000b1", validator: "0x00000000000000000000000000000000000000ff", ledger: z, chain_id_from: 1, chain_id_to: 2}]
`,
		"bad address": `
ledgers: [{id: a, chain_id: 1, admin: "not-an-address"}]
bridges: [{id: b, address: "0x00000000000000000000000000000000000000b1", validator: "0x00000000000000000000000000000000000000ff", ledger: a, chain_id_from: 1, chain_id_to: 2}]
`,
		"duplicate bridge": `
ledgers: [{id: a, chain_id: 1, admin: "0x00000000000000000000000000000000000000a1"}]
bridges:
  - {id: b, address: "0x00000000000000000000000000000000000000b1", validator: "0x00000000000000000000000000000000000000ff", ledger: a, chain_id_from: 1, chain_id_to: 2}
  - {id: b, address: "0x00000000000000000000000000000000000000b1", validator: "0x00000000000000000000000000000000000000ff", ledger: a, chain_id_from: 2, chain_id_to: 1}
`,
		"slash in bridge id": `
ledgers: [{id: a, chain_id: 1, admin: "0x00000000000000000000000000000000000000a1"}]
bridges: [{id: bootstrap/a, address: "0x00000000000000000000000000000000000000b1", validator: "0x00000000000000000000000000000000000000ff", ledger: a, chain_id_from: 1, chain_id_to: 2}]
`,
		"postgres without database": nodeYAML + "\nstore: postgres\n",
		"no bridges": `
ledgers: [{id: a, chain_id: 1, admin: "0x00000000000000000000000000000000000000a1"}]
`,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadNode(writeConfig(t, content))
			require.Error(t, err)
		})
	}
}

func TestLoadValidator(t *testing.T) {
	cfg, err := LoadValidator(writeConfig(t, `
node_url: http://localhost:8080
key:
  private_key: "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
routes:
  - {source: mumbai-bsc, destination: bsc-mumbai}
`))
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, "memory", cfg.ClaimStore)
	assert.Equal(t, "bridge-validator", cfg.Redis.KeyPrefix)

	_, err = LoadValidator(writeConfig(t, `
node_url: http://localhost:8080
key: {private_key: "0x01"}
routes:
  - {source: a, destination: c}
  - {source: b, destination: c}
`))
	require.Error(t, err)

	_, err = LoadValidator(writeConfig(t, `
node_url: http://localhost:8080
routes: [{source: a, destination: b}]
`))
	require.Error(t, err)
}

func TestLoadRelayer(t *testing.T) {
	cfg, err := LoadRelayer(writeConfig(t, `
node_url: http://localhost:8080
validator_url: http://localhost:8081
recipients:
  - private_key: "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
`))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.MaxRetries)

	_, err = LoadRelayer(writeConfig(t, `
node_url: http://localhost:8080
validator_url: http://localhost:8081
recipients:
  - encrypted_key: "abc"
`))
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{Level: "debug", Format: "console"}, "test")
	require.NoError(t, err)
	require.NotNil(t, logger)

	_, err = NewLogger(LoggingConfig{Level: "loud", Format: "json"}, "test")
	require.Error(t, err)
}
