// Package keys manages the secp256k1 keys of validators and custodial relayer
// recipients, including their encryption at rest.
package keys

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/hkdf"
)

// encryptionContext is bound to every ciphertext as GCM additional data.
var encryptionContext = []byte("burnmint-bridge/key/v1")

// Generate creates a new random secp256k1 key.
func Generate() (*ecdsa.PrivateKey, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate secp256k1 key: %w", err)
	}
	return key, nil
}

// Derive deterministically derives a key from a seed and a label using HKDF-SHA256.
func Derive(seed []byte, label string) (*ecdsa.PrivateKey, error) {
	if len(seed) < 32 {
		return nil, fmt.Errorf("seed must be at least 32 bytes")
	}

	reader := hkdf.New(sha256.New, seed, nil, []byte("burnmint-bridge-key-"+label))
	raw := make([]byte, 32)
	if _, err := io.ReadFull(reader, raw); err != nil {
		return nil, fmt.Errorf("failed to derive key seed: %w", err)
	}

	key, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to create private key: %w", err)
	}
	return key, nil
}

// FromHex parses a hex encoded private key with or without 0x prefix.
func FromHex(s string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}

// ToHex encodes a private key as 0x prefixed hex.
func ToHex(key *ecdsa.PrivateKey) string {
	return fmt.Sprintf("0x%x", crypto.FromECDSA(key))
}

// Address returns the address controlled by key.
func Address(key *ecdsa.PrivateKey) common.Address {
	return crypto.PubkeyToAddress(key.PublicKey)
}

// Encrypt seals the private key with AES-256-GCM under masterKey.
// The result is base64 of nonce || ciphertext || tag.
func Encrypt(key *ecdsa.PrivateKey, masterKey []byte) (string, error) {
	gcm, err := newGCM(masterKey)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, crypto.FromECDSA(key), encryptionContext)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a key sealed by Encrypt.
func Decrypt(encrypted string, masterKey []byte) (*ecdsa.PrivateKey, error) {
	gcm, err := newGCM(masterKey)
	if err != nil {
		return nil, err
	}

	sealed, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encrypted))
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]

	raw, err := gcm.Open(nil, nonce, ciphertext, encryptionContext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}
	key, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("decrypted key is invalid: %w", err)
	}
	return key, nil
}

func newGCM(masterKey []byte) (cipher.AEAD, error) {
	if len(masterKey) != 32 {
		return nil, fmt.Errorf("master key must be 32 bytes (AES-256)")
	}
	block, err := aes.NewCipher(masterKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// GenerateMasterKey generates a new random 32-byte master key.
func GenerateMasterKey() ([]byte, error) {
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate master key: %w", err)
	}
	return key, nil
}

// MasterKeyFromBase64 decodes a base64-encoded master key
func MasterKeyFromBase64(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode master key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("master key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}

// MasterKeyToBase64 encodes a master key as base64 for storage
func MasterKeyToBase64(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}

// Load resolves a key from its plain hex form or from its encrypted form. masterKeyB64
// is used when the encrypted form is given.
func Load(privateKeyHex, encrypted, masterKeyB64 string) (*ecdsa.PrivateKey, error) {
	switch {
	case privateKeyHex != "":
		return FromHex(privateKeyHex)
	case encrypted != "":
		master, err := MasterKeyFromBase64(masterKeyB64)
		if err != nil {
			return nil, err
		}
		return Decrypt(encrypted, master)
	default:
		return nil, fmt.Errorf("no key material configured")
	}
}
