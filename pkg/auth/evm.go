// Package auth authenticates API callers as secp256k1 addresses, either from an
// EIP-191 request signature or from a JWT issued for the address.
package auth

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// HeaderSignature carries the hex encoded EIP-191 signature of the request message.
	HeaderSignature = "X-Signature"
	// HeaderTimestamp carries the unix time in seconds the request was signed at.
	HeaderTimestamp = "X-Timestamp"
)

// RequestMessage builds the message a caller signs to authenticate a request.
func RequestMessage(method, path string, body []byte, timestamp int64) []byte {
	return []byte(fmt.Sprintf("bridge-request:%s:%s:%s:%d",
		strings.ToUpper(method), path, crypto.Keccak256Hash(body).Hex(), timestamp))
}

// SignRequest signs the request message with key and returns the hex signature.
func SignRequest(key *ecdsa.PrivateKey, method, path string, body []byte, timestamp int64) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash(RequestMessage(method, path, body, timestamp)), key)
	if err != nil {
		return "", fmt.Errorf("failed to sign request: %w", err)
	}
	sig[64] += 27
	return "0x" + hex.EncodeToString(sig), nil
}

// VerifyEIP191Signature verifies an EIP-191 personal_sign signature
// Returns the recovered address if valid
func VerifyEIP191Signature(message []byte, signature string) (common.Address, error) {
	sigBytes, err := hex.DecodeString(strings.TrimPrefix(signature, "0x"))
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid signature hex: %w", err)
	}
	if len(sigBytes) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("invalid signature length: expected %d, got %d", crypto.SignatureLength, len(sigBytes))
	}

	// v can be 0, 1, 27, or 28
	if sigBytes[64] >= 27 {
		sigBytes[64] -= 27
	}
	if sigBytes[64] > 1 {
		return common.Address{}, fmt.Errorf("invalid recovery id %d", sigBytes[64])
	}

	pubKey, err := crypto.SigToPub(accounts.TextHash(message), sigBytes)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}
	return crypto.PubkeyToAddress(*pubKey), nil
}

// ParseTimestamp parses the X-Timestamp header and checks it lies within window of now.
func ParseTimestamp(raw string, now time.Time, window time.Duration) (int64, error) {
	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", raw)
	}
	skew := now.Sub(time.Unix(ts, 0))
	if skew < 0 {
		skew = -skew
	}
	if skew > window {
		return 0, fmt.Errorf("timestamp outside the accepted window of %s", window)
	}
	return ts, nil
}

// ValidateAddress checks if a string is a valid 0x prefixed address
func ValidateAddress(address string) bool {
	return strings.HasPrefix(address, "0x") && common.IsHexAddress(address)
}
