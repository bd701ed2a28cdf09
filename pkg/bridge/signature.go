package bridge

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Bytes returns the 65 byte r || s || v form with v in {27, 28}.
func (s Signature) Bytes() []byte {
	out := make([]byte, crypto.SignatureLength)
	copy(out[0:32], s.R[:])
	copy(out[32:64], s.S[:])
	out[64] = s.V
	if out[64] < 27 {
		out[64] += 27
	}
	return out
}

// Hex returns the 0x prefixed hex form of Bytes.
func (s Signature) Hex() string {
	return "0x" + hex.EncodeToString(s.Bytes())
}

// SignatureFromBytes splits a 65 byte r || s || v signature.
func SignatureFromBytes(b []byte) (Signature, error) {
	if len(b) != crypto.SignatureLength {
		return Signature{}, fmt.Errorf("invalid signature length: expected %d, got %d", crypto.SignatureLength, len(b))
	}
	return Signature{
		R: common.BytesToHash(b[0:32]),
		S: common.BytesToHash(b[32:64]),
		V: b[64],
	}, nil
}

// ParseSignature decodes a hex encoded 65 byte signature.
func ParseSignature(s string) (Signature, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return Signature{}, fmt.Errorf("invalid signature hex: %w", err)
	}
	return SignatureFromBytes(b)
}

// RecoverSigner recovers the address that produced sig over the EIP-191 digest of claimHash.
func RecoverSigner(claimHash common.Hash, sig Signature) (common.Address, error) {
	raw := sig.Bytes()
	// secp256k1 recovery expects v in {0, 1}
	raw[64] -= 27
	if raw[64] > 1 {
		return common.Address{}, fmt.Errorf("invalid recovery id %d", sig.V)
	}

	digest := SigningDigest(claimHash)
	pub, err := crypto.SigToPub(digest.Bytes(), raw)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// Verifier checks claim signatures against one validator address.
type Verifier struct {
	validator common.Address
}

// NewVerifier creates a verifier bound to the validator address.
func NewVerifier(validator common.Address) *Verifier {
	return &Verifier{validator: validator}
}

// Verify returns ErrInvalidSignature unless sig over claimHash recovers to the validator.
func (v *Verifier) Verify(claimHash common.Hash, sig Signature) error {
	signer, err := RecoverSigner(claimHash, sig)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	if signer != v.validator {
		return fmt.Errorf("%w: recovered %s", ErrInvalidSignature, signer.Hex())
	}
	return nil
}

// Signer produces claim signatures with a validator key.
type Signer struct {
	key *ecdsa.PrivateKey
}

// NewSigner wraps a secp256k1 private key.
func NewSigner(key *ecdsa.PrivateKey) *Signer {
	return &Signer{key: key}
}

// Address returns the address of the signing key.
func (s *Signer) Address() common.Address {
	return crypto.PubkeyToAddress(s.key.PublicKey)
}

// SignClaim hashes the claim and signs its EIP-191 digest.
func (s *Signer) SignClaim(c *Claim) (common.Hash, Signature, error) {
	hash, err := ClaimHash(c)
	if err != nil {
		return common.Hash{}, Signature{}, err
	}
	raw, err := crypto.Sign(SigningDigest(hash).Bytes(), s.key)
	if err != nil {
		return common.Hash{}, Signature{}, fmt.Errorf("failed to sign claim: %w", err)
	}
	sig, err := SignatureFromBytes(raw)
	if err != nil {
		return common.Hash{}, Signature{}, err
	}
	sig.V += 27
	return hash, sig, nil
}
