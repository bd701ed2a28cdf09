package bridge

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// EncodedClaimLength is the size of a packed claim: two addresses and four uint256 words.
const EncodedClaimLength = 2*common.AddressLength + 4*32

// EncodeClaim packs the claim fields in the order
// sender, recipient, amount, nonce, chainIdFrom, chainIdTo, matching
// abi.encodePacked(address, address, uint256, uint256, uint256, uint256).
func EncodeClaim(c *Claim) ([]byte, error) {
	amount, err := toUint256(c.Amount)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, EncodedClaimLength)
	buf = append(buf, c.Sender.Bytes()...)
	buf = append(buf, c.Recipient.Bytes()...)
	word := amount.Bytes32()
	buf = append(buf, word[:]...)
	buf = appendUint64Word(buf, c.Nonce)
	buf = appendUint64Word(buf, c.ChainIDFrom)
	buf = appendUint64Word(buf, c.ChainIDTo)
	return buf, nil
}

// ClaimHash returns keccak256 of the packed claim.
func ClaimHash(c *Claim) (common.Hash, error) {
	packed, err := EncodeClaim(c)
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(packed), nil
}

// SigningDigest returns the EIP-191 personal message digest of a claim hash,
// which is what the validator key actually signs.
func SigningDigest(claimHash common.Hash) common.Hash {
	return common.BytesToHash(accounts.TextHash(claimHash.Bytes()))
}

func appendUint64Word(buf []byte, v uint64) []byte {
	var word [32]byte
	binary.BigEndian.PutUint64(word[24:], v)
	return append(buf, word[:]...)
}

func toUint256(v *big.Int) (*uint256.Int, error) {
	if v == nil || v.Sign() <= 0 {
		return nil, ErrZeroAmount
	}
	u, overflow := uint256.FromBig(v)
	if overflow {
		return nil, ErrAmountOverflow
	}
	return u, nil
}

// CheckAmount reports whether amount is a positive value that fits in 256 bits.
func CheckAmount(amount *big.Int) error {
	_, err := toUint256(amount)
	return err
}
