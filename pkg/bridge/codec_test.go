package bridge

import (
	"math"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tenTokens() *big.Int {
	return new(big.Int).Mul(big.NewInt(10), big.NewInt(1e18))
}

func testClaim() *Claim {
	return &Claim{
		Sender:      common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Recipient:   common.HexToAddress("0x2222222222222222222222222222222222222222"),
		Amount:      tenTokens(),
		Nonce:       1,
		ChainIDFrom: 80001,
		ChainIDTo:   97,
	}
}

func TestEncodeClaim_Layout(t *testing.T) {
	c := testClaim()
	packed, err := EncodeClaim(c)
	require.NoError(t, err)
	require.Len(t, packed, EncodedClaimLength)

	assert.Equal(t, c.Sender.Bytes(), packed[0:20])
	assert.Equal(t, c.Recipient.Bytes(), packed[20:40])
	assert.Equal(t, common.LeftPadBytes(c.Amount.Bytes(), 32), packed[40:72])
	assert.Equal(t, common.LeftPadBytes(big.NewInt(1).Bytes(), 32), packed[72:104])
	assert.Equal(t, common.LeftPadBytes(big.NewInt(80001).Bytes(), 32), packed[104:136])
	assert.Equal(t, common.LeftPadBytes(big.NewInt(97).Bytes(), 32), packed[136:168])
}

func TestClaimHash_KnownVector(t *testing.T) {
	hash, err := ClaimHash(testClaim())
	require.NoError(t, err)
	assert.Equal(t, "0xa2e0dd0b89677b2020729e6dd61f0062f688d0b75f82a669189adb67a43ed399", hash.Hex())

	digest := SigningDigest(hash)
	assert.Equal(t, "0x135705e8958c9ac225869429e3a945106d7398d63844aabc71e530945619528c", digest.Hex())
}

func TestClaimHash_DirectionScoped(t *testing.T) {
	forward, err := ClaimHash(testClaim())
	require.NoError(t, err)

	reversed := testClaim()
	reversed.ChainIDFrom, reversed.ChainIDTo = reversed.ChainIDTo, reversed.ChainIDFrom
	backward, err := ClaimHash(reversed)
	require.NoError(t, err)

	assert.NotEqual(t, forward, backward)
	assert.Equal(t, "0x0ec1a31f0a78bf73743c488471d9fdedad9ab4f192609e562657f914f2408454", backward.Hex())
}

func TestClaimHash_EveryFieldMatters(t *testing.T) {
	base, err := ClaimHash(testClaim())
	require.NoError(t, err)

	mutations := map[string]func(c *Claim){
		"sender":    func(c *Claim) { c.Sender = common.HexToAddress("0x3333333333333333333333333333333333333333") },
		"recipient": func(c *Claim) { c.Recipient = common.HexToAddress("0x3333333333333333333333333333333333333333") },
		"amount":    func(c *Claim) { c.Amount = new(big.Int).Add(c.Amount, big.NewInt(1)) },
		"nonce":     func(c *Claim) { c.Nonce = 2 },
		"from":      func(c *Claim) { c.ChainIDFrom = 1 },
		"to":        func(c *Claim) { c.ChainIDTo = 1 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			c := testClaim()
			mutate(c)
			h, err := ClaimHash(c)
			require.NoError(t, err)
			assert.NotEqual(t, base, h)
		})
	}
}

func TestEncodeClaim_RejectsInvalidAmounts(t *testing.T) {
	tests := []struct {
		name   string
		amount *big.Int
		want   error
	}{
		{"nil", nil, ErrZeroAmount},
		{"zero", big.NewInt(0), ErrZeroAmount},
		{"negative", big.NewInt(-1), ErrZeroAmount},
		{"overflow", new(big.Int).Lsh(big.NewInt(1), 256), ErrAmountOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClaim()
			c.Amount = tt.amount
			_, err := EncodeClaim(c)
			require.ErrorIs(t, err, tt.want)
		})
	}

	maxAmount := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	require.NoError(t, CheckAmount(maxAmount))
}

func TestEncodeClaim_MaxUint64Words(t *testing.T) {
	c := testClaim()
	c.Nonce = math.MaxUint64
	c.ChainIDTo = math.MaxUint64
	packed, err := EncodeClaim(c)
	require.NoError(t, err)

	want := new(big.Int).SetUint64(math.MaxUint64)
	assert.Equal(t, common.LeftPadBytes(want.Bytes(), 32), packed[72:104])
	assert.Equal(t, common.LeftPadBytes(want.Bytes(), 32), packed[136:168])
	// the high 24 bytes of each word can never be set
	assert.Equal(t, make([]byte, 24), packed[72:96])
}
