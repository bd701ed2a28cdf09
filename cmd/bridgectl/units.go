package main

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// parseUnits converts a token amount with up to decimals fractional digits into base
// units.
func parseUnits(s string, decimals int32) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if d.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	base := d.Shift(decimals)
	if !base.IsInteger() {
		return nil, fmt.Errorf("amount %s has more than %d decimals", s, decimals)
	}
	return base.BigInt(), nil
}

// formatUnits renders a base unit amount with decimals fractional digits.
func formatUnits(v *big.Int, decimals int32) string {
	if decimals <= 0 {
		return v.String()
	}
	return decimal.NewFromBigInt(v, -decimals).StringFixed(decimals)
}

func formatBaseUnits(s string, decimals int32) string {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return s
	}
	return formatUnits(v, decimals)
}
