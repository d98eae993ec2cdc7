package pricefomatter

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// NativeDecimals is the exponent shared by the native currency and the bid
// token on every supported chain.
const NativeDecimals = 18

// FromWei converts a raw on-chain integer amount into display units.
func FromWei(value *big.Int, decimals int32) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(value, -decimals)
}

// FormatWei renders a raw on-chain integer amount as a display-unit string,
// e.g. 1500000000000000000 -> "1.5".
func FormatWei(value *big.Int, decimals int32) string {
	return FromWei(value, decimals).String()
}
