package domain

import (
	"math/big"
	"strings"
)

type ChainId int32

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

// IsZero reports whether the address is the zero sentinel, which the
// registry uses for "no live auction contract yet".
func (a Address) IsZero() bool {
	return a.IsEmpty() || a.Equals(EmptyAddress)
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

type ProposalId uint64

func (id ProposalId) BigInt() *big.Int {
	return new(big.Int).SetUint64(uint64(id))
}

type BlockNumber uint64

type TxHash string
