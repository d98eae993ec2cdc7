package wallet

import (
	"math/big"

	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
)

// BalanceReadFailedMessage is the user-facing error set when the native
// balance read fails. Token-balance failures are silent, see BalanceRepo.
const BalanceReadFailedMessage = "Failed to load wallet balances"

// BalanceSnapshot holds the two independently fetched balances as display
// strings. A token failure never blanks the native balance and vice versa.
type BalanceSnapshot struct {
	Account       domain.Address `json:"account"`
	NativeBalance string         `json:"nativeBalance"`
	TokenBalance  string         `json:"tokenBalance"`
	IsLoading     bool           `json:"isLoading"`
	Error         string         `json:"error,omitempty"`
}

func EmptyBalanceSnapshot(account domain.Address) *BalanceSnapshot {
	return &BalanceSnapshot{
		Account:       account,
		NativeBalance: "0",
		TokenBalance:  "0",
	}
}

// BalanceRepo reads the two raw balances for an account.
type BalanceRepo interface {
	NativeBalance(ctx.Ctx, domain.ChainId, domain.Address) (*big.Int, error)
	TokenBalance(ctx.Ctx, domain.ChainId, domain.Address) (*big.Int, error)
}

// Subscription is one consumer's live balance view of a single account.
type Subscription interface {
	Snapshot() *BalanceSnapshot
	// Refresh refetches both balances; idempotent, last write wins.
	Refresh()
	Close()
}

type UseCase interface {
	// GetBalances performs a one-shot fetch of both balances.
	GetBalances(ctx.Ctx, domain.ChainId, domain.Address) (*BalanceSnapshot, error)
	Subscribe(domain.ChainId, domain.Address) Subscription
}
