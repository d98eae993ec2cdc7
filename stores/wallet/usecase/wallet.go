package usecase

import (
	"math/big"
	"sync"
	"sync/atomic"

	bCtx "github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/goroutine"
	"github.com/bidhaus/goapi/base/metrics"
	pricefomatter "github.com/bidhaus/goapi/base/price_fomatter"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/wallet"
)

type WalletUseCaseCfg struct {
	Balances wallet.BalanceRepo
}

type walletUseCase struct {
	balances wallet.BalanceRepo
	met      *metrics.Metrics
}

func NewWalletUseCase(cfg *WalletUseCaseCfg) wallet.UseCase {
	return &walletUseCase{
		balances: cfg.Balances,
		met:      metrics.New("wallet"),
	}
}

type balanceReads struct {
	native    *big.Int
	nativeErr error
	token     *big.Int
	tokenErr  error
}

// fetch reads the two balances concurrently; neither read blocks or fails
// the other.
func (u *walletUseCase) fetch(c bCtx.Ctx, chainId domain.ChainId, account domain.Address) *balanceReads {
	defer u.met.BumpTime("balances.fetch").End()

	r := &balanceReads{}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		r.native, r.nativeErr = u.balances.NativeBalance(c, chainId, account)
	}()
	go func() {
		defer wg.Done()
		r.token, r.tokenErr = u.balances.TokenBalance(c, chainId, account)
	}()
	wg.Wait()
	return r
}

// apply merges a read result into the previous snapshot under the
// documented failure policy: a native failure surfaces an error string and
// leaves both balances at their prior values, a token failure silently
// coerces to "0" with the native balance unaffected.
func apply(prev *wallet.BalanceSnapshot, r *balanceReads) *wallet.BalanceSnapshot {
	next := *prev
	next.IsLoading = false
	next.Error = ""

	if r.nativeErr != nil {
		next.Error = wallet.BalanceReadFailedMessage
		return &next
	}
	next.NativeBalance = pricefomatter.FormatWei(r.native, pricefomatter.NativeDecimals)

	if r.tokenErr != nil {
		// token-balance failures are cosmetic, zero out without surfacing
		next.TokenBalance = "0"
	} else {
		next.TokenBalance = pricefomatter.FormatWei(r.token, pricefomatter.NativeDecimals)
	}

	return &next
}

func (u *walletUseCase) GetBalances(c bCtx.Ctx, chainId domain.ChainId, account domain.Address) (*wallet.BalanceSnapshot, error) {
	r := u.fetch(c, chainId, account)
	snap := apply(wallet.EmptyBalanceSnapshot(account), r)
	if r.nativeErr != nil {
		c.WithField("err", r.nativeErr).Error("native balance read failed")
	}
	return snap, nil
}

func (u *walletUseCase) Subscribe(chainId domain.ChainId, account domain.Address) wallet.Subscription {
	s := &balanceSubscription{
		uc:       u,
		chainId:  chainId,
		account:  account,
		snapshot: wallet.EmptyBalanceSnapshot(account),
	}
	s.Refresh()
	return s
}

type balanceSubscription struct {
	uc      *walletUseCase
	chainId domain.ChainId
	account domain.Address

	gen uint64

	mu       sync.Mutex
	closed   bool
	snapshot *wallet.BalanceSnapshot
}

func (s *balanceSubscription) Snapshot() *wallet.BalanceSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Refresh refetches both balances. Safe to call concurrently with an
// in-flight automatic fetch: every fetch rebuilds from the latest snapshot
// and a superseded fetch is discarded on arrival.
func (s *balanceSubscription) Refresh() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	gen := atomic.AddUint64(&s.gen, 1)
	next := *s.snapshot
	next.IsLoading = true
	s.snapshot = &next
	s.mu.Unlock()

	goroutine.RecoverableGo(func() {
		c := bCtx.WithValue(bCtx.Background(), "account", string(s.account))
		r := s.uc.fetch(c, s.chainId, s.account)
		if r.nativeErr != nil {
			c.WithField("err", r.nativeErr).Error("native balance read failed")
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed || gen != atomic.LoadUint64(&s.gen) {
			return
		}
		s.snapshot = apply(s.snapshot, r)
	})
}

func (s *balanceSubscription) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	atomic.AddUint64(&s.gen, 1)
}
