package repository

import (
	"math/big"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	bCtx "github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/env"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/wallet"
	"github.com/bidhaus/goapi/service/chain"
	"github.com/bidhaus/goapi/service/chain/contract"
)

type BalanceRepoCfg struct {
	Chain chain.Client
	Erc20 *contract.Erc20
	// RpcUrls decide token-address resolution: a loopback rpc host means a
	// development chain whose bid token comes from the local deployment.
	RpcUrls        map[int32]string
	TokenAddresses map[domain.ChainId]domain.Address
}

type balanceRepo struct {
	chain          chain.Client
	erc20          *contract.Erc20
	rpcUrls        map[int32]string
	tokenAddresses map[domain.ChainId]domain.Address
}

func NewBalanceRepo(cfg *BalanceRepoCfg) wallet.BalanceRepo {
	return &balanceRepo{
		chain:          cfg.Chain,
		erc20:          cfg.Erc20,
		rpcUrls:        cfg.RpcUrls,
		tokenAddresses: cfg.TokenAddresses,
	}
}

func (r *balanceRepo) NativeBalance(ctx bCtx.Ctx, chainId domain.ChainId, account domain.Address) (*big.Int, error) {
	return r.chain.BalanceAt(ctx, chainId, common.HexToAddress(string(account)))
}

func (r *balanceRepo) TokenBalance(ctx bCtx.Ctx, chainId domain.ChainId, account domain.Address) (*big.Int, error) {
	token, err := r.resolveTokenAddress(chainId)
	if err != nil {
		return nil, err
	}
	return r.erc20.BalanceOf(ctx, chainId, token, account)
}

// resolveTokenAddress picks the locally deployed bid token on development
// chains and the fixed deployed address everywhere else.
func (r *balanceRepo) resolveTokenAddress(chainId domain.ChainId) (domain.Address, error) {
	if isLoopbackRpc(r.rpcUrls[int32(chainId)]) {
		if local := env.LocalTokenAddress(); local != "" {
			return domain.Address(local).ToLower(), nil
		}
	}
	token, ok := r.tokenAddresses[chainId]
	if !ok {
		return "", domain.ErrInvalidChainId
	}
	return token, nil
}

func isLoopbackRpc(rpcUrl string) bool {
	if rpcUrl == "" {
		return false
	}
	u, err := url.Parse(rpcUrl)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return strings.EqualFold(host, "localhost") || host == "127.0.0.1" || host == "::1"
}
