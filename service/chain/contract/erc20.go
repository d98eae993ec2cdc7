package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	baseabi "github.com/bidhaus/goapi/base/abi"
	bCtx "github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/service/chain"
)

// Erc20 wraps the fungible bid token.
type Erc20 struct {
	chainService chain.Client
	abi          ethabi.ABI
}

func NewErc20(chainService chain.Client) *Erc20 {
	return &Erc20{
		chainService: chainService,
		abi:          baseabi.Erc20TokenABI,
	}
}

func (e *Erc20) BalanceOf(ctx bCtx.Ctx, chainId domain.ChainId, token domain.Address, owner domain.Address) (*big.Int, error) {
	method := "balanceOf"
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(string(token)), nil, e.abi, method, common.HexToAddress(string(owner)))
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (e *Erc20) Decimals(ctx bCtx.Ctx, chainId domain.ChainId, token domain.Address) (uint8, error) {
	method := "decimals"
	unpacked, err := e.chainService.Call(ctx, chainId, common.HexToAddress(string(token)), nil, e.abi, method)
	if err != nil {
		return 0, err
	}
	return unpacked[0].(uint8), nil
}
