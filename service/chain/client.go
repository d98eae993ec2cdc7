package chain

import (
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	bCtx "github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/log"
	"github.com/bidhaus/goapi/domain"
)

type ClientCfg struct {
	RpcUrls map[int32]string
}

// Client is the read-only boundary to the chain: abi-encoded contract
// calls, log queries and native balance lookups. All operations are pure
// reads and may be slow; callers own degradation policy.
type Client interface {
	Call(bCtx.Ctx, domain.ChainId, common.Address, *big.Int, abi.ABI, string, ...interface{}) ([]interface{}, error)
	FilterLogs(bCtx.Ctx, domain.ChainId, ethereum.FilterQuery) ([]types.Log, error)
	BalanceAt(bCtx.Ctx, domain.ChainId, common.Address) (*big.Int, error)
	// Available reports whether an rpc client is configured and dialed for
	// the chain, so aggregators can stay idle during provider setup.
	Available(domain.ChainId) bool
}

type clientImpl struct {
	clients map[domain.ChainId]*ethclient.Client
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	var anyerr error
	clients := make(map[domain.ChainId]*ethclient.Client)
	for chainId, url := range cfg.RpcUrls {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			anyerr = err
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"url":     url,
			}).Warn("failed to dial rpc")
			// soft warning, still let the server start
			continue
		}
		clients[domain.ChainId(chainId)] = client
	}
	return &clientImpl{clients: clients}, anyerr
}

func (c *clientImpl) Available(chainId domain.ChainId) bool {
	_, ok := c.clients[chainId]
	return ok
}

func (c *clientImpl) Call(ctx bCtx.Ctx, chainId domain.ChainId, addr common.Address, blk *big.Int, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return nil, domain.ErrChainUnavailable
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	res, err := client.CallContract(ctx, msg, blk)
	if err != nil {
		ctx.WithField("err", err).Error("client.CallContract failed")
		return nil, err
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		ctx.WithField("err", err).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}

func (c *clientImpl) FilterLogs(ctx bCtx.Ctx, chainId domain.ChainId, query ethereum.FilterQuery) ([]types.Log, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return nil, domain.ErrChainUnavailable
	}
	logs, err := client.FilterLogs(ctx, query)
	if err != nil {
		ctx.WithField("err", err).Error("client.FilterLogs failed")
		return nil, err
	}
	return logs, nil
}

func (c *clientImpl) BalanceAt(ctx bCtx.Ctx, chainId domain.ChainId, addr common.Address) (*big.Int, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return nil, domain.ErrChainUnavailable
	}
	balance, err := client.BalanceAt(ctx, addr, nil)
	if err != nil {
		ctx.WithField("err", err).Error("client.BalanceAt failed")
		return nil, err
	}
	return balance, nil
}
