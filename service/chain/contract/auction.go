package contract

import (
	"math/big"

	"github.com/ethereum/go-ethereum"
	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	baseabi "github.com/bidhaus/goapi/base/abi"
	bCtx "github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/log"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/service/chain"
)

// Auction wraps one live auction contract: the three scalar reads and the
// Bid event history.
type Auction struct {
	chainService chain.Client
	abi          ethabi.ABI
}

func NewAuction(chainService chain.Client) *Auction {
	return &Auction{
		chainService: chainService,
		abi:          baseabi.AuctionABI,
	}
}

func (a *Auction) HighestBid(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address) (*big.Int, error) {
	method := "highestBid"
	unpacked, err := a.chainService.Call(ctx, chainId, common.HexToAddress(string(addr)), nil, a.abi, method)
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}

func (a *Auction) HighestBidder(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address) (domain.Address, error) {
	method := "highestBidder"
	unpacked, err := a.chainService.Call(ctx, chainId, common.HexToAddress(string(addr)), nil, a.abi, method)
	if err != nil {
		return "", err
	}
	bidder := unpacked[0].(common.Address)
	if bidder == (common.Address{}) {
		// no bids yet
		return "", nil
	}
	return domain.Address(bidder.Hex()).ToLower(), nil
}

func (a *Auction) EndTime(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address) (int64, error) {
	method := "endTime"
	unpacked, err := a.chainService.Call(ctx, chainId, common.HexToAddress(string(addr)), nil, a.abi, method)
	if err != nil {
		return 0, err
	}
	return unpacked[0].(*big.Int).Int64(), nil
}

// BidEvents scans Bid logs from the genesis block to the chain head so the
// history is complete, accepting the cost of the full-range scan. Logs are
// returned in emission order, never re-sorted.
func (a *Auction) BidEvents(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address) ([]*baseabi.AuctionBidLog, error) {
	query := ethereum.FilterQuery{
		FromBlock: big.NewInt(0),
		Addresses: []common.Address{common.HexToAddress(string(addr))},
		Topics:    [][]common.Hash{{baseabi.BidEventTopic()}},
	}
	logs, err := a.chainService.FilterLogs(ctx, chainId, query)
	if err != nil {
		return nil, err
	}
	bids := make([]*baseabi.AuctionBidLog, 0, len(logs))
	for i := range logs {
		bid, err := baseabi.ToAuctionBidLog(&logs[i])
		if err != nil {
			ctx.WithFields(log.Fields{
				"txHash": logs[i].TxHash.Hex(),
				"err":    err,
			}).Error("failed to decode bid log")
			return nil, err
		}
		bids = append(bids, bid)
	}
	return bids, nil
}
