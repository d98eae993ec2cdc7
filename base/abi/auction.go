package abi

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var AuctionABI abi.ABI

var auctionABI = `[{"type":"event","anonymous":false,"name":"Bid","inputs":[{"type":"address","name":"bidder","indexed":true},{"type":"uint256","name":"amount"}]},{"type":"function","name":"highestBid","constant":true,"stateMutability":"view","payable":false,"inputs":[],"outputs":[{"type":"uint256"}]},{"type":"function","name":"highestBidder","constant":true,"stateMutability":"view","payable":false,"inputs":[],"outputs":[{"type":"address"}]},{"type":"function","name":"endTime","constant":true,"stateMutability":"view","payable":false,"inputs":[],"outputs":[{"type":"uint256"}]}]`

func init() {
	_abi, err := abi.JSON(strings.NewReader(auctionABI))
	if err != nil {
		panic("Failed to parse auction abi")
	}
	AuctionABI = _abi
}

type AuctionBidLog struct {
	Bidder common.Address // indexed
	Amount *big.Int
}

func ToAuctionBidLog(log *types.Log) (*AuctionBidLog, error) {
	var bid AuctionBidLog
	if err := AuctionABI.UnpackIntoInterface(&bid, "Bid", log.Data); err != nil {
		return nil, err
	}
	bid.Bidder = common.BytesToAddress(log.Topics[1].Bytes())
	return &bid, nil
}

// BidEventTopic is the keccak hash identifying Bid logs in a filter query.
func BidEventTopic() common.Hash {
	return AuctionABI.Events["Bid"].ID
}
