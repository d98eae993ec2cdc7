package usecase

import (
	baseabi "github.com/bidhaus/goapi/base/abi"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/auction"
)

// reconstructBids shapes raw Bid logs into the snapshot's bid history.
// Emission order is preserved, no dedup, no sorting by amount: the log
// stream is already monotonic with block/tx/log index.
func reconstructBids(logs []*baseabi.AuctionBidLog) []auction.Bid {
	bids := make([]auction.Bid, 0, len(logs))
	for _, l := range logs {
		bids = append(bids, auction.Bid{
			Bidder: domain.Address(l.Bidder.Hex()).ToLower(),
			Amount: l.Amount,
		})
	}
	return bids
}
