package auction

import (
	"fmt"
	"math/big"

	baseabi "github.com/bidhaus/goapi/base/abi"
	"github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
)

// Proposal is the registry entry for one auction, mapped from the on-chain
// fixed-position tuple once at the chain boundary. Read-only to this system.
type Proposal struct {
	Id             domain.ProposalId `json:"proposalId"`
	Proposer       domain.Address    `json:"proposer"`
	MetadataUri    string            `json:"metadataUri"`
	StartingBid    *big.Int          `json:"startingBid"`
	CreatedAt      int64             `json:"createdAt"`
	Status         uint8             `json:"status"`
	AuctionAddress domain.Address    `json:"auctionAddress"`
}

// HasLiveAuction reports whether the proposal has been instantiated into a
// live auction contract. The zero address is the "not yet" sentinel.
func (p *Proposal) HasLiveAuction() bool {
	return p != nil && !p.AuctionAddress.IsZero()
}

// Bid is one placed bid, ordered by emission order of the underlying log
// stream. A bidder may appear multiple times.
type Bid struct {
	Bidder domain.Address `json:"bidder"`
	Amount *big.Int       `json:"amount"`
}

// LiveState mirrors the scalar fields of the live auction contract plus the
// reconstructed bid history. Zero values when no live contract exists.
type LiveState struct {
	HighestBid    *big.Int       `json:"highestBid"`
	HighestBidder domain.Address `json:"highestBidder"`
	EndTime       int64          `json:"endTime"`
	BidHistory    []Bid          `json:"bidHistory"`
}

func EmptyLiveState() *LiveState {
	return &LiveState{
		HighestBid: big.NewInt(0),
		BidHistory: []Bid{},
	}
}

// Snapshot is the immutable merged view of proposal + metadata + live state
// handed to consumers. Rebuilt wholesale, never mutated in place.
type Snapshot struct {
	Proposal       *Proposal               `json:"proposal"`
	Metadata       *domain.AuctionMetadata `json:"metadata"`
	LiveState      *LiveState              `json:"liveState"`
	DisplayPrice   *big.Int                `json:"displayPrice"`
	FormattedPrice string                  `json:"formattedPrice"`
	TimeLeft       string                  `json:"timeLeft"`
	IsFinished     bool                    `json:"isFinished"`
	// Degraded marks a snapshot whose live-state batch failed and fell back
	// to prior or zero values.
	Degraded bool `json:"degraded"`
}

// DisplayPrice is the highest bid when one exists, the starting bid otherwise.
func DisplayPrice(p *Proposal, ls *LiveState) *big.Int {
	if ls != nil && ls.HighestBid != nil && ls.HighestBid.Sign() > 0 {
		return ls.HighestBid
	}
	if p != nil && p.StartingBid != nil {
		return p.StartingBid
	}
	return big.NewInt(0)
}

// FinishedTimeLeft is the terminal countdown string.
const FinishedTimeLeft = "Auction finished"

// FormatTimeLeft renders a positive remaining duration in whole seconds.
func FormatTimeLeft(secondsLeft int64) string {
	if secondsLeft <= 0 {
		return FinishedTimeLeft
	}
	days := secondsLeft / 86400
	hours := (secondsLeft % 86400) / 3600
	minutes := (secondsLeft % 3600) / 60
	seconds := secondsLeft % 60
	return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
}

// State of one aggregator subscription.
type State int32

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateDisposed:
		return "disposed"
	}
	return "unknown"
}

// RegistryRepo reads proposal entries from the registry contract.
type RegistryRepo interface {
	GetProposal(ctx.Ctx, domain.ChainId, domain.ProposalId) (*Proposal, error)
}

// ContractRepo reads a live auction contract: three named scalar reads plus
// the full Bid event history scanned from block 0.
type ContractRepo interface {
	HighestBid(ctx.Ctx, domain.ChainId, domain.Address) (*big.Int, error)
	HighestBidder(ctx.Ctx, domain.ChainId, domain.Address) (domain.Address, error)
	EndTime(ctx.Ctx, domain.ChainId, domain.Address) (int64, error)
	BidEvents(ctx.Ctx, domain.ChainId, domain.Address) ([]*baseabi.AuctionBidLog, error)
}

// Subscription is one consumer's live view of a single proposal.
type Subscription interface {
	Snapshot() *Snapshot
	State() State
	Err() error
	// Refresh rebuilds the whole snapshot; safe to call while a build is in
	// flight, superseded builds are discarded.
	Refresh()
	// SetProposal retargets the subscription and rebuilds from scratch.
	// A nil identifier puts the subscription back to idle.
	SetProposal(*domain.ProposalId)
	// Updates signals each published snapshot; a hint, not a queue.
	Updates() <-chan *Snapshot
	Close()
}

type UseCase interface {
	// GetSnapshot performs a one-shot build without a countdown process.
	GetSnapshot(ctx.Ctx, domain.ChainId, domain.ProposalId) (*Snapshot, error)
	// Subscribe starts a live view; the identifier may be nil during
	// initial render, in which case the subscription stays idle.
	Subscribe(domain.ChainId, *domain.ProposalId) Subscription
}
