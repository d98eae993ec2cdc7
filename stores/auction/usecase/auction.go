package usecase

import (
	"math/big"
	"time"

	"github.com/viney-shih/goroutines"
	"golang.org/x/xerrors"

	baseabi "github.com/bidhaus/goapi/base/abi"
	bCtx "github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/log"
	"github.com/bidhaus/goapi/base/metrics"
	pricefomatter "github.com/bidhaus/goapi/base/price_fomatter"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/auction"
	"github.com/bidhaus/goapi/service/chain"
)

type AuctionUseCaseCfg struct {
	Chain    chain.Client
	Registry auction.RegistryRepo
	Contract auction.ContractRepo
	Metadata domain.MetadataUseCase
}

type auctionUseCase struct {
	chain    chain.Client
	registry auction.RegistryRepo
	contract auction.ContractRepo
	metadata domain.MetadataUseCase
	met      *metrics.Metrics
}

func NewAuctionUseCase(cfg *AuctionUseCaseCfg) auction.UseCase {
	return &auctionUseCase{
		chain:    cfg.Chain,
		registry: cfg.Registry,
		contract: cfg.Contract,
		metadata: cfg.Metadata,
		met:      metrics.New("auction"),
	}
}

func (u *auctionUseCase) GetSnapshot(c bCtx.Ctx, chainId domain.ChainId, id domain.ProposalId) (*auction.Snapshot, error) {
	return u.buildSnapshot(c, chainId, id, nil)
}

// buildSnapshot assembles one immutable snapshot from scratch. The registry
// read is the only mandatory dependency; metadata and live state degrade to
// placeholders and prior values respectively.
func (u *auctionUseCase) buildSnapshot(c bCtx.Ctx, chainId domain.ChainId, id domain.ProposalId, prev *auction.Snapshot) (*auction.Snapshot, error) {
	defer u.met.BumpTime("snapshot.build").End()

	proposal, err := u.registry.GetProposal(c, chainId, id)
	if err != nil {
		c.WithFields(log.Fields{
			"proposalId": id,
			"err":        err,
		}).Error("registry.GetProposal failed")
		return nil, err
	}

	// metadata resolution runs alongside the live-state batch so its
	// latency never gates the live-state path
	type metaResult struct {
		metadata *domain.AuctionMetadata
		err      error
	}
	metaCh := make(chan metaResult, 1)
	if proposal.MetadataUri != "" {
		go func() {
			m, err := u.metadata.GetFromUri(c, proposal.MetadataUri)
			metaCh <- metaResult{m, err}
		}()
	} else {
		metaCh <- metaResult{}
	}

	liveState := auction.EmptyLiveState()
	degraded := false
	if proposal.HasLiveAuction() {
		ls, err := u.readLiveState(c, chainId, proposal.AuctionAddress)
		if err != nil {
			// the batch is all-or-nothing: degrade the whole group to the
			// previous values, or zero defaults, and keep going
			degraded = true
			if prev != nil && prev.LiveState != nil {
				liveState = prev.LiveState
			}
			c.WithFields(log.Fields{
				"auction": proposal.AuctionAddress,
				"err":     err,
			}).Warn("live state read failed, serving degraded snapshot")
		} else {
			liveState = ls
		}
	}

	m := <-metaCh
	metadata := m.metadata
	if m.err != nil {
		c.WithFields(log.Fields{
			"uri": proposal.MetadataUri,
			"err": m.err,
		}).Warn("metadata unavailable, using placeholders")
	}
	if metadata == nil {
		metadata = domain.PlaceholderMetadata()
	}

	displayPrice := auction.DisplayPrice(proposal, liveState)
	secondsLeft := liveState.EndTime - time.Now().Unix()

	return &auction.Snapshot{
		Proposal:       proposal,
		Metadata:       metadata,
		LiveState:      liveState,
		DisplayPrice:   displayPrice,
		FormattedPrice: pricefomatter.FormatWei(displayPrice, pricefomatter.NativeDecimals),
		TimeLeft:       auction.FormatTimeLeft(secondsLeft),
		IsFinished:     secondsLeft <= 0,
		Degraded:       degraded,
	}, nil
}

// readLiveState issues the three scalar reads and the full log scan
// concurrently. Any failure fails the whole group.
func (u *auctionUseCase) readLiveState(c bCtx.Ctx, chainId domain.ChainId, addr domain.Address) (*auction.LiveState, error) {
	var (
		highestBid    *big.Int
		highestBidder domain.Address
		endTime       int64
		bidLogs       []*baseabi.AuctionBidLog
	)

	b := goroutines.NewBatch(4, goroutines.WithBatchSize(4))
	defer b.Close()
	b.Queue(func() (interface{}, error) {
		var err error
		highestBid, err = u.contract.HighestBid(c, chainId, addr)
		return nil, err
	})
	b.Queue(func() (interface{}, error) {
		var err error
		highestBidder, err = u.contract.HighestBidder(c, chainId, addr)
		return nil, err
	})
	b.Queue(func() (interface{}, error) {
		var err error
		endTime, err = u.contract.EndTime(c, chainId, addr)
		return nil, err
	})
	b.Queue(func() (interface{}, error) {
		var err error
		bidLogs, err = u.contract.BidEvents(c, chainId, addr)
		return nil, err
	})
	b.QueueComplete()

	for ret := range b.Results() {
		if ret.Error() != nil {
			return nil, xerrors.Errorf("%w: %v", domain.ErrLiveStateRead, ret.Error())
		}
	}

	return &auction.LiveState{
		HighestBid:    highestBid,
		HighestBidder: highestBidder,
		EndTime:       endTime,
		BidHistory:    reconstructBids(bidLogs),
	}, nil
}
