package usecase

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	baseabi "github.com/bidhaus/goapi/base/abi"
	bCtx "github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/auction"
	auctionmocks "github.com/bidhaus/goapi/domain/auction/mocks"
	"github.com/bidhaus/goapi/domain/mocks"
	chainmocks "github.com/bidhaus/goapi/service/chain/mocks"
	"github.com/ethereum/go-ethereum/common"
)

const (
	testChainId = domain.ChainId(5)
	auctionAddr = domain.Address("0x00000000000000000000000000000000000000aa")
)

type fixtures struct {
	chain    *chainmocks.Client
	registry *auctionmocks.RegistryRepo
	contract *auctionmocks.ContractRepo
	metadata *mocks.MetadataUseCase
	uc       auction.UseCase
}

func newFixtures() *fixtures {
	f := &fixtures{
		chain:    &chainmocks.Client{},
		registry: &auctionmocks.RegistryRepo{},
		contract: &auctionmocks.ContractRepo{},
		metadata: &mocks.MetadataUseCase{},
	}
	f.chain.On("Available", mock.Anything).Return(true)
	f.uc = NewAuctionUseCase(&AuctionUseCaseCfg{
		Chain:    f.chain,
		Registry: f.registry,
		Contract: f.contract,
		Metadata: f.metadata,
	})
	return f
}

func proposalWith(liveAddr domain.Address, startingBid int64) *auction.Proposal {
	return &auction.Proposal{
		Id:             domain.ProposalId(7),
		Proposer:       "0x00000000000000000000000000000000000000bb",
		MetadataUri:    "ipfs://abc123",
		StartingBid:    big.NewInt(startingBid),
		AuctionAddress: liveAddr,
	}
}

func (f *fixtures) stubLiveState(highestBid int64, endTime int64, logs []*baseabi.AuctionBidLog) {
	f.contract.On("HighestBid", mock.Anything, testChainId, auctionAddr).Return(big.NewInt(highestBid), nil)
	f.contract.On("HighestBidder", mock.Anything, testChainId, auctionAddr).Return(domain.Address("0x00000000000000000000000000000000000000cc"), nil)
	f.contract.On("EndTime", mock.Anything, testChainId, auctionAddr).Return(endTime, nil)
	f.contract.On("BidEvents", mock.Anything, testChainId, auctionAddr).Return(logs, nil)
}

func (f *fixtures) stubMetadata() {
	f.metadata.On("GetFromUri", mock.Anything, "ipfs://abc123").Return(&domain.AuctionMetadata{
		Name:      "Vintage Lamp",
		Category:  "Furniture",
		ImageUris: []string{},
	}, nil)
}

func bidLog(hexAddr string, amount int64) *baseabi.AuctionBidLog {
	return &baseabi.AuctionBidLog{
		Bidder: common.HexToAddress(hexAddr),
		Amount: big.NewInt(amount),
	}
}

func Test_auctionUseCase_GetSnapshot(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()

	t.Run("zero live address skips all contract reads", func(t *testing.T) {
		req := require.New(t)
		f := newFixtures()
		f.registry.On("GetProposal", mock.Anything, testChainId, domain.ProposalId(7)).
			Return(proposalWith(domain.EmptyAddress, 100), nil)
		f.stubMetadata()

		snap, err := f.uc.GetSnapshot(bCtx.Background(), testChainId, 7)
		req.NoError(err)
		req.Equal(big.NewInt(100), snap.DisplayPrice)
		req.Empty(snap.LiveState.BidHistory)
		req.Equal(int64(0), snap.LiveState.EndTime)
		f.contract.AssertNotCalled(t, "HighestBid", mock.Anything, mock.Anything, mock.Anything)
		f.contract.AssertNotCalled(t, "BidEvents", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("display price prefers a positive highest bid", func(t *testing.T) {
		tests := []struct {
			name        string
			highestBid  int64
			startingBid int64
			want        int64
		}{
			{"no bids falls back to starting bid", 0, 100, 100},
			{"highest bid wins", 250, 100, 250},
			{"highest bid below starting bid still wins", 50, 100, 50},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := require.New(t)
				f := newFixtures()
				f.registry.On("GetProposal", mock.Anything, testChainId, domain.ProposalId(7)).
					Return(proposalWith(auctionAddr, tt.startingBid), nil)
				f.stubMetadata()
				f.stubLiveState(tt.highestBid, future, nil)

				snap, err := f.uc.GetSnapshot(bCtx.Background(), testChainId, 7)
				req.NoError(err)
				req.Equal(big.NewInt(tt.want), snap.DisplayPrice)
			})
		}
	})

	t.Run("bid history preserves emission order across rebuilds", func(t *testing.T) {
		req := require.New(t)
		f := newFixtures()
		logs := []*baseabi.AuctionBidLog{
			bidLog("0x0000000000000000000000000000000000000001", 10),
			bidLog("0x0000000000000000000000000000000000000002", 25),
			bidLog("0x0000000000000000000000000000000000000001", 15),
		}
		f.registry.On("GetProposal", mock.Anything, testChainId, domain.ProposalId(7)).
			Return(proposalWith(auctionAddr, 100), nil)
		f.stubMetadata()
		f.stubLiveState(25, future, logs)

		for i := 0; i < 3; i++ {
			snap, err := f.uc.GetSnapshot(bCtx.Background(), testChainId, 7)
			req.NoError(err)
			req.Len(snap.LiveState.BidHistory, 3)
			req.Equal(big.NewInt(10), snap.LiveState.BidHistory[0].Amount)
			req.Equal(big.NewInt(25), snap.LiveState.BidHistory[1].Amount)
			req.Equal(big.NewInt(15), snap.LiveState.BidHistory[2].Amount)
		}
	})

	t.Run("metadata failure degrades to placeholders without gating live state", func(t *testing.T) {
		req := require.New(t)
		f := newFixtures()
		f.registry.On("GetProposal", mock.Anything, testChainId, domain.ProposalId(7)).
			Return(proposalWith(auctionAddr, 100), nil)
		f.metadata.On("GetFromUri", mock.Anything, "ipfs://abc123").
			Return(nil, domain.ErrMetadataUnavailable)
		f.stubLiveState(250, future, nil)

		snap, err := f.uc.GetSnapshot(bCtx.Background(), testChainId, 7)
		req.NoError(err)
		req.Equal(domain.DefaultMetadataName, snap.Metadata.Name)
		req.Equal(domain.DefaultMetadataCategory, snap.Metadata.Category)
		req.Equal(big.NewInt(250), snap.DisplayPrice)
	})

	t.Run("live state batch failure is all or nothing", func(t *testing.T) {
		req := require.New(t)
		f := newFixtures()
		f.registry.On("GetProposal", mock.Anything, testChainId, domain.ProposalId(7)).
			Return(proposalWith(auctionAddr, 100), nil)
		f.stubMetadata()
		f.contract.On("HighestBid", mock.Anything, testChainId, auctionAddr).Return(big.NewInt(250), nil)
		f.contract.On("HighestBidder", mock.Anything, testChainId, auctionAddr).Return(domain.Address(""), nil)
		f.contract.On("EndTime", mock.Anything, testChainId, auctionAddr).Return(future, nil)
		f.contract.On("BidEvents", mock.Anything, testChainId, auctionAddr).
			Return(nil, errors.New("rpc timeout"))

		snap, err := f.uc.GetSnapshot(bCtx.Background(), testChainId, 7)
		req.NoError(err)
		req.True(snap.Degraded)
		// the whole group degrades, the successful scalar reads are discarded
		req.Equal(big.NewInt(0), snap.LiveState.HighestBid)
		req.Empty(snap.LiveState.BidHistory)
		req.Equal(big.NewInt(100), snap.DisplayPrice)
	})

	t.Run("registry failure aborts the build", func(t *testing.T) {
		req := require.New(t)
		f := newFixtures()
		f.registry.On("GetProposal", mock.Anything, testChainId, domain.ProposalId(7)).
			Return(nil, domain.ErrRegistryRead)

		_, err := f.uc.GetSnapshot(bCtx.Background(), testChainId, 7)
		req.ErrorIs(err, domain.ErrRegistryRead)
	})

	t.Run("past deadline is finished at build time", func(t *testing.T) {
		req := require.New(t)
		f := newFixtures()
		f.registry.On("GetProposal", mock.Anything, testChainId, domain.ProposalId(7)).
			Return(proposalWith(auctionAddr, 100), nil)
		f.stubMetadata()
		f.stubLiveState(250, time.Now().Add(-time.Minute).Unix(), nil)

		snap, err := f.uc.GetSnapshot(bCtx.Background(), testChainId, 7)
		req.NoError(err)
		req.True(snap.IsFinished)
		req.Equal(auction.FinishedTimeLeft, snap.TimeLeft)
	})
}

func Test_reconstructBids(t *testing.T) {
	req := require.New(t)

	req.Empty(reconstructBids(nil))
	req.Empty(reconstructBids([]*baseabi.AuctionBidLog{}))

	logs := []*baseabi.AuctionBidLog{
		bidLog("0x0000000000000000000000000000000000000001", 10),
		bidLog("0x0000000000000000000000000000000000000002", 25),
		bidLog("0x0000000000000000000000000000000000000001", 15),
	}
	bids := reconstructBids(logs)
	req.Len(bids, 3)
	// same bidder may appear more than once, amounts keep emission order
	req.Equal(bids[0].Bidder, bids[2].Bidder)
	req.Equal([]int64{10, 25, 15}, []int64{
		bids[0].Amount.Int64(),
		bids[1].Amount.Int64(),
		bids[2].Amount.Int64(),
	})
}

func Test_FormatTimeLeft(t *testing.T) {
	tests := []struct {
		name    string
		seconds int64
		want    string
	}{
		{"expired", -5, auction.FinishedTimeLeft},
		{"zero", 0, auction.FinishedTimeLeft},
		{"seconds only", 42, "0d 0h 0m 42s"},
		{"full breakdown", 2*86400 + 3*3600 + 4*60 + 5, "2d 3h 4m 5s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, auction.FormatTimeLeft(tt.seconds))
		})
	}
}
