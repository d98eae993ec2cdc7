package usecase

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/auction"
)

func waitForState(t *testing.T, sub auction.Subscription, want auction.State) {
	t.Helper()
	require.Eventually(t, func() bool {
		return sub.State() == want
	}, 2*time.Second, 10*time.Millisecond)
}

func Test_subscription_lifecycle(t *testing.T) {
	id := domain.ProposalId(7)

	t.Run("absent identifier stays idle and fetches nothing", func(t *testing.T) {
		req := require.New(t)
		f := newFixtures()

		sub := f.uc.Subscribe(testChainId, nil)
		defer sub.Close()

		req.Equal(auction.StateIdle, sub.State())
		req.Nil(sub.Snapshot())
		f.registry.AssertNotCalled(t, "GetProposal", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unavailable chain client stays idle", func(t *testing.T) {
		req := require.New(t)
		f := newFixtures()
		f.chain.ExpectedCalls = nil
		f.chain.On("Available", mock.Anything).Return(false)

		sub := f.uc.Subscribe(testChainId, &id)
		defer sub.Close()

		req.Equal(auction.StateIdle, sub.State())
		f.registry.AssertNotCalled(t, "GetProposal", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("reaches ready and publishes a snapshot", func(t *testing.T) {
		req := require.New(t)
		f := newFixtures()
		f.registry.On("GetProposal", mock.Anything, testChainId, id).
			Return(proposalWith(domain.EmptyAddress, 100), nil)
		f.stubMetadata()

		sub := f.uc.Subscribe(testChainId, &id)
		defer sub.Close()

		waitForState(t, sub, auction.StateReady)
		req.NoError(sub.Err())
		req.NotNil(sub.Snapshot())
		req.Equal(big.NewInt(100), sub.Snapshot().DisplayPrice)

		select {
		case snap := <-sub.Updates():
			req.NotNil(snap)
		case <-time.After(time.Second):
			t.Fatal("no update published")
		}
	})

	t.Run("unknown proposal ends non-loading with surfaced error", func(t *testing.T) {
		req := require.New(t)
		f := newFixtures()
		f.registry.On("GetProposal", mock.Anything, testChainId, id).
			Return(nil, domain.ErrRegistryRead)

		sub := f.uc.Subscribe(testChainId, &id)
		defer sub.Close()

		require.Eventually(t, func() bool {
			return sub.Err() != nil
		}, 2*time.Second, 10*time.Millisecond)
		req.NotEqual(auction.StateLoading, sub.State())
		req.ErrorIs(sub.Err(), domain.ErrRegistryRead)
		req.Nil(sub.Snapshot())
	})

	t.Run("past deadline starts no countdown", func(t *testing.T) {
		req := require.New(t)
		f := newFixtures()
		f.registry.On("GetProposal", mock.Anything, testChainId, id).
			Return(proposalWith(auctionAddr, 100), nil)
		f.stubMetadata()
		f.stubLiveState(250, time.Now().Add(-time.Minute).Unix(), nil)

		sub := f.uc.Subscribe(testChainId, &id)
		defer sub.Close()

		waitForState(t, sub, auction.StateReady)
		snap := sub.Snapshot()
		req.True(snap.IsFinished)
		req.Equal(auction.FinishedTimeLeft, snap.TimeLeft)
		req.Nil(sub.(*subscription).ticker)
	})

	t.Run("countdown ticks and freezes at the deadline", func(t *testing.T) {
		req := require.New(t)
		f := newFixtures()
		f.registry.On("GetProposal", mock.Anything, testChainId, id).
			Return(proposalWith(auctionAddr, 100), nil)
		f.stubMetadata()
		f.stubLiveState(250, time.Now().Add(2*time.Second).Unix(), nil)

		sub := f.uc.Subscribe(testChainId, &id)
		defer sub.Close()

		waitForState(t, sub, auction.StateReady)
		req.False(sub.Snapshot().IsFinished)
		req.NotNil(sub.(*subscription).ticker)

		require.Eventually(t, func() bool {
			return sub.Snapshot().IsFinished
		}, 5*time.Second, 50*time.Millisecond)
		req.Equal(auction.FinishedTimeLeft, sub.Snapshot().TimeLeft)

		// once finished the countdown cancels itself and never reverts
		req.Nil(sub.(*subscription).ticker)
		time.Sleep(1100 * time.Millisecond)
		req.True(sub.Snapshot().IsFinished)
	})

	t.Run("retargeting discards the superseded fetch", func(t *testing.T) {
		req := require.New(t)
		f := newFixtures()
		slow := domain.ProposalId(7)
		fast := domain.ProposalId(8)

		f.registry.On("GetProposal", mock.Anything, testChainId, slow).
			Run(func(args mock.Arguments) { time.Sleep(300 * time.Millisecond) }).
			Return(proposalWith(domain.EmptyAddress, 111), nil)
		fastProposal := proposalWith(domain.EmptyAddress, 222)
		fastProposal.Id = fast
		f.registry.On("GetProposal", mock.Anything, testChainId, fast).
			Return(fastProposal, nil)
		f.stubMetadata()

		sub := f.uc.Subscribe(testChainId, &slow)
		defer sub.Close()
		sub.SetProposal(&fast)

		waitForState(t, sub, auction.StateReady)
		require.Eventually(t, func() bool {
			snap := sub.Snapshot()
			return snap != nil && snap.DisplayPrice.Int64() == 222
		}, 2*time.Second, 10*time.Millisecond)

		// the slow build for the old proposal must never overwrite the new one
		time.Sleep(500 * time.Millisecond)
		req.Equal(int64(222), sub.Snapshot().DisplayPrice.Int64())
		req.Equal(fast, sub.Snapshot().Proposal.Id)
	})

	t.Run("retargeting to the absent identifier discards the in-flight fetch", func(t *testing.T) {
		req := require.New(t)
		f := newFixtures()
		f.registry.On("GetProposal", mock.Anything, testChainId, id).
			Run(func(args mock.Arguments) { time.Sleep(300 * time.Millisecond) }).
			Return(proposalWith(domain.EmptyAddress, 100), nil)
		f.stubMetadata()

		sub := f.uc.Subscribe(testChainId, &id)
		defer sub.Close()
		sub.SetProposal(nil)

		req.Equal(auction.StateIdle, sub.State())

		// the abandoned build must never install its snapshot
		time.Sleep(600 * time.Millisecond)
		req.Equal(auction.StateIdle, sub.State())
		req.Nil(sub.Snapshot())
		req.NoError(sub.Err())
	})

	t.Run("refresh under an unavailable chain discards the in-flight fetch", func(t *testing.T) {
		req := require.New(t)
		f := newFixtures()
		f.chain.ExpectedCalls = nil
		f.chain.On("Available", mock.Anything).Return(true).Once()
		f.chain.On("Available", mock.Anything).Return(false)
		f.registry.On("GetProposal", mock.Anything, testChainId, id).
			Run(func(args mock.Arguments) { time.Sleep(300 * time.Millisecond) }).
			Return(proposalWith(domain.EmptyAddress, 100), nil)
		f.stubMetadata()

		sub := f.uc.Subscribe(testChainId, &id)
		defer sub.Close()
		sub.Refresh()

		req.Equal(auction.StateIdle, sub.State())

		time.Sleep(600 * time.Millisecond)
		req.Equal(auction.StateIdle, sub.State())
		req.Nil(sub.Snapshot())
	})

	t.Run("unavailable chain keeps a ready snapshot in place", func(t *testing.T) {
		req := require.New(t)
		f := newFixtures()
		f.chain.ExpectedCalls = nil
		f.chain.On("Available", mock.Anything).Return(true).Once()
		f.chain.On("Available", mock.Anything).Return(false)
		f.registry.On("GetProposal", mock.Anything, testChainId, id).
			Return(proposalWith(domain.EmptyAddress, 100), nil)
		f.stubMetadata()

		sub := f.uc.Subscribe(testChainId, &id)
		defer sub.Close()
		waitForState(t, sub, auction.StateReady)

		sub.Refresh()
		req.Equal(auction.StateReady, sub.State())
		req.NotNil(sub.Snapshot())
		f.registry.AssertNumberOfCalls(t, "GetProposal", 1)
	})

	t.Run("close disposes and stops publishing", func(t *testing.T) {
		req := require.New(t)
		f := newFixtures()
		f.registry.On("GetProposal", mock.Anything, testChainId, id).
			Return(proposalWith(domain.EmptyAddress, 100), nil)
		f.stubMetadata()

		sub := f.uc.Subscribe(testChainId, &id)
		waitForState(t, sub, auction.StateReady)

		sub.Close()
		req.Equal(auction.StateDisposed, sub.State())
		sub.Refresh()
		req.Equal(auction.StateDisposed, sub.State())

		// updates channel is closed on dispose
		require.Eventually(t, func() bool {
			_, ok := <-sub.Updates()
			return !ok
		}, time.Second, 10*time.Millisecond)
	})
}
