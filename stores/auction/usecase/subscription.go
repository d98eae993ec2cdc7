package usecase

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	bCtx "github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/goroutine"
	"github.com/bidhaus/goapi/base/log"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/auction"
)

func (u *auctionUseCase) Subscribe(chainId domain.ChainId, id *domain.ProposalId) auction.Subscription {
	s := &subscription{
		id:       uuid.NewString(),
		uc:       u,
		chainId:  chainId,
		proposal: id,
		state:    auction.StateIdle,
		updates:  make(chan *auction.Snapshot, 1),
	}
	s.kick()
	return s
}

// subscription owns one consumer's mutable view: the current snapshot, the
// fetch generation and the countdown. All writes happen under mu; published
// snapshots themselves are immutable.
type subscription struct {
	id      string
	uc      *auctionUseCase
	chainId domain.ChainId

	// gen is bumped on every kick; results carrying a stale generation are
	// discarded so a slow superseded fetch can never overwrite a newer one
	gen uint64

	mu       sync.Mutex
	proposal *domain.ProposalId
	state    auction.State
	err      error
	snapshot *auction.Snapshot
	ticker   *countdown
	updates  chan *auction.Snapshot
}

func (s *subscription) Snapshot() *auction.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

func (s *subscription) State() auction.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *subscription) Updates() <-chan *auction.Snapshot {
	return s.updates
}

func (s *subscription) Refresh() {
	s.kick()
}

func (s *subscription) SetProposal(id *domain.ProposalId) {
	s.mu.Lock()
	s.proposal = id
	s.snapshot = nil
	s.err = nil
	s.stopCountdownLocked()
	s.mu.Unlock()
	s.kick()
}

func (s *subscription) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == auction.StateDisposed {
		return
	}
	atomic.AddUint64(&s.gen, 1)
	s.state = auction.StateDisposed
	s.stopCountdownLocked()
	close(s.updates)
}

// kick starts a fresh build under a new generation. Absent identifier or an
// unavailable chain client keep the subscription not loading, so nothing
// fires during initial wallet/provider setup.
func (s *subscription) kick() {
	s.mu.Lock()
	if s.state == auction.StateDisposed {
		s.mu.Unlock()
		return
	}
	// every kick supersedes whatever build is in flight, including kicks
	// that end up starting nothing
	gen := atomic.AddUint64(&s.gen, 1)
	if s.proposal == nil || !s.uc.chain.Available(s.chainId) {
		// land non-loading: keep serving the last snapshot if there is one
		if s.snapshot != nil {
			s.state = auction.StateReady
		} else {
			s.state = auction.StateIdle
		}
		s.mu.Unlock()
		return
	}
	s.state = auction.StateLoading
	id := *s.proposal
	prev := s.snapshot
	s.mu.Unlock()

	goroutine.RecoverableGo(func() {
		c := bCtx.WithValues(bCtx.Background(), map[string]interface{}{
			"subscription": s.id,
			"proposalId":   id,
		})
		snap, err := s.uc.buildSnapshot(c, s.chainId, id, prev)
		s.publish(c, gen, snap, err)
	})
}

// publish installs a finished build atomically, unless a newer generation
// has been kicked off in the meantime.
func (s *subscription) publish(c bCtx.Ctx, gen uint64, snap *auction.Snapshot, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == auction.StateDisposed || gen != atomic.LoadUint64(&s.gen) {
		c.WithField("gen", gen).Debug("discarding superseded fetch result")
		return
	}
	if err != nil {
		// registry failure: terminal non-loading state, error surfaced
		s.err = err
		s.snapshot = nil
		s.state = auction.StateIdle
		s.stopCountdownLocked()
		return
	}
	s.err = nil
	s.snapshot = snap
	s.state = auction.StateReady
	s.notifyLocked(snap)

	s.stopCountdownLocked()
	if !snap.IsFinished && snap.LiveState != nil && snap.LiveState.EndTime > 0 {
		s.startCountdownLocked(snap.LiveState.EndTime)
	}
}

func (s *subscription) notifyLocked(snap *auction.Snapshot) {
	// best effort: drop the stale pending value rather than block
	select {
	case s.updates <- snap:
	default:
		select {
		case <-s.updates:
		default:
		}
		select {
		case s.updates <- snap:
		default:
		}
	}
}

type countdown struct {
	stop chan struct{}
}

// startCountdownLocked runs the one-second tick loop deriving TimeLeft and
// IsFinished from the immutable deadline. The loop stops itself at the
// deadline and is stopped by retarget, teardown and republish.
func (s *subscription) startCountdownLocked(endTime int64) {
	cd := &countdown{stop: make(chan struct{})}
	s.ticker = cd

	goroutine.RecoverableGo(func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-cd.stop:
				return
			case <-ticker.C:
				if finished := s.tick(cd, endTime); finished {
					return
				}
			}
		}
	}, goroutine.WithAfterRecovered(func(p interface{}, stack []byte) {
		log.Log().WithField("subscription", s.id).Error("countdown tick panicked")
	}))
}

func (s *subscription) stopCountdownLocked() {
	if s.ticker != nil {
		close(s.ticker.stop)
		s.ticker = nil
	}
}

// tick recomputes the countdown fields into a fresh snapshot copy and
// reports whether the terminal state was reached.
func (s *subscription) tick(cd *countdown, endTime int64) bool {
	s.mu.Lock()
	if s.ticker != cd || s.snapshot == nil {
		s.mu.Unlock()
		return true
	}
	secondsLeft := endTime - time.Now().Unix()
	next := *s.snapshot
	next.TimeLeft = auction.FormatTimeLeft(secondsLeft)
	next.IsFinished = secondsLeft <= 0
	s.snapshot = &next
	if next.IsFinished {
		s.ticker = nil
	}
	s.notifyLocked(&next)
	s.mu.Unlock()
	return next.IsFinished
}
