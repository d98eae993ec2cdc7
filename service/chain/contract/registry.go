package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"

	baseabi "github.com/bidhaus/goapi/base/abi"
	bCtx "github.com/bidhaus/goapi/base/ctx"
	"github.com/bidhaus/goapi/base/log"
	"github.com/bidhaus/goapi/domain"
	"github.com/bidhaus/goapi/domain/auction"
	"github.com/bidhaus/goapi/service/chain"
)

// Registry wraps the on-chain auction registry. The contract returns a
// fixed-position tuple; the position-to-field mapping happens here, once,
// so the rest of the system only sees named fields.
type Registry struct {
	chainService chain.Client
	abi          ethabi.ABI
	addresses    map[domain.ChainId]domain.Address
}

func NewRegistry(chainService chain.Client, addresses map[domain.ChainId]domain.Address) *Registry {
	return &Registry{
		chainService: chainService,
		abi:          baseabi.AuctionRegistryABI,
		addresses:    addresses,
	}
}

func (r *Registry) GetProposal(ctx bCtx.Ctx, chainId domain.ChainId, id domain.ProposalId) (*auction.Proposal, error) {
	registryAddr, ok := r.addresses[chainId]
	if !ok {
		return nil, xerrors.Errorf("%w: no registry for chain %d", domain.ErrRegistryRead, chainId)
	}

	method := "proposals"
	unpacked, err := r.chainService.Call(ctx, chainId, common.HexToAddress(string(registryAddr)), nil, r.abi, method, id.BigInt())
	if err != nil {
		ctx.WithFields(log.Fields{
			"proposalId": id,
			"err":        err,
		}).Error("registry proposals call failed")
		return nil, xerrors.Errorf("%w: %v", domain.ErrRegistryRead, err)
	}
	if len(unpacked) < 6 {
		return nil, xerrors.Errorf("%w: malformed proposal tuple", domain.ErrRegistryRead)
	}

	proposer, ok0 := unpacked[0].(common.Address)
	metadataUri, ok1 := unpacked[1].(string)
	startingBid, ok2 := unpacked[2].(*big.Int)
	createdAt, ok3 := unpacked[3].(*big.Int)
	status, ok4 := unpacked[4].(uint8)
	auctionAddr, ok5 := unpacked[5].(common.Address)
	if !ok0 || !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return nil, xerrors.Errorf("%w: malformed proposal tuple", domain.ErrRegistryRead)
	}

	// a zeroed tuple means the identifier was never registered
	if proposer == (common.Address{}) && metadataUri == "" {
		return nil, xerrors.Errorf("proposal %d: %w", id, domain.ErrNotFound)
	}

	return &auction.Proposal{
		Id:             id,
		Proposer:       domain.Address(proposer.Hex()).ToLower(),
		MetadataUri:    metadataUri,
		StartingBid:    startingBid,
		CreatedAt:      createdAt.Int64(),
		Status:         status,
		AuctionAddress: domain.Address(auctionAddr.Hex()).ToLower(),
	}, nil
}
