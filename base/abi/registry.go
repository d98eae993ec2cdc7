package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var AuctionRegistryABI abi.ABI

var auctionRegistryABI = `[{"type":"function","name":"proposals","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"uint256","name":"proposalId"}],"outputs":[{"type":"address","name":"proposer"},{"type":"string","name":"metadataUri"},{"type":"uint256","name":"startingBid"},{"type":"uint256","name":"createdAt"},{"type":"uint8","name":"status"},{"type":"address","name":"auction"}]},{"type":"function","name":"proposalCount","constant":true,"stateMutability":"view","payable":false,"inputs":[],"outputs":[{"type":"uint256"}]}]`

func init() {
	_abi, err := abi.JSON(strings.NewReader(auctionRegistryABI))
	if err != nil {
		panic("Failed to parse auction registry abi")
	}
	AuctionRegistryABI = _abi
}
