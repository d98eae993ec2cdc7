package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var Erc20TokenABI abi.ABI

var erc20ABI = `[{"type":"function","name":"balanceOf","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"address","name":"owner"}],"outputs":[{"type":"uint256"}]},{"type":"function","name":"decimals","constant":true,"stateMutability":"view","payable":false,"inputs":[],"outputs":[{"type":"uint8"}]},{"type":"function","name":"symbol","constant":true,"stateMutability":"view","payable":false,"inputs":[],"outputs":[{"type":"string"}]}]`

func init() {
	_abi, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		panic("Failed to parse erc20 abi")
	}
	Erc20TokenABI = _abi
}
