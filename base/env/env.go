package env

import (
	"os"
)

// PodName example: k8ssta-auctionapi-main-6868d88fbd-bz8zv
func PodName() string {
	return os.Getenv("PODNAME")
}

// EnvName example: k8ssta
func EnvName() string {
	return os.Getenv("ENV_NAME")
}

// AppName example: api
func AppName() string {
	return os.Getenv("APP_NAME")
}

// IpfsGateway overrides the configured IPFS gateway base url when set
func IpfsGateway() string {
	return os.Getenv("IPFS_GATEWAY")
}

// LocalTokenAddress is the bid-token address emitted by the local dev-chain
// deployment script; only consulted when the rpc host is a loopback address.
func LocalTokenAddress() string {
	return os.Getenv("LOCAL_TOKEN_ADDRESS")
}
