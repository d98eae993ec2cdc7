package domain

import "errors"

var (
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	ErrUnsupportedSchema = errors.New("Unsupported schema")
	ErrInvalidJsonFormat = errors.New("invalid JSON format")
	ErrInvalidAddress    = errors.New("Invalid address")
	ErrInvalidChainId    = errors.New("invalid chain id")

	// ErrChainUnavailable means no rpc client is configured for the chain;
	// aggregators treat it as "not ready yet", not as a failed fetch.
	ErrChainUnavailable = errors.New("chain client unavailable")

	// ErrRegistryRead aborts snapshot construction, it is the only mandatory read.
	ErrRegistryRead = errors.New("registry read failed")

	// ErrMetadataUnavailable degrades the snapshot to placeholder metadata.
	ErrMetadataUnavailable = errors.New("metadata unavailable")

	// ErrLiveStateRead degrades the whole live-state group, all-or-nothing.
	ErrLiveStateRead = errors.New("live auction state read failed")
)
