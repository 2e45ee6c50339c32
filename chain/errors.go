package chain

import (
	"errors"
	"fmt"
)

// ErrChainNotFound is matched by every *ChainNotFoundError.
var ErrChainNotFound = errors.New("chain not found")

// InvalidChainConfigError reports one invalid field of a chain descriptor.
type InvalidChainConfigError struct {
	// Path is the offending field, e.g. "rpcUrls.default".
	Path   string
	Reason string
}

func (e *InvalidChainConfigError) Error() string {
	return fmt.Sprintf("invalid chain config: %s: %s", e.Path, e.Reason)
}

// ChainNotFoundError is returned when a chain ID is not among the known chains.
type ChainNotFoundError struct {
	ID uint64
}

func (e *ChainNotFoundError) Error() string {
	return fmt.Sprintf("chain with id %d not found", e.ID)
}

func (e *ChainNotFoundError) Is(target error) bool {
	return target == ErrChainNotFound
}
