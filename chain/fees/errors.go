package fees

import (
	"errors"
	"fmt"
)

var (
	// ErrBaseFeeMultiplierTooLow is returned when the resolved multiplier is below 1.
	ErrBaseFeeMultiplierTooLow = errors.New("base fee multiplier must be greater than or equal to 1")
	// ErrEIP1559NotSupported is returned when EIP-1559 fees are requested but the latest block has
	// no base fee.
	ErrEIP1559NotSupported = errors.New("chain does not support EIP-1559 fees")
	// ErrBackendRequired is returned when a network value is needed but no backend was provided.
	ErrBackendRequired = errors.New("fee backend is required")
	// ErrNilFee is returned when a policy function resolves to a nil fee.
	ErrNilFee = errors.New("fee policy returned a nil value")
)

// FeePolicyError wraps the failure of a custom fee policy setting. It is returned as-is to the
// caller of the estimation; defaults are never substituted once a custom setting failed.
type FeePolicyError struct {
	// Field is the policy setting that failed, e.g. "baseFeeMultiplier".
	Field string
	Err   error
}

func (e *FeePolicyError) Error() string {
	return fmt.Sprintf("fee policy %s: %v", e.Field, e.Err)
}

func (e *FeePolicyError) Unwrap() error {
	return e.Err
}

func policyError(field string, err error) error {
	var perr *FeePolicyError
	if errors.As(err, &perr) {
		return err
	}

	return &FeePolicyError{Field: field, Err: err}
}
