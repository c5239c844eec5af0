// Package errors enumerates the abstract error kinds from spec.md §7. Every
// sentinel is fatal to its transaction: the ledger frame that produced it is
// aborted and every write made during the frame is discarded (see
// ledger.Frame). There is no local recovery and no internal retry — callers
// observe a failed operation with a stable machine-readable code.
package errors

import "errors"

// Sentinel errors, one per spec.md §7 row.
var (
	ErrAlreadyInitialized = newCoded("already_initialized", "constructor called twice")
	ErrUnauthorized       = newCoded("unauthorized", "caller is not the required principal")
	ErrInvalidAmount      = newCoded("invalid_amount", "amount must be positive")
	ErrInvalidBlendPool   = newCoded("invalid_blend_pool", "pool is not registered or does not match the token")
	ErrAlreadyAdded       = newCoded("already_added", "token is already mapped to a pool")
	ErrBlendPoolNotFound  = newCoded("blend_pool_not_found", "no pool mapped for token")
	ErrNotEnoughSupply    = newCoded("not_enough_supply", "pool returned less than the requested withdrawal")
	ErrFlashloanFailed    = newCoded("flashloan_failed", "principal was not returned by the peg keeper")
	ErrNotProfitable      = newCoded("not_profitable", "post-swap profit is below the minimum floor")
	ErrPositionStillOpen  = newCoded("position_still_open", "liabilities or collateral remain after liquidation")
	ErrNoInterestToClaim  = newCoded("no_interest_to_claim", "computed interest is not positive")
)

// CodedError wraps a sentinel with a stable string code so transport layers
// (HTTP responses, emitted events) can report a machine-readable identifier
// without parsing the human-readable message.
type CodedError struct {
	code string
	msg  string
}

func newCoded(code, msg string) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func (e *CodedError) Error() string { return e.msg }

// Code returns the stable machine-readable identifier for this error.
func (e *CodedError) Code() string { return e.code }

// Is allows errors.Is(err, ErrX) to match across wrapping via fmt.Errorf("%w").
func (e *CodedError) Is(target error) bool {
	other, ok := target.(*CodedError)
	if !ok {
		return false
	}
	return other.code == e.code
}

// Code extracts the stable machine-readable code from err, if any, walking
// wrapped errors via errors.As.
func Code(err error) (string, bool) {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code(), true
	}
	return "", false
}
