package withdrawal

import "errors"

// Service errors mapped to HTTP statuses at the handler layer.
var (
	// ErrWithdrawalNotFound is returned when no withdrawal matches.
	ErrWithdrawalNotFound = errors.New("withdrawal not found")
	// ErrSellerNotFound is returned when the requesting user has no seller
	// profile.
	ErrSellerNotFound = errors.New("seller profile not found")
	// ErrInvalidStatus is returned for an unknown target status.
	ErrInvalidStatus = errors.New("invalid withdrawal status")
	// ErrAlreadyFinalized is returned when the withdrawal is in a terminal
	// state and cannot transition further.
	ErrAlreadyFinalized = errors.New("withdrawal already finalized")
	// ErrInvalidAmount is returned for a non-positive withdrawal amount.
	ErrInvalidAmount = errors.New("withdrawal amount must be positive")
	// ErrBankInfoIncomplete is returned when the payout destination is
	// missing required fields.
	ErrBankInfoIncomplete = errors.New("bank info is incomplete")
)

// TransferFailedError wraps a gateway failure during the processing
// transition. The withdrawal stays in its prior state.
type TransferFailedError struct {
	Cause error
}

func (e *TransferFailedError) Error() string {
	return "payout transfer failed: " + e.Cause.Error()
}

func (e *TransferFailedError) Unwrap() error { return e.Cause }
