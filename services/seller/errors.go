package seller

import (
	"errors"
	"fmt"
	"strings"
)

// Validation and conflict errors surfaced to the API as 4xx.
var (
	// ErrDuplicateRequest signals the user already has a pending or
	// approved request.
	ErrDuplicateRequest = errors.New("a pending or approved seller request already exists for this user")
	// ErrComplianceIncomplete signals not all acknowledgments were accepted.
	ErrComplianceIncomplete = errors.New("all compliance acknowledgments must be accepted")
	// ErrInvalidCategory signals the referenced category does not exist.
	ErrInvalidCategory = errors.New("business category does not exist")
	// ErrInvalidRequestType signals an unknown seller type or a personal
	// info payload that does not match the declared type.
	ErrInvalidRequestType = errors.New("request type and personal info do not match")
	// ErrRequestNotFound signals no request exists with the given ID.
	ErrRequestNotFound = errors.New("seller request not found")
	// ErrRequestAlreadyFinalized signals the request was already approved
	// or rejected; finalization is terminal.
	ErrRequestAlreadyFinalized = errors.New("seller request has already been finalized")
	// ErrSellerNotFound signals the user has no seller profile.
	ErrSellerNotFound = errors.New("seller profile not found")
)

// MissingDocumentsError names every required document absent from a
// submission.
type MissingDocumentsError struct {
	Fields []string
}

func (e *MissingDocumentsError) Error() string {
	return fmt.Sprintf("missing required documents: %s", strings.Join(e.Fields, ", "))
}

// ActivationFailedError wraps the underlying cause of a failed approval
// transaction. The request remains pending and the operation is retryable.
type ActivationFailedError struct {
	Cause error
}

func (e *ActivationFailedError) Error() string {
	return fmt.Sprintf("seller activation failed: %v", e.Cause)
}

func (e *ActivationFailedError) Unwrap() error {
	return e.Cause
}
