package service

import "errors"

// Error kinds returned by the rate change service. Handlers dispatch on these
// with errors.Is; expected failures never surface as panics or bare strings.
var (
	// ErrValidation covers bad input: non-positive rate, empty reason,
	// missing effective date, unknown change type.
	ErrValidation = errors.New("validation failed")

	// ErrOpenRequestExists is the conflict case: an unresolved request
	// already exists for the target lease-unit.
	ErrOpenRequestExists = errors.New("an unresolved rate change request already exists for this lease unit")

	ErrRequestNotFound   = errors.New("rate change request not found")
	ErrLeaseUnitNotFound = errors.New("lease unit not found")
	ErrLeaseNotFound     = errors.New("lease not found")

	// ErrUnauthorized is returned when no authenticated actor identity is
	// attached to the call.
	ErrUnauthorized = errors.New("authenticated actor identity required")
)
