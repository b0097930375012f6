package lead

import "errors"

var (
	// ErrStoreUnavailable marks a transport or auth failure talking to the
	// lead store. The auditor turns it into a health-check alert; callers
	// must not assume the operation was retried.
	ErrStoreUnavailable = errors.New("lead store unavailable")

	// ErrInvalidStatus rejects an UpdateStatus with an unknown status value.
	ErrInvalidStatus = errors.New("invalid lead status")
)
