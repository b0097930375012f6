package auditor

import "errors"

var (
	// ErrCycleInProgress rejects a manual trigger while a cycle is running.
	ErrCycleInProgress = errors.New("audit cycle already in progress")

	// ErrNoChannels means the auditor was built without any notification
	// channel, which would make every alert undeliverable.
	ErrNoChannels = errors.New("no notification channels configured")
)
