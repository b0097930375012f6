package channel

import (
	"context"

	"auditor-srv/internal/model"
)

// Channel is one notification destination. Implementations own their
// formatting and must never let a transport error escape Deliver: every
// failure is captured in the DeliveryResult reason. Channels hold no state
// between calls beyond long-lived credentials.
type Channel interface {
	Name() string
	Deliver(ctx context.Context, msg Message) model.DeliveryResult
}
