package notification

import (
	"context"

	"coachhub/coaching-app/internal/domain"
)

// Notifier delivers out-of-band messages to customers. Delivery failures
// must never fail the operation that triggered them; callers log and move
// on.
type Notifier interface {
	// PlanAssigned tells the customer a new training plan was created for
	// them.
	PlanAssigned(ctx context.Context, customer *domain.User, plan *domain.TrainingPlan) error
}

// noopNotifier is used when no delivery channel is configured.
type noopNotifier struct{}

func (noopNotifier) PlanAssigned(ctx context.Context, customer *domain.User, plan *domain.TrainingPlan) error {
	return nil
}

// NewNoopNotifier returns a notifier that silently drops every message.
func NewNoopNotifier() Notifier {
	return noopNotifier{}
}
