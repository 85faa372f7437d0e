package deliveries

import (
	"context"

	"github.com/shipyard-labs/delivery-track/internal/domain"
)

// Repository defines the interface for delivery data operations.
type Repository interface {
	CreateDelivery(ctx context.Context, delivery *domain.Delivery) error
	ListDeliveries(ctx context.Context) ([]domain.DeliveryWithOwner, error)
	GetDeliveryByID(ctx context.Context, id string) (*domain.Delivery, error)

	// GetDeliveryDetails loads a delivery with its owner and logs in creation order.
	GetDeliveryDetails(ctx context.Context, id string) (*domain.DeliveryDetails, error)

	// UpdateStatusWithLog sets the delivery status and appends the matching
	// log entry in a single transaction. Readers never observe one without
	// the other. Returns ErrDeliveryNotFound when id resolves to no row.
	UpdateStatusWithLog(ctx context.Context, id string, status domain.DeliveryStatus) error

	CreateLog(ctx context.Context, log *domain.DeliveryLog) error
}
