package deliveries

import (
	"context"
	"fmt"

	"github.com/shipyard-labs/delivery-track/internal/domain"
	"github.com/shipyard-labs/delivery-track/internal/pkg/metrics"
)

// Identity is the resolved requester identity, as attached by the auth gate.
type Identity struct {
	UserID string
	Role   domain.Role
}

// Service implements the delivery lifecycle business logic.
type Service struct {
	repo Repository
}

// NewService creates a new deliveries service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput holds data for creating a delivery.
type CreateInput struct {
	UserID      string
	Description string
}

// Create stores a new delivery in the processing state. The owner id is not
// checked for existence here; the foreign key rejects dangling references.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Delivery, error) {
	delivery := &domain.Delivery{
		UserID:      input.UserID,
		Description: input.Description,
		Status:      domain.DeliveryStatusProcessing,
	}

	if err := s.repo.CreateDelivery(ctx, delivery); err != nil {
		return nil, fmt.Errorf("create delivery: %w", err)
	}

	return delivery, nil
}

// List returns all deliveries with their owners' contact fields.
// Row filtering is intentionally absent; the role gate keeps customers out.
func (s *Service) List(ctx context.Context) ([]domain.DeliveryWithOwner, error) {
	return s.repo.ListDeliveries(ctx)
}

// UpdateStatus sets the delivery status and appends a log entry whose
// description is the new status, atomically. Any source/target pairing is
// allowed; ordering is only enforced on manual log creation.
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.DeliveryStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}

	if err := s.repo.UpdateStatusWithLog(ctx, id, status); err != nil {
		return err
	}

	metrics.DeliveryStatusChanges.WithLabelValues(string(status)).Inc()
	return nil
}

// AddLog appends a manual log entry. Logs are only allowed while the delivery
// is shipped: processing deliveries have nothing in transit to report, and
// delivered is terminal.
func (s *Service) AddLog(ctx context.Context, deliveryID, description string) error {
	delivery, err := s.repo.GetDeliveryByID(ctx, deliveryID)
	if err != nil {
		return err
	}

	switch delivery.Status {
	case domain.DeliveryStatusDelivered:
		return ErrAlreadyDelivered
	case domain.DeliveryStatusProcessing:
		return ErrNotShipped
	}

	log := &domain.DeliveryLog{
		DeliveryID:  deliveryID,
		Description: description,
	}
	if err := s.repo.CreateLog(ctx, log); err != nil {
		return fmt.Errorf("create delivery log: %w", err)
	}
	return nil
}

// Show returns a delivery with its owner and ordered logs, subject to the
// ownership rule: customers see only their own deliveries, sale sees all.
func (s *Service) Show(ctx context.Context, viewer Identity, deliveryID string) (*domain.DeliveryDetails, error) {
	details, err := s.repo.GetDeliveryDetails(ctx, deliveryID)
	if err != nil {
		return nil, err
	}

	if !CanView(viewer, details.UserID) {
		return nil, ErrNotOwner
	}

	return details, nil
}

// CanView is the single ownership predicate used wherever resource ownership
// matters: sale identities may view any delivery, customers only their own.
func CanView(viewer Identity, ownerID string) bool {
	if viewer.Role == domain.RoleSale {
		return true
	}
	return viewer.UserID == ownerID
}
