// Package postgres provides the PostgreSQL implementation of the deliveries repository.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shipyard-labs/delivery-track/internal/deliveries"
	"github.com/shipyard-labs/delivery-track/internal/domain"
)

// Repository implements the deliveries.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateDelivery inserts a new delivery.
func (r *Repository) CreateDelivery(ctx context.Context, delivery *domain.Delivery) error {
	query := `
		INSERT INTO deliveries (user_id, description, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		delivery.UserID,
		delivery.Description,
		delivery.Status,
	).Scan(&delivery.ID, &delivery.CreatedAt, &delivery.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create delivery: %w", err)
	}
	return nil
}

// ListDeliveries retrieves all deliveries with their owners' contact fields.
func (r *Repository) ListDeliveries(ctx context.Context) ([]domain.DeliveryWithOwner, error) {
	query := `
		SELECT d.id, d.user_id, d.description, d.status, d.created_at, d.updated_at,
		       u.name, u.email
		FROM deliveries d
		JOIN users u ON u.id = d.user_id
		ORDER BY d.created_at
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	deliveriesList := make([]domain.DeliveryWithOwner, 0)
	for rows.Next() {
		var d domain.DeliveryWithOwner
		err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.Description,
			&d.Status,
			&d.CreatedAt,
			&d.UpdatedAt,
			&d.User.Name,
			&d.User.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		deliveriesList = append(deliveriesList, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deliveries: %w", err)
	}

	return deliveriesList, nil
}

// GetDeliveryByID retrieves a delivery by id.
func (r *Repository) GetDeliveryByID(ctx context.Context, id string) (*domain.Delivery, error) {
	query := `
		SELECT id, user_id, description, status, created_at, updated_at
		FROM deliveries
		WHERE id = $1
	`
	var delivery domain.Delivery
	err := r.db.QueryRow(ctx, query, id).Scan(
		&delivery.ID,
		&delivery.UserID,
		&delivery.Description,
		&delivery.Status,
		&delivery.CreatedAt,
		&delivery.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, deliveries.ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("get delivery by id: %w", err)
	}
	return &delivery, nil
}

// GetDeliveryDetails retrieves a delivery with its owner and logs in creation order.
func (r *Repository) GetDeliveryDetails(ctx context.Context, id string) (*domain.DeliveryDetails, error) {
	query := `
		SELECT d.id, d.user_id, d.description, d.status, d.created_at, d.updated_at,
		       u.name, u.email
		FROM deliveries d
		JOIN users u ON u.id = d.user_id
		WHERE d.id = $1
	`
	var details domain.DeliveryDetails
	err := r.db.QueryRow(ctx, query, id).Scan(
		&details.ID,
		&details.UserID,
		&details.Description,
		&details.Status,
		&details.CreatedAt,
		&details.UpdatedAt,
		&details.User.Name,
		&details.User.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, deliveries.ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("get delivery details: %w", err)
	}

	logsQuery := `
		SELECT id, delivery_id, description, created_at
		FROM delivery_logs
		WHERE delivery_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.Query(ctx, logsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list delivery logs: %w", err)
	}
	defer rows.Close()

	details.Logs = make([]domain.DeliveryLog, 0)
	for rows.Next() {
		var log domain.DeliveryLog
		if err := rows.Scan(&log.ID, &log.DeliveryID, &log.Description, &log.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery log: %w", err)
		}
		details.Logs = append(details.Logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate delivery logs: %w", err)
	}

	return &details, nil
}

// UpdateStatusWithLog sets the delivery status and appends the matching log
// entry in one transaction, so the two writes are observed together.
func (r *Repository) UpdateStatusWithLog(ctx context.Context, id string, status domain.DeliveryStatus) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback status update", "error", err)
		}
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE deliveries
		SET status = $1, updated_at = now()
		WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("update delivery status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return deliveries.ErrDeliveryNotFound
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO delivery_logs (delivery_id, description)
		VALUES ($1, $2)
	`, id, string(status))
	if err != nil {
		return fmt.Errorf("create status log: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// CreateLog inserts a new manual log entry.
func (r *Repository) CreateLog(ctx context.Context, log *domain.DeliveryLog) error {
	query := `
		INSERT INTO delivery_logs (delivery_id, description)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		log.DeliveryID,
		log.Description,
	).Scan(&log.ID, &log.CreatedAt)

	if err != nil {
		return fmt.Errorf("create delivery log: %w", err)
	}
	return nil
}
