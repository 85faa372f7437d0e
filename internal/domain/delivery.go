package domain

import "time"

// DeliveryStatus represents the lifecycle stage of a delivery.
type DeliveryStatus string

// Delivery statuses.
const (
	DeliveryStatusProcessing DeliveryStatus = "processing"
	DeliveryStatusShipped    DeliveryStatus = "shipped"
	DeliveryStatusDelivered  DeliveryStatus = "delivered"
)

// IsValid checks if the delivery status is valid.
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusProcessing, DeliveryStatusShipped, DeliveryStatusDelivered:
		return true
	}
	return false
}

// Delivery represents a tracked delivery owned by a user.
type Delivery struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Description string         `json:"description"`
	Status      DeliveryStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// DeliveryLog is an append-only entry in a delivery's history.
// Entries are never mutated or deleted.
type DeliveryLog struct {
	ID          string    `json:"id"`
	DeliveryID  string    `json:"delivery_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// DeliveryOwner carries the owner fields exposed alongside a delivery.
type DeliveryOwner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DeliveryWithOwner extends Delivery with the owning user's contact fields.
type DeliveryWithOwner struct {
	Delivery
	User DeliveryOwner `json:"user"`
}

// DeliveryDetails extends Delivery with its owner and ordered log history.
type DeliveryDetails struct {
	Delivery
	User DeliveryOwner `json:"user"`
	Logs []DeliveryLog `json:"logs"`
}
