package deliveries

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shipyard-labs/delivery-track/internal/domain"
	"github.com/shipyard-labs/delivery-track/internal/pkg/httputil"
)

// Handler handles HTTP requests for the deliveries module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new deliveries handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterSaleRoutes registers routes restricted to the sale role.
func (h *Handler) RegisterSaleRoutes(r chi.Router) {
	r.Post("/deliveries", h.Create)
	r.Get("/deliveries", h.List)
	r.Patch("/deliveries/{id}/status", h.UpdateStatus)
	r.Post("/delivery-logs", h.CreateLog)
}

// RegisterSharedRoutes registers routes open to both sale and customer roles.
func (h *Handler) RegisterSharedRoutes(r chi.Router) {
	r.Get("/delivery-logs/{delivery_id}/show", h.Show)
}

// CreateDeliveryRequest represents the delivery creation request body.
type CreateDeliveryRequest struct {
	UserID      string `json:"user_id" validate:"required,uuid"`
	Description string `json:"description" validate:"required"`
}

// Create handles POST /deliveries.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	if _, err := h.service.Create(r.Context(), CreateInput{
		UserID:      req.UserID,
		Description: req.Description,
	}); err != nil {
		httputil.HandleError(r.Context(), w, err, nil)
		return
	}

	httputil.JSON(w, http.StatusCreated, nil)
}

// List handles GET /deliveries.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	deliveries, err := h.service.List(r.Context())
	if err != nil {
		httputil.HandleError(r.Context(), w, err, nil)
		return
	}

	httputil.JSON(w, http.StatusOK, deliveries)
}

// UpdateStatusRequest represents the status update request body.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=processing shipped delivered"`
}

// UpdateStatus handles PATCH /deliveries/{id}/status.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.validator.Var(id, "uuid"); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, domain.DeliveryStatus(req.Status)); err != nil {
		httputil.HandleError(r.Context(), w, err, []httputil.ErrorMapping{
			{Error: ErrDeliveryNotFound, Status: http.StatusNotFound},
			{Error: ErrInvalidStatus, Status: http.StatusBadRequest},
		})
		return
	}

	httputil.JSON(w, http.StatusOK, nil)
}

// CreateLogRequest represents the manual log creation request body.
type CreateLogRequest struct {
	DeliveryID  string `json:"delivery_id" validate:"required,uuid"`
	Description string `json:"description" validate:"required"`
}

// CreateLog handles POST /delivery-logs.
func (h *Handler) CreateLog(w http.ResponseWriter, r *http.Request) {
	var req CreateLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	if err := h.service.AddLog(r.Context(), req.DeliveryID, req.Description); err != nil {
		httputil.HandleError(r.Context(), w, err, []httputil.ErrorMapping{
			{Error: ErrDeliveryNotFound, Status: http.StatusNotFound},
			{Error: ErrAlreadyDelivered, Status: http.StatusBadRequest},
			{Error: ErrNotShipped, Status: http.StatusBadRequest},
		})
		return
	}

	httputil.JSON(w, http.StatusCreated, nil)
}

// Show handles GET /delivery-logs/{delivery_id}/show.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	deliveryID := chi.URLParam(r, "delivery_id")
	if err := h.validator.Var(deliveryID, "uuid"); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	viewer := Identity{
		UserID: httputil.GetUserID(r.Context()),
		Role:   httputil.GetRole(r.Context()),
	}

	details, err := h.service.Show(r.Context(), viewer, deliveryID)
	if err != nil {
		httputil.HandleError(r.Context(), w, err, []httputil.ErrorMapping{
			{Error: ErrDeliveryNotFound, Status: http.StatusNotFound},
			{Error: ErrNotOwner, Status: http.StatusUnauthorized},
		})
		return
	}

	httputil.JSON(w, http.StatusOK, details)
}
