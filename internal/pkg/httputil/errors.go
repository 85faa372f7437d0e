package httputil

import (
	"context"
	"errors"
	"net/http"

	"github.com/shipyard-labs/delivery-track/internal/pkg/ctxlog"
)

// ErrorMapping pairs a sentinel error with the HTTP status it translates to.
type ErrorMapping struct {
	Error   error
	Status  int
	Message string // if empty, uses err.Error()
}

// HandleError is the single error boundary for handlers: it walks the
// mappings with errors.Is and writes the first match. Anything unmapped is
// logged and answered with a generic 500 so store errors never leak.
func HandleError(ctx context.Context, w http.ResponseWriter, err error, mappings []ErrorMapping) {
	for _, m := range mappings {
		if errors.Is(err, m.Error) {
			msg := m.Message
			if msg == "" {
				msg = err.Error()
			}
			Error(w, m.Status, msg)
			return
		}
	}
	ctxlog.FromContext(ctx).Error("internal error", "error", err)
	Error(w, http.StatusInternalServerError, "internal error")
}
