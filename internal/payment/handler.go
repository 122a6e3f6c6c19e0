// AngelaMos | 2026
// handler.go

package payment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/lessons-backend/internal/core"
	"github.com/carterperez-dev/templates/lessons-backend/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the checkout endpoints. limiter guards both routes
// against session id enumeration.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	optionalAuth, limiter func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(limiter)

		r.With(optionalAuth).Post("/payment-checkout-session", h.StartCheckout)
		r.Post("/payment-success", h.Confirm)
	})
}

func (h *Handler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if email := middleware.GetUserEmail(r.Context()); email != "" {
		req.CustomerEmail = email
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.StartCheckout(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "lesson")
		case errors.Is(err, ErrNotForSale):
			core.BadRequest(w, "lesson is not for sale")
		case errors.Is(err, core.ErrInvalidInput),
			errors.Is(err, core.ErrUpstreamUnavailable):
			core.JSONError(w, err)
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, resp)
}

type ConfirmRequest struct {
	SessionID string `json:"sessionId" validate:"required,max=255"`
}

type ConfirmResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	TransactionID    string `json:"transactionId"`
	Kind             Kind   `json:"kind"`
	LessonID         string `json:"lessonId,omitempty"`
	AlreadyProcessed bool   `json:"alreadyProcessed"`
}

func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.Confirm(r.Context(), req.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, ErrPaymentNotVerified):
			core.JSONError(w, core.NewAppError(
				http.StatusBadRequest,
				"PAYMENT_NOT_VERIFIED",
				"payment has not been completed",
			))
		case errors.Is(err, ErrInvalidSession):
			core.JSONError(w, core.NewAppError(
				http.StatusBadRequest,
				"INVALID_SESSION",
				"checkout session is invalid",
			))
		case errors.Is(err, core.ErrUpstreamUnavailable):
			core.JSONError(w, err)
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	message := "payment recorded"
	if result.AlreadyProcessed {
		message = "payment already processed"
	}

	core.OK(w, ConfirmResponse{
		Success:          true,
		Message:          message,
		TransactionID:    result.TransactionID,
		Kind:             result.Kind,
		LessonID:         result.LessonID,
		AlreadyProcessed: result.AlreadyProcessed,
	})
}
