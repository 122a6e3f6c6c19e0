// AngelaMos | 2026
// handler.go

package comment

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	optionalAuth func(http.Handler) http.Handler,
) {
	r.Route("/comments", func(r chi.Router) {
		r.With(optionalAuth).Post("/", h.Create)
		r.Get("/{lessonID}", h.List)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if email := middleware.GetUserEmail(r.Context()); email != "" {
		req.AuthorEmail = email
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	comment, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "comment must not be blank")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "lesson")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToCommentResponse(comment))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "lessonID")

	comments, err := h.service.ListByLesson(r.Context(), lessonID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "lesson")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCommentResponseList(comments))
}
