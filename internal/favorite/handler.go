// AngelaMos | 2026
// handler.go

package favorite

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

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
	authenticator, optionalAuth func(http.Handler) http.Handler,
) {
	r.Route("/favorites", func(r chi.Router) {
		r.With(optionalAuth).Post("/", h.Create)
		r.With(authenticator).Get("/{email}", h.List)
		r.With(authenticator).Delete("/{favoriteID}", h.Delete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if email := middleware.GetUserEmail(r.Context()); email != "" {
		req.UserEmail = email
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	favorite, created, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	if !created {
		core.OK(w, CreateFavoriteResponse{
			Favorite:      ToFavoriteResponse(favorite),
			AlreadyExists: true,
			Message:       "favorite already exists",
		})
		return
	}

	core.Created(w, CreateFavoriteResponse{
		Favorite: ToFavoriteResponse(favorite),
		Message:  "favorite added",
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil {
		core.BadRequest(w, "invalid email")
		return
	}

	rows, err := h.service.ListForUser(
		r.Context(),
		middleware.GetActor(r.Context()),
		email,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToSavedList(rows))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "favoriteID")

	err := h.service.Delete(r.Context(), middleware.GetActor(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}

	core.NoContent(w)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "favorite")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "favorites are private to their owner")
	default:
		core.InternalServerError(w, err)
	}
}
