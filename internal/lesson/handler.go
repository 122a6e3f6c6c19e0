// AngelaMos | 2026
// handler.go

package lesson

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

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
	r.Route("/lessons", func(r chi.Router) {
		r.With(optionalAuth).Post("/", h.Create)
		r.With(optionalAuth).Get("/", h.List)
		r.With(optionalAuth).Get("/{lessonID}", h.Get)
		r.With(authenticator).Patch("/{lessonID}", h.Update)
		r.With(authenticator).Delete("/{lessonID}", h.Delete)
	})

	r.With(authenticator).Get("/my-lessons", h.ListMine)
}

// Create accepts anonymous submissions. When a principal is attached the
// lesson is always credited to them.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if email := middleware.GetUserEmail(r.Context()); email != "" {
		req.CreatorEmail = email
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	lesson, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, ToLessonResponse(View{Lesson: *lesson}))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := ListLessonsParams{
		Page:          parseIntQuery(r, "page", 0),
		Size:          parseIntQuery(r, "size", defaultPageSize),
		Search:        q.Get("search"),
		Category:      q.Get("category"),
		EmotionalTone: q.Get("emotionalTone"),
		Sort:          q.Get("sort"),
	}
	params.Normalize()

	views, total, err := h.service.List(
		r.Context(),
		middleware.GetActor(r.Context()),
		params,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ListLessonsResponse{
		Lessons: ToLessonResponseList(views),
		Count:   total,
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Get(
		r.Context(),
		middleware.GetActor(r.Context()),
		chi.URLParam(r, "lessonID"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToLessonResponse(*view))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	lesson, err := h.service.Update(
		r.Context(),
		middleware.GetActor(r.Context()),
		chi.URLParam(r, "lessonID"),
		req,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToLessonResponse(View{Lesson: *lesson}))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(
		r.Context(),
		middleware.GetActor(r.Context()),
		chi.URLParam(r, "lessonID"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListMine(r.Context(), middleware.GetUserEmail(r.Context()))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToLessonResponseList(views))
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "lesson")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "you may not modify this lesson")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
