package exercises

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/exercise-tracker-go/httpx"
)

// ExerciseHandlers exposes ExerciseService over HTTP.
type ExerciseHandlers struct {
	service *ExerciseService
}

// NewExerciseHandlers creates new ExerciseHandlers.
func NewExerciseHandlers(service *ExerciseService) *ExerciseHandlers {
	return &ExerciseHandlers{service: service}
}

// RegisterRoutes mounts the exercise endpoints on the /api/users router.
func (h *ExerciseHandlers) RegisterRoutes(r chi.Router) {
	r.Post("/{id}/exercises", h.HandleAddExercise())
	r.Get("/{id}/logs", h.HandleGetLog())
}

// HandleAddExercise godoc
// @Summary Add an exercise
// @Description Appends an exercise to the user's log. The date defaults to now.
// @Tags exercises
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "User ID"
// @Param exercise body AddExerciseRequest true "Exercise to append"
// @Success 200 {object} ExerciseResponse
// @Failure 400 {object} apperror.ErrorResponse "Missing or invalid field"
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/users/{id}/exercises [post]
func (h *ExerciseHandlers) HandleAddExercise() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddExerciseRequest
		if err := httpx.Bind(w, r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}

		resp, err := h.service.AddExercise(r.Context(), chi.URLParam(r, "id"), req)
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, resp)
	}
}

// HandleGetLog godoc
// @Summary Get a user's exercise log
// @Description Returns the log sorted by date. from and to are inclusive; limit keeps the earliest entries.
// @Tags exercises
// @Produce json
// @Param id path string true "User ID"
// @Param from query string false "Earliest date, e.g. 2023-01-01"
// @Param to query string false "Latest date, e.g. 2023-01-31"
// @Param limit query int false "Maximum number of entries"
// @Success 200 {object} LogResponse
// @Failure 400 {object} apperror.ErrorResponse "Invalid date bound"
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /api/users/{id}/logs [get]
func (h *ExerciseHandlers) HandleGetLog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h.service.GetLog(r.Context(), chi.URLParam(r, "id"), logQueryFrom(r.URL.Query()))
		if err != nil {
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, resp)
	}
}
