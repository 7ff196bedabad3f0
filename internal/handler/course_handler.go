package handler

import (
	"encoding/json"
	"net/http"

	"github.com/FredrikEglese/learnApi/internal/apperr"
	"github.com/FredrikEglese/learnApi/internal/repository"
	"github.com/FredrikEglese/learnApi/internal/service"
)

type CourseHandler struct {
	svc *service.CourseService
}

func NewCourseHandler(s *service.CourseService) *CourseHandler {
	return &CourseHandler{svc: s}
}

type courseRequest struct {
	Title                string  `json:"title"`
	Description          string  `json:"description"`
	Weeks                int     `json:"weeks"`
	Tuition              float64 `json:"tuition"`
	MinimumSkill         string  `json:"minimumSkill"`
	ScholarshipAvailable bool    `json:"scholarshipAvailable"`
}

type courseUpdateRequest struct {
	Title                *string  `json:"title"`
	Description          *string  `json:"description"`
	Weeks                *int     `json:"weeks"`
	Tuition              *float64 `json:"tuition"`
	MinimumSkill         *string  `json:"minimumSkill"`
	ScholarshipAvailable *bool    `json:"scholarshipAvailable"`
}

// @Summary Listar todos los cursos
// @Tags courses
// @Produce json
// @Param select query string false "campos separados por coma"
// @Param sort query string false "orden"
// @Param page query int false "página"
// @Param limit query int false "tamaño de página"
// @Success 200 {object} map[string]any
// @Router /api/v1/courses [get]
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	q := repository.ParseListQuery(r.URL.Query())

	page, err := h.svc.List(r.Context(), q)
	if err != nil {
		respondError(w, err)
		return
	}
	respondPage(w, page.Count, page.Pagination, page.Data)
}

// @Summary Listar cursos de un bootcamp
// @Tags courses
// @Produce json
// @Param bootcampId path string true "bootcamp id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/v1/bootcamps/{bootcampId}/courses [get]
func (h *CourseHandler) ListByBootcamp(w http.ResponseWriter, r *http.Request) {
	bootcampID, err := objectIDParam(r, "bootcampId")
	if err != nil {
		respondError(w, err)
		return
	}

	q := repository.ParseListQuery(r.URL.Query())

	page, err := h.svc.ListByBootcamp(r.Context(), bootcampID, q)
	if err != nil {
		respondError(w, err)
		return
	}
	respondPage(w, page.Count, page.Pagination, page.Data)
}

// @Summary Obtener un curso
// @Tags courses
// @Produce json
// @Param id path string true "course id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/v1/courses/{id} [get]
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, c)
}

// @Summary Agregar curso a un bootcamp
// @Tags courses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param bootcampId path string true "bootcamp id"
// @Param body body courseRequest true "datos"
// @Success 201 {object} map[string]any
// @Router /api/v1/bootcamps/{bootcampId}/courses [post]
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	bootcampID, err := objectIDParam(r, "bootcampId")
	if err != nil {
		respondError(w, err)
		return
	}

	var req courseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Validationf("invalid request body"))
		return
	}

	c, err := h.svc.Create(r.Context(), UserFromContext(r.Context()), bootcampID, service.CourseInput{
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         req.MinimumSkill,
		ScholarshipAvailable: req.ScholarshipAvailable,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, c)
}

// @Summary Actualizar curso
// @Tags courses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "course id"
// @Param body body courseUpdateRequest true "campos a actualizar"
// @Success 200 {object} map[string]any
// @Router /api/v1/courses/{id} [put]
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req courseUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Validationf("invalid request body"))
		return
	}

	c, err := h.svc.Update(r.Context(), UserFromContext(r.Context()), id, service.CourseUpdate{
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         req.MinimumSkill,
		ScholarshipAvailable: req.ScholarshipAvailable,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, c)
}

// @Summary Borrar curso
// @Tags courses
// @Security BearerAuth
// @Produce json
// @Param id path string true "course id"
// @Success 200 {object} map[string]any
// @Router /api/v1/courses/{id} [delete]
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), UserFromContext(r.Context()), id); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{})
}
