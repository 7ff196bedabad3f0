package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/FredrikEglese/learnApi/internal/apperr"
	"github.com/FredrikEglese/learnApi/internal/repository"
	"github.com/FredrikEglese/learnApi/internal/service"

	"github.com/go-chi/chi/v5"
)

type BootcampHandler struct {
	svc *service.BootcampService
}

func NewBootcampHandler(s *service.BootcampService) *BootcampHandler {
	return &BootcampHandler{svc: s}
}

type bootcampRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Website       string   `json:"website"`
	Email         string   `json:"email"`
	Address       string   `json:"address"`
	Careers       []string `json:"careers"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"jobAssistance"`
	JobGuarantee  bool     `json:"jobGuarantee"`
}

type bootcampUpdateRequest struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Website       *string   `json:"website"`
	Email         *string   `json:"email"`
	Address       *string   `json:"address"`
	Careers       *[]string `json:"careers"`
	Housing       *bool     `json:"housing"`
	JobAssistance *bool     `json:"jobAssistance"`
	JobGuarantee  *bool     `json:"jobGuarantee"`
}

// @Summary Listar bootcamps (filtro/orden/paginado)
// @Tags bootcamps
// @Produce json
// @Param select query string false "campos separados por coma"
// @Param sort query string false "orden, ej: -averageCost,name"
// @Param page query int false "página (default: 1)"
// @Param limit query int false "tamaño de página (default: 25)"
// @Success 200 {object} map[string]any
// @Router /api/v1/bootcamps [get]
func (h *BootcampHandler) List(w http.ResponseWriter, r *http.Request) {
	q := repository.ParseListQuery(r.URL.Query())

	page, err := h.svc.List(r.Context(), q)
	if err != nil {
		respondError(w, err)
		return
	}
	respondPage(w, page.Count, page.Pagination, page.Data)
}

// @Summary Obtener un bootcamp
// @Tags bootcamps
// @Produce json
// @Param bootcampId path string true "bootcamp id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/v1/bootcamps/{bootcampId} [get]
func (h *BootcampHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "bootcampId")
	if err != nil {
		respondError(w, err)
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, b)
}

// @Summary Crear bootcamp
// @Tags bootcamps
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body bootcampRequest true "datos"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/v1/bootcamps [post]
func (h *BootcampHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bootcampRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Validationf("invalid request body"))
		return
	}

	b, err := h.svc.Create(r.Context(), UserFromContext(r.Context()), service.BootcampInput{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		Email:         req.Email,
		Address:       req.Address,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, b)
}

// @Summary Actualizar bootcamp
// @Tags bootcamps
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param bootcampId path string true "bootcamp id"
// @Param body body bootcampUpdateRequest true "campos a actualizar"
// @Success 200 {object} map[string]any
// @Router /api/v1/bootcamps/{bootcampId} [put]
func (h *BootcampHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "bootcampId")
	if err != nil {
		respondError(w, err)
		return
	}

	var req bootcampUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperr.Validationf("invalid request body"))
		return
	}

	b, err := h.svc.Update(r.Context(), UserFromContext(r.Context()), id, service.BootcampUpdate{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		Email:         req.Email,
		Address:       req.Address,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, b)
}

// @Summary Borrar bootcamp (con cascada de cursos)
// @Tags bootcamps
// @Security BearerAuth
// @Produce json
// @Param bootcampId path string true "bootcamp id"
// @Success 200 {object} map[string]any
// @Router /api/v1/bootcamps/{bootcampId} [delete]
func (h *BootcampHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := objectIDParam(r, "bootcampId")
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

// @Summary Bootcamps dentro de un radio
// @Description Busca bootcamps a menos de {distance} km del postcode
// @Tags bootcamps
// @Produce json
// @Param postcode path string true "código postal"
// @Param distance path number true "distancia en km"
// @Success 200 {object} map[string]any
// @Router /api/v1/bootcamps/radius/{postcode}/{distance} [get]
func (h *BootcampHandler) WithinRadius(w http.ResponseWriter, r *http.Request) {
	postcode := chi.URLParam(r, "postcode")

	distance, err := strconv.ParseFloat(chi.URLParam(r, "distance"), 64)
	if err != nil {
		respondError(w, apperr.Validationf("distance must be a number of kilometers"))
		return
	}

	bootcamps, err := h.svc.WithinRadius(r.Context(), postcode, distance)
	if err != nil {
		respondError(w, err)
		return
	}
	respondList(w, len(bootcamps), bootcamps)
}
