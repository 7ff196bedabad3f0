package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/FredrikEglese/learnApi/internal/apperr"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorMapsTaxonomy(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", apperr.Validationf("Please add a name"), http.StatusBadRequest, "Please add a name"},
		{"not found", apperr.NotFoundf("Bootcamp not found with id of: abc"), http.StatusNotFound, "Bootcamp not found with id of: abc"},
		{"unauthorized", apperr.Unauthorized("Not authorised for this route"), http.StatusUnauthorized, "Not authorised for this route"},
		{"forbidden", apperr.Forbidden("nope"), http.StatusForbidden, "nope"},
		{"conflict", apperr.Conflictf("already owns a bootcamp"), http.StatusBadRequest, "already owns a bootcamp"},
		{"upstream", apperr.Upstreamf("geocoder returned status 502"), http.StatusInternalServerError, "geocoder returned status 502"},
		{"error desconocido no filtra detalles", errors.New("pq: secret detail"), http.StatusInternalServerError, "Server Error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			respondError(w, tc.err)

			assert.Equal(t, tc.wantStatus, w.Code)
			body := decodeEnvelope(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.wantMsg, body["error"])
		})
	}
}

func TestObjectIDParamInvalidHexIsNotFound(t *testing.T) {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("bootcampId", "not-a-hex")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bootcamps/not-a-hex", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	_, err := objectIDParam(req, "bootcampId")
	require.Error(t, err)

	// hex inválido es 404, no 400
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindNotFound, e.Kind)
	assert.Equal(t, http.StatusNotFound, e.Status())
	assert.Equal(t, "Resource not found with id of: not-a-hex", e.Msg)
}

func TestHealthEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	body := decodeEnvelope(t, w)
	assert.Equal(t, true, body["success"])
}

func TestRespondData(t *testing.T) {
	w := httptest.NewRecorder()
	respondData(w, http.StatusCreated, map[string]any{"name": "Devworks"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	body := decodeEnvelope(t, w)
	assert.Equal(t, true, body["success"])
}
