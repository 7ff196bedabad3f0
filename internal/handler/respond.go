package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/FredrikEglese/learnApi/internal/apperr"
	"github.com/FredrikEglese/learnApi/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondData escribe el sobre estándar de éxito {success, data}.
func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{
		"success": true,
		"data":    data,
	})
}

func respondList(w http.ResponseWriter, count int, data any) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   count,
		"data":    data,
	})
}

func respondPage(w http.ResponseWriter, count int, pagination repository.Pagination, data any) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"count":      count,
		"pagination": pagination,
		"data":       data,
	})
}

// respondError es el responder central: todos los errores de los
// handlers terminan acá. Lo que no pertenece a la taxonomía se
// loguea y sale como 500 genérico.
func respondError(w http.ResponseWriter, err error) {
	if e, ok := apperr.As(err); ok {
		writeJSON(w, e.Status(), map[string]any{
			"success": false,
			"error":   e.Msg,
		})
		return
	}

	log.Printf("[http] error no mapeado: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"success": false,
		"error":   "Server Error",
	})
}

// objectIDParam parsea un ObjectID de la ruta. Un hex inválido se
// trata como recurso inexistente, no como error de sintaxis.
func objectIDParam(r *http.Request, name string) (primitive.ObjectID, error) {
	raw := chi.URLParam(r, name)
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperr.NotFoundf("Resource not found with id of: %s", raw)
	}
	return id, nil
}
