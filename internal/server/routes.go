package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/penwell/penwell/internal/annotation"
	"github.com/penwell/penwell/internal/schema"
)

// registerRoutes sets up all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /annotations", s.handleCreate)
	mux.HandleFunc("GET /annotations", s.handleList)
	mux.HandleFunc("DELETE /annotations/{id}", s.handleDelete)
}

// HealthResponse is the response for the health check endpoint.
type HealthResponse struct {
	Status      string `json:"status"`
	Annotations int    `json:"annotations"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Annotations: s.store.Len()})
}

// handleCreate validates the payload against the wire schema before
// decoding, so malformed locations never enter the table.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if err := schema.ValidateAnnotation(body); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var ann annotation.Annotation
	if err := json.Unmarshal(body, &ann); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created := s.store.Add(ann)
	s.logger.Info("annotation created",
		"annotation_id", created.ID, "thread_id", created.ThreadID,
		"file_id", created.FileID, "type", created.Type)
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	anns := s.store.List(r.URL.Query().Get("file_id"))
	if anns == nil {
		anns = []annotation.Annotation{}
	}
	writeJSON(w, http.StatusOK, anns)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.store.Remove(id) {
		writeError(w, http.StatusNotFound, "annotation not found")
		return
	}
	s.logger.Info("annotation deleted", "annotation_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// ErrorResponse is the error body for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
