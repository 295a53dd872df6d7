package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dori/taskflow/internal/logging"
	"github.com/dori/taskflow/internal/model"
)

// maxRequestBodyBytes bounds decoded JSON payloads.
const maxRequestBodyBytes int64 = 1 << 20

// errInvalidRequest marks malformed request bodies.
var errInvalidRequest = errors.New("invalid request body")

// APIError is one structured API failure.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorEnvelope wraps one APIError.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Handler serves the task REST API under /api.
type Handler struct {
	svc *Service
	log logging.Logger
	mux *http.ServeMux
}

func NewHandler(svc *Service, log logging.Logger) *Handler {
	if log == nil {
		log = logging.Discard()
	}
	h := &Handler{svc: svc, log: log, mux: http.NewServeMux()}

	h.mux.HandleFunc("GET /healthz", h.handleHealthz)
	h.mux.HandleFunc("GET /api/health", h.handleHealth)
	h.mux.HandleFunc("GET /api/tasks", h.handleList)
	h.mux.HandleFunc("POST /api/tasks", h.handleCreate)
	h.mux.HandleFunc("DELETE /api/tasks", h.handleClear)
	h.mux.HandleFunc("GET /api/tasks/stats", h.handleStats)
	h.mux.HandleFunc("GET /api/tasks/{id}", h.handleGet)
	h.mux.HandleFunc("PATCH /api/tasks/{id}", h.handleUpdate)
	h.mux.HandleFunc("PATCH /api/tasks/{id}/toggle", h.handleToggle)
	h.mux.HandleFunc("DELETE /api/tasks/{id}", h.handleDelete)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.log.Debug("request", "method", r.Method, "path", r.URL.Path)
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "taskflow API is running",
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		h.writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

type createRequest struct {
	Title    string         `json:"title"`
	Priority model.Priority `json:"priority"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		h.writeErrorFrom(w, err)
		return
	}
	task, err := h.svc.Create(r.Context(), req.Title, req.Priority)
	if err != nil {
		h.writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Clear(r.Context()); err != nil {
		h.writeErrorFrom(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		h.writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	task, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

type updateRequest struct {
	Title     *string         `json:"title"`
	Completed *bool           `json:"completed"`
	Priority  *model.Priority `json:"priority"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		h.writeErrorFrom(w, err)
		return
	}
	task, err := h.svc.Update(r.Context(), r.PathValue("id"), Update{
		Title:     req.Title,
		Completed: req.Completed,
		Priority:  req.Priority,
	})
	if err != nil {
		h.writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	task, err := h.svc.Toggle(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeErrorFrom(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.writeErrorFrom(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeErrorFrom maps service errors into structured HTTP responses.
func (h *Handler) writeErrorFrom(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSONError(w, http.StatusNotFound, APIError{Code: "not_found", Message: err.Error()})
	case errors.Is(err, ErrInvalidTitle), errors.Is(err, ErrInvalidPriority):
		writeJSONError(w, http.StatusUnprocessableEntity, APIError{Code: "validation_failed", Message: err.Error()})
	case errors.Is(err, errInvalidRequest):
		writeJSONError(w, http.StatusBadRequest, APIError{Code: "invalid_request", Message: err.Error()})
	default:
		h.log.Error("request failed", "err", err)
		writeJSONError(w, http.StatusInternalServerError, APIError{Code: "internal_error", Message: err.Error()})
	}
}

func writeJSONError(w http.ResponseWriter, statusCode int, apiErr APIError) {
	writeJSON(w, statusCode, ErrorEnvelope{Error: apiErr})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// decodeJSONBody decodes one JSON object and rejects trailing content.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, out any) error {
	reader := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	defer reader.Close()

	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: %w", errInvalidRequest, err)
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing content", errInvalidRequest)
	}
	return nil
}
