package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"quickbids/internal/apperror"
	"quickbids/internal/auth"
	"quickbids/internal/repository"

	"github.com/go-chi/chi/v5"
)

// maxBodyBytes caps request bodies at 1 MiB.
const maxBodyBytes = 1048576

// Handler serves the REST API on top of a repository.Store.
type Handler struct {
	Store  repository.Store
	Hasher auth.PasswordHasher
	Tokens auth.TokenService
	Logger *slog.Logger
}

// NewHandler creates a Handler. A nil logger falls back to slog.Default.
func NewHandler(store repository.Store, hasher auth.PasswordHasher, tokens auth.TokenService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{Store: store, Hasher: hasher, Tokens: tokens, Logger: logger}
}

// PingHandler answers "ok" so load balancers can probe the server.
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type errorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError answers with the status apperror assigns to err. Unexpected
// errors are logged and reported without internals.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperror.StatusCode(err)
	resp := errorResponse{Message: err.Error()}

	var verr *apperror.ValidationError
	if errors.As(err, &verr) {
		resp = errorResponse{Message: verr.Message, Errors: verr.Problems}
	}
	if status >= http.StatusInternalServerError {
		h.Logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("err", err),
		)
		resp = errorResponse{Message: http.StatusText(status)}
	}

	writeJSON(w, status, resp)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, apperror.Validation("Failed to read request body")
	}
	return body, nil
}

// urlID parses the {key} path parameter. Anything that is not a positive
// integer cannot name a row, so it is reported as not found.
func urlID(r *http.Request, key, resource string) (int64, error) {
	raw := chi.URLParam(r, key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NotFound(resource, raw)
	}
	return id, nil
}

func ptr[T any](v T) *T { return &v }
