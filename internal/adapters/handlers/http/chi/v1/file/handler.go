package file

import (
	"encoding/json"
	"filepress/internal/core/port"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// HandlerV1 is the handler for v1 file routes
type HandlerV1 struct {
	fileService port.FileService
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewFileHandlerV1 creates HandlerV1
func NewFileHandlerV1(service port.FileService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		fileService: service,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", h.CreateFileV1)
	router.Get("/", h.ListFilesV1)
	router.Get("/download", h.DownloadFileV1)
	router.Get("/is-logged-in", h.IsLoggedInV1)
	router.Get("/{id}", h.GetFileV1)
	router.Delete("/{id}", h.DeleteFileV1)

	return router
}

// V1ErrorResponse mirrors the WordPress REST error body
type V1ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    V1ErrorData `json:"data"`
}

type V1ErrorData struct {
	Status int `json:"status"`
}

func (h *HandlerV1) writeError(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, V1ErrorResponse{
		Code:    code,
		Message: message,
		Data:    V1ErrorData{Status: status},
	})
}

func (h *HandlerV1) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
