package file

import (
	"errors"
	"filepress/internal/core/domain"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// V1GetFileResponse carries what a client needs to call download
type V1GetFileResponse struct {
	File string `json:"file"`
	Salt int64  `json:"salt"`
}

// GetFileV1 issues a short lived download token for a record
func (h *HandlerV1) GetFileV1(w http.ResponseWriter, r *http.Request) {

	id, parseErr := uuid.Parse(chi.URLParam(r, "id"))
	if parseErr != nil {
		h.writeError(w, http.StatusBadRequest, "rest_invalid_param", "Invalid file ID.")
		return
	}

	grant, err := h.fileService.Get(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		h.writeError(w, http.StatusUnauthorized, "rest_cannot_show", "Sorry, you are not allowed to view this resource.")
		return
	case errors.Is(err, domain.ErrRecordNotFound):
		h.writeError(w, http.StatusNotFound, "rest_post_invalid_id", "Invalid file ID.")
		return
	case err != nil:
		h.logger.Error("error getting file", "error", err)
		h.writeError(w, http.StatusInternalServerError, "rest_internal_error", "Could not issue a download token.")
		return
	default:
		h.writeJSON(w, http.StatusOK, V1GetFileResponse{File: grant.Filename, Salt: grant.Salt})
		return
	}
}
