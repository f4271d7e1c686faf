package file

import (
	"errors"
	"filepress/internal/core/domain"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// V1DeleteFileResponse follows the WordPress delete shape
type V1DeleteFileResponse struct {
	Deleted  bool                 `json:"deleted"`
	Previous V1FileRecordResponse `json:"previous"`
}

func (h *HandlerV1) DeleteFileV1(w http.ResponseWriter, r *http.Request) {

	id, parseErr := uuid.Parse(chi.URLParam(r, "id"))
	if parseErr != nil {
		h.writeError(w, http.StatusBadRequest, "rest_invalid_param", "Invalid file ID.")
		return
	}

	force := false
	if raw := r.URL.Query().Get("force"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "rest_invalid_param", "Invalid parameter: force.")
			return
		}
		force = parsed
	}

	result, err := h.fileService.Delete(r.Context(), id, force)
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		h.writeError(w, http.StatusUnauthorized, "rest_cannot_delete", "Sorry, you are not allowed to delete this file.")
		return
	case errors.Is(err, domain.ErrRecordNotFound):
		h.writeError(w, http.StatusNotFound, "rest_post_invalid_id", "Invalid file ID.")
		return
	case errors.Is(err, domain.ErrAlreadyTrashed):
		h.writeError(w, http.StatusGone, "rest_already_trashed", "The file has already been deleted.")
		return
	case err != nil:
		h.logger.Error("error deleting file", "error", err)
		h.writeError(w, http.StatusInternalServerError, "rest_could_not_delete_file", "Could not delete file.")
		return
	default:
		h.writeJSON(w, http.StatusOK, V1DeleteFileResponse{
			Deleted:  result.Deleted,
			Previous: toRecordResponse(result.Previous, 0),
		})
		return
	}
}
