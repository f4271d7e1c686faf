package file

import (
	"errors"
	"filepress/internal/core/domain"
	"net/http"

	"github.com/google/uuid"
)

// multipart parts above this size spill to disk
const maxUploadMemory = 8 << 20

// V1CreateFileResponse is the response to an upload
type V1CreateFileResponse struct {
	ID uuid.UUID `json:"id"`
}

func (h *HandlerV1) CreateFileV1(w http.ResponseWriter, r *http.Request) {

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, http.StatusRequestEntityTooLarge, "rest_upload_too_large", "The uploaded file exceeds the maximum size.")
			return
		}
		h.writeError(w, http.StatusBadRequest, "rest_upload_no_data", "No data supplied.")
		return
	}
	defer r.MultipartForm.RemoveAll()

	upload, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "rest_upload_no_data", "No data supplied.")
		return
	}
	defer upload.Close()

	id, err := h.fileService.Create(r.Context(), domain.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  upload,
	})
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		h.writeError(w, http.StatusUnauthorized, "rest_cannot_create", "Sorry, you are not allowed to create files.")
		return
	case errors.Is(err, domain.ErrValidation):
		h.writeError(w, http.StatusBadRequest, "rest_invalid_param", "Invalid file name.")
		return
	case err != nil:
		h.logger.Error("error creating file", "error", err)
		h.writeError(w, http.StatusInternalServerError, "rest_could_not_save_file", "Could not save file.")
		return
	default:
		h.writeJSON(w, http.StatusCreated, V1CreateFileResponse{ID: id})
		return
	}
}
