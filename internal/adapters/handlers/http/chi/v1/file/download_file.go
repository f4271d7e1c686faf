package file

import (
	"errors"
	"filepress/internal/core/domain"
	"io"
	"net/http"
	"strconv"
)

// V1DownloadQuery is the query of a download request
type V1DownloadQuery struct {
	File string `validate:"required,max=255"`
	Salt string `validate:"required,max=64"`
}

// DownloadFileV1 redeems a token and streams the file as an attachment
func (h *HandlerV1) DownloadFileV1(w http.ResponseWriter, r *http.Request) {

	query := V1DownloadQuery{
		File: r.URL.Query().Get("file"),
		Salt: r.URL.Query().Get("salt"),
	}
	if err := h.validate.Struct(query); err != nil {
		h.writeError(w, http.StatusBadRequest, "rest_missing_callback_param", "Missing or invalid parameters: file, salt.")
		return
	}

	delivery, err := h.fileService.Deliver(r.Context(), query.File, query.Salt)
	switch {
	case errors.Is(err, domain.ErrValidation):
		h.writeError(w, http.StatusBadRequest, "rest_invalid_param", "Invalid parameters: file, salt.")
		return
	case errors.Is(err, domain.ErrUnauthorized):
		h.writeError(w, http.StatusUnauthorized, "rest_cannot_show", "Sorry, you are not allowed to view this resource.")
		return
	case errors.Is(err, domain.ErrFile):
		h.writeError(w, http.StatusInternalServerError, "rest_file_error", "Sorry, this file does not seem to exist on the server.")
		return
	case err != nil:
		h.logger.Error("error delivering file", "error", err)
		h.writeError(w, http.StatusInternalServerError, "rest_file_error", "Sorry, this file does not seem to exist on the server.")
		return
	}
	defer delivery.Content.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.FormatInt(delivery.Size, 10))
	w.Header().Set("Content-Disposition", "attachment; filename="+delivery.Filename)
	w.WriteHeader(http.StatusOK)

	// headers are gone, a failed copy can only be logged
	if _, err := io.Copy(w, delivery.Content); err != nil {
		h.logger.Warn("download interrupted", "filename", delivery.Filename, "error", err)
	}
}
