package file

import (
	"errors"
	"filepress/internal/core/domain"
	"net/http"
)

// V1AuthStatusResponse is the answer of the credentials check
type V1AuthStatusResponse struct {
	Message string             `json:"message"`
	Data    V1AuthStatusDetail `json:"data"`
}

type V1AuthStatusDetail struct {
	Status int `json:"status"`
}

func (h *HandlerV1) IsLoggedInV1(w http.ResponseWriter, r *http.Request) {

	status, err := h.fileService.AuthCheck(r.Context())
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		h.writeError(w, http.StatusUnauthorized, "rest_wrong_credentials", "You are not logged in.")
		return
	case err != nil:
		h.logger.Error("error checking credentials", "error", err)
		h.writeError(w, http.StatusInternalServerError, "rest_internal_error", "Could not check credentials.")
		return
	default:
		h.writeJSON(w, status.Status, V1AuthStatusResponse{
			Message: status.Message,
			Data:    V1AuthStatusDetail{Status: status.Status},
		})
		return
	}
}
