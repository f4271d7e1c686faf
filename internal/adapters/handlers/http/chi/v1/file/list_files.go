package file

import (
	"errors"
	"filepress/internal/core/domain"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const defaultPerPage = 10

// V1ListFilesQuery is the query of a listing request
type V1ListFilesQuery struct {
	Page    int      `validate:"min=1,max=100000"`
	PerPage int      `validate:"min=1,max=100"`
	Status  []string `validate:"dive,oneof=draft publish trash"`
	Search  string   `validate:"max=200"`
}

// V1FileRecordResponse is one record of a listing
type V1FileRecordResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	SizeBytes int64     `json:"size_bytes"`
	MimeType  string    `json:"mime_type"`
	Status    string    `json:"status"`
	Date      time.Time `json:"date"`
	Modified  time.Time `json:"modified"`
}

func toRecordResponse(record domain.FileRecord, _ int) V1FileRecordResponse {
	return V1FileRecordResponse{
		ID:        record.ID,
		Title:     record.Filename,
		Content:   record.SizeLabel,
		SizeBytes: record.SizeBytes,
		MimeType:  record.MimeType,
		Status:    string(record.Status),
		Date:      record.CreatedAt,
		Modified:  record.UpdatedAt,
	}
}

func (h *HandlerV1) ListFilesV1(w http.ResponseWriter, r *http.Request) {

	query, err := parseListQuery(r)
	if err == nil {
		err = h.validate.Struct(query)
	}
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "rest_invalid_param", "Invalid parameters: page, per_page, status, search.")
		return
	}

	filter := domain.ListFilter{
		Statuses: lo.Map(query.Status, func(s string, _ int) domain.RecordStatus { return domain.RecordStatus(s) }),
		Search:   query.Search,
		Page:     query.Page,
		PerPage:  query.PerPage,
	}

	records, total, err := h.fileService.List(r.Context(), filter)
	switch {
	case errors.Is(err, domain.ErrValidation):
		h.writeError(w, http.StatusBadRequest, "rest_invalid_param", "Invalid parameters: page, per_page, status, search.")
		return
	case err != nil:
		h.logger.Error("error listing files", "error", err)
		h.writeError(w, http.StatusInternalServerError, "rest_internal_error", "Could not list files.")
		return
	default:
		totalPages := (total + query.PerPage - 1) / query.PerPage
		w.Header().Set("X-WP-Total", strconv.Itoa(total))
		w.Header().Set("X-WP-TotalPages", strconv.Itoa(totalPages))
		h.writeJSON(w, http.StatusOK, lo.Map(records, toRecordResponse))
		return
	}
}

func parseListQuery(r *http.Request) (V1ListFilesQuery, error) {
	values := r.URL.Query()
	query := V1ListFilesQuery{
		Page:    1,
		PerPage: defaultPerPage,
		Search:  strings.TrimSpace(values.Get("search")),
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return query, err
		}
		query.Page = page
	}
	if raw := values.Get("per_page"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		if err != nil {
			return query, err
		}
		query.PerPage = perPage
	}
	if raw := values.Get("status"); raw != "" {
		query.Status = lo.Compact(strings.Split(raw, ","))
	}

	return query, nil
}
