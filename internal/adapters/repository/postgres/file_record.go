package postgres

import (
	"context"
	"database/sql"
	"errors"
	"filepress/internal/core/domain"
	"filepress/internal/core/port"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/samber/lo"
)

const recordColumns = `id, filename, size_label, size_bytes, mime_type, status, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type sqlFileRecordRepository struct {
	db SQLQuerier
}

// NewSqlFileRecordRepository creates sqlFileRecordRepository that implements port.FileRecordRepository
func NewSqlFileRecordRepository(db SQLQuerier) port.FileRecordRepository {
	return &sqlFileRecordRepository{
		db: db,
	}
}

// Create inserts a record, generating its id when unset
func (s *sqlFileRecordRepository) Create(ctx context.Context, record domain.FileRecord) (uuid.UUID, error) {
	id := record.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	query := `INSERT INTO file_records (id, filename, size_label, size_bytes, mime_type, status)
              VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query, id, record.Filename, record.SizeLabel, record.SizeBytes, record.MimeType, record.Status)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error inserting file record: %w", err)
	}
	return id, nil
}

// FindByID finds by id
func (s *sqlFileRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.FileRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM file_records WHERE id = $1`

	record, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

// List returns one page of records, newest first, and the total matching count
func (s *sqlFileRecordRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.FileRecord, int, error) {
	var (
		where []string
		args  []any
	)

	if len(filter.Statuses) > 0 {
		statuses := lo.Map(filter.Statuses, func(st domain.RecordStatus, _ int) string { return string(st) })
		args = append(args, pq.Array(statuses))
		where = append(where, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+likeEscaper.Replace(filter.Search)+"%")
		where = append(where, fmt.Sprintf("filename ILIKE $%d", len(args)))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM file_records`+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting file records: %w", err)
	}

	query := `SELECT ` + recordColumns + ` FROM file_records` + clause + ` ORDER BY created_at DESC, id DESC`
	if filter.PerPage > 0 {
		args = append(args, filter.PerPage, filter.Offset())
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	records, err := s.queryRecords(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// UpdateStatus updates status
func (s *sqlFileRecordRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RecordStatus) error {
	query := `UPDATE file_records
              SET status = $1, updated_at = now()
              WHERE id = $2`

	result, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("error updating file record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

// Delete removes the row for good
func (s *sqlFileRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {

	result, err := s.db.ExecContext(ctx, `DELETE FROM file_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting file record: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// FindTrashedBefore finds records trashed before the given time
func (s *sqlFileRecordRepository) FindTrashedBefore(ctx context.Context, before time.Time) ([]domain.FileRecord, error) {
	query := `SELECT ` + recordColumns + `
              FROM file_records
              WHERE status = $1 AND updated_at < $2
              ORDER BY updated_at`

	return s.queryRecords(ctx, query, domain.RecordStatusTrash, before)
}

func (s *sqlFileRecordRepository) queryRecords(ctx context.Context, query string, args ...any) ([]domain.FileRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying file records: %w", err)
	}
	defer rows.Close()

	records := []domain.FileRecord{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning file record: %w", err)
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating file records: %w", err)
	}

	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// dbFileRecord represents a file record in DB
type dbFileRecord struct {
	ID        uuid.UUID `db:"id"`
	Filename  string    `db:"filename"`
	SizeLabel string    `db:"size_label"`
	SizeBytes int64     `db:"size_bytes"`
	MimeType  string    `db:"mime_type"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func scanRecord(row rowScanner) (*domain.FileRecord, error) {
	var dbRecord dbFileRecord
	err := row.Scan(
		&dbRecord.ID,
		&dbRecord.Filename,
		&dbRecord.SizeLabel,
		&dbRecord.SizeBytes,
		&dbRecord.MimeType,
		&dbRecord.Status,
		&dbRecord.CreatedAt,
		&dbRecord.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return dbRecord.ToDomain(), nil
}

// ToDomain converts to domain.FileRecord
func (r *dbFileRecord) ToDomain() *domain.FileRecord {
	return &domain.FileRecord{
		ID:        r.ID,
		Filename:  r.Filename,
		SizeLabel: r.SizeLabel,
		SizeBytes: r.SizeBytes,
		MimeType:  r.MimeType,
		Status:    domain.RecordStatus(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
