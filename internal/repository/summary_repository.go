package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"recap/backend/internal/model"
	"recap/backend/internal/normalize"
	"recap/backend/internal/snowflake"
)

// DefaultListLimit bounds history listings.
const DefaultListLimit = 100

// CreateSummaryParams carries the fields of a new history record. The
// caller validates transcript and generated summary before reaching here.
type CreateSummaryParams struct {
	Transcript       string
	CustomPrompt     string
	GeneratedSummary string
	EditedSummary    *string
	ModelUsed        *string
}

type SummaryRepository interface {
	// Create stores a new record, stamping creation time, and returns the
	// normalized record including the assigned identifier.
	Create(ctx context.Context, p CreateSummaryParams) (model.SummaryRecord, error)
	// List returns up to limit records, newest creation time first.
	List(ctx context.Context, limit int) ([]model.SummaryRecord, error)
	// GetByID returns sql.ErrNoRows when no record matches.
	GetByID(ctx context.Context, id int64) (model.SummaryRecord, error)
	// DeleteByID reports whether exactly one record was removed.
	DeleteByID(ctx context.Context, id int64) (bool, error)
	// UpdateEdited replaces the edited working copy and re-stamps the
	// update time. The generated summary is never touched.
	UpdateEdited(ctx context.Context, id int64, edited string) (model.SummaryRecord, error)
}

type summaryRepository struct {
	conn ConnFunc
}

func NewSummaryRepository(conn ConnFunc) SummaryRepository {
	return &summaryRepository{conn: conn}
}

func (r *summaryRepository) Create(ctx context.Context, p CreateSummaryParams) (model.SummaryRecord, error) {
	db, err := r.conn()
	if err != nil {
		return model.SummaryRecord{}, err
	}

	id := snowflake.NextID()
	now := time.Now().UTC()

	rec := model.SummaryRecord{
		ID:               strconv.FormatInt(id, 10),
		Transcript:       p.Transcript,
		CustomPrompt:     p.CustomPrompt,
		GeneratedSummary: p.GeneratedSummary,
		EditedSummary:    p.EditedSummary,
		ModelUsed:        p.ModelUsed,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	doc, err := json.Marshal(normalize.Doc(rec))
	if err != nil {
		return model.SummaryRecord{}, fmt.Errorf("encode doc: %w", err)
	}

	_, err = db.ExecContext(
		ctx,
		`INSERT INTO summaries (id, doc, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id, string(doc), formatTime(now), formatTime(now),
	)
	if err != nil {
		return model.SummaryRecord{}, err
	}

	return rec, nil
}

func (r *summaryRepository) List(ctx context.Context, limit int) ([]model.SummaryRecord, error) {
	db, err := r.conn()
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}

	// id DESC keeps the order deterministic when creation times collide.
	rows, err := db.QueryContext(
		ctx,
		`SELECT id, doc FROM summaries ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.SummaryRecord
	for rows.Next() {
		rec, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *summaryRepository) GetByID(ctx context.Context, id int64) (model.SummaryRecord, error) {
	db, err := r.conn()
	if err != nil {
		return model.SummaryRecord{}, err
	}

	row := db.QueryRowContext(ctx, `SELECT id, doc FROM summaries WHERE id = ?`, id)
	return scanSummary(row)
}

func (r *summaryRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	db, err := r.conn()
	if err != nil {
		return false, err
	}

	res, err := db.ExecContext(ctx, `DELETE FROM summaries WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *summaryRepository) UpdateEdited(ctx context.Context, id int64, edited string) (model.SummaryRecord, error) {
	db, err := r.conn()
	if err != nil {
		return model.SummaryRecord{}, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return model.SummaryRecord{}, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT id, doc FROM summaries WHERE id = ?`, id)
	rec, err := scanSummary(row)
	if err != nil {
		return model.SummaryRecord{}, err
	}

	now := time.Now().UTC()
	rec.EditedSummary = &edited
	rec.UpdatedAt = now

	doc, err := json.Marshal(normalize.Doc(rec))
	if err != nil {
		return model.SummaryRecord{}, fmt.Errorf("encode doc: %w", err)
	}

	_, err = tx.ExecContext(
		ctx,
		`UPDATE summaries SET doc = ?, updated_at = ? WHERE id = ?`,
		string(doc), formatTime(now), id,
	)
	if err != nil {
		return model.SummaryRecord{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.SummaryRecord{}, err
	}
	return rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanSummary decodes a stored document and normalizes it. The id column is
// authoritative over whatever identifier the document body carries.
func scanSummary(row rowScanner) (model.SummaryRecord, error) {
	var id int64
	var raw string
	if err := row.Scan(&id, &raw); err != nil {
		return model.SummaryRecord{}, err
	}

	doc := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return model.SummaryRecord{}, fmt.Errorf("decode doc %d: %w", id, err)
	}
	doc["id"] = strconv.FormatInt(id, 10)

	return normalize.Record(doc), nil
}
