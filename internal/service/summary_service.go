package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"recap/backend/internal/logger"
	"recap/backend/internal/model"
	"recap/backend/internal/repository"
)

// CreateSummaryInput carries a history record to persist. Transcript and
// GeneratedSummary are required; the rest is optional.
type CreateSummaryInput struct {
	Transcript       string
	CustomPrompt     string
	GeneratedSummary string
	EditedSummary    *string
	ModelUsed        *string
}

// SummaryService exposes the history store: create, bounded newest-first
// listing, lookup, deletion, and the explicit save of an edited summary.
type SummaryService interface {
	Create(ctx context.Context, in CreateSummaryInput) (model.SummaryRecord, error)
	List(ctx context.Context, limit int) ([]model.SummaryRecord, error)
	Get(ctx context.Context, id string) (model.SummaryRecord, error)
	Delete(ctx context.Context, id string) error
	SaveEdited(ctx context.Context, id, edited string) (model.SummaryRecord, error)
}

type summaryService struct {
	summaries repository.SummaryRepository
}

// NewSummaryService creates a new summary service.
func NewSummaryService(summaries repository.SummaryRepository) SummaryService {
	return &summaryService{summaries: summaries}
}

func (s *summaryService) Create(ctx context.Context, in CreateSummaryInput) (model.SummaryRecord, error) {
	if in.Transcript == "" || in.GeneratedSummary == "" {
		return model.SummaryRecord{}, fmt.Errorf("transcript and generatedSummary are required: %w", ErrInvalid)
	}

	rec, err := s.summaries.Create(ctx, repository.CreateSummaryParams{
		Transcript:       in.Transcript,
		CustomPrompt:     in.CustomPrompt,
		GeneratedSummary: in.GeneratedSummary,
		EditedSummary:    in.EditedSummary,
		ModelUsed:        in.ModelUsed,
	})
	if err != nil {
		logger.Error("summary create failed", "module", "service", "action", "save", "resource", "summary", "result", "failed", "error", err)
		return model.SummaryRecord{}, err
	}

	logger.Info("summary created", "module", "service", "action", "save", "resource", "summary", "result", "ok", "id", rec.ID)
	return rec, nil
}

func (s *summaryService) List(ctx context.Context, limit int) ([]model.SummaryRecord, error) {
	return s.summaries.List(ctx, limit)
}

func (s *summaryService) Get(ctx context.Context, id string) (model.SummaryRecord, error) {
	numID, err := parseRecordID(id)
	if err != nil {
		return model.SummaryRecord{}, err
	}

	rec, err := s.summaries.GetByID(ctx, numID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SummaryRecord{}, ErrNotFound
	}
	return rec, err
}

func (s *summaryService) Delete(ctx context.Context, id string) error {
	numID, err := parseRecordID(id)
	if err != nil {
		return err
	}

	deleted, err := s.summaries.DeleteByID(ctx, numID)
	if err != nil {
		logger.Error("summary delete failed", "module", "service", "action", "delete", "resource", "summary", "result", "failed", "id", id, "error", err)
		return err
	}
	if !deleted {
		return ErrNotFound
	}

	logger.Info("summary deleted", "module", "service", "action", "delete", "resource", "summary", "result", "ok", "id", id)
	return nil
}

func (s *summaryService) SaveEdited(ctx context.Context, id, edited string) (model.SummaryRecord, error) {
	numID, err := parseRecordID(id)
	if err != nil {
		return model.SummaryRecord{}, err
	}

	rec, err := s.summaries.UpdateEdited(ctx, numID, edited)
	if errors.Is(err, sql.ErrNoRows) {
		return model.SummaryRecord{}, ErrNotFound
	}
	if err != nil {
		return model.SummaryRecord{}, err
	}

	logger.Info("summary edit saved", "module", "service", "action", "save", "resource", "summary", "result", "ok", "id", id)
	return rec, nil
}

// parseRecordID distinguishes a malformed identifier (caller error) from a
// well-formed one that matches nothing (not found).
func parseRecordID(id string) (int64, error) {
	if id == "" {
		return 0, fmt.Errorf("missing id: %w", ErrInvalid)
	}
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed id %q: %w", id, ErrInvalid)
	}
	return numID, nil
}
