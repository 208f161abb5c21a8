package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"recap/backend/internal/logger"
	"recap/backend/internal/model"
)

// Workflow states for one generate action.
const (
	StateIdle       = "idle"
	StateGenerating = "generating"
	StatePersisting = "persisting"
	StateReady      = "ready"
)

// WorkflowResult is the outcome of an orchestrated run. Record is nil and
// SaveWarning set when generation succeeded but persistence did not; the
// generated text is still considered delivered.
type WorkflowResult struct {
	RunID       string
	Summary     string
	ModelUsed   string
	Record      *model.SummaryRecord
	SaveWarning string
}

// WorkflowService sequences generate, then persist, for a single submit.
// A submit while a run is generating is refused, never raced; there is no
// cancellation of an in-flight run.
type WorkflowService interface {
	Run(ctx context.Context, transcript, customPrompt string) (WorkflowResult, error)
	State() string
}

type workflowService struct {
	generator GenerationService
	summaries SummaryService
	inFlight  atomic.Bool
	state     atomic.Value
}

// NewWorkflowService creates a new workflow service.
func NewWorkflowService(generator GenerationService, summaries SummaryService) WorkflowService {
	s := &workflowService{
		generator: generator,
		summaries: summaries,
	}
	s.state.Store(StateIdle)
	return s
}

func (s *workflowService) State() string {
	return s.state.Load().(string)
}

func (s *workflowService) Run(ctx context.Context, transcript, customPrompt string) (WorkflowResult, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return WorkflowResult{}, fmt.Errorf("a generate run is already in flight: %w", ErrBusy)
	}
	defer s.inFlight.Store(false)

	runID := uuid.NewString()
	s.state.Store(StateGenerating)

	gen, err := s.generator.Generate(ctx, transcript, customPrompt)
	if err != nil {
		// Nothing is persisted on generation failure.
		s.state.Store(StateIdle)
		return WorkflowResult{}, err
	}

	s.state.Store(StatePersisting)

	result := WorkflowResult{
		RunID:     runID,
		Summary:   gen.Summary,
		ModelUsed: gen.ModelUsed,
	}

	// The generated text doubles as the initial edited working copy.
	edited := gen.Summary
	rec, err := s.summaries.Create(ctx, CreateSummaryInput{
		Transcript:       transcript,
		CustomPrompt:     customPrompt,
		GeneratedSummary: gen.Summary,
		EditedSummary:    &edited,
		ModelUsed:        &gen.ModelUsed,
	})
	if err != nil {
		// Persistence is best-effort once the user has their summary.
		logger.Warn("workflow persist failed", "module", "service", "action", "save", "resource", "workflow", "result", "failed", "run_id", runID, "error", err)
		result.SaveWarning = "summary generated but could not be saved to history"
	} else {
		result.Record = &rec
	}

	s.state.Store(StateReady)
	return result, nil
}
