package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"recap/backend/internal/model"
	"recap/backend/internal/service"
)

type generatorStub struct {
	result  service.GenerationResult
	err     error
	started chan struct{}
	release chan struct{}
}

func (g *generatorStub) Generate(ctx context.Context, transcript, customPrompt string) (service.GenerationResult, error) {
	if g.started != nil {
		close(g.started)
	}
	if g.release != nil {
		<-g.release
	}
	return g.result, g.err
}

type summariesStub struct {
	created   []service.CreateSummaryInput
	createErr error
}

func (s *summariesStub) Create(ctx context.Context, in service.CreateSummaryInput) (model.SummaryRecord, error) {
	if s.createErr != nil {
		return model.SummaryRecord{}, s.createErr
	}
	s.created = append(s.created, in)
	return model.SummaryRecord{
		ID:               "1",
		Transcript:       in.Transcript,
		CustomPrompt:     in.CustomPrompt,
		GeneratedSummary: in.GeneratedSummary,
		EditedSummary:    in.EditedSummary,
		ModelUsed:        in.ModelUsed,
	}, nil
}

func (s *summariesStub) List(ctx context.Context, limit int) ([]model.SummaryRecord, error) {
	return nil, nil
}

func (s *summariesStub) Get(ctx context.Context, id string) (model.SummaryRecord, error) {
	return model.SummaryRecord{}, service.ErrNotFound
}

func (s *summariesStub) Delete(ctx context.Context, id string) error { return nil }

func (s *summariesStub) SaveEdited(ctx context.Context, id, edited string) (model.SummaryRecord, error) {
	return model.SummaryRecord{}, service.ErrNotFound
}

func TestWorkflowService_Run(t *testing.T) {
	gen := &generatorStub{result: service.GenerationResult{Summary: "text", ModelUsed: "m"}}
	store := &summariesStub{}
	svc := service.NewWorkflowService(gen, store)

	result, err := svc.Run(context.Background(), "transcript", "prompt")
	require.NoError(t, err)
	require.NotEmpty(t, result.RunID)
	require.Equal(t, "text", result.Summary)
	require.Equal(t, "m", result.ModelUsed)
	require.Empty(t, result.SaveWarning)
	require.NotNil(t, result.Record)
	require.Equal(t, service.StateReady, svc.State())

	// The generated text seeds the edited working copy.
	require.Len(t, store.created, 1)
	require.NotNil(t, store.created[0].EditedSummary)
	require.Equal(t, "text", *store.created[0].EditedSummary)
}

func TestWorkflowService_Run_GenerationFails(t *testing.T) {
	gen := &generatorStub{err: errors.New("backend down")}
	store := &summariesStub{}
	svc := service.NewWorkflowService(gen, store)

	_, err := svc.Run(context.Background(), "transcript", "prompt")
	require.Error(t, err)
	require.Empty(t, store.created, "nothing is persisted on generation failure")
	require.Equal(t, service.StateIdle, svc.State())
}

func TestWorkflowService_Run_PersistFailureStillDelivers(t *testing.T) {
	gen := &generatorStub{result: service.GenerationResult{Summary: "text", ModelUsed: "m"}}
	store := &summariesStub{createErr: errors.New("disk full")}
	svc := service.NewWorkflowService(gen, store)

	result, err := svc.Run(context.Background(), "transcript", "prompt")
	require.NoError(t, err, "generation outcome survives a persistence failure")
	require.Equal(t, "text", result.Summary)
	require.Nil(t, result.Record)
	require.NotEmpty(t, result.SaveWarning)
}

func TestWorkflowService_Run_RefusesConcurrentRun(t *testing.T) {
	gen := &generatorStub{
		result:  service.GenerationResult{Summary: "text", ModelUsed: "m"},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := service.NewWorkflowService(gen, &summariesStub{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := svc.Run(context.Background(), "transcript", "prompt")
		require.NoError(t, err)
	}()

	<-gen.started
	_, err := svc.Run(context.Background(), "transcript", "prompt")
	require.ErrorIs(t, err, service.ErrBusy)

	close(gen.release)
	wg.Wait()
}
