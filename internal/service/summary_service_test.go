package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"recap/backend/internal/repository"
	"recap/backend/internal/repository/testutil"
	"recap/backend/internal/service"
)

func newSummaryService(t *testing.T) service.SummaryService {
	t.Helper()
	db := testutil.NewTestDB(t)
	return service.NewSummaryService(repository.NewSummaryRepository(repository.StaticConn(db)))
}

func TestSummaryService_CreateAndGet(t *testing.T) {
	svc := newSummaryService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, service.CreateSummaryInput{
		Transcript:       "transcript",
		CustomPrompt:     "prompt",
		GeneratedSummary: "summary",
	})
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)

	fetched, err := svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec.ID, fetched.ID)
	require.Equal(t, "summary", fetched.GeneratedSummary)
}

func TestSummaryService_Create_Validation(t *testing.T) {
	svc := newSummaryService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, service.CreateSummaryInput{GeneratedSummary: "s"})
	require.ErrorIs(t, err, service.ErrInvalid)

	_, err = svc.Create(ctx, service.CreateSummaryInput{Transcript: "t"})
	require.ErrorIs(t, err, service.ErrInvalid)
}

func TestSummaryService_Get_BadID(t *testing.T) {
	svc := newSummaryService(t)
	ctx := context.Background()

	// A malformed id is a caller error, not a miss.
	_, err := svc.Get(ctx, "not-a-number")
	require.ErrorIs(t, err, service.ErrInvalid)

	_, err = svc.Get(ctx, "")
	require.ErrorIs(t, err, service.ErrInvalid)

	_, err = svc.Get(ctx, "424242")
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestSummaryService_Delete(t *testing.T) {
	svc := newSummaryService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, service.CreateSummaryInput{
		Transcript:       "t",
		GeneratedSummary: "g",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, rec.ID))
	require.ErrorIs(t, svc.Delete(ctx, rec.ID), service.ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, "zzz"), service.ErrInvalid)
}

func TestSummaryService_SaveEdited(t *testing.T) {
	svc := newSummaryService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, service.CreateSummaryInput{
		Transcript:       "t",
		GeneratedSummary: "generated",
	})
	require.NoError(t, err)

	updated, err := svc.SaveEdited(ctx, rec.ID, "edited")
	require.NoError(t, err)
	require.Equal(t, "edited", *updated.EditedSummary)
	require.Equal(t, "generated", updated.GeneratedSummary)
	require.Equal(t, "edited", updated.DisplaySummary())

	_, err = svc.SaveEdited(ctx, "424242", "edited")
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestSummaryService_List(t *testing.T) {
	svc := newSummaryService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, service.CreateSummaryInput{
			Transcript:       "t",
			GeneratedSummary: "g",
		})
		require.NoError(t, err)
	}

	records, err := svc.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
}
