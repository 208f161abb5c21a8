package repository_test

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"recap/backend/internal/repository"
	"recap/backend/internal/repository/testutil"
)

func stringPtr(s string) *string { return &s }

func mustParseID(t *testing.T, id string) int64 {
	t.Helper()
	n, err := strconv.ParseInt(id, 10, 64)
	require.NoError(t, err)
	return n
}

func TestSummaryRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSummaryRepository(repository.StaticConn(db))
	ctx := context.Background()

	created, err := repo.Create(ctx, repository.CreateSummaryParams{
		Transcript:       "meeting transcript",
		CustomPrompt:     "summarize in bullet points",
		GeneratedSummary: "the summary",
		ModelUsed:        stringPtr("gpt-4o-mini"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Nil(t, created.EditedSummary)

	fetched, err := repo.GetByID(ctx, mustParseID(t, created.ID))
	require.NoError(t, err)
	require.Equal(t, created.ID, fetched.ID)
	require.Equal(t, "meeting transcript", fetched.Transcript)
	require.Equal(t, "summarize in bullet points", fetched.CustomPrompt)
	require.Equal(t, "the summary", fetched.GeneratedSummary)
	require.NotNil(t, fetched.ModelUsed)
	require.Equal(t, "gpt-4o-mini", *fetched.ModelUsed)
	require.True(t, fetched.CreatedAt.Equal(created.CreatedAt))
	require.True(t, fetched.UpdatedAt.Equal(created.UpdatedAt))
}

func TestSummaryRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSummaryRepository(repository.StaticConn(db))

	_, err := repo.GetByID(context.Background(), 12345)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSummaryRepository_List_NewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSummaryRepository(repository.StaticConn(db))
	ctx := context.Background()

	var ids []string
	for _, text := range []string{"first", "second", "third"} {
		rec, err := repo.Create(ctx, repository.CreateSummaryParams{
			Transcript:       text,
			GeneratedSummary: "s-" + text,
		})
		require.NoError(t, err)
		ids = append(ids, rec.ID)
		time.Sleep(2 * time.Millisecond)
	}

	records, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, ids[2], records[0].ID)
	require.Equal(t, ids[1], records[1].ID)
	require.Equal(t, ids[0], records[2].ID)
}

func TestSummaryRepository_List_Limit(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSummaryRepository(repository.StaticConn(db))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := repo.Create(ctx, repository.CreateSummaryParams{
			Transcript:       "t",
			GeneratedSummary: "g",
		})
		require.NoError(t, err)
	}

	records, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Out-of-range limits fall back to the default cap.
	records, err = repo.List(ctx, -1)
	require.NoError(t, err)
	require.Len(t, records, 5)
}

func TestSummaryRepository_DeleteByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSummaryRepository(repository.StaticConn(db))
	ctx := context.Background()

	rec, err := repo.Create(ctx, repository.CreateSummaryParams{
		Transcript:       "t",
		GeneratedSummary: "g",
	})
	require.NoError(t, err)

	deleted, err := repo.DeleteByID(ctx, mustParseID(t, rec.ID))
	require.NoError(t, err)
	require.True(t, deleted)

	_, err = repo.GetByID(ctx, mustParseID(t, rec.ID))
	require.ErrorIs(t, err, sql.ErrNoRows)

	deleted, err = repo.DeleteByID(ctx, mustParseID(t, rec.ID))
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestSummaryRepository_UpdateEdited(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSummaryRepository(repository.StaticConn(db))
	ctx := context.Background()

	rec, err := repo.Create(ctx, repository.CreateSummaryParams{
		Transcript:       "t",
		GeneratedSummary: "generated text",
	})
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	updated, err := repo.UpdateEdited(ctx, mustParseID(t, rec.ID), "edited text")
	require.NoError(t, err)
	require.NotNil(t, updated.EditedSummary)
	require.Equal(t, "edited text", *updated.EditedSummary)
	// The generated copy is immutable.
	require.Equal(t, "generated text", updated.GeneratedSummary)
	require.True(t, updated.UpdatedAt.After(rec.UpdatedAt))
	require.True(t, updated.CreatedAt.Equal(rec.CreatedAt))

	fetched, err := repo.GetByID(ctx, mustParseID(t, rec.ID))
	require.NoError(t, err)
	require.Equal(t, "edited text", *fetched.EditedSummary)
}

func TestSummaryRepository_UpdateEdited_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSummaryRepository(repository.StaticConn(db))

	_, err := repo.UpdateEdited(context.Background(), 999, "edited")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

// Sub-second creation times must still list newest first. A variable-width
// encoding of the ordering column would break this: "…00.5Z" sorts after
// "…00.52Z" under TEXT comparison, so the column has to carry fixed-width
// fractional seconds.
func TestSummaryRepository_List_SubsecondOrdering(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSummaryRepository(repository.StaticConn(db))
	ctx := context.Background()

	older := time.Date(2025, 1, 1, 0, 0, 0, 500000000, time.UTC)
	newer := time.Date(2025, 1, 1, 0, 0, 0, 520000000, time.UTC)

	insert := func(id int64, ts time.Time) {
		stamp := ts.Format("2006-01-02T15:04:05.000000000Z07:00")
		doc := fmt.Sprintf(`{"id": "%d", "transcript": "t", "generatedSummary": "g", "createdAt": %q, "updatedAt": %q}`, id, stamp, stamp)
		_, err := db.ExecContext(ctx,
			`INSERT INTO summaries (id, doc, created_at, updated_at) VALUES (?, ?, ?, ?)`,
			id, doc, stamp, stamp,
		)
		require.NoError(t, err)
	}
	insert(1, older)
	insert(2, newer)

	records, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "2", records[0].ID)
	require.Equal(t, "1", records[1].ID)
}

// The ordering column itself must be written fixed-width, whatever
// nanosecond value the clock produced.
func TestSummaryRepository_Create_FixedWidthTimeKey(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSummaryRepository(repository.StaticConn(db))
	ctx := context.Background()

	rec, err := repo.Create(ctx, repository.CreateSummaryParams{
		Transcript:       "t",
		GeneratedSummary: "g",
	})
	require.NoError(t, err)

	var stored string
	err = db.QueryRowContext(ctx, `SELECT created_at FROM summaries WHERE id = ?`, mustParseID(t, rec.ID)).Scan(&stored)
	require.NoError(t, err)
	require.Len(t, stored, len("2025-01-01T00:00:00.000000000Z"))
	require.True(t, strings.HasSuffix(stored, "Z"))
}

// Documents written by earlier clients used snake_case keys and epoch-millis
// timestamps; reads must still normalize them.
func TestSummaryRepository_ReadsLegacyDoc(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSummaryRepository(repository.StaticConn(db))
	ctx := context.Background()

	doc := `{"_id": 17, "transcript": "t", "custom_prompt": "p", "generated_summary": "g", "edited_summary": "e", "created_at": 1748779200000}`
	_, err := db.ExecContext(ctx,
		`INSERT INTO summaries (id, doc, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		17, doc, "2025-06-01T12:00:00Z", "2025-06-01T12:00:00Z",
	)
	require.NoError(t, err)

	rec, err := repo.GetByID(ctx, 17)
	require.NoError(t, err)
	require.Equal(t, "17", rec.ID)
	require.Equal(t, "p", rec.CustomPrompt)
	require.Equal(t, "g", rec.GeneratedSummary)
	require.Equal(t, "e", *rec.EditedSummary)
	require.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), rec.CreatedAt)
	require.Equal(t, rec.CreatedAt, rec.UpdatedAt)
}
