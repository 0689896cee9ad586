package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docai/flow-studio/internal/domain/model"
	"github.com/docai/flow-studio/internal/testutil"
)

func TestDocumentRepo_CreateAndGet(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewDocumentRepoWithTimeProvider(db, NewFixedTimeProvider(testutil.TestTime()))
		ctx := context.Background()

		created, err := repo.Create(ctx, &model.CreateDocumentRequest{
			UserID:  "user-1",
			Title:   "My Resume",
			Kind:    model.DocumentKindResume,
			Content: json.RawMessage(`{"fullName":"Ada Lovelace"}`),
		})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		assert.Equal(t, "user-1", created.UserID)
		assert.JSONEq(t, `{"fullName":"Ada Lovelace"}`, string(created.Content))

		got, err := repo.GetByID(ctx, "user-1", created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})
}

func TestDocumentRepo_CreateDefaultsEmptyContent(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewDocumentRepo(db)

		created, err := repo.Create(context.Background(), &model.CreateDocumentRequest{
			UserID: "user-1",
			Title:  "Blank Invoice",
			Kind:   model.DocumentKindInvoice,
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(created.Content))
	})
}

func TestDocumentRepo_OwnerScoping(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		repo := NewDocumentRepo(db)
		ctx := context.Background()

		created, err := repo.Create(ctx, &model.CreateDocumentRequest{
			UserID: "user-1",
			Title:  "Private Letter",
			Kind:   model.DocumentKindLetter,
		})
		require.NoError(t, err)

		// Another user cannot see, update, or delete it.
		_, err = repo.GetByID(ctx, "user-2", created.ID)
		assert.ErrorIs(t, err, ErrDocumentNotFound)

		_, err = repo.Update(ctx, "user-2", created.ID, &model.UpdateDocumentRequest{
			Title: testutil.StringPtr("Hijacked"),
		})
		assert.ErrorIs(t, err, ErrDocumentNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, "user-2", created.ID), ErrDocumentNotFound)

		// The owner still can.
		got, err := repo.GetByID(ctx, "user-1", created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Private Letter", got.Title)
	})
}

func TestDocumentRepo_ListByUser(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		tp := NewFixedTimeProvider(testutil.TestTime())
		repo := NewDocumentRepoWithTimeProvider(db, tp)
		ctx := context.Background()

		for _, doc := range []struct {
			title string
			kind  model.DocumentKind
		}{
			{"Resume v1", model.DocumentKindResume},
			{"Invoice March", model.DocumentKindInvoice},
			{"Resume v2", model.DocumentKindResume},
		} {
			_, err := repo.Create(ctx, &model.CreateDocumentRequest{
				UserID: "user-1",
				Title:  doc.title,
				Kind:   doc.kind,
			})
			require.NoError(t, err)
			tp.AddTime(time.Minute)
		}
		_, err := repo.Create(ctx, &model.CreateDocumentRequest{
			UserID: "user-2",
			Title:  "Someone Else's Resume",
			Kind:   model.DocumentKindResume,
		})
		require.NoError(t, err)

		all, err := repo.ListByUser(ctx, "user-1", "", 0, 0)
		require.NoError(t, err)
		require.Len(t, all, 3)
		// Most recently updated first.
		assert.Equal(t, "Resume v2", all[0].Title)

		resumes, err := repo.ListByUser(ctx, "user-1", model.DocumentKindResume, 0, 0)
		require.NoError(t, err)
		assert.Len(t, resumes, 2)

		page, err := repo.ListByUser(ctx, "user-1", "", 1, 1)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, "Invoice March", page[0].Title)
	})
}

func TestDocumentRepo_Update(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		tp := NewFixedTimeProvider(testutil.TestTime())
		repo := NewDocumentRepoWithTimeProvider(db, tp)
		ctx := context.Background()

		created, err := repo.Create(ctx, &model.CreateDocumentRequest{
			UserID:  "user-1",
			Title:   "My Resume",
			Kind:    model.DocumentKindResume,
			Content: json.RawMessage(`{"fullName":"Ada"}`),
		})
		require.NoError(t, err)

		tp.AddTime(time.Hour)
		updated, err := repo.Update(ctx, "user-1", created.ID, &model.UpdateDocumentRequest{
			Title:   testutil.StringPtr("My Resume (final)"),
			Content: json.RawMessage(`{"fullName":"Ada Lovelace"}`),
		})
		require.NoError(t, err)
		assert.Equal(t, "My Resume (final)", updated.Title)
		assert.JSONEq(t, `{"fullName":"Ada Lovelace"}`, string(updated.Content))
		assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

		// Content-only update keeps the title.
		updated, err = repo.Update(ctx, "user-1", created.ID, &model.UpdateDocumentRequest{
			Content: json.RawMessage(`{"fullName":"A. Lovelace"}`),
		})
		require.NoError(t, err)
		assert.Equal(t, "My Resume (final)", updated.Title)
	})
}

func TestDocumentRepo_CreateInvalid(t *testing.T) {
	repo := NewDocumentRepo(nil)
	ctx := context.Background()

	_, err := repo.Create(ctx, &model.CreateDocumentRequest{
		UserID: "user-1",
		Title:  "Bad Kind",
		Kind:   "spreadsheet",
	})
	assert.Error(t, err)

	_, err = repo.Create(ctx, &model.CreateDocumentRequest{
		UserID:  "user-1",
		Title:   "Bad JSON",
		Kind:    model.DocumentKindResume,
		Content: json.RawMessage(`{not json`),
	})
	assert.Error(t, err)
}
