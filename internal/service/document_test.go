package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docai/flow-studio/internal/data"
	domainauth "github.com/docai/flow-studio/internal/domain/auth"
	"github.com/docai/flow-studio/internal/domain/model"
	mockrepos "github.com/docai/flow-studio/internal/mocks/repos"
)

func userSession(userID string) domainauth.Session {
	return domainauth.Session{
		ID:        "sess-" + userID,
		UserID:    userID,
		Role:      domainauth.RoleUser,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestDocumentService_CreateOwnedBySession(t *testing.T) {
	repo := mockrepos.NewMemoryDocumentRepo()
	svc := NewDocumentService(DocumentServiceOptions{Documents: repo})

	doc, err := svc.Create(context.Background(), userSession("user-1"), &model.CreateDocumentRequest{
		Title:   "My Resume",
		Kind:    model.DocumentKindResume,
		Content: json.RawMessage(`{"fullName":"Ada"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", doc.UserID)
}

func TestDocumentService_OwnerScoping(t *testing.T) {
	repo := mockrepos.NewMemoryDocumentRepo()
	svc := NewDocumentService(DocumentServiceOptions{Documents: repo})
	ctx := context.Background()

	doc, err := svc.Create(ctx, userSession("user-1"), &model.CreateDocumentRequest{
		Title: "Private Letter",
		Kind:  model.DocumentKindLetter,
	})
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, userSession("user-2"), doc.ID)
	assert.ErrorIs(t, err, data.ErrDocumentNotFound)

	got, err := svc.GetByID(ctx, userSession("user-1"), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private Letter", got.Title)
}

func TestDocumentService_ListFilteredByKind(t *testing.T) {
	repo := mockrepos.NewMemoryDocumentRepo()
	svc := NewDocumentService(DocumentServiceOptions{Documents: repo})
	ctx := context.Background()
	sess := userSession("user-1")

	for _, d := range []struct {
		title string
		kind  model.DocumentKind
	}{
		{"Resume v1", model.DocumentKindResume},
		{"Invoice March", model.DocumentKindInvoice},
	} {
		_, err := svc.Create(ctx, sess, &model.CreateDocumentRequest{Title: d.title, Kind: d.kind})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, sess, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	invoices, err := svc.List(ctx, sess, model.DocumentKindInvoice, 0, 0)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, "Invoice March", invoices[0].Title)
}

func TestDocumentService_UpdateAndDelete(t *testing.T) {
	repo := mockrepos.NewMemoryDocumentRepo()
	svc := NewDocumentService(DocumentServiceOptions{Documents: repo})
	ctx := context.Background()
	sess := userSession("user-1")

	doc, err := svc.Create(ctx, sess, &model.CreateDocumentRequest{
		Title: "Draft",
		Kind:  model.DocumentKindResume,
	})
	require.NoError(t, err)

	newTitle := "Final"
	updated, err := svc.Update(ctx, sess, doc.ID, &model.UpdateDocumentRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)

	require.NoError(t, svc.Delete(ctx, sess, doc.ID))
	_, err = svc.GetByID(ctx, sess, doc.ID)
	assert.ErrorIs(t, err, data.ErrDocumentNotFound)
}
