package service

import (
	"context"

	domainauth "github.com/docai/flow-studio/internal/domain/auth"
	"github.com/docai/flow-studio/internal/domain/model"
	"github.com/docai/flow-studio/internal/ports"
)

// DocumentServiceOptions groups dependencies for DocumentService.
type DocumentServiceOptions struct {
	Documents ports.DocumentRepository
}

// DocumentService orchestrates builder document operations. The owner
// is always the session user; requests never carry a user ID.
type DocumentService struct {
	documents ports.DocumentRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(opts DocumentServiceOptions) *DocumentService {
	return &DocumentService{documents: opts.Documents}
}

// List returns the session user's documents, optionally filtered by kind.
func (s *DocumentService) List(ctx context.Context, sess domainauth.Session, kind model.DocumentKind, limit, offset int) ([]*model.Document, error) {
	return s.documents.ListByUser(ctx, sess.UserID, kind, limit, offset)
}

// GetByID retrieves one of the session user's documents.
func (s *DocumentService) GetByID(ctx context.Context, sess domainauth.Session, id string) (*model.Document, error) {
	return s.documents.GetByID(ctx, sess.UserID, id)
}

// Create stores a new document owned by the session user.
func (s *DocumentService) Create(ctx context.Context, sess domainauth.Session, req *model.CreateDocumentRequest) (*model.Document, error) {
	req.UserID = sess.UserID
	return s.documents.Create(ctx, req)
}

// Update applies a partial update to one of the session user's documents.
func (s *DocumentService) Update(ctx context.Context, sess domainauth.Session, id string, req *model.UpdateDocumentRequest) (*model.Document, error) {
	return s.documents.Update(ctx, sess.UserID, id, req)
}

// Delete removes one of the session user's documents.
func (s *DocumentService) Delete(ctx context.Context, sess domainauth.Session, id string) error {
	return s.documents.Delete(ctx, sess.UserID, id)
}
