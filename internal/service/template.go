package service

import (
	"context"

	"github.com/docai/flow-studio/internal/data"
	domainauth "github.com/docai/flow-studio/internal/domain/auth"
	"github.com/docai/flow-studio/internal/domain/model"
	"github.com/docai/flow-studio/internal/ports"
)

// TemplateServiceOptions groups dependencies for TemplateService.
type TemplateServiceOptions struct {
	Templates ports.TemplateRepository
}

// TemplateService orchestrates marketplace template operations and
// enforces that only the owning creator (or an admin) can mutate a
// listing.
type TemplateService struct {
	templates ports.TemplateRepository
}

// NewTemplateService constructs a new TemplateService.
func NewTemplateService(opts TemplateServiceOptions) *TemplateService {
	return &TemplateService{templates: opts.Templates}
}

// TemplatesPage is a page of listings plus the unpaged total for the
// marketplace result count.
type TemplatesPage struct {
	Items []*model.Template
	Total int
}

// List returns templates matching the filter along with the total match count.
func (s *TemplateService) List(ctx context.Context, opts model.TemplatesListOptions) (*TemplatesPage, error) {
	items, err := s.templates.List(ctx, opts)
	if err != nil {
		return nil, err
	}
	total, err := s.templates.Count(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &TemplatesPage{Items: items, Total: total}, nil
}

// GetByID retrieves a template by ID.
func (s *TemplateService) GetByID(ctx context.Context, id string) (*model.Template, error) {
	return s.templates.GetByID(ctx, id)
}

// Create publishes a new listing owned by the session user.
func (s *TemplateService) Create(ctx context.Context, sess domainauth.Session, req *model.CreateTemplateRequest) (*model.Template, error) {
	req.CreatorID = sess.UserID
	if sess.DisplayName != "" {
		name := sess.DisplayName
		req.CreatorName = &name
	}
	return s.templates.Create(ctx, req)
}

// Update applies a partial update to a listing the session user owns.
// A listing owned by someone else looks like a missing one.
func (s *TemplateService) Update(ctx context.Context, sess domainauth.Session, id string, req *model.UpdateTemplateRequest) (*model.Template, error) {
	if err := s.checkOwnership(ctx, sess, id); err != nil {
		return nil, err
	}
	return s.templates.Update(ctx, id, req)
}

// Delete removes a listing the session user owns.
func (s *TemplateService) Delete(ctx context.Context, sess domainauth.Session, id string) error {
	if err := s.checkOwnership(ctx, sess, id); err != nil {
		return err
	}
	return s.templates.Delete(ctx, id)
}

// Download records a download and returns the listing.
func (s *TemplateService) Download(ctx context.Context, id string) (*model.Template, error) {
	if err := s.templates.IncrementDownloads(ctx, id); err != nil {
		return nil, err
	}
	return s.templates.GetByID(ctx, id)
}

func (s *TemplateService) checkOwnership(ctx context.Context, sess domainauth.Session, id string) error {
	if sess.IsAdmin() {
		return nil
	}
	tmpl, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if tmpl.CreatorID != sess.UserID {
		return data.ErrTemplateNotFound
	}
	return nil
}
