package repos

// Package repos contains in-memory repository doubles for unit tests.
// They honor the same sentinel errors as the real pgx-backed repos.

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/docai/flow-studio/internal/data"
	"github.com/docai/flow-studio/internal/domain/model"
	apperrors "github.com/docai/flow-studio/internal/errors"
	"github.com/docai/flow-studio/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.TemplateRepository           = (*MemoryTemplateRepo)(nil)
	_ ports.DocumentRepository           = (*MemoryDocumentRepo)(nil)
	_ ports.CreatorApplicationRepository = (*MemoryCreatorApplicationRepo)(nil)
)

// MemoryTemplateRepo is an in-memory ports.TemplateRepository.
type MemoryTemplateRepo struct {
	mu        sync.Mutex
	seq       int
	templates map[string]*model.Template

	// Err, when set, is returned by every method.
	Err error
}

// NewMemoryTemplateRepo creates an empty in-memory template repository.
func NewMemoryTemplateRepo() *MemoryTemplateRepo {
	return &MemoryTemplateRepo{templates: make(map[string]*model.Template)}
}

func (r *MemoryTemplateRepo) Create(_ context.Context, req *model.CreateTemplateRequest) (*model.Template, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid template")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.templates {
		if t.Name == req.Name && t.CreatorID == req.CreatorID {
			return nil, data.ErrTemplateNameExists
		}
	}
	r.seq++
	now := time.Now().UTC()
	tmpl := &model.Template{
		ID:           fmt.Sprintf("tmpl-%d", r.seq),
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		Category:     req.Category,
		PreviewImage: req.PreviewImage,
		CreatorID:    req.CreatorID,
		CreatorName:  req.CreatorName,
		Tags:         append([]string{}, req.Tags...),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.templates[tmpl.ID] = tmpl
	return copyTemplate(tmpl), nil
}

func (r *MemoryTemplateRepo) GetByID(_ context.Context, id string) (*model.Template, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	tmpl, ok := r.templates[id]
	if !ok {
		return nil, data.ErrTemplateNotFound
	}
	return copyTemplate(tmpl), nil
}

func (r *MemoryTemplateRepo) List(_ context.Context, opts model.TemplatesListOptions) ([]*model.Template, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	matched := r.match(opts)
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.Offset >= len(matched) {
		return []*model.Template{}, nil
	}
	matched = matched[opts.Offset:]
	if len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

func (r *MemoryTemplateRepo) Count(_ context.Context, opts model.TemplatesListOptions) (int, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	return len(r.match(opts)), nil
}

func (r *MemoryTemplateRepo) match(opts model.TemplatesListOptions) []*model.Template {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Template
	for _, t := range r.templates {
		if opts.Q != nil {
			q := strings.ToLower(strings.TrimSpace(*opts.Q))
			if q != "" && !strings.Contains(strings.ToLower(t.Name), q) &&
				!strings.Contains(strings.ToLower(t.Description), q) {
				continue
			}
		}
		if opts.Category != nil && t.Category != *opts.Category {
			continue
		}
		if opts.CreatorID != nil && t.CreatorID != *opts.CreatorID {
			continue
		}
		out = append(out, copyTemplate(t))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *MemoryTemplateRepo) Update(_ context.Context, id string, req *model.UpdateTemplateRequest) (*model.Template, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid template update")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	tmpl, ok := r.templates[id]
	if !ok {
		return nil, data.ErrTemplateNotFound
	}
	if req.Name != nil {
		tmpl.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		tmpl.Description = *req.Description
	}
	if req.Category != nil {
		tmpl.Category = *req.Category
	}
	if req.PreviewImage != nil {
		tmpl.PreviewImage = req.PreviewImage
	}
	if req.Tags != nil {
		tmpl.Tags = append([]string{}, req.Tags...)
	}
	tmpl.UpdatedAt = time.Now().UTC()
	return copyTemplate(tmpl), nil
}

func (r *MemoryTemplateRepo) Delete(_ context.Context, id string) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[id]; !ok {
		return data.ErrTemplateNotFound
	}
	delete(r.templates, id)
	return nil
}

func (r *MemoryTemplateRepo) IncrementDownloads(_ context.Context, id string) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	tmpl, ok := r.templates[id]
	if !ok {
		return data.ErrTemplateNotFound
	}
	tmpl.Downloads++
	return nil
}

func (r *MemoryTemplateRepo) CreatorAggregates(_ context.Context, creatorID string) (*model.CreatorStats, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &model.CreatorStats{CreatorID: creatorID}
	var ratingSum float64
	var rated int
	for _, t := range r.templates {
		if t.CreatorID != creatorID {
			continue
		}
		stats.TemplateCount++
		stats.TotalDownloads += t.Downloads
		if t.NumberOfRatings > 0 {
			ratingSum += t.AverageRating
			rated++
		}
	}
	if rated > 0 {
		stats.AverageRating = ratingSum / float64(rated)
	}
	return stats, nil
}

func copyTemplate(t *model.Template) *model.Template {
	c := *t
	c.Tags = append([]string{}, t.Tags...)
	return &c
}

// MemoryDocumentRepo is an in-memory ports.DocumentRepository.
type MemoryDocumentRepo struct {
	mu        sync.Mutex
	seq       int
	documents map[string]*model.Document

	Err error
}

// NewMemoryDocumentRepo creates an empty in-memory document repository.
func NewMemoryDocumentRepo() *MemoryDocumentRepo {
	return &MemoryDocumentRepo{documents: make(map[string]*model.Document)}
}

func (r *MemoryDocumentRepo) Create(_ context.Context, req *model.CreateDocumentRequest) (*model.Document, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid document")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	now := time.Now().UTC()
	content := req.Content
	if len(content) == 0 {
		content = []byte("{}")
	}
	doc := &model.Document{
		ID:        fmt.Sprintf("doc-%d", r.seq),
		UserID:    req.UserID,
		Title:     strings.TrimSpace(req.Title),
		Kind:      req.Kind,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.documents[doc.ID] = doc
	return copyDocument(doc), nil
}

func (r *MemoryDocumentRepo) GetByID(_ context.Context, userID, id string) (*model.Document, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.documents[id]
	if !ok || doc.UserID != userID {
		return nil, data.ErrDocumentNotFound
	}
	return copyDocument(doc), nil
}

func (r *MemoryDocumentRepo) ListByUser(_ context.Context, userID string, kind model.DocumentKind, limit, offset int) ([]*model.Document, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Document
	for _, doc := range r.documents {
		if doc.UserID != userID {
			continue
		}
		if kind != "" && doc.Kind != kind {
			continue
		}
		out = append(out, copyDocument(doc))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if limit <= 0 {
		limit = 50
	}
	if offset >= len(out) {
		return []*model.Document{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryDocumentRepo) Update(_ context.Context, userID, id string, req *model.UpdateDocumentRequest) (*model.Document, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid document update")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.documents[id]
	if !ok || doc.UserID != userID {
		return nil, data.ErrDocumentNotFound
	}
	if req.Title != nil {
		doc.Title = strings.TrimSpace(*req.Title)
	}
	if len(req.Content) > 0 {
		doc.Content = req.Content
	}
	doc.UpdatedAt = time.Now().UTC()
	return copyDocument(doc), nil
}

func (r *MemoryDocumentRepo) Delete(_ context.Context, userID, id string) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.documents[id]
	if !ok || doc.UserID != userID {
		return data.ErrDocumentNotFound
	}
	delete(r.documents, id)
	return nil
}

func copyDocument(d *model.Document) *model.Document {
	c := *d
	c.Content = append([]byte{}, d.Content...)
	return &c
}

// MemoryCreatorApplicationRepo is an in-memory ports.CreatorApplicationRepository.
type MemoryCreatorApplicationRepo struct {
	mu           sync.Mutex
	seq          int
	applications map[string]*model.CreatorApplication

	Err error
}

// NewMemoryCreatorApplicationRepo creates an empty in-memory application repository.
func NewMemoryCreatorApplicationRepo() *MemoryCreatorApplicationRepo {
	return &MemoryCreatorApplicationRepo{applications: make(map[string]*model.CreatorApplication)}
}

func (r *MemoryCreatorApplicationRepo) Create(_ context.Context, req *model.SubmitCreatorApplicationRequest) (*model.CreatorApplication, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid creator application")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.applications {
		if app.UserID == req.UserID {
			return nil, data.ErrApplicationExists
		}
	}
	r.seq++
	now := time.Now().UTC()
	app := &model.CreatorApplication{
		ID:           fmt.Sprintf("app-%d", r.seq),
		UserID:       req.UserID,
		PortfolioURL: req.PortfolioURL,
		Specialties:  append([]string{}, req.Specialties...),
		Status:       model.CreatorApplicationPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.applications[app.ID] = app
	return copyApplication(app), nil
}

func (r *MemoryCreatorApplicationRepo) GetByUserID(_ context.Context, userID string) (*model.CreatorApplication, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.applications {
		if app.UserID == userID {
			return copyApplication(app), nil
		}
	}
	return nil, data.ErrApplicationNotFound
}

func (r *MemoryCreatorApplicationRepo) ListByStatus(_ context.Context, status model.CreatorApplicationStatus, limit, offset int) ([]*model.CreatorApplication, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.CreatorApplication
	for _, app := range r.applications {
		if app.Status == status {
			out = append(out, copyApplication(app))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if limit <= 0 {
		limit = 50
	}
	if offset >= len(out) {
		return []*model.CreatorApplication{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryCreatorApplicationRepo) SetStatus(_ context.Context, id string, status model.CreatorApplicationStatus) (*model.CreatorApplication, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.applications[id]
	if !ok {
		return nil, data.ErrApplicationNotFound
	}
	app.Status = status
	app.UpdatedAt = time.Now().UTC()
	return copyApplication(app), nil
}

func copyApplication(a *model.CreatorApplication) *model.CreatorApplication {
	c := *a
	c.Specialties = append([]string{}, a.Specialties...)
	return &c
}
