package ports

import (
	"context"

	"github.com/docai/flow-studio/internal/domain/model"
)

// TemplateRepository persists marketplace templates.
type TemplateRepository interface {
	Create(ctx context.Context, req *model.CreateTemplateRequest) (*model.Template, error)
	GetByID(ctx context.Context, id string) (*model.Template, error)
	List(ctx context.Context, opts model.TemplatesListOptions) ([]*model.Template, error)
	Count(ctx context.Context, opts model.TemplatesListOptions) (int, error)
	Update(ctx context.Context, id string, req *model.UpdateTemplateRequest) (*model.Template, error)
	Delete(ctx context.Context, id string) error
	IncrementDownloads(ctx context.Context, id string) error
	CreatorAggregates(ctx context.Context, creatorID string) (*model.CreatorStats, error)
}

// DocumentRepository persists builder documents. Every operation is
// scoped by the owning user.
type DocumentRepository interface {
	Create(ctx context.Context, req *model.CreateDocumentRequest) (*model.Document, error)
	GetByID(ctx context.Context, userID, id string) (*model.Document, error)
	ListByUser(ctx context.Context, userID string, kind model.DocumentKind, limit, offset int) ([]*model.Document, error)
	Update(ctx context.Context, userID, id string, req *model.UpdateDocumentRequest) (*model.Document, error)
	Delete(ctx context.Context, userID, id string) error
}

// CreatorApplicationRepository persists creator program applications.
type CreatorApplicationRepository interface {
	Create(ctx context.Context, req *model.SubmitCreatorApplicationRequest) (*model.CreatorApplication, error)
	GetByUserID(ctx context.Context, userID string) (*model.CreatorApplication, error)
	ListByStatus(ctx context.Context, status model.CreatorApplicationStatus, limit, offset int) ([]*model.CreatorApplication, error)
	SetStatus(ctx context.Context, id string, status model.CreatorApplicationStatus) (*model.CreatorApplication, error)
}
