package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/docai/flow-studio/internal/data"
	domainauth "github.com/docai/flow-studio/internal/domain/auth"
	"github.com/docai/flow-studio/internal/domain/model"
	apperrors "github.com/docai/flow-studio/internal/errors"
	"github.com/docai/flow-studio/internal/ports"
)

// DefaultEarningsPerDownload is the fixed payout rate used for the
// creator dashboard earnings figure.
const DefaultEarningsPerDownload = 2.00

// CreatorServiceOptions groups dependencies for CreatorService.
type CreatorServiceOptions struct {
	Applications ports.CreatorApplicationRepository
	Templates    ports.TemplateRepository

	// EarningsPerDownload overrides the payout rate. Zero means DefaultEarningsPerDownload.
	EarningsPerDownload float64
}

// CreatorService orchestrates the creator program: applications, admin
// review, and the creator dashboard overview.
type CreatorService struct {
	applications ports.CreatorApplicationRepository
	templates    ports.TemplateRepository
	rate         float64
}

// NewCreatorService constructs a new CreatorService.
func NewCreatorService(opts CreatorServiceOptions) *CreatorService {
	rate := opts.EarningsPerDownload
	if rate <= 0 {
		rate = DefaultEarningsPerDownload
	}
	return &CreatorService{
		applications: opts.Applications,
		templates:    opts.Templates,
		rate:         rate,
	}
}

// SubmitApplication files a creator program application for the session
// user. Existing creators have nothing to apply for.
func (s *CreatorService) SubmitApplication(ctx context.Context, sess domainauth.Session, req *model.SubmitCreatorApplicationRequest) (*model.CreatorApplication, error) {
	if sess.IsCreator() || sess.IsAdmin() {
		return nil, apperrors.Conflict("you are already a creator")
	}
	req.UserID = sess.UserID
	return s.applications.Create(ctx, req)
}

// MyApplication returns the session user's application.
func (s *CreatorService) MyApplication(ctx context.Context, sess domainauth.Session) (*model.CreatorApplication, error) {
	return s.applications.GetByUserID(ctx, sess.UserID)
}

// ListApplications returns applications in the given review state,
// oldest first. Admin-only; the route guard enforces the role.
func (s *CreatorService) ListApplications(ctx context.Context, status model.CreatorApplicationStatus, limit, offset int) ([]*model.CreatorApplication, error) {
	if !status.Valid() {
		return nil, apperrors.Validationf("unsupported application status %q", status)
	}
	return s.applications.ListByStatus(ctx, status, limit, offset)
}

// ReviewApplication moves an application to a terminal state.
func (s *CreatorService) ReviewApplication(ctx context.Context, id string, approve bool) (*model.CreatorApplication, error) {
	status := model.CreatorApplicationRejected
	if approve {
		status = model.CreatorApplicationApproved
	}
	return s.applications.SetStatus(ctx, id, status)
}

// CreatorOverview is the creator dashboard payload: marketplace stats
// plus the underlying application when one exists.
type CreatorOverview struct {
	Stats       *model.CreatorStats       `json:"stats"`
	Application *model.CreatorApplication `json:"application,omitempty"`
}

// Overview aggregates the creator dashboard for the session user. The
// template aggregates and the application lookup are independent
// queries and run concurrently.
func (s *CreatorService) Overview(ctx context.Context, sess domainauth.Session) (*CreatorOverview, error) {
	var (
		stats *model.CreatorStats
		app   *model.CreatorApplication
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.templates.CreatorAggregates(gctx, sess.UserID)
		if err != nil {
			return fmt.Errorf("creator aggregates: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		app, err = s.applications.GetByUserID(gctx, sess.UserID)
		if err != nil {
			// Creators seeded directly (or minted via OIDC groups) have no application on file.
			if errors.Is(err, data.ErrApplicationNotFound) || apperrors.IsNotFound(err) {
				app = nil
				return nil
			}
			return fmt.Errorf("creator application: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.TotalEarnings = float64(stats.TotalDownloads) * s.rate
	return &CreatorOverview{Stats: stats, Application: app}, nil
}
