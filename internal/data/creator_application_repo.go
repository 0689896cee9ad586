package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/docai/flow-studio/internal/data/pgxutil"
	"github.com/docai/flow-studio/internal/domain/model"
	apperrors "github.com/docai/flow-studio/internal/errors"
)

const creatorApplicationColumns = `id, user_id, portfolio_url, specialties, status, created_at, updated_at`

// CreatorApplicationRepo provides database operations for creator program
// applications. Each user holds at most one application.
type CreatorApplicationRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewCreatorApplicationRepo creates a new CreatorApplicationRepo with real time provider.
func NewCreatorApplicationRepo(db *sql.DB) *CreatorApplicationRepo {
	return &CreatorApplicationRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewCreatorApplicationRepoWithTimeProvider creates a new CreatorApplicationRepo with a custom time provider.
func NewCreatorApplicationRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *CreatorApplicationRepo {
	return &CreatorApplicationRepo{DB: db, timeProvider: tp}
}

// Create inserts a pending application for the user.
func (r *CreatorApplicationRepo) Create(ctx context.Context, req *model.SubmitCreatorApplicationRequest) (*model.CreatorApplication, error) {
	if req == nil {
		return nil, errors.New("submit creator application request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid creator application")
	}

	specialties := req.Specialties
	if specialties == nil {
		specialties = []string{}
	}

	now := r.timeProvider.Now().UTC()
	var out model.CreatorApplication
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO creator_applications (user_id, portfolio_url, specialties, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING `+creatorApplicationColumns,
			req.UserID, req.PortfolioURL, specialties, model.CreatorApplicationPending, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.CreatorApplication])
		return err
	}); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrApplicationExists
		}
		return nil, fmt.Errorf("failed to create creator application: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// GetByUserID retrieves a user's application.
func (r *CreatorApplicationRepo) GetByUserID(ctx context.Context, userID string) (*model.CreatorApplication, error) {
	var out model.CreatorApplication
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+creatorApplicationColumns+` FROM creator_applications WHERE user_id = $1`,
			userID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.CreatorApplication])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get creator application: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// ListByStatus retrieves applications with the given status, oldest first
// so reviewers see the longest-waiting submissions at the top.
func (r *CreatorApplicationRepo) ListByStatus(ctx context.Context, status model.CreatorApplicationStatus, limit, offset int) ([]*model.CreatorApplication, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.CreatorApplication
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+creatorApplicationColumns+` FROM creator_applications
			 WHERE status = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`,
			status, limit, offset,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.CreatorApplication])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list creator applications: %w", apperrors.MapDBError(err))
	}

	out := make([]*model.CreatorApplication, len(rowsOut))
	for i := range rowsOut {
		out[i] = &rowsOut[i]
	}
	return out, nil
}

// SetStatus moves an application to a new review state.
func (r *CreatorApplicationRepo) SetStatus(ctx context.Context, id string, status model.CreatorApplicationStatus) (*model.CreatorApplication, error) {
	if !status.Valid() {
		return nil, apperrors.Validationf("unsupported application status %q", status)
	}

	var out model.CreatorApplication
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE creator_applications SET status = $2, updated_at = $3
			WHERE id = $1
			RETURNING `+creatorApplicationColumns,
			id, status, r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.CreatorApplication])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to update creator application status: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}
