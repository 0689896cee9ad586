package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/docai/flow-studio/internal/data/pgxutil"
	"github.com/docai/flow-studio/internal/domain/model"
	apperrors "github.com/docai/flow-studio/internal/errors"
)

const templateColumns = `id, name, description, category, preview_image, creator_id, creator_name,
		average_rating, number_of_ratings, downloads, tags, created_at, updated_at`

// TemplateRepo provides database operations for marketplace templates.
type TemplateRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewTemplateRepo creates a new TemplateRepo with real time provider.
func NewTemplateRepo(db *sql.DB) *TemplateRepo {
	return &TemplateRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewTemplateRepoWithTimeProvider creates a new TemplateRepo with a custom time provider (useful for tests).
func NewTemplateRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *TemplateRepo {
	return &TemplateRepo{DB: db, timeProvider: tp}
}

// Create inserts a new template.
func (r *TemplateRepo) Create(ctx context.Context, req *model.CreateTemplateRequest) (*model.Template, error) {
	if req == nil {
		return nil, errors.New("create template request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid template")
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	now := r.timeProvider.Now().UTC()
	var out model.Template
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO templates (
				name, description, category, preview_image, creator_id, creator_name, tags, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $8
			) RETURNING `+templateColumns,
			strings.TrimSpace(req.Name),
			req.Description,
			req.Category,
			req.PreviewImage,
			req.CreatorID,
			req.CreatorName,
			tags,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Template])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err)
	}
	return &out, nil
}

// GetByID retrieves a template by ID.
func (r *TemplateRepo) GetByID(ctx context.Context, id string) (*model.Template, error) {
	var out model.Template
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+templateColumns+` FROM templates WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Template])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template by ID: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// List retrieves templates matching the given options, newest first.
func (r *TemplateRepo) List(ctx context.Context, opts model.TemplatesListOptions) ([]*model.Template, error) {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	where, args := buildTemplateFilters(opts)
	query := `SELECT ` + templateColumns + ` FROM templates` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset)

	var rowsOut []model.Template
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Template])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", apperrors.MapDBError(err))
	}

	out := make([]*model.Template, len(rowsOut))
	for i := range rowsOut {
		out[i] = &rowsOut[i]
	}
	return out, nil
}

// Count returns the number of templates matching the given options.
func (r *TemplateRepo) Count(ctx context.Context, opts model.TemplatesListOptions) (int, error) {
	where, args := buildTemplateFilters(opts)

	var count int
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `SELECT COUNT(*) FROM templates`+where, args...).Scan(&count)
	}); err != nil {
		return 0, fmt.Errorf("failed to count templates: %w", apperrors.MapDBError(err))
	}
	return count, nil
}

// buildTemplateFilters builds the WHERE clause and arguments for List/Count.
func buildTemplateFilters(opts model.TemplatesListOptions) (string, []any) {
	var conds []string
	var args []any

	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		args = append(args, "%"+strings.TrimSpace(*opts.Q)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	if opts.Category != nil {
		args = append(args, *opts.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if opts.CreatorID != nil {
		args = append(args, *opts.CreatorID)
		conds = append(conds, fmt.Sprintf("creator_id = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Update applies a partial update to a template.
func (r *TemplateRepo) Update(ctx context.Context, id string, req *model.UpdateTemplateRequest) (*model.Template, error) {
	if req == nil {
		return nil, errors.New("update template request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid template update")
	}

	sets := []string{"updated_at = $1"}
	args := []any{r.timeProvider.Now().UTC()}

	appendSet := func(col string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if req.Name != nil {
		appendSet("name", strings.TrimSpace(*req.Name))
	}
	if req.Description != nil {
		appendSet("description", *req.Description)
	}
	if req.Category != nil {
		appendSet("category", *req.Category)
	}
	if req.PreviewImage != nil {
		appendSet("preview_image", *req.PreviewImage)
	}
	if req.Tags != nil {
		appendSet("tags", req.Tags)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE templates SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), templateColumns)

	var out model.Template
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Template])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, r.mapWriteErr(err)
	}
	return &out, nil
}

// Delete removes a template by ID.
func (r *TemplateRepo) Delete(ctx context.Context, id string) error {
	var tag pgconn.CommandTag
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var execErr error
		tag, execErr = conn.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
		return execErr
	}); err != nil {
		return fmt.Errorf("failed to delete template: %w", apperrors.MapDBError(err))
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// IncrementDownloads bumps the download counter for a template.
func (r *TemplateRepo) IncrementDownloads(ctx context.Context, id string) error {
	var tag pgconn.CommandTag
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var execErr error
		tag, execErr = conn.Exec(ctx,
			`UPDATE templates SET downloads = downloads + 1, updated_at = $2 WHERE id = $1`,
			id, r.timeProvider.Now().UTC())
		return execErr
	}); err != nil {
		return fmt.Errorf("failed to increment downloads: %w", apperrors.MapDBError(err))
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// CreatorAggregates sums marketplace performance for one creator.
func (r *TemplateRepo) CreatorAggregates(ctx context.Context, creatorID string) (*model.CreatorStats, error) {
	stats := model.CreatorStats{CreatorID: creatorID}
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `
			SELECT COUNT(*),
			       COALESCE(SUM(downloads), 0),
			       COALESCE(AVG(average_rating) FILTER (WHERE number_of_ratings > 0), 0)
			FROM templates WHERE creator_id = $1`,
			creatorID,
		).Scan(&stats.TemplateCount, &stats.TotalDownloads, &stats.AverageRating)
	}); err != nil {
		return nil, fmt.Errorf("failed to aggregate creator stats: %w", apperrors.MapDBError(err))
	}
	return &stats, nil
}

// mapWriteErr converts constraint violations on insert/update into sentinels.
func (r *TemplateRepo) mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrTemplateNameExists
	}
	return apperrors.MapDBError(err)
}
