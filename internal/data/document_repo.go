package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/docai/flow-studio/internal/data/pgxutil"
	"github.com/docai/flow-studio/internal/domain/model"
	apperrors "github.com/docai/flow-studio/internal/errors"
)

const documentColumns = `id, user_id, title, kind, content, created_at, updated_at`

// DocumentRepo provides database operations for builder documents. All
// reads and writes are scoped by owner; there is no cross-user access.
type DocumentRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewDocumentRepo creates a new DocumentRepo with real time provider.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewDocumentRepoWithTimeProvider creates a new DocumentRepo with a custom time provider (useful for tests).
func NewDocumentRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *DocumentRepo {
	return &DocumentRepo{DB: db, timeProvider: tp}
}

// Create inserts a new document for its owner.
func (r *DocumentRepo) Create(ctx context.Context, req *model.CreateDocumentRequest) (*model.Document, error) {
	if req == nil {
		return nil, errors.New("create document request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid document")
	}

	content := req.Content
	if len(content) == 0 {
		content = []byte("{}")
	}

	now := r.timeProvider.Now().UTC()
	var out model.Document
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO documents (user_id, title, kind, content, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING `+documentColumns,
			req.UserID, strings.TrimSpace(req.Title), req.Kind, content, now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Document])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// GetByID retrieves a document owned by userID. A document belonging to
// another user is indistinguishable from a missing one.
func (r *DocumentRepo) GetByID(ctx context.Context, userID, id string) (*model.Document, error) {
	var out model.Document
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+documentColumns+` FROM documents WHERE id = $1 AND user_id = $2`,
			id, userID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Document])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document by ID: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// ListByUser retrieves the user's documents, most recently updated first.
// A kind filter of empty string means all kinds.
func (r *DocumentRepo) ListByUser(ctx context.Context, userID string, kind model.DocumentKind, limit, offset int) ([]*model.Document, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + documentColumns + ` FROM documents WHERE user_id = $1`
	args := []any{userID}
	if kind != "" {
		args = append(args, kind)
		query += fmt.Sprintf(` AND kind = $%d`, len(args))
	}
	query += fmt.Sprintf(` ORDER BY updated_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var rowsOut []model.Document
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Document])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", apperrors.MapDBError(err))
	}

	out := make([]*model.Document, len(rowsOut))
	for i := range rowsOut {
		out[i] = &rowsOut[i]
	}
	return out, nil
}

// Update applies a partial update to a document owned by userID.
func (r *DocumentRepo) Update(ctx context.Context, userID, id string, req *model.UpdateDocumentRequest) (*model.Document, error) {
	if req == nil {
		return nil, errors.New("update document request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid document update")
	}

	sets := []string{"updated_at = $1"}
	args := []any{r.timeProvider.Now().UTC()}

	if req.Title != nil {
		args = append(args, strings.TrimSpace(*req.Title))
		sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
	}
	if len(req.Content) > 0 {
		args = append(args, req.Content)
		sets = append(sets, fmt.Sprintf("content = $%d", len(args)))
	}

	args = append(args, id, userID)
	query := fmt.Sprintf(`UPDATE documents SET %s WHERE id = $%d AND user_id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args)-1, len(args), documentColumns)

	var out model.Document
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Document])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to update document: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// Delete removes a document owned by userID.
func (r *DocumentRepo) Delete(ctx context.Context, userID, id string) error {
	var tag pgconn.CommandTag
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		var execErr error
		tag, execErr = conn.Exec(ctx, `DELETE FROM documents WHERE id = $1 AND user_id = $2`, id, userID)
		return execErr
	}); err != nil {
		return fmt.Errorf("failed to delete document: %w", apperrors.MapDBError(err))
	}
	if tag.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}
	return nil
}
