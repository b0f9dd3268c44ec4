package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"dreamreel/internal/domain"
	"dreamreel/internal/infra"
	"dreamreel/internal/sqlinline"
)

// DreamRepositoryPG implements domain.DreamRepository on PostgreSQL.
type DreamRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewDreamRepository creates a dream repository backed by PostgreSQL.
func NewDreamRepository(sql infra.SQLExecutor) *DreamRepositoryPG {
	return &DreamRepositoryPG{sql: sql}
}

// Create inserts a new dream record. The store assigns id and timestamps.
func (r *DreamRepositoryPG) Create(ctx context.Context, dream domain.NewDream) (*domain.Dream, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertDream,
		dream.Title,
		dream.PhotoURL,
		dream.VideoPrompt,
		string(dream.Status),
	)
	return scanDream(row)
}

// UpdateByID applies a partial update and returns the resulting record.
func (r *DreamRepositoryPG) UpdateByID(ctx context.Context, id string, update domain.DreamUpdate) (*domain.Dream, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QUpdateDream,
		id,
		update.Title,
		update.PhotoURL,
		update.VideoPrompt,
		update.VideoURL,
		statusText(update.Status),
		update.ErrorMessage,
		update.ClearError,
	)
	dream, err := scanDream(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return dream, nil
}

// GetByID fetches a dream by its identifier.
func (r *DreamRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Dream, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectDreamByID, id)
	dream, err := scanDream(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return dream, nil
}

// FindLatest returns the most recently created dream, or nil when the table is empty.
func (r *DreamRepositoryPG) FindLatest(ctx context.Context) (*domain.Dream, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectLatestDream)
	dream, err := scanDream(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return dream, nil
}

// DeleteByID removes a dream record.
func (r *DreamRepositoryPG) DeleteByID(ctx context.Context, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteDream, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanDream(row pgx.Row) (*domain.Dream, error) {
	var dream domain.Dream
	var status *string
	if err := row.Scan(
		&dream.ID,
		&dream.Title,
		&dream.PhotoURL,
		&dream.VideoURL,
		&dream.VideoPrompt,
		&status,
		&dream.ErrorMessage,
		&dream.CreatedAt,
		&dream.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if status != nil {
		s := domain.VideoStatus(*status)
		dream.Status = &s
	}
	return &dream, nil
}

func statusText(status *domain.VideoStatus) *string {
	if status == nil {
		return nil
	}
	s := string(*status)
	return &s
}

var _ domain.DreamRepository = (*DreamRepositoryPG)(nil)
