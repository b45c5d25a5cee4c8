package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/carmitra/carmitra/internal/domain"
	"github.com/carmitra/carmitra/internal/repository"
	"github.com/carmitra/carmitra/pkg/database"
	apperrors "github.com/carmitra/carmitra/pkg/errors"
)

const guideColumns = `uuid, title, summary, content, category, tags, author_name,
	publish_date, last_updated, read_time`

const (
	insertGuide = `INSERT INTO guides (` + guideColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	selectGuideByUUID = `SELECT ` + guideColumns + ` FROM guides WHERE uuid = $1`

	selectGuideSummaries = `SELECT uuid, title, summary, category, tags, author_name, publish_date, read_time
	FROM guides
	ORDER BY publish_date DESC, id DESC`

	updateGuide = `UPDATE guides SET
		title        = COALESCE($2::text, title),
		summary      = COALESCE($3::text, summary),
		content      = COALESCE($4::text, content),
		category     = COALESCE($5::text, category),
		tags         = COALESCE($6::text[], tags),
		author_name  = COALESCE($7::text, author_name),
		read_time    = COALESCE($8::integer, read_time),
		last_updated = $9
	WHERE uuid = $1
	RETURNING ` + guideColumns

	deleteGuide = `DELETE FROM guides WHERE uuid = $1`
)

// GuideRepository implements repository.GuideRepository using PostgreSQL.
type GuideRepository struct {
	db     database.DBTX
	tracer *database.QueryTracer
}

// NewGuideRepository creates a new PostgreSQL-backed guide repository.
// tracer may be nil.
func NewGuideRepository(db database.DBTX, tracer *database.QueryTracer) *GuideRepository {
	return &GuideRepository{db: db, tracer: tracer}
}

// Create inserts a new guide.
func (r *GuideRepository) Create(ctx context.Context, g *domain.Guide) (err error) {
	ctx, end := r.tracer.Trace(ctx, "CreateGuide", insertGuide)
	defer func() { end(err) }()

	_, err = r.db.Exec(ctx, insertGuide,
		g.UUID,
		g.Title,
		g.Summary,
		g.Content,
		g.Category,
		g.Tags,
		g.AuthorName,
		g.PublishDate,
		g.LastUpdated,
		g.ReadTime,
	)
	if err != nil {
		return apperrors.StorageFault("creating guide", err)
	}
	return nil
}

// GetByUUID retrieves a guide by its UUID.
func (r *GuideRepository) GetByUUID(ctx context.Context, uuid string) (_ *domain.Guide, err error) {
	ctx, end := r.tracer.Trace(ctx, "GetGuide", selectGuideByUUID)
	defer func() { end(err) }()

	g, err := scanGuide(r.db.QueryRow(ctx, selectGuideByUUID, uuid))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Guide", uuid)
		}
		return nil, apperrors.StorageFault("fetching guide", err)
	}
	return g, nil
}

// List returns guide summaries, newest publish date first.
func (r *GuideRepository) List(ctx context.Context) (_ []domain.GuideSummary, err error) {
	ctx, end := r.tracer.Trace(ctx, "ListGuides", selectGuideSummaries)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, selectGuideSummaries)
	if err != nil {
		return nil, apperrors.StorageFault("fetching guides", err)
	}
	defer rows.Close()

	guides := []domain.GuideSummary{}
	for rows.Next() {
		var g domain.GuideSummary
		if err = rows.Scan(&g.UUID, &g.Title, &g.Summary, &g.Category, &g.Tags, &g.AuthorName, &g.PublishDate, &g.ReadTime); err != nil {
			return nil, apperrors.StorageFault("fetching guides", fmt.Errorf("scan guide summary: %w", err))
		}
		if g.Tags == nil {
			g.Tags = []string{}
		}
		g.PublishDate = g.PublishDate.UTC()
		guides = append(guides, g)
	}
	if err = rows.Err(); err != nil {
		return nil, apperrors.StorageFault("fetching guides", err)
	}
	return guides, nil
}

// Update applies the non-nil fields of update in a single statement and
// returns the stored guide.
func (r *GuideRepository) Update(ctx context.Context, uuid string, update repository.GuideUpdate, lastUpdated time.Time) (_ *domain.Guide, err error) {
	ctx, end := r.tracer.Trace(ctx, "UpdateGuide", updateGuide)
	defer func() { end(err) }()

	var tags any
	if update.Tags != nil {
		tags = *update.Tags
	}

	g, err := scanGuide(r.db.QueryRow(ctx, updateGuide,
		uuid,
		update.Title,
		update.Summary,
		update.Content,
		update.Category,
		tags,
		update.AuthorName,
		update.ReadTime,
		lastUpdated,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Guide", uuid)
		}
		return nil, apperrors.StorageFault("updating guide", err)
	}
	return g, nil
}

// Delete removes a guide by its UUID.
func (r *GuideRepository) Delete(ctx context.Context, uuid string) (err error) {
	ctx, end := r.tracer.Trace(ctx, "DeleteGuide", deleteGuide)
	defer func() { end(err) }()

	tag, err := r.db.Exec(ctx, deleteGuide, uuid)
	if err != nil {
		return apperrors.StorageFault("deleting guide", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("Guide", uuid)
	}
	return nil
}

func scanGuide(row pgx.Row) (*domain.Guide, error) {
	var g domain.Guide
	err := row.Scan(
		&g.UUID,
		&g.Title,
		&g.Summary,
		&g.Content,
		&g.Category,
		&g.Tags,
		&g.AuthorName,
		&g.PublishDate,
		&g.LastUpdated,
		&g.ReadTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan guide: %w", err)
	}
	if g.Tags == nil {
		g.Tags = []string{}
	}
	g.PublishDate = g.PublishDate.UTC()
	g.LastUpdated = g.LastUpdated.UTC()
	return &g, nil
}
