package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/carmitra/carmitra/internal/domain"
	"github.com/carmitra/carmitra/pkg/database"
	apperrors "github.com/carmitra/carmitra/pkg/errors"
)

const reviewColumns = `id, car_model, rating, comment, dealership_name, city, variant,
	purchase_date, sales_experience_rating, price_paid, ownership_duration,
	pros, cons, fuel_efficiency, created_at`

const (
	insertReview = `INSERT INTO car_reviews (` + reviewColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	selectReviewByID = `SELECT ` + reviewColumns + ` FROM car_reviews WHERE id = $1`

	selectReviews = `SELECT ` + reviewColumns + ` FROM car_reviews
	ORDER BY created_at DESC, id DESC`

	searchReviews = `SELECT ` + reviewColumns + ` FROM car_reviews
	WHERE car_model ILIKE $1 ESCAPE '\' OR dealership_name ILIKE $1 ESCAPE '\' OR city ILIKE $1 ESCAPE '\'
	ORDER BY created_at DESC, id DESC`

	selectDealershipReviews = `SELECT dealership_name, city, car_model, rating, sales_experience_rating
	FROM car_reviews`

	selectDealershipReviewsByCity = selectDealershipReviews + ` WHERE lower(city) = lower($1)`
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s literally anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	db     database.DBTX
	tracer *database.QueryTracer
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
// tracer may be nil.
func NewReviewRepository(db database.DBTX, tracer *database.QueryTracer) *ReviewRepository {
	return &ReviewRepository{db: db, tracer: tracer}
}

// Create inserts a new review.
func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) (err error) {
	ctx, end := r.tracer.Trace(ctx, "CreateReview", insertReview)
	defer func() { end(err) }()

	_, err = r.db.Exec(ctx, insertReview,
		rv.ID,
		rv.CarModel,
		rv.Rating,
		rv.Comment,
		rv.DealershipName,
		rv.City,
		rv.Variant,
		rv.PurchaseDate,
		rv.SalesExperienceRating,
		rv.PricePaid,
		rv.OwnershipDuration,
		rv.Pros,
		rv.Cons,
		rv.FuelEfficiency,
		rv.CreatedAt,
	)
	if err != nil {
		return apperrors.StorageFault("submitting review", err)
	}
	return nil
}

// GetByID retrieves a review by its identifier.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (_ *domain.Review, err error) {
	ctx, end := r.tracer.Trace(ctx, "GetReview", selectReviewByID)
	defer func() { end(err) }()

	rv, err := scanReview(r.db.QueryRow(ctx, selectReviewByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("Review", id)
		}
		return nil, apperrors.StorageFault("fetching review", err)
	}
	return rv, nil
}

// List returns every review, newest first.
func (r *ReviewRepository) List(ctx context.Context) (_ []domain.Review, err error) {
	ctx, end := r.tracer.Trace(ctx, "ListReviews", selectReviews)
	defer func() { end(err) }()

	reviews, err := r.query(ctx, selectReviews)
	if err != nil {
		return nil, apperrors.StorageFault("fetching reviews", err)
	}
	return reviews, nil
}

// Search returns reviews whose car model, dealership name or city contains
// query, ignoring case. LIKE wildcards in query match literally.
func (r *ReviewRepository) Search(ctx context.Context, query string) (_ []domain.Review, err error) {
	ctx, end := r.tracer.Trace(ctx, "SearchReviews", searchReviews)
	defer func() { end(err) }()

	reviews, err := r.query(ctx, searchReviews, containsPattern(query))
	if err != nil {
		return nil, apperrors.StorageFault("searching reviews", err)
	}
	return reviews, nil
}

// ListForDealerships returns the rollup projection, restricted to one city
// when city is non-empty.
func (r *ReviewRepository) ListForDealerships(ctx context.Context, city string) (_ []domain.DealershipReview, err error) {
	stmt, args := selectDealershipReviews, []any(nil)
	if city != "" {
		stmt, args = selectDealershipReviewsByCity, []any{city}
	}

	ctx, end := r.tracer.Trace(ctx, "ListDealershipReviews", stmt)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, apperrors.StorageFault("fetching dealerships", err)
	}
	defer rows.Close()

	out := []domain.DealershipReview{}
	for rows.Next() {
		var d domain.DealershipReview
		if err = rows.Scan(&d.DealershipName, &d.City, &d.CarModel, &d.Rating, &d.SalesExperienceRating); err != nil {
			return nil, apperrors.StorageFault("fetching dealerships", fmt.Errorf("scan dealership review: %w", err))
		}
		out = append(out, d)
	}
	if err = rows.Err(); err != nil {
		return nil, apperrors.StorageFault("fetching dealerships", err)
	}
	return out, nil
}

func (r *ReviewRepository) query(ctx context.Context, stmt string, args ...any) ([]domain.Review, error) {
	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return reviews, nil
}

func scanReview(row pgx.Row) (*domain.Review, error) {
	var rv domain.Review
	err := row.Scan(
		&rv.ID,
		&rv.CarModel,
		&rv.Rating,
		&rv.Comment,
		&rv.DealershipName,
		&rv.City,
		&rv.Variant,
		&rv.PurchaseDate,
		&rv.SalesExperienceRating,
		&rv.PricePaid,
		&rv.OwnershipDuration,
		&rv.Pros,
		&rv.Cons,
		&rv.FuelEfficiency,
		&rv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}
	if rv.Pros == nil {
		rv.Pros = []string{}
	}
	if rv.Cons == nil {
		rv.Cons = []string{}
	}
	rv.CreatedAt = rv.CreatedAt.UTC()
	return &rv, nil
}
