package repository

import (
	"context"
	"errors"

	"conectaleads_backend/internal/catalog/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("catalog entry not found")

const offerColumns = `id, category_id, slug, title, description, price_cents, currency, url, active, created_at, updated_at`

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// UpsertCategory creates or renames a category keyed by slug, mirroring the
// storefront's slug-addressed categories.
func (r *Repository) UpsertCategory(ctx context.Context, slug, name string) (domain.Category, error) {
	var cat domain.Category
	err := r.pool.QueryRow(ctx, `
		INSERT INTO categories (slug, name)
		VALUES ($1, $2)
		ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, slug, name, created_at
	`, slug, name).Scan(&cat.ID, &cat.Slug, &cat.Name, &cat.CreatedAt)
	return cat, err
}

func (r *Repository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, slug, name, created_at FROM categories ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var cat domain.Category
		if err := rows.Scan(&cat.ID, &cat.Slug, &cat.Name, &cat.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOffer(row pgx.Row) (domain.Offer, error) {
	var o domain.Offer
	err := row.Scan(
		&o.ID, &o.CategoryID, &o.Slug, &o.Title, &o.Description,
		&o.PriceCents, &o.Currency, &o.URL, &o.Active, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Offer{}, ErrNotFound
	}
	return o, err
}

type CreateOfferParams struct {
	CategoryID  uuid.UUID
	Slug        string
	Title       string
	Description string
	PriceCents  int64
	Currency    string
	URL         string
}

func (r *Repository) CreateOffer(ctx context.Context, params CreateOfferParams) (domain.Offer, error) {
	return scanOffer(r.pool.QueryRow(ctx, `
		INSERT INTO offers (category_id, slug, title, description, price_cents, currency, url, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true)
		RETURNING `+offerColumns+`
	`, params.CategoryID, params.Slug, params.Title, params.Description,
		params.PriceCents, params.Currency, params.URL))
}

func (r *Repository) GetOffer(ctx context.Context, id uuid.UUID) (domain.Offer, error) {
	return scanOffer(r.pool.QueryRow(ctx, `
		SELECT `+offerColumns+` FROM offers WHERE id = $1
	`, id))
}

func (r *Repository) GetOfferBySlug(ctx context.Context, slug string) (domain.Offer, error) {
	return scanOffer(r.pool.QueryRow(ctx, `
		SELECT `+offerColumns+` FROM offers WHERE slug = $1
	`, slug))
}

// ListOffers returns active offers, optionally filtered by category, newest
// first. The admin surface passes includeInactive.
func (r *Repository) ListOffers(ctx context.Context, categoryID *uuid.UUID, includeInactive bool) ([]domain.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE 1=1`
	args := []interface{}{}
	if !includeInactive {
		query += ` AND active`
	}
	if categoryID != nil {
		query += ` AND category_id = $1`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := make([]domain.Offer, 0)
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}
	return offers, rows.Err()
}

type UpdateOfferParams struct {
	Title       *string
	Description *string
	PriceCents  *int64
	URL         *string
	Active      *bool
}

func (r *Repository) UpdateOffer(ctx context.Context, id uuid.UUID, params UpdateOfferParams) (domain.Offer, error) {
	return scanOffer(r.pool.QueryRow(ctx, `
		UPDATE offers SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			price_cents = COALESCE($4, price_cents),
			url = COALESCE($5, url),
			active = COALESCE($6, active),
			updated_at = now()
		WHERE id = $1
		RETURNING `+offerColumns+`
	`, id, params.Title, params.Description, params.PriceCents, params.URL, params.Active))
}

// AppendPricePoint records the offer's price at a moment in time.
func (r *Repository) AppendPricePoint(ctx context.Context, offerID uuid.UUID, priceCents int64, currency string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO price_history (offer_id, price_cents, currency)
		VALUES ($1, $2, $3)
	`, offerID, priceCents, currency)
	return err
}

// ListPriceHistory returns the offer's price points oldest first, the order
// the storefront chart expects.
func (r *Repository) ListPriceHistory(ctx context.Context, offerID uuid.UUID) ([]domain.PricePoint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, offer_id, price_cents, currency, recorded_at
		FROM price_history
		WHERE offer_id = $1
		ORDER BY recorded_at
	`, offerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make([]domain.PricePoint, 0)
	for rows.Next() {
		var p domain.PricePoint
		if err := rows.Scan(&p.ID, &p.OfferID, &p.PriceCents, &p.Currency, &p.RecordedAt); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
