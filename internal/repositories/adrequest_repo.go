package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/influencer-marketplace/backend/internal/apperr"
	"github.com/influencer-marketplace/backend/internal/models"
)

const adRequestColumns = `id, campaign_id, influencer_id, requirements, payment_amount, status, created_at, updated_at`

type AdRequestRepo struct {
	db Querier
}

func NewAdRequestRepo(pool *pgxpool.Pool) *AdRequestRepo {
	return &AdRequestRepo{db: pool}
}

func (r *AdRequestRepo) WithTx(tx pgx.Tx) *AdRequestRepo {
	return &AdRequestRepo{db: tx}
}

func (r *AdRequestRepo) Create(ctx context.Context, a *models.AdRequest) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO ad_requests (campaign_id, influencer_id, requirements, payment_amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, a.CampaignID, a.InfluencerID, a.Requirements, a.PaymentAmount, a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AdRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.AdRequest, error) {
	var a models.AdRequest
	err := r.db.QueryRow(ctx, `SELECT `+adRequestColumns+` FROM ad_requests WHERE id = $1`, id,
	).Scan(&a.ID, &a.CampaignID, &a.InfluencerID, &a.Requirements, &a.PaymentAmount,
		&a.Status, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("ad request")
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByIDWithCampaign joins in the campaign name and owner so callers
// can authorize without a second query.
func (r *AdRequestRepo) GetByIDWithCampaign(ctx context.Context, id uuid.UUID) (*models.AdRequestWithCampaign, error) {
	var a models.AdRequestWithCampaign
	err := r.db.QueryRow(ctx, `
		SELECT a.id, a.campaign_id, a.influencer_id, a.requirements, a.payment_amount,
		       a.status, a.created_at, a.updated_at, c.name, c.sponsor_id
		FROM ad_requests a
		JOIN campaigns c ON c.id = a.campaign_id
		WHERE a.id = $1
	`, id).Scan(&a.ID, &a.CampaignID, &a.InfluencerID, &a.Requirements, &a.PaymentAmount,
		&a.Status, &a.CreatedAt, &a.UpdatedAt, &a.CampaignName, &a.CampaignSponsorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("ad request")
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

type AdRequestFilter struct {
	CampaignID   *uuid.UUID
	InfluencerID *uuid.UUID
	SponsorID    *uuid.UUID // through the owning campaign
	Status       *string
	Limit        int
	Offset       int
}

func (r *AdRequestRepo) List(ctx context.Context, f AdRequestFilter) ([]models.AdRequestWithCampaign, error) {
	query := `
		SELECT a.id, a.campaign_id, a.influencer_id, a.requirements, a.payment_amount,
		       a.status, a.created_at, a.updated_at, c.name, c.sponsor_id
		FROM ad_requests a
		JOIN campaigns c ON c.id = a.campaign_id
	`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.CampaignID != nil {
		where = append(where, fmt.Sprintf("a.campaign_id = $%d", argIdx))
		args = append(args, *f.CampaignID)
		argIdx++
	}
	if f.InfluencerID != nil {
		where = append(where, fmt.Sprintf("a.influencer_id = $%d", argIdx))
		args = append(args, *f.InfluencerID)
		argIdx++
	}
	if f.SponsorID != nil {
		where = append(where, fmt.Sprintf("c.sponsor_id = $%d", argIdx))
		args = append(args, *f.SponsorID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.AdRequestWithCampaign
	for rows.Next() {
		var a models.AdRequestWithCampaign
		if err := rows.Scan(&a.ID, &a.CampaignID, &a.InfluencerID, &a.Requirements, &a.PaymentAmount,
			&a.Status, &a.CreatedAt, &a.UpdatedAt, &a.CampaignName, &a.CampaignSponsorID); err != nil {
			return nil, err
		}
		requests = append(requests, a)
	}
	return requests, rows.Err()
}

// UpdateResponse writes the result of an influencer response. Callers
// run it inside the response transaction together with the message
// append.
func (r *AdRequestRepo) UpdateResponse(ctx context.Context, id uuid.UUID, status string, paymentAmount int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE ad_requests SET status = $1, payment_amount = $2, updated_at = now() WHERE id = $3
	`, status, paymentAmount, id)
	return err
}

// UpdateTerms writes a sponsor-side edit of requirements and payment.
func (r *AdRequestRepo) UpdateTerms(ctx context.Context, id uuid.UUID, requirements string, paymentAmount int) error {
	_, err := r.db.Exec(ctx, `
		UPDATE ad_requests SET requirements = $1, payment_amount = $2, updated_at = now() WHERE id = $3
	`, requirements, paymentAmount, id)
	return err
}

func (r *AdRequestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM ad_requests WHERE id = $1`, id)
	return err
}

// DeleteByCampaign removes all ad requests of a campaign. Used by the
// campaign-deletion transaction before the campaign row itself goes.
func (r *AdRequestRepo) DeleteByCampaign(ctx context.Context, campaignID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM ad_requests WHERE campaign_id = $1`, campaignID)
	return err
}

// DeleteByInfluencer removes every ad request targeting the user. Part
// of the user-deletion transaction.
func (r *AdRequestRepo) DeleteByInfluencer(ctx context.Context, influencerID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM ad_requests WHERE influencer_id = $1`, influencerID)
	return err
}

// DeleteBySponsor removes every ad request under the sponsor's
// campaigns, ahead of deleting the campaigns themselves.
func (r *AdRequestRepo) DeleteBySponsor(ctx context.Context, sponsorID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM ad_requests
		WHERE campaign_id IN (SELECT id FROM campaigns WHERE sponsor_id = $1)
	`, sponsorID)
	return err
}
