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

const campaignColumns = `id, sponsor_id, name, description, start_date, end_date,
       budget, visibility, goals, created_at, updated_at`

type CampaignRepo struct {
	db Querier
}

func NewCampaignRepo(pool *pgxpool.Pool) *CampaignRepo {
	return &CampaignRepo{db: pool}
}

func (r *CampaignRepo) WithTx(tx pgx.Tx) *CampaignRepo {
	return &CampaignRepo{db: tx}
}

func (r *CampaignRepo) Create(ctx context.Context, c *models.Campaign) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO campaigns (sponsor_id, name, description, start_date, end_date, budget, visibility, goals)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, c.SponsorID, c.Name, c.Description, c.StartDate, c.EndDate, c.Budget, c.Visibility, c.Goals,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	var c models.Campaign
	err := r.db.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id,
	).Scan(&c.ID, &c.SponsorID, &c.Name, &c.Description, &c.StartDate, &c.EndDate,
		&c.Budget, &c.Visibility, &c.Goals, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("campaign")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Update rewrites the mutable fields. The owner reference is immutable
// and never part of the statement.
func (r *CampaignRepo) Update(ctx context.Context, c *models.Campaign) error {
	_, err := r.db.Exec(ctx, `
		UPDATE campaigns SET name = $1, description = $2, start_date = $3, end_date = $4,
		       budget = $5, visibility = $6, goals = $7, updated_at = now()
		WHERE id = $8
	`, c.Name, c.Description, c.StartDate, c.EndDate, c.Budget, c.Visibility, c.Goals, c.ID)
	return err
}

func (r *CampaignRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	return err
}

// DeleteBySponsor removes all campaigns owned by the user. Ad requests
// under them must already be gone.
func (r *CampaignRepo) DeleteBySponsor(ctx context.Context, sponsorID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM campaigns WHERE sponsor_id = $1`, sponsorID)
	return err
}

type CampaignFilter struct {
	SponsorID  *uuid.UUID
	Visibility *string
	Search     string // matches campaign name or sponsor username
	Limit      int
	Offset     int
}

func (r *CampaignRepo) List(ctx context.Context, f CampaignFilter) ([]models.Campaign, error) {
	query := `
		SELECT c.id, c.sponsor_id, c.name, c.description, c.start_date, c.end_date,
		       c.budget, c.visibility, c.goals, c.created_at, c.updated_at
		FROM campaigns c
	`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.Search != "" {
		query += ` JOIN users s ON s.id = c.sponsor_id `
		where = append(where, fmt.Sprintf("(c.name ILIKE $%d OR s.username ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+f.Search+"%")
		argIdx++
	}
	if f.SponsorID != nil {
		where = append(where, fmt.Sprintf("c.sponsor_id = $%d", argIdx))
		args = append(args, *f.SponsorID)
		argIdx++
	}
	if f.Visibility != nil {
		where = append(where, fmt.Sprintf("c.visibility = $%d", argIdx))
		args = append(args, *f.Visibility)
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
	query += fmt.Sprintf(" ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		var c models.Campaign
		if err := rows.Scan(&c.ID, &c.SponsorID, &c.Name, &c.Description, &c.StartDate, &c.EndDate,
			&c.Budget, &c.Visibility, &c.Goals, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}
