package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AnalyticsRepo serves the admin analytics page: aggregate counts over
// influencers, categories and accepted spending.
type AnalyticsRepo struct {
	db Querier
}

func NewAnalyticsRepo(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{db: pool}
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type InfluencerCount struct {
	Username string `json:"username"`
	Count    int    `json:"count"`
}

// TopCategories ranks categories by how many influencer profiles
// reference them.
func (r *AnalyticsRepo) TopCategories(ctx context.Context, limit int) ([]CategoryCount, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.Query(ctx, `
		SELECT c.name, COUNT(u.id)
		FROM categories c
		JOIN users u ON u.category_id = c.id AND u.role = 'influencer'
		GROUP BY c.name
		ORDER BY COUNT(u.id) DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CategoryCount
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// TopInfluencers ranks influencers by ad request count.
func (r *AnalyticsRepo) TopInfluencers(ctx context.Context, limit int) ([]InfluencerCount, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.Query(ctx, `
		SELECT u.username, COUNT(a.id)
		FROM users u
		JOIN ad_requests a ON a.influencer_id = u.id
		WHERE u.role = 'influencer'
		GROUP BY u.username
		ORDER BY COUNT(a.id) DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InfluencerCount
	for rows.Next() {
		var c InfluencerCount
		if err := rows.Scan(&c.Username, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// TotalAcceptedSpending sums payment amounts of accepted ad requests.
func (r *AnalyticsRepo) TotalAcceptedSpending(ctx context.Context) (int64, error) {
	var total *int64
	err := r.db.QueryRow(ctx, `
		SELECT SUM(payment_amount) FROM ad_requests WHERE status = 'accepted'
	`).Scan(&total)
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
