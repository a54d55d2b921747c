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

const userColumns = `id, username, email, password_hash, role, is_active, is_flagged, notes,
       name, category_id, niche, bio, created_at, updated_at`

type UserRepo struct {
	db Querier
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: pool}
}

// WithTx rebinds the repo to a transaction.
func (r *UserRepo) WithTx(tx pgx.Tx) *UserRepo {
	return &UserRepo{db: tx}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.IsActive, &u.IsFlagged, &u.Notes,
		&u.Name, &u.CategoryID, &u.Niche, &u.Bio, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("user")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, u.Username, u.Email, u.PasswordHash, u.Role, u.IsActive,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

// ExistsByUsernameOrEmail backs the registration duplicate check.
func (r *UserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)
	`, username, email).Scan(&exists)
	return exists, err
}

func (r *UserRepo) CountByRole(ctx context.Context, role string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&n)
	return n, err
}

type UserFilter struct {
	Role    *string
	Flagged *bool
	Search  string // matches username or email, case-insensitive
	Limit   int
	Offset  int
}

func (r *UserRepo) List(ctx context.Context, f UserFilter) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.Role != nil {
		where = append(where, fmt.Sprintf("role = $%d", argIdx))
		args = append(args, *f.Role)
		argIdx++
	}
	if f.Flagged != nil {
		where = append(where, fmt.Sprintf("is_flagged = $%d", argIdx))
		args = append(args, *f.Flagged)
		argIdx++
	}
	if f.Search != "" {
		where = append(where, fmt.Sprintf("(username ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+f.Search+"%")
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
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
			&u.IsActive, &u.IsFlagged, &u.Notes,
			&u.Name, &u.CategoryID, &u.Niche, &u.Bio, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateAdmin applies the admin-editable fields, including the role.
func (r *UserRepo) UpdateAdmin(ctx context.Context, u *models.User) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET username = $1, email = $2, role = $3, is_active = $4,
		       is_flagged = $5, notes = $6, updated_at = now()
		WHERE id = $7
	`, u.Username, u.Email, u.Role, u.IsActive, u.IsFlagged, u.Notes, u.ID)
	return err
}

// UpdateProfile applies the influencer-editable profile fields. Role
// and flags are never touched here.
func (r *UserRepo) UpdateProfile(ctx context.Context, u *models.User) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users SET name = $1, category_id = $2, niche = $3, bio = $4, updated_at = now()
		WHERE id = $5
	`, u.Name, u.CategoryID, u.Niche, u.Bio, u.ID)
	return err
}

func (r *UserRepo) SetFlagged(ctx context.Context, id uuid.UUID, flagged bool) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET is_flagged = $1, updated_at = now() WHERE id = $2`, flagged, id)
	return err
}

// Delete removes the user row. Callers clear owned campaigns and ad
// requests first; a leftover reference surfaces as a field error
// instead of an opaque driver failure.
func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if violatesForeignKey(err) {
		return apperr.Validation("", "user is still referenced by campaigns or ad requests")
	}
	return err
}

// ---- Social media links ----

func (r *UserRepo) GetSocialLinks(ctx context.Context, userID uuid.UUID) ([]models.SocialMediaLink, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, platform, url, position
		FROM social_media_links WHERE user_id = $1 ORDER BY position
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []models.SocialMediaLink
	for rows.Next() {
		var l models.SocialMediaLink
		if err := rows.Scan(&l.ID, &l.UserID, &l.Platform, &l.URL, &l.Position); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// ReplaceSocialLinks clears and rewrites the ordered link set. Callers
// run this inside the profile-update transaction.
func (r *UserRepo) ReplaceSocialLinks(ctx context.Context, userID uuid.UUID, links []models.SocialMediaLink) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM social_media_links WHERE user_id = $1`, userID); err != nil {
		return err
	}
	for i, l := range links {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO social_media_links (user_id, platform, url, position)
			VALUES ($1, $2, $3, $4)
		`, userID, l.Platform, l.URL, i); err != nil {
			return err
		}
	}
	return nil
}

// EligibleInfluencers returns active influencers not already targeted
// by an ad request on the given campaign. This is the only uniqueness
// enforcement for the (campaign, influencer) pair.
func (r *UserRepo) EligibleInfluencers(ctx context.Context, campaignID uuid.UUID) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE role = 'influencer' AND is_active = TRUE
		  AND id NOT IN (SELECT influencer_id FROM ad_requests WHERE campaign_id = $1)
		ORDER BY username
	`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
			&u.IsActive, &u.IsFlagged, &u.Notes,
			&u.Name, &u.CategoryID, &u.Niche, &u.Bio, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
