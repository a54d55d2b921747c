package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/influencer-marketplace/backend/internal/models"
)

// MessageRepo is append-only: there is no update or delete.
type MessageRepo struct {
	db Querier
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{db: pool}
}

func (r *MessageRepo) WithTx(tx pgx.Tx) *MessageRepo {
	return &MessageRepo{db: tx}
}

func (r *MessageRepo) Create(ctx context.Context, m *models.Message) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO messages (ad_request_id, sender_id, recipient_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, m.AdRequestID, m.SenderID, m.RecipientID, m.Content).Scan(&m.ID, &m.CreatedAt)
}

func (r *MessageRepo) ListByAdRequest(ctx context.Context, adRequestID uuid.UUID) ([]models.Message, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, ad_request_id, sender_id, recipient_id, content, created_at
		FROM messages WHERE ad_request_id = $1 ORDER BY created_at
	`, adRequestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

// ListAll backs the admin message log view.
func (r *MessageRepo) ListAll(ctx context.Context, limit, offset int) ([]models.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, ad_request_id, sender_id, recipient_id, content, created_at
		FROM messages ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

func (r *MessageRepo) CountByAdRequest(ctx context.Context, adRequestID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM messages WHERE ad_request_id = $1`, adRequestID).Scan(&n)
	return n, err
}

func scanMessages(rows pgx.Rows) ([]models.Message, error) {
	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.AdRequestID, &m.SenderID, &m.RecipientID, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
