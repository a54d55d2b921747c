package repositories

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/influencer-marketplace/backend/internal/apperr"
)

func TestViolatesForeignKey(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"fk violation", &pgconn.PgError{Code: "23503"}, true},
		{"wrapped fk violation", fmt.Errorf("delete user: %w", &pgconn.PgError{Code: "23503"}), true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"plain error", errors.New("connection reset"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := violatesForeignKey(tt.err); got != tt.want {
				t.Errorf("violatesForeignKey = %v, want %v", got, tt.want)
			}
		})
	}
}

type stubQuerier struct {
	execErr error
}

func (q stubQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, q.execErr
}

func (q stubQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, q.execErr
}

func (q stubQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return stubRow{err: q.execErr}
}

// A user still referenced by campaigns or ad requests must surface as
// a field-level error, not an opaque driver failure.
func TestUserDeleteMapsReferenceViolation(t *testing.T) {
	repo := &UserRepo{db: stubQuerier{execErr: &pgconn.PgError{Code: "23503"}}}
	err := repo.Delete(context.Background(), uuid.New())
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("error kind = %v, want validation", apperr.KindOf(err))
	}

	boom := errors.New("boom")
	repo = &UserRepo{db: stubQuerier{execErr: boom}}
	if err := repo.Delete(context.Background(), uuid.New()); !errors.Is(err, boom) {
		t.Errorf("unexpected error: %v", err)
	}
}

type stubRow struct {
	err error
}

func (r stubRow) Scan(dest ...any) error { return r.err }

func TestScanUserMapsNoRows(t *testing.T) {
	_, err := scanUser(stubRow{err: pgx.ErrNoRows})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("error kind = %v, want not found", apperr.KindOf(err))
	}

	boom := errors.New("boom")
	if _, err := scanUser(stubRow{err: boom}); !errors.Is(err, boom) {
		t.Errorf("unexpected error: %v", err)
	}
}
