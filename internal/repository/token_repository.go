package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"huddle/internal/domain/member"
	apperrors "huddle/pkg/errors"
)

type PostgresTokenRepository struct {
	db DBTX
}

func NewTokenRepository(db DBTX) TokenRepository {
	return &PostgresTokenRepository{db: db}
}

func (r *PostgresTokenRepository) Create(ctx context.Context, t *member.Token) error {
	return insertToken(ctx, r.db, t)
}

func (r *PostgresTokenRepository) Get(ctx context.Context, key string) (member.Token, error) {
	var t member.Token
	err := r.db.QueryRowContext(ctx, `
		SELECT key, member_id, created_at
		FROM tokens
		WHERE key = $1`, key).Scan(&t.Key, &t.MemberID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return member.Token{}, apperrors.ErrNotFound
		}
		return member.Token{}, fmt.Errorf("select token: %w", err)
	}
	return t, nil
}

// Delete removes one token. Deleting a token that is already gone is not an error.
func (r *PostgresTokenRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (r *PostgresTokenRepository) DeleteAllForMember(ctx context.Context, memberID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tokens WHERE member_id = $1`, memberID); err != nil {
		return fmt.Errorf("delete member tokens: %w", err)
	}
	return nil
}

// Replace locks the owning member row so concurrent rotations for the same
// member serialize, then swaps every existing token for t.
func (r *PostgresTokenRepository) Replace(ctx context.Context, t *member.Token) error {
	return inTx(ctx, r.db, func(tx DBTX) error {
		var locked uuid.UUID
		err := tx.QueryRowContext(ctx, `
			SELECT id FROM members WHERE id = $1 FOR UPDATE`, t.MemberID).Scan(&locked)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("lock member: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM tokens WHERE member_id = $1`, t.MemberID); err != nil {
			return fmt.Errorf("delete member tokens: %w", err)
		}
		return insertToken(ctx, tx, t)
	})
}

func (r *PostgresTokenRepository) CountForMember(ctx context.Context, memberID uuid.UUID) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tokens WHERE member_id = $1`, memberID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tokens: %w", err)
	}
	return n, nil
}

func insertToken(ctx context.Context, db DBTX, t *member.Token) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO tokens (key, member_id, created_at)
		VALUES ($1, $2, $3)`,
		t.Key, t.MemberID, t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrAlreadyExists
		}
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}
