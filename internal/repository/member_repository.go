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

type PostgresMemberRepository struct {
	db DBTX
}

func NewMemberRepository(db DBTX) MemberRepository {
	return &PostgresMemberRepository{db: db}
}

func (r *PostgresMemberRepository) Create(ctx context.Context, m *member.Member) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO members (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)`,
		m.ID, m.Username, m.PasswordHash, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrAlreadyExists
		}
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

func (r *PostgresMemberRepository) GetByID(ctx context.Context, id uuid.UUID) (member.Member, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at
		FROM members
		WHERE id = $1`, id)
	return scanMember(row)
}

func (r *PostgresMemberRepository) GetByUsername(ctx context.Context, username string) (member.Member, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at
		FROM members
		WHERE username = $1`, username)
	return scanMember(row)
}

func (r *PostgresMemberRepository) UsernameTaken(ctx context.Context, username string, exclude uuid.UUID) (bool, error) {
	var taken bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM members WHERE username = $1 AND id <> $2
		)`, username, exclude).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return taken, nil
}

func (r *PostgresMemberRepository) UpdateUsername(ctx context.Context, id uuid.UUID, username string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE members SET username = $2
		WHERE id = $1`, id, username)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrAlreadyExists
		}
		return fmt.Errorf("update member: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanMember(row *sql.Row) (member.Member, error) {
	var m member.Member
	if err := row.Scan(&m.ID, &m.Username, &m.PasswordHash, &m.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return member.Member{}, apperrors.ErrNotFound
		}
		return member.Member{}, fmt.Errorf("scan member: %w", err)
	}
	return m, nil
}
