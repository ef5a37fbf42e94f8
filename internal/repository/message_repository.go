package repository

import (
	"context"
	"fmt"

	"huddle/internal/domain/message"
)

type PostgresMessageRepository struct {
	db DBTX
}

func NewMessageRepository(db DBTX) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m *message.Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4)`,
		m.ID, m.AuthorID, m.Content, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *PostgresMessageRepository) List(ctx context.Context, limit, offset int) (message.Page, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`).Scan(&total); err != nil {
		return message.Page{}, fmt.Errorf("count messages: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.author_id, m.content, m.created_at, a.username
		FROM messages m
		JOIN members a ON a.id = m.author_id
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return message.Page{}, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	items := make([]message.Message, 0, limit)
	for rows.Next() {
		var m message.Message
		if err := rows.Scan(&m.ID, &m.AuthorID, &m.Content, &m.CreatedAt, &m.Author.Username); err != nil {
			return message.Page{}, fmt.Errorf("scan message: %w", err)
		}
		m.Author.ID = m.AuthorID
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return message.Page{}, err
	}

	return message.Page{Items: items, Total: total}, nil
}
