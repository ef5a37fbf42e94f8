package services

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"huddle/internal/domain/message"
	"huddle/internal/repository"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

type MessageService struct {
	messages repository.MessageRepository
}

func NewMessageService(messages repository.MessageRepository) *MessageService {
	return &MessageService{messages: messages}
}

// ParsePage turns raw limit/offset query values into bounds. A missing,
// malformed or non-positive limit becomes DefaultPageLimit; a limit above
// MaxPageLimit is clamped. A missing, malformed or negative offset is 0.
func ParsePage(rawLimit, rawOffset string) (limit, offset int) {
	limit = DefaultPageLimit
	if n, err := strconv.Atoi(rawLimit); err == nil && n > 0 {
		limit = min(n, MaxPageLimit)
	}
	if n, err := strconv.Atoi(rawOffset); err == nil && n > 0 {
		offset = n
	}
	return limit, offset
}

// List returns one newest-first page of the feed.
func (s *MessageService) List(ctx context.Context, limit, offset int) (message.Page, error) {
	return s.messages.List(ctx, limit, offset)
}

// Create appends a message authored by the principal.
func (s *MessageService) Create(ctx context.Context, p Principal, in MessageInput) (message.Message, error) {
	content, err := validateMessage(in)
	if err != nil {
		return message.Message{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return message.Message{}, err
	}

	m := message.Message{
		ID:        id,
		AuthorID:  p.Member.ID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
		Author:    p.Member.Summary(),
	}
	if err := s.messages.Create(ctx, &m); err != nil {
		return message.Message{}, err
	}
	return m, nil
}
