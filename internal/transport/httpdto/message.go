package httpdto

import (
	"time"

	"huddle/internal/domain/message"
	"huddle/internal/services"
)

// CreateMessageRequest is used for POST /messages/
type CreateMessageRequest struct {
	Content OptionalString `json:"content"`
}

func (r CreateMessageRequest) Input() services.MessageInput {
	return services.MessageInput{
		Content: r.Content.Ptr(),
		Nulls:   collectNulls(map[string]OptionalString{"content": r.Content}),
	}
}

// MessageDTO represents a feed message in API responses
type MessageDTO struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    MemberDTO `json:"author"`
	CreatedAt string    `json:"created_at"`
}

// FromMessage converts a domain message to MessageDTO
func FromMessage(m message.Message) MessageDTO {
	return MessageDTO{
		ID:        m.ID.String(),
		Content:   m.Content,
		Author:    FromSummary(m.Author),
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// FromMessageSlice converts a slice of domain messages to MessageDTO slice
func FromMessageSlice(msgs []message.Message) []MessageDTO {
	dtos := make([]MessageDTO, len(msgs))
	for i, m := range msgs {
		dtos[i] = FromMessage(m)
	}
	return dtos
}
