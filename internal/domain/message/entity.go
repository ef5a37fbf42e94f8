package message

import (
	"time"

	"github.com/google/uuid"

	"huddle/internal/domain/member"
)

// Message represents the messages table
type Message struct {
	ID        uuid.UUID
	AuthorID  uuid.UUID
	Content   string
	CreatedAt time.Time

	// Populated on reads
	Author member.Summary
}

// Page is one slice of the feed plus the total feed size.
type Page struct {
	Items []Message
	Total int64
}
