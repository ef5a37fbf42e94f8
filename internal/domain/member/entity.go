package member

import (
	"time"

	"github.com/google/uuid"
)

// Member represents the members table
type Member struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Token represents the tokens table. Key is the bearer credential itself.
type Token struct {
	Key       string
	MemberID  uuid.UUID
	CreatedAt time.Time
}

// Summary is the public view of a member.
type Summary struct {
	ID       uuid.UUID
	Username string
}

func (m Member) Summary() Summary {
	return Summary{ID: m.ID, Username: m.Username}
}
