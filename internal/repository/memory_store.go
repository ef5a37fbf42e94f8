package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"huddle/internal/domain/member"
	"huddle/internal/domain/message"
	apperrors "huddle/pkg/errors"
)

// memoryState holds every table of the in-memory engine behind one lock so
// cross-table operations (token rotation, author joins) stay consistent.
type memoryState struct {
	mu         sync.RWMutex
	members    map[uuid.UUID]member.Member
	byUsername map[string]uuid.UUID
	tokens     map[string]member.Token
	messages   []message.Message
}

// NewMemoryStore returns a Store kept entirely in process memory.
// Used for local development and tests.
func NewMemoryStore() Store {
	s := &memoryState{
		members:    make(map[uuid.UUID]member.Member),
		byUsername: make(map[string]uuid.UUID),
		tokens:     make(map[string]member.Token),
	}
	return Store{
		Members:  &memoryMembers{s: s},
		Tokens:   &memoryTokens{s: s},
		Messages: &memoryMessages{s: s},
	}
}

type memoryMembers struct{ s *memoryState }

func (r *memoryMembers) Create(_ context.Context, m *member.Member) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.byUsername[m.Username]; ok {
		return apperrors.ErrAlreadyExists
	}
	if _, ok := r.s.members[m.ID]; ok {
		return apperrors.ErrAlreadyExists
	}
	r.s.members[m.ID] = *m
	r.s.byUsername[m.Username] = m.ID
	return nil
}

func (r *memoryMembers) GetByID(_ context.Context, id uuid.UUID) (member.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.members[id]
	if !ok {
		return member.Member{}, apperrors.ErrNotFound
	}
	return m, nil
}

func (r *memoryMembers) GetByUsername(_ context.Context, username string) (member.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.byUsername[username]
	if !ok {
		return member.Member{}, apperrors.ErrNotFound
	}
	return r.s.members[id], nil
}

func (r *memoryMembers) UsernameTaken(_ context.Context, username string, exclude uuid.UUID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.byUsername[username]
	return ok && id != exclude, nil
}

func (r *memoryMembers) UpdateUsername(_ context.Context, id uuid.UUID, username string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.members[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	if owner, taken := r.s.byUsername[username]; taken && owner != id {
		return apperrors.ErrAlreadyExists
	}
	delete(r.s.byUsername, m.Username)
	m.Username = username
	r.s.members[id] = m
	r.s.byUsername[username] = id
	return nil
}

type memoryTokens struct{ s *memoryState }

func (r *memoryTokens) Create(_ context.Context, t *member.Token) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.insertLocked(t)
}

func (r *memoryTokens) insertLocked(t *member.Token) error {
	if _, ok := r.s.members[t.MemberID]; !ok {
		return apperrors.ErrNotFound
	}
	if _, ok := r.s.tokens[t.Key]; ok {
		return apperrors.ErrAlreadyExists
	}
	r.s.tokens[t.Key] = *t
	return nil
}

func (r *memoryTokens) Get(_ context.Context, key string) (member.Token, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tokens[key]
	if !ok {
		return member.Token{}, apperrors.ErrNotFound
	}
	return t, nil
}

func (r *memoryTokens) Delete(_ context.Context, key string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.tokens, key)
	return nil
}

func (r *memoryTokens) DeleteAllForMember(_ context.Context, memberID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.deleteAllLocked(memberID)
	return nil
}

func (r *memoryTokens) deleteAllLocked(memberID uuid.UUID) {
	for key, t := range r.s.tokens {
		if t.MemberID == memberID {
			delete(r.s.tokens, key)
		}
	}
}

func (r *memoryTokens) Replace(_ context.Context, t *member.Token) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.members[t.MemberID]; !ok {
		return apperrors.ErrNotFound
	}
	r.deleteAllLocked(t.MemberID)
	return r.insertLocked(t)
}

func (r *memoryTokens) CountForMember(_ context.Context, memberID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, t := range r.s.tokens {
		if t.MemberID == memberID {
			n++
		}
	}
	return n, nil
}

type memoryMessages struct{ s *memoryState }

func (r *memoryMessages) Create(_ context.Context, m *message.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.members[m.AuthorID]; !ok {
		return apperrors.ErrNotFound
	}
	stored := *m
	stored.Author = member.Summary{}
	r.s.messages = append(r.s.messages, stored)
	return nil
}

func (r *memoryMessages) List(_ context.Context, limit, offset int) (message.Page, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	// Walk insertion order backwards so the stable sort keeps later inserts
	// ahead of earlier ones that share a timestamp.
	ordered := make([]message.Message, 0, len(r.s.messages))
	for i := len(r.s.messages) - 1; i >= 0; i-- {
		ordered = append(ordered, r.s.messages[i])
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	total := int64(len(ordered))
	if offset > len(ordered) {
		offset = len(ordered)
	}
	end := offset + limit
	if end > len(ordered) {
		end = len(ordered)
	}

	items := make([]message.Message, 0, end-offset)
	for _, m := range ordered[offset:end] {
		author := r.s.members[m.AuthorID]
		m.Author = author.Summary()
		items = append(items, m)
	}
	return message.Page{Items: items, Total: total}, nil
}
