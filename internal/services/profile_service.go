package services

import (
	"context"

	"huddle/internal/domain/member"
)

type ProfileService struct {
	credentials *CredentialStore
	members     *CachedMembers
}

func NewProfileService(credentials *CredentialStore, members *CachedMembers) *ProfileService {
	return &ProfileService{credentials: credentials, members: members}
}

func (s *ProfileService) Get(_ context.Context, p Principal) member.Summary {
	return p.Member.Summary()
}

// Update applies a partial profile change for the principal.
func (s *ProfileService) Update(ctx context.Context, p Principal, in ProfileUpdate) (member.Summary, error) {
	in, err := validateProfileUpdate(in)
	if err != nil {
		return member.Summary{}, err
	}

	updated, err := s.credentials.UpdateProfile(ctx, p.Member, in)
	if err != nil {
		return member.Summary{}, err
	}
	if updated.Username != p.Member.Username {
		s.members.Invalidate(ctx, updated.ID)
	}
	return updated.Summary(), nil
}
