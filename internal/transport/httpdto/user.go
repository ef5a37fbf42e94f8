package httpdto

import (
	"huddle/internal/domain/member"
	"huddle/internal/services"
)

// MemberDTO represents a member in API responses
type MemberDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func FromSummary(s member.Summary) MemberDTO {
	return MemberDTO{ID: s.ID.String(), Username: s.Username}
}

// UpdateProfileRequest is used for PUT /profile/. Absent fields stay unchanged.
type UpdateProfileRequest struct {
	Username OptionalString `json:"username"`
}

func (r UpdateProfileRequest) Input() services.ProfileUpdate {
	return services.ProfileUpdate{
		Username: r.Username.Ptr(),
		Nulls:    collectNulls(map[string]OptionalString{"username": r.Username}),
	}
}
