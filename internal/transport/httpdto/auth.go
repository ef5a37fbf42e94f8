package httpdto

import "huddle/internal/services"

// RegisterRequest is used for POST /auth/register/
type RegisterRequest struct {
	Username OptionalString `json:"username"`
	Password OptionalString `json:"password"`
}

func (r RegisterRequest) Input() services.RegisterInput {
	return services.RegisterInput{
		Username: r.Username.Ptr(),
		Password: r.Password.Ptr(),
		Nulls:    collectNulls(map[string]OptionalString{"username": r.Username, "password": r.Password}),
	}
}

// LoginRequest is used for POST /auth/login/
type LoginRequest struct {
	Username OptionalString `json:"username"`
	Password OptionalString `json:"password"`
}

func (r LoginRequest) Input() services.LoginInput {
	return services.LoginInput{
		Username: r.Username.Ptr(),
		Password: r.Password.Ptr(),
		Nulls:    collectNulls(map[string]OptionalString{"username": r.Username, "password": r.Password}),
	}
}

// AuthResponse is returned after successful registration or login
type AuthResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

func FromAuthResult(res services.AuthResult) AuthResponse {
	return AuthResponse{
		ID:       res.Member.ID.String(),
		Username: res.Member.Username,
		Token:    res.Token.Key,
	}
}
