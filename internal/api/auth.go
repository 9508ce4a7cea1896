// File: internal/api/auth.go
package api

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=20,max=60" example:"Alice Wonderland Example"`
	Email    string `json:"email" validate:"required,email,max=255" example:"alice@example.com"`
	Address  string `json:"address" validate:"max=400" example:"12 Market Road"`
	Password string `json:"password" validate:"required,password_policy" example:"Secret@123"`
}

// swagger:model api.LoginRequest
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"Secret@123"`
}

// swagger:model api.ChangePasswordRequest
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required" example:"Secret@123"`
	NewPassword     string `json:"newPassword" validate:"required,password_policy" example:"Secret@456"`
}

// swagger:model api.RefreshTokenRequest
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// swagger:model api.AuthResponse
type AuthResponse struct {
	Message      string       `json:"message" example:"Login successful"`
	User         UserResponse `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
}

// swagger:model api.TokenResponse
type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}
