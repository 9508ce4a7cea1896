// File: internal/api/user.go
package api

import (
	"time"

	"store-rating/internal/model"
	"store-rating/internal/service"
)

// swagger:model api.UserResponse
type UserResponse struct {
	ID        int        `json:"id" example:"1"`
	Name      string     `json:"name" example:"Alice Wonderland Example"`
	Email     string     `json:"email" example:"alice@example.com"`
	Address   string     `json:"address" example:"12 Market Road"`
	Role      model.Role `json:"role" example:"normal_user"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// swagger:model api.UserDetailResponse
type UserDetailResponse struct {
	UserResponse
	StoreRating *string `json:"store_rating" example:"4.2"`
}

// swagger:model api.UserEnvelope
type UserEnvelope struct {
	Message string      `json:"message,omitempty" example:"User created successfully"`
	User    interface{} `json:"user"`
}

// swagger:model api.UserListResponse
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=20,max=60" example:"Alice Wonderland Example"`
	Email    string `json:"email" validate:"required,email,max=255" example:"alice@example.com"`
	Password string `json:"password" validate:"required,password_policy" example:"Secret@123"`
	Address  string `json:"address" validate:"max=400" example:"12 Market Road"`
	Role     string `json:"role" validate:"omitempty,role" example:"normal_user"`
}

// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Name     string `json:"name" validate:"required,min=20,max=60" example:"Alice Wonderland Example"`
	Email    string `json:"email" validate:"required,email,max=255" example:"alice@example.com"`
	Address  string `json:"address" validate:"max=400" example:"12 Market Road"`
	Role     string `json:"role" validate:"required,role" example:"store_owner"`
	Password string `json:"password" validate:"omitempty,password_policy" example:"Secret@456"`
}

// swagger:model api.UpdateRoleRequest
type UpdateRoleRequest struct {
	Role string `json:"role" example:"store_owner"`
}

func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Address:   u.Address,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func NewUserListResponse(users []model.User) UserListResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return UserListResponse{Users: out}
}

func NewUserDetailResponse(d model.UserDetail) UserDetailResponse {
	resp := UserDetailResponse{UserResponse: NewUserResponse(d.User)}
	if d.StoreRating != nil {
		s := service.FormatAverage(*d.StoreRating)
		resp.StoreRating = &s
	}
	return resp
}
