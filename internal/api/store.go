// File: internal/api/store.go
package api

import (
	"time"

	"store-rating/internal/model"
	"store-rating/internal/service"
)

// swagger:model api.StoreRequest
type StoreRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=60" example:"Fresh Mart"`
	Email   string `json:"email" validate:"required,email,max=255" example:"contact@freshmart.com"`
	Address string `json:"address" validate:"max=400" example:"12 Market Road"`
	OwnerID *int   `json:"ownerId" validate:"omitempty,min=1" example:"3"`
}

// swagger:model api.StoreResponse
type StoreResponse struct {
	ID        int       `json:"id" example:"1"`
	Name      string    `json:"name" example:"Fresh Mart"`
	Email     string    `json:"email" example:"contact@freshmart.com"`
	Address   string    `json:"address" example:"12 Market Road"`
	OwnerID   *int      `json:"owner_id" example:"3"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// swagger:model api.StoreSummaryResponse
type StoreSummaryResponse struct {
	StoreResponse
	AverageRating string `json:"average_rating" example:"4.0"`
	TotalRatings  int    `json:"total_ratings" example:"3"`
}

// swagger:model api.PublicStoreResponse
type PublicStoreResponse struct {
	StoreSummaryResponse
	UserRating *int `json:"user_rating" example:"4"`
}

// swagger:model api.AdminStoreResponse
type AdminStoreResponse struct {
	StoreSummaryResponse
	OwnerName *string `json:"owner_name" example:"Olivia Owner Of Stores"`
}

// swagger:model api.StoreEnvelope
type StoreEnvelope struct {
	Message string      `json:"message,omitempty" example:"Store created successfully"`
	Store   interface{} `json:"store"`
}

// swagger:model api.StoreListResponse
type StoreListResponse struct {
	Stores interface{} `json:"stores"`
}

func NewStoreResponse(s model.Store) StoreResponse {
	return StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Address:   s.Address,
		OwnerID:   s.OwnerID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func NewStoreSummaryResponse(s model.StoreSummary) StoreSummaryResponse {
	return StoreSummaryResponse{
		StoreResponse: NewStoreResponse(s.Store),
		AverageRating: service.FormatAverage(s.AverageRating),
		TotalRatings:  s.TotalRatings,
	}
}

func NewPublicStoreResponse(s model.StoreSummary) PublicStoreResponse {
	return PublicStoreResponse{StoreSummaryResponse: NewStoreSummaryResponse(s), UserRating: s.UserRating}
}

func NewPublicStoreList(stores []model.StoreSummary) []PublicStoreResponse {
	out := make([]PublicStoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, NewPublicStoreResponse(s))
	}
	return out
}

func NewAdminStoreList(stores []model.StoreSummary) []AdminStoreResponse {
	out := make([]AdminStoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, AdminStoreResponse{StoreSummaryResponse: NewStoreSummaryResponse(s), OwnerName: s.OwnerName})
	}
	return out
}

func NewStoreSummaryList(stores []model.StoreSummary) []StoreSummaryResponse {
	out := make([]StoreSummaryResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, NewStoreSummaryResponse(s))
	}
	return out
}
