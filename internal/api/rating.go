// File: internal/api/rating.go
package api

import (
	"time"

	"store-rating/internal/model"
	"store-rating/internal/service"
)

// swagger:model api.RatingRequest
type RatingRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5" example:"4"`
}

// swagger:model api.RatingResponse
type RatingResponse struct {
	ID        int       `json:"id" example:"10"`
	UserID    int       `json:"user_id" example:"2"`
	StoreID   int       `json:"store_id" example:"1"`
	Rating    int       `json:"rating" example:"4"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// swagger:model api.RatingEnvelope
type RatingEnvelope struct {
	Message string         `json:"message,omitempty" example:"Rating submitted successfully"`
	Rating  RatingResponse `json:"rating"`
}

// swagger:model api.RatingDetailResponse
type RatingDetailResponse struct {
	ID        int       `json:"id" example:"10"`
	Rating    int       `json:"rating" example:"4"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    int       `json:"user_id" example:"2"`
	UserName  string    `json:"user_name" example:"Reviewer With A Long Name"`
	UserEmail string    `json:"user_email" example:"reviewer@example.com"`
	StoreID   int       `json:"store_id" example:"1"`
	StoreName string    `json:"store_name" example:"Fresh Mart"`
}

// swagger:model api.RatingListResponse
type RatingListResponse struct {
	Ratings []RatingDetailResponse `json:"ratings"`
}

// swagger:model api.AverageRatingResponse
type AverageRatingResponse struct {
	AverageRating string `json:"average_rating" example:"4.0"`
	TotalRatings  int    `json:"total_ratings" example:"3"`
}

func NewRatingResponse(r model.Rating) RatingResponse {
	return RatingResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		StoreID:   r.StoreID,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func NewRatingDetailList(rs []model.RatingDetail) []RatingDetailResponse {
	out := make([]RatingDetailResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, RatingDetailResponse{
			ID:        r.ID,
			Rating:    r.Rating.Rating,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			UserID:    r.UserID,
			UserName:  r.UserName,
			UserEmail: r.UserEmail,
			StoreID:   r.StoreID,
			StoreName: r.StoreName,
		})
	}
	return out
}

func NewAverageRatingResponse(a model.RatingAggregate) AverageRatingResponse {
	return AverageRatingResponse{AverageRating: service.FormatAverage(a.Average), TotalRatings: a.Count}
}
