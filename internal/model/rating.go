// File: internal/model/rating.go
package model

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

type Rating struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	StoreID   int       `db:"store_id" json:"store_id"`
	Rating    int       `db:"rating" json:"rating"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RatingDetail 評分連同評分者與商店名稱，供店主與管理員檢視
type RatingDetail struct {
	Rating
	UserName  string
	UserEmail string
	StoreName string
}

// RatingAggregate 單一商店的平均分數與評分數
type RatingAggregate struct {
	Average float64
	Count   int
}

// Statistics 管理員儀表板統計
type Statistics struct {
	TotalUsers   int
	TotalStores  int
	TotalRatings int
}
