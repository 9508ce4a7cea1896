// File: internal/model/store.go
package model

import "time"

type Store struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Address   string    `db:"address" json:"address"`
	OwnerID   *int      `db:"owner_id" json:"owner_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// StoreSummary 商店加上即時計算的評分統計
type StoreSummary struct {
	Store
	AverageRating float64
	TotalRatings  int
	OwnerName     *string
	UserRating    *int
}

// StoreFilter 商店列表的查詢條件
type StoreFilter struct {
	Search    string
	SortBy    string
	SortOrder string
}
