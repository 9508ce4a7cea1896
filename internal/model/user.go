// File: internal/model/user.go
package model

import "time"

type User struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Address      string    `db:"address" json:"address"`
	Role         Role      `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// UserFilter 使用者列表的查詢條件
type UserFilter struct {
	Search    string
	Role      *Role
	SortBy    string
	SortOrder string
}

// UserDetail 管理員檢視單一使用者時附帶的店主平均評分
// StoreRating 僅在角色為 store_owner 時有值
type UserDetail struct {
	User
	StoreRating *float64
}
