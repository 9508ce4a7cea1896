package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"store-rating/internal/database"
	"store-rating/internal/model"
)

const userColumns = `id, name, email, password_hash, address, role, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner, u *model.User) error {
	return row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Address,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE id = $1`,
		userID,
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, wrap("GetUserByID", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users WHERE email = $1`,
		email,
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, wrap("GetUserByEmail", err)
	}
	return u, nil
}

// GetUserDetail 取得使用者；若為店主，附帶其所有商店的整體平均評分
func GetUserDetail(ctx context.Context, db database.DB, userID int) (*model.UserDetail, error) {
	row := db.QueryRow(ctx,
		`SELECT u.id, u.name, u.email, u.password_hash, u.address, u.role, u.created_at, u.updated_at,
		        CASE WHEN u.role = 'store_owner' THEN (
		            SELECT COALESCE(AVG(r.rating), 0)::float8
		            FROM stores s
		            LEFT JOIN ratings r ON r.store_id = s.id
		            WHERE s.owner_id = u.id
		        ) END AS store_rating
		 FROM users u WHERE u.id = $1`,
		userID,
	)
	d := &model.UserDetail{}
	if err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Email,
		&d.PasswordHash,
		&d.Address,
		&d.Role,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.StoreRating,
	); err != nil {
		return nil, wrap("GetUserDetail", err)
	}
	return d, nil
}

// ListUsers 依搜尋字詞、角色與排序條件列出使用者
func ListUsers(ctx context.Context, db database.DB, f model.UserFilter) ([]model.User, error) {
	q := &query{}
	q.addSearch(f.Search, "name", "email", "address")
	if f.Role != nil {
		q.addEq("role", string(*f.Role))
	}
	rows, err := db.Query(ctx,
		`SELECT `+userColumns+` FROM users`+q.whereClause()+orderBy(f.SortBy, f.SortOrder, userSortColumns),
		q.args...,
	)
	if err != nil {
		return nil, wrap("ListUsers", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, wrap("ListUsers", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("ListUsers", err)
	}
	return users, nil
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, address, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Address,
		string(u.Role),
	)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, wrap("CreateUser", err)
	}
	return u, nil
}

// UpsertAdmin 建立或覆寫啟動時指定的系統管理員帳號
func UpsertAdmin(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, address, role)
		 VALUES ($1, $2, $3, $4, 'system_admin')
		 ON CONFLICT (email) DO UPDATE
		 SET name = EXCLUDED.name,
		     password_hash = EXCLUDED.password_hash,
		     address = EXCLUDED.address,
		     role = 'system_admin',
		     updated_at = now()
		 RETURNING `+userColumns,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Address,
	)
	out := &model.User{}
	if err := scanUser(row, out); err != nil {
		return nil, wrap("UpsertAdmin", err)
	}
	return out, nil
}

// keepsOwnerRole 讓名下仍有商店的 store_owner 無法被改成其他角色
const keepsOwnerRole = `(%s = 'store_owner' OR NOT EXISTS (SELECT 1 FROM stores WHERE owner_id = users.id))`

// UpdateUser 更新基本資料與角色；passwordHash 為 nil 時保留原密碼
// 名下仍有商店時不可改掉 store_owner 角色，回傳 ErrOwnerHasStores
func UpdateUser(ctx context.Context, db database.DB, u *model.User, passwordHash *string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`UPDATE users
		 SET name = $1, email = $2, address = $3, role = $4,
		     password_hash = COALESCE($5, password_hash),
		     updated_at = now()
		 WHERE id = $6 AND `+fmt.Sprintf(keepsOwnerRole, "$4")+`
		 RETURNING `+userColumns,
		u.Name,
		u.Email,
		u.Address,
		string(u.Role),
		passwordHash,
		u.ID,
	)
	out := &model.User{}
	if err := scanUser(row, out); err != nil {
		return nil, guardErr(ctx, db, "UpdateUser", u.ID, err)
	}
	return out, nil
}

// UpdateUserRole 只變更角色，限制同 UpdateUser
func UpdateUserRole(ctx context.Context, db database.DB, userID int, role model.Role) (*model.User, error) {
	row := db.QueryRow(ctx,
		`UPDATE users SET role = $1, updated_at = now()
		 WHERE id = $2 AND `+fmt.Sprintf(keepsOwnerRole, "$1")+`
		 RETURNING `+userColumns,
		string(role),
		userID,
	)
	u := &model.User{}
	if err := scanUser(row, u); err != nil {
		return nil, guardErr(ctx, db, "UpdateUserRole", userID, err)
	}
	return u, nil
}

// guardErr 區分「使用者不存在」與「仍擁有商店而被擋下」
func guardErr(ctx context.Context, db database.DB, op string, userID int, err error) error {
	if !errors.Is(err, pgx.ErrNoRows) {
		return wrap(op, err)
	}
	var owns bool
	row := db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM stores WHERE owner_id = $1)`, userID)
	if err := row.Scan(&owns); err != nil {
		return wrap(op, err)
	}
	if owns {
		return fmt.Errorf("%s: %w", op, ErrOwnerHasStores)
	}
	return wrap(op, ErrNotFound)
}

func UpdateUserPassword(ctx context.Context, db database.DB, userID int, passwordHash string) error {
	tag, err := db.Exec(ctx,
		`UPDATE users
		 SET password_hash = $1, updated_at = now()
		 WHERE id = $2`,
		passwordHash,
		userID,
	)
	if err != nil {
		return wrap("UpdateUserPassword", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("UpdateUserPassword", ErrNotFound)
	}
	return nil
}

// DeleteUser 刪除使用者；其評分隨之刪除，名下商店的 owner_id 設為 NULL
func DeleteUser(ctx context.Context, db database.DB, userID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		userID,
	)
	if err != nil {
		return wrap("DeleteUser", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("DeleteUser", ErrNotFound)
	}
	return nil
}
