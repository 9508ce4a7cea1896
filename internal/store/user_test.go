package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"store-rating/internal/database"
	"store-rating/internal/model"
)

var now = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func userRow(id int, role model.Role) []any {
	return []any{id, "Alice Wonderland Example", "alice@example.com", "hash", "1 Main St", role, now, now}
}

func TestGetUserByID(t *testing.T) {
	db := &database.FakeDB{QueryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
		require.Contains(t, sql, "FROM users WHERE id = $1")
		require.Equal(t, []any{7}, args)
		return &database.FakeRow{Values: userRow(7, model.RoleNormalUser)}
	}}
	u, err := GetUserByID(context.Background(), db, 7)
	require.NoError(t, err)
	require.Equal(t, 7, u.ID)
	require.Equal(t, model.RoleNormalUser, u.Role)
	require.Equal(t, "hash", u.PasswordHash)

	db.QueryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
		return &database.FakeRow{Err: pgx.ErrNoRows}
	}
	_, err = GetUserByID(context.Background(), db, 8)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserByEmail(t *testing.T) {
	db := &database.FakeDB{QueryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
		require.Equal(t, []any{"alice@example.com"}, args)
		return &database.FakeRow{Values: userRow(1, model.RoleSystemAdmin)}
	}}
	u, err := GetUserByEmail(context.Background(), db, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, model.RoleSystemAdmin, u.Role)
}

func TestGetUserDetail(t *testing.T) {
	avg := 3.5
	db := &database.FakeDB{QueryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
		require.Contains(t, sql, "WHEN u.role = 'store_owner'")
		return &database.FakeRow{Values: append(userRow(2, model.RoleStoreOwner), &avg)}
	}}
	d, err := GetUserDetail(context.Background(), db, 2)
	require.NoError(t, err)
	require.NotNil(t, d.StoreRating)
	require.Equal(t, 3.5, *d.StoreRating)

	db.QueryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
		return &database.FakeRow{Values: append(userRow(3, model.RoleNormalUser), nil)}
	}
	d, err = GetUserDetail(context.Background(), db, 3)
	require.NoError(t, err)
	require.Nil(t, d.StoreRating)
}

func TestListUsers(t *testing.T) {
	role := model.RoleStoreOwner
	var gotSQL string
	var gotArgs []any
	rows := &database.FakeRows{Data: [][]any{userRow(1, role), userRow(2, role)}}
	db := &database.FakeDB{QueryFn: func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
		gotSQL, gotArgs = sql, args
		return rows, nil
	}}

	users, err := ListUsers(context.Background(), db, model.UserFilter{
		Search: "Fresh Mart", Role: &role, SortBy: "bogus", SortOrder: "desc",
	})
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.True(t, rows.Closed())
	require.Contains(t, gotSQL,
		"WHERE (name ILIKE $1 OR email ILIKE $1 OR address ILIKE $1) AND (name ILIKE $2 OR email ILIKE $2 OR address ILIKE $2) AND role = $3")
	require.True(t, strings.HasSuffix(gotSQL, "ORDER BY name ASC"))
	require.Equal(t, []any{"%Fresh%", "%Mart%", "store_owner"}, gotArgs)

	db.QueryFn = func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
		require.NotContains(t, sql, "WHERE")
		require.True(t, strings.HasSuffix(sql, "ORDER BY created_at DESC"))
		return &database.FakeRows{}, nil
	}
	users, err = ListUsers(context.Background(), db, model.UserFilter{SortBy: "created_at", SortOrder: "DESC"})
	require.NoError(t, err)
	require.NotNil(t, users)
	require.Empty(t, users)

	db.QueryFn = func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
		return nil, errors.New("down")
	}
	_, err = ListUsers(context.Background(), db, model.UserFilter{})
	require.EqualError(t, err, "ListUsers: down")

	db.QueryFn = func(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
		return &database.FakeRows{IterErr: errors.New("iter")}, nil
	}
	_, err = ListUsers(context.Background(), db, model.UserFilter{})
	require.Error(t, err)
}

func TestCreateUser(t *testing.T) {
	db := &database.FakeDB{QueryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
		require.Contains(t, sql, "INSERT INTO users")
		require.Equal(t, []any{"Alice Wonderland Example", "alice@example.com", "hash", "1 Main St", "normal_user"}, args)
		return &database.FakeRow{Values: []any{11, now, now}}
	}}
	u, err := CreateUser(context.Background(), db, &model.User{
		Name: "Alice Wonderland Example", Email: "alice@example.com", PasswordHash: "hash",
		Address: "1 Main St", Role: model.RoleNormalUser,
	})
	require.NoError(t, err)
	require.Equal(t, 11, u.ID)
	require.Equal(t, now, u.CreatedAt)

	db.QueryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
		return &database.FakeRow{Err: &pgconn.PgError{Code: "23505"}}
	}
	_, err = CreateUser(context.Background(), db, &model.User{})
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUpsertAdmin(t *testing.T) {
	db := &database.FakeDB{QueryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
		require.Contains(t, sql, "ON CONFLICT (email) DO UPDATE")
		require.Len(t, args, 4)
		return &database.FakeRow{Values: userRow(1, model.RoleSystemAdmin)}
	}}
	u, err := UpsertAdmin(context.Background(), db, &model.User{Email: "admin@example.com"})
	require.NoError(t, err)
	require.Equal(t, model.RoleSystemAdmin, u.Role)
}

func TestUpdateUser(t *testing.T) {
	hash := "newhash"
	db := &database.FakeDB{QueryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
		require.Contains(t, sql, "COALESCE($5, password_hash)")
		require.Contains(t, sql, "($4 = 'store_owner' OR NOT EXISTS (SELECT 1 FROM stores WHERE owner_id = users.id))")
		require.Equal(t, &hash, args[4])
		require.Equal(t, 4, args[5])
		return &database.FakeRow{Values: userRow(4, model.RoleStoreOwner)}
	}}
	u, err := UpdateUser(context.Background(), db, &model.User{ID: 4, Role: model.RoleStoreOwner}, &hash)
	require.NoError(t, err)
	require.Equal(t, 4, u.ID)

	db.QueryRowFn = ownerGuardRows(t, 5, false)
	_, err = UpdateUser(context.Background(), db, &model.User{ID: 5}, nil)
	require.ErrorIs(t, err, ErrNotFound)

	db.QueryRowFn = ownerGuardRows(t, 4, true)
	_, err = UpdateUser(context.Background(), db, &model.User{ID: 4, Role: model.RoleNormalUser}, nil)
	require.ErrorIs(t, err, ErrOwnerHasStores)
	require.EqualError(t, err, "UpdateUser: user still owns stores")
}

// ownerGuardRows 讓 UPDATE 沒有回傳資料列，再以 owns 回覆商店歸屬查詢
func ownerGuardRows(t *testing.T, userID int, owns bool) func(ctx context.Context, sql string, args ...any) pgx.Row {
	return func(ctx context.Context, sql string, args ...any) pgx.Row {
		if strings.HasPrefix(sql, "UPDATE users") {
			return &database.FakeRow{Err: pgx.ErrNoRows}
		}
		require.Equal(t, "SELECT EXISTS (SELECT 1 FROM stores WHERE owner_id = $1)", sql)
		require.Equal(t, []any{userID}, args)
		return &database.FakeRow{Values: []any{owns}}
	}
}

func TestUpdateUserRole(t *testing.T) {
	db := &database.FakeDB{QueryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
		require.Contains(t, sql, "($1 = 'store_owner' OR NOT EXISTS (SELECT 1 FROM stores WHERE owner_id = users.id))")
		require.Equal(t, []any{"store_owner", 4}, args)
		return &database.FakeRow{Values: userRow(4, model.RoleStoreOwner)}
	}}
	u, err := UpdateUserRole(context.Background(), db, 4, model.RoleStoreOwner)
	require.NoError(t, err)
	require.Equal(t, model.RoleStoreOwner, u.Role)

	db.QueryRowFn = ownerGuardRows(t, 4, true)
	_, err = UpdateUserRole(context.Background(), db, 4, model.RoleNormalUser)
	require.ErrorIs(t, err, ErrOwnerHasStores)

	db.QueryRowFn = ownerGuardRows(t, 9, false)
	_, err = UpdateUserRole(context.Background(), db, 9, model.RoleSystemAdmin)
	require.ErrorIs(t, err, ErrNotFound)

	db.QueryRowFn = func(ctx context.Context, sql string, args ...any) pgx.Row {
		if strings.HasPrefix(sql, "UPDATE users") {
			return &database.FakeRow{Err: pgx.ErrNoRows}
		}
		return &database.FakeRow{Err: errors.New("boom")}
	}
	_, err = UpdateUserRole(context.Background(), db, 4, model.RoleNormalUser)
	require.EqualError(t, err, "UpdateUserRole: boom")
}

func TestUpdateUserPassword(t *testing.T) {
	db := &database.FakeDB{ExecFn: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
		require.Equal(t, []any{"h", 1}, args)
		return pgconn.NewCommandTag("UPDATE 1"), nil
	}}
	require.NoError(t, UpdateUserPassword(context.Background(), db, 1, "h"))

	db.ExecFn = func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
		return pgconn.NewCommandTag("UPDATE 0"), nil
	}
	require.ErrorIs(t, UpdateUserPassword(context.Background(), db, 1, "h"), ErrNotFound)

	db.ExecFn = func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
		return pgconn.CommandTag{}, errors.New("x")
	}
	require.EqualError(t, UpdateUserPassword(context.Background(), db, 1, "h"), "UpdateUserPassword: x")
}

func TestDeleteUser(t *testing.T) {
	db := &database.FakeDB{ExecFn: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
		require.Equal(t, "DELETE FROM users WHERE id = $1", sql)
		return pgconn.NewCommandTag("DELETE 1"), nil
	}}
	require.NoError(t, DeleteUser(context.Background(), db, 1))

	db.ExecFn = func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
		return pgconn.NewCommandTag("DELETE 0"), nil
	}
	require.ErrorIs(t, DeleteUser(context.Background(), db, 404), ErrNotFound)
}
