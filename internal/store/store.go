package store

import (
	"context"

	"store-rating/internal/database"
	"store-rating/internal/model"
)

const storeColumns = `s.id, s.name, s.email, s.address, s.owner_id, s.created_at, s.updated_at`

// 評分統計欄位；LEFT JOIN 讓沒有評分的商店得到 0 / 0
const aggregateColumns = `COALESCE(AVG(r.rating), 0)::float8 AS average_rating, COUNT(r.id) AS total_ratings`

func scanStore(row scanner, s *model.Store) error {
	return row.Scan(
		&s.ID,
		&s.Name,
		&s.Email,
		&s.Address,
		&s.OwnerID,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
}

func scanSummaries(op string, rows interface {
	scanner
	Next() bool
	Err() error
}, extra func(*model.StoreSummary) []any) ([]model.StoreSummary, error) {
	out := []model.StoreSummary{}
	for rows.Next() {
		var s model.StoreSummary
		dest := []any{
			&s.ID, &s.Name, &s.Email, &s.Address, &s.OwnerID, &s.CreatedAt, &s.UpdatedAt,
			&s.AverageRating, &s.TotalRatings,
		}
		dest = append(dest, extra(&s)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, wrap(op, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return out, nil
}

func withUserRating(s *model.StoreSummary) []any { return []any{&s.UserRating} }
func withOwnerName(s *model.StoreSummary) []any  { return []any{&s.OwnerName} }
func noExtra(*model.StoreSummary) []any          { return nil }

func GetStoreByID(ctx context.Context, db database.DB, storeID int) (*model.Store, error) {
	row := db.QueryRow(ctx,
		`SELECT `+storeColumns+` FROM stores s WHERE s.id = $1`,
		storeID,
	)
	s := &model.Store{}
	if err := scanStore(row, s); err != nil {
		return nil, wrap("GetStoreByID", err)
	}
	return s, nil
}

// GetOwnedStore 僅在商店屬於 ownerID 時回傳，否則為 ErrNotFound
func GetOwnedStore(ctx context.Context, db database.DB, storeID, ownerID int) (*model.Store, error) {
	row := db.QueryRow(ctx,
		`SELECT `+storeColumns+` FROM stores s WHERE s.id = $1 AND s.owner_id = $2`,
		storeID,
		ownerID,
	)
	s := &model.Store{}
	if err := scanStore(row, s); err != nil {
		return nil, wrap("GetOwnedStore", err)
	}
	return s, nil
}

// GetStoreSummary 取得商店與評分統計；userID 不為 nil 時一併帶出該使用者的評分
func GetStoreSummary(ctx context.Context, db database.DB, storeID int, userID *int) (*model.StoreSummary, error) {
	row := db.QueryRow(ctx,
		`SELECT `+storeColumns+`, `+aggregateColumns+`,
		        (SELECT ur.rating FROM ratings ur WHERE ur.store_id = s.id AND ur.user_id = $2) AS user_rating
		 FROM stores s
		 LEFT JOIN ratings r ON r.store_id = s.id
		 WHERE s.id = $1
		 GROUP BY s.id`,
		storeID,
		userID,
	)
	s := &model.StoreSummary{}
	if err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Email,
		&s.Address,
		&s.OwnerID,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.AverageRating,
		&s.TotalRatings,
		&s.UserRating,
	); err != nil {
		return nil, wrap("GetStoreSummary", err)
	}
	return s, nil
}

// ListStores 公開商店列表，搜尋範圍為名稱與地址
func ListStores(ctx context.Context, db database.DB, f model.StoreFilter, userID *int) ([]model.StoreSummary, error) {
	q := &query{}
	userParam := q.arg(userID)
	q.addSearch(f.Search, "s.name", "s.address")
	rows, err := db.Query(ctx,
		`SELECT `+storeColumns+`, `+aggregateColumns+`,
		        (SELECT ur.rating FROM ratings ur WHERE ur.store_id = s.id AND ur.user_id = `+userParam+`) AS user_rating
		 FROM stores s
		 LEFT JOIN ratings r ON r.store_id = s.id`+
			q.whereClause()+
			` GROUP BY s.id`+
			orderBy(f.SortBy, f.SortOrder, storeSortColumns),
		q.args...,
	)
	if err != nil {
		return nil, wrap("ListStores", err)
	}
	defer rows.Close()
	return scanSummaries("ListStores", rows, withUserRating)
}

// ListStoresWithOwner 管理員商店列表，附帶店主名稱，搜尋範圍含 email
func ListStoresWithOwner(ctx context.Context, db database.DB, f model.StoreFilter) ([]model.StoreSummary, error) {
	q := &query{}
	q.addSearch(f.Search, "s.name", "s.email", "s.address")
	rows, err := db.Query(ctx,
		`SELECT `+storeColumns+`, `+aggregateColumns+`, u.name AS owner_name
		 FROM stores s
		 LEFT JOIN ratings r ON r.store_id = s.id
		 LEFT JOIN users u ON u.id = s.owner_id`+
			q.whereClause()+
			` GROUP BY s.id, u.name`+
			orderBy(f.SortBy, f.SortOrder, storeSortColumns),
		q.args...,
	)
	if err != nil {
		return nil, wrap("ListStoresWithOwner", err)
	}
	defer rows.Close()
	return scanSummaries("ListStoresWithOwner", rows, withOwnerName)
}

// ListOwnerStores 店主名下所有商店與評分統計
func ListOwnerStores(ctx context.Context, db database.DB, ownerID int) ([]model.StoreSummary, error) {
	rows, err := db.Query(ctx,
		`SELECT `+storeColumns+`, `+aggregateColumns+`
		 FROM stores s
		 LEFT JOIN ratings r ON r.store_id = s.id
		 WHERE s.owner_id = $1
		 GROUP BY s.id
		 ORDER BY s.name ASC`,
		ownerID,
	)
	if err != nil {
		return nil, wrap("ListOwnerStores", err)
	}
	defer rows.Close()
	return scanSummaries("ListOwnerStores", rows, noExtra)
}

func CreateStore(ctx context.Context, db database.DB, s *model.Store) (*model.Store, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO stores (name, email, address, owner_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		s.Name,
		s.Email,
		s.Address,
		s.OwnerID,
	)
	if err := row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, wrap("CreateStore", err)
	}
	return s, nil
}

func UpdateStore(ctx context.Context, db database.DB, s *model.Store) (*model.Store, error) {
	row := db.QueryRow(ctx,
		`UPDATE stores s
		 SET name = $1, email = $2, address = $3, owner_id = $4, updated_at = now()
		 WHERE s.id = $5
		 RETURNING `+storeColumns,
		s.Name,
		s.Email,
		s.Address,
		s.OwnerID,
		s.ID,
	)
	out := &model.Store{}
	if err := scanStore(row, out); err != nil {
		return nil, wrap("UpdateStore", err)
	}
	return out, nil
}

// DeleteStore 刪除商店，其評分一併刪除
func DeleteStore(ctx context.Context, db database.DB, storeID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM stores WHERE id = $1`,
		storeID,
	)
	if err != nil {
		return wrap("DeleteStore", err)
	}
	if tag.RowsAffected() == 0 {
		return wrap("DeleteStore", ErrNotFound)
	}
	return nil
}
