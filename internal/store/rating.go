package store

import (
	"context"

	"store-rating/internal/database"
	"store-rating/internal/model"
)

const ratingColumns = `id, user_id, store_id, rating, created_at, updated_at`

func scanRating(row scanner, r *model.Rating) error {
	return row.Scan(
		&r.ID,
		&r.UserID,
		&r.StoreID,
		&r.Rating,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
}

// UpsertRating 以單一語句新增或更新 (user, store) 的評分
// inserted 為 true 表示新增；商店不存在時回傳 ErrReferenceNotFound
func UpsertRating(ctx context.Context, db database.DB, userID, storeID, value int) (*model.Rating, bool, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO ratings (user_id, store_id, rating)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, store_id) DO UPDATE
		 SET rating = EXCLUDED.rating, updated_at = now()
		 RETURNING `+ratingColumns+`, (xmax = 0) AS inserted`,
		userID,
		storeID,
		value,
	)
	r := &model.Rating{}
	var inserted bool
	if err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.StoreID,
		&r.Rating,
		&r.CreatedAt,
		&r.UpdatedAt,
		&inserted,
	); err != nil {
		return nil, false, wrap("UpsertRating", err)
	}
	return r, inserted, nil
}

func GetUserRating(ctx context.Context, db database.DB, userID, storeID int) (*model.Rating, error) {
	row := db.QueryRow(ctx,
		`SELECT `+ratingColumns+`
		 FROM ratings WHERE user_id = $1 AND store_id = $2`,
		userID,
		storeID,
	)
	r := &model.Rating{}
	if err := scanRating(row, r); err != nil {
		return nil, wrap("GetUserRating", err)
	}
	return r, nil
}

// DeleteUserRating 刪除並回傳被刪除的評分
func DeleteUserRating(ctx context.Context, db database.DB, userID, storeID int) (*model.Rating, error) {
	row := db.QueryRow(ctx,
		`DELETE FROM ratings WHERE user_id = $1 AND store_id = $2
		 RETURNING `+ratingColumns,
		userID,
		storeID,
	)
	r := &model.Rating{}
	if err := scanRating(row, r); err != nil {
		return nil, wrap("DeleteUserRating", err)
	}
	return r, nil
}

// GetStoreAggregate 計算單一商店的平均分數與評分數
func GetStoreAggregate(ctx context.Context, db database.DB, storeID int) (*model.RatingAggregate, error) {
	row := db.QueryRow(ctx,
		`SELECT `+aggregateColumns+`
		 FROM stores s
		 LEFT JOIN ratings r ON r.store_id = s.id
		 WHERE s.id = $1
		 GROUP BY s.id`,
		storeID,
	)
	a := &model.RatingAggregate{}
	if err := row.Scan(&a.Average, &a.Count); err != nil {
		return nil, wrap("GetStoreAggregate", err)
	}
	return a, nil
}

const ratingDetailSelect = `SELECT r.id, r.user_id, r.store_id, r.rating, r.created_at, r.updated_at,
		        u.name AS user_name, u.email AS user_email, s.name AS store_name
		 FROM ratings r
		 JOIN stores s ON s.id = r.store_id
		 JOIN users u ON u.id = r.user_id`

func listRatingDetails(ctx context.Context, db database.DB, op, sql string, args ...any) ([]model.RatingDetail, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	out := []model.RatingDetail{}
	for rows.Next() {
		var d model.RatingDetail
		if err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.StoreID,
			&d.Rating.Rating,
			&d.CreatedAt,
			&d.UpdatedAt,
			&d.UserName,
			&d.UserEmail,
			&d.StoreName,
		); err != nil {
			return nil, wrap(op, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return out, nil
}

// ListStoreRatings 列出商店的評分 (新到舊)
// ownerID 不為 nil 時只回傳該店主名下商店的評分
func ListStoreRatings(ctx context.Context, db database.DB, storeID int, ownerID *int) ([]model.RatingDetail, error) {
	q := &query{}
	q.addEq("r.store_id", storeID)
	if ownerID != nil {
		q.addEq("s.owner_id", *ownerID)
	}
	return listRatingDetails(ctx, db, "ListStoreRatings",
		ratingDetailSelect+q.whereClause()+` ORDER BY r.created_at DESC`,
		q.args...,
	)
}

// ListRecentOwnerRatings 店主所有商店最新的 limit 筆評分
func ListRecentOwnerRatings(ctx context.Context, db database.DB, ownerID, limit int) ([]model.RatingDetail, error) {
	return listRatingDetails(ctx, db, "ListRecentOwnerRatings",
		ratingDetailSelect+`
		 WHERE s.owner_id = $1
		 ORDER BY r.created_at DESC
		 LIMIT $2`,
		ownerID,
		limit,
	)
}
