package store

import (
	"context"

	"store-rating/internal/database"
	"store-rating/internal/model"
)

// GetStatistics 管理員儀表板的使用者、商店與評分總數
func GetStatistics(ctx context.Context, db database.DB) (*model.Statistics, error) {
	row := db.QueryRow(ctx,
		`SELECT (SELECT COUNT(*) FROM users),
		        (SELECT COUNT(*) FROM stores),
		        (SELECT COUNT(*) FROM ratings)`,
	)
	s := &model.Statistics{}
	if err := row.Scan(&s.TotalUsers, &s.TotalStores, &s.TotalRatings); err != nil {
		return nil, wrap("GetStatistics", err)
	}
	return s, nil
}
