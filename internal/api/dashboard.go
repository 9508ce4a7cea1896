// File: internal/api/dashboard.go
package api

import "store-rating/internal/model"

// swagger:model api.StatisticsResponse
type StatisticsResponse struct {
	TotalUsers   int `json:"totalUsers" example:"12"`
	TotalStores  int `json:"totalStores" example:"4"`
	TotalRatings int `json:"totalRatings" example:"30"`
}

// swagger:model api.AdminDashboardResponse
type AdminDashboardResponse struct {
	Statistics StatisticsResponse `json:"statistics"`
}

// swagger:model api.OwnerDashboardResponse
type OwnerDashboardResponse struct {
	Stores        []StoreSummaryResponse `json:"stores"`
	RecentRatings []RatingDetailResponse `json:"recentRatings"`
}

func NewAdminDashboardResponse(s model.Statistics) AdminDashboardResponse {
	return AdminDashboardResponse{Statistics: StatisticsResponse{
		TotalUsers:   s.TotalUsers,
		TotalStores:  s.TotalStores,
		TotalRatings: s.TotalRatings,
	}}
}
