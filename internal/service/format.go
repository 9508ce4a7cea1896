package service

import (
	"strconv"
	"strings"
)

// NormalizeEmail 去除空白並轉為小寫
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FormatAverage 平均分數固定輸出一位小數，例如 "0.0"、"4.0"
func FormatAverage(avg float64) string {
	return strconv.FormatFloat(avg, 'f', 1, 64)
}
