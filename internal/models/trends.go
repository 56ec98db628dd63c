package models

// MonthlyTrend is total spend for one calendar month.
type MonthlyTrend struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// CategoryTrend is total spend for one category over the inspected window.
type CategoryTrend struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}
