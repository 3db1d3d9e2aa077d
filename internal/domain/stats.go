package domain

import "time"

// Period is the reporting window for seller statistics.
type Period string

const (
	Period7d  Period = "7d"
	Period30d Period = "30d"
	Period90d Period = "90d"
	Period1y  Period = "1y"
)

// ParsePeriod maps the wire value to a Period, defaulting to nothing on
// unknown input.
func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case Period7d, Period30d, Period90d, Period1y:
		return Period(s), true
	}
	return "", false
}

// Since returns the inclusive lower bound of the window ending at now.
func (p Period) Since(now time.Time) time.Time {
	switch p {
	case Period7d:
		return now.AddDate(0, 0, -7)
	case Period30d:
		return now.AddDate(0, 0, -30)
	case Period90d:
		return now.AddDate(0, 0, -90)
	case Period1y:
		return now.AddDate(-1, 0, 0)
	default:
		return now
	}
}

// SellerStats is derived from the order ledger on demand; it is never stored
// as an independent source of truth.
type SellerStats struct {
	BoutiqueID    string         `json:"boutiqueId"`
	Period        Period         `json:"period"`
	OrderCount    int64          `json:"orderCount"`
	UnitsSold     int64          `json:"unitsSold"`
	RevenueCents  int64          `json:"revenueCents"`
	AvgOrderCents int64          `json:"averageOrderCents"`
	TopProducts   []ProductSales `json:"topProducts"`
	ComputedAt    time.Time      `json:"computedAt"`
	FromCache     bool           `json:"-"`
}

type ProductSales struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	UnitsSold    int64  `json:"unitsSold"`
	RevenueCents int64  `json:"revenueCents"`
}
