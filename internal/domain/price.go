package domain

import "time"

// PricePoint is the adjusted close of one symbol on one
// trading day. Date is always midnight UTC
type PricePoint struct {
	Date     time.Time
	AdjClose float64
}
