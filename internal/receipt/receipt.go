package receipt

import "time"

// Receipt is a fully-loaded purchase record. Monetary amounts are stored
// in cents, already rounded half-up to 2 decimal places.
type Receipt struct {
	ID           string
	Retailer     string
	PurchaseDate time.Time // calendar date; clock portion is zero
	PurchaseTime time.Time // time of day; date portion is the zero date
	TotalCents   int64
	Items        []Item
	CreatedAt    time.Time
}

// Item is a single purchased line entry. It only exists as part of a
// Receipt. Price may be negative (discounts, returns).
type Item struct {
	Description string
	PriceCents  int64
}
