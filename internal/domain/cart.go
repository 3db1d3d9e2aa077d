package domain

import "time"

type Cart struct {
	ID        string     `json:"id"`
	BuyerID   string     `json:"buyerId"`
	CreatedAt time.Time  `json:"createdAt"`
	Lines     []CartLine `json:"lines,omitempty"`
}

type CartLine struct {
	ID        string    `json:"id"`
	CartID    string    `json:"cartId"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

// PricedCart is an immutable quote taken from a cart at a point in time. Unit
// prices are copied from the live products so later price changes cannot
// retroactively alter the quote.
type PricedCart struct {
	CartID  string       `json:"cartId"`
	BuyerID string       `json:"buyerId"`
	TakenAt time.Time    `json:"takenAt"`
	Lines   []PricedLine `json:"lines"`
}

type PricedLine struct {
	ProductID      string `json:"productId"`
	ProductName    string `json:"productName"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	// Unavailable marks lines whose requested quantity exceeded stock at
	// snapshot time. The snapshot still succeeds; the caller decides.
	Unavailable bool `json:"unavailable,omitempty"`
}

// TotalCents sums unit price times quantity over all lines, unavailable ones
// included. Checkout rejects unavailable lines anyway via the stock ledger.
func (p PricedCart) TotalCents() int64 {
	var total int64
	for _, l := range p.Lines {
		total += l.UnitPriceCents * int64(l.Quantity)
	}
	return total
}
