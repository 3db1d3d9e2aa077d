package domain

import "time"

type Product struct {
	ID         string    `json:"id"`
	BoutiqueID string    `json:"boutiqueId"`
	Name       string    `json:"name"`
	Category   string    `json:"category,omitempty"`
	PriceCents int64     `json:"priceCents"`
	Stock      int       `json:"stock"`
	CreatedAt  time.Time `json:"createdAt"`
}
