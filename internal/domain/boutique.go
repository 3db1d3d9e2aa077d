package domain

import "time"

type Boutique struct {
	ID         string    `json:"id"`
	SellerID   string    `json:"sellerId"`
	TemplateID string    `json:"templateId"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Template struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	RequiredRank int    `json:"requiredRank"`
}

type Seller struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	GradeRank int       `json:"gradeRank"`
	CreatedAt time.Time `json:"createdAt"`
}
