package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Fixed ids so reruns upsert instead of piling up duplicates.
const (
	sellerLea  = "5f1d7a5e-0000-4000-8000-000000000001"
	sellerMarc = "5f1d7a5e-0000-4000-8000-000000000002"

	templateBasic   = "7e3a9b10-0000-4000-8000-000000000001"
	templateBoosted = "7e3a9b10-0000-4000-8000-000000000002"
	templatePremium = "7e3a9b10-0000-4000-8000-000000000003"

	boutiqueLea  = "9c4e2f20-0000-4000-8000-000000000001"
	boutiqueMarc = "9c4e2f20-0000-4000-8000-000000000002"
)

type productRow struct {
	id         string
	boutiqueID string
	name       string
	category   string
	priceCents int64
	stock      int
}

var products = []productRow{
	{"b1a0c0de-0000-4000-8000-000000000001", boutiqueLea, "Ceramic mug", "kitchen", 1850, 40},
	{"b1a0c0de-0000-4000-8000-000000000002", boutiqueLea, "Linen tote bag", "accessories", 2400, 25},
	{"b1a0c0de-0000-4000-8000-000000000003", boutiqueLea, "Beeswax candle", "home", 1200, 60},
	{"b1a0c0de-0000-4000-8000-000000000004", boutiqueMarc, "Leather wallet", "accessories", 5900, 15},
	{"b1a0c0de-0000-4000-8000-000000000005", boutiqueMarc, "Wool scarf", "clothing", 3400, 5},
}

// Run loads a small demo data set: two sellers with one boutique each, three
// templates with increasing required grades, and a handful of products.
// Safe to run repeatedly.
func Run(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	templates := []struct {
		id   string
		name string
		rank int
	}{
		{templateBasic, "basic", 0},
		{templateBoosted, "boosted", 1},
		{templatePremium, "premium", 2},
	}
	for _, t := range templates {
		_, err := tx.Exec(ctx, `
			INSERT INTO templates (id, name, required_rank)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, required_rank = EXCLUDED.required_rank`,
			t.id, t.name, t.rank)
		if err != nil {
			return fmt.Errorf("seed template %s: %w", t.name, err)
		}
	}

	sellers := []struct {
		id   string
		name string
		rank int
	}{
		{sellerLea, "Léa Dupont", 2},
		{sellerMarc, "Marc Petit", 0},
	}
	for _, s := range sellers {
		_, err := tx.Exec(ctx, `
			INSERT INTO sellers (id, name, grade_rank)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, grade_rank = EXCLUDED.grade_rank`,
			s.id, s.name, s.rank)
		if err != nil {
			return fmt.Errorf("seed seller %s: %w", s.name, err)
		}
	}

	boutiques := []struct {
		id, sellerID, templateID, name string
	}{
		{boutiqueLea, sellerLea, templatePremium, "Atelier Léa"},
		{boutiqueMarc, sellerMarc, templateBasic, "Maroquinerie Petit"},
	}
	for _, b := range boutiques {
		_, err := tx.Exec(ctx, `
			INSERT INTO boutiques (id, seller_id, template_id, name)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET template_id = EXCLUDED.template_id, name = EXCLUDED.name`,
			b.id, b.sellerID, b.templateID, b.name)
		if err != nil {
			return fmt.Errorf("seed boutique %s: %w", b.name, err)
		}
	}

	for _, p := range products {
		_, err := tx.Exec(ctx, `
			INSERT INTO products (id, boutique_id, name, category, price_cents, stock)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				category = EXCLUDED.category,
				price_cents = EXCLUDED.price_cents,
				stock = EXCLUDED.stock`,
			p.id, p.boutiqueID, p.name, p.category, p.priceCents, p.stock)
		if err != nil {
			return fmt.Errorf("seed product %s: %w", p.name, err)
		}
	}

	return tx.Commit(ctx)
}
