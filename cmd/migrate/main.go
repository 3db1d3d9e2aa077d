package main

import (
	"context"
	"log"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/config"
	"github.com/zakaria-baami/marketplace-backend-sub001/internal/db"
	"github.com/zakaria-baami/marketplace-backend-sub001/internal/migrate"
)

func main() {
	cfg := config.FromEnv()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}
	log.Println("migrations applied")
}
