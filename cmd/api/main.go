package main

import (
	"log"

	"github.com/gamestash/marketplace-backend/internal/config"
	"github.com/gamestash/marketplace-backend/internal/db"
	"github.com/gamestash/marketplace-backend/internal/model"
	"github.com/gamestash/marketplace-backend/internal/payment"
	"github.com/gamestash/marketplace-backend/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	if err := conn.AutoMigrate(
		&model.User{},
		&model.Token{},
		&model.Game{},
		&model.Category{},
		&model.Item{},
		&model.Order{},
	); err != nil {
		log.Fatalf("auto migrate error: %v", err)
	}

	provider := payment.NewStripeProvider(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	srv := server.New(conn, cfg, provider)

	addr := ":" + cfg.Port
	log.Printf("starting server on %s", addr)
	if err := srv.Start(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
