package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gamestash/marketplace-backend/internal/config"
	"github.com/gamestash/marketplace-backend/internal/db"
	"github.com/gamestash/marketplace-backend/internal/model"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedGame struct {
	Name       string
	Slug       string
	Categories []string
}

type seedItem struct {
	Title        string
	Description  string
	Price        string
	GameSlug     string
	CategorySlug string
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(
		&model.User{},
		&model.Token{},
		&model.Game{},
		&model.Category{},
		&model.Item{},
		&model.Order{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	canSeed, err := shouldSeed(gdb)
	if err != nil {
		return err
	}
	if !canSeed {
		log.Printf("games already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		games := buildSeedGames()
		categoryIDs := map[string]uint64{}
		for _, sg := range games {
			game := model.Game{Name: sg.Name, Slug: sg.Slug}
			if err := tx.Where(model.Game{Slug: sg.Slug}).FirstOrCreate(&game).Error; err != nil {
				return fmt.Errorf("seed game %s: %w", sg.Slug, err)
			}
			for _, name := range sg.Categories {
				slug := slugify(name)
				cat := model.Category{Name: name, Slug: slug, GameID: game.ID}
				if err := tx.Where(model.Category{Slug: slug, GameID: game.ID}).FirstOrCreate(&cat).Error; err != nil {
					return fmt.Errorf("seed category %s/%s: %w", sg.Slug, slug, err)
				}
				categoryIDs[sg.Slug+"/"+slug] = cat.ID
			}
		}

		seller, err := seedDemoSeller(tx)
		if err != nil {
			return err
		}

		for _, it := range buildSeedItems() {
			catID, ok := categoryIDs[it.GameSlug+"/"+it.CategorySlug]
			if !ok {
				return fmt.Errorf("seed item %q references unknown category %s/%s", it.Title, it.GameSlug, it.CategorySlug)
			}
			price, err := decimal.NewFromString(it.Price)
			if err != nil {
				return fmt.Errorf("seed item %q: bad price %q", it.Title, it.Price)
			}
			item := model.Item{
				Title:       it.Title,
				Description: it.Description,
				Price:       price,
				SellerID:    seller.ID,
				CategoryID:  catID,
				Status:      model.ItemStatusActive,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("seed item %q: %w", it.Title, err)
			}
		}
		log.Printf("seeded %d games and demo items", len(games))
		return nil
	})
}

func shouldSeed(gdb *gorm.DB) (bool, error) {
	if strings.EqualFold(os.Getenv("FORCE_SEED"), "true") {
		return true, nil
	}
	var count int64
	if err := gdb.Model(&model.Game{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count games: %w", err)
	}
	return count == 0, nil
}

func seedDemoSeller(tx *gorm.DB) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("demo-seller-password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	seller := model.User{
		Username:     "demo_seller",
		Email:        "seller@example.com",
		PasswordHash: string(hash),
		IsSeller:     true,
	}
	if err := tx.Where(model.User{Username: seller.Username}).FirstOrCreate(&seller).Error; err != nil {
		return nil, fmt.Errorf("seed demo seller: %w", err)
	}
	return &seller, nil
}

func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

func buildSeedGames() []seedGame {
	return []seedGame{
		{Name: "Counter-Strike 2", Slug: "cs2", Categories: []string{"Skins", "Accounts", "Boosting"}},
		{Name: "Dota 2", Slug: "dota2", Categories: []string{"Items", "Accounts", "Coaching"}},
		{Name: "World of Warcraft", Slug: "wow", Categories: []string{"Gold", "Accounts", "Mounts"}},
		{Name: "Fortnite", Slug: "fortnite", Categories: []string{"Accounts", "V-Bucks"}},
	}
}

func buildSeedItems() []seedItem {
	return []seedItem{
		{Title: "AK-47 Redline, field-tested", Description: "Classic Redline skin, float 0.21.", Price: "19.99", GameSlug: "cs2", CategorySlug: "skins"},
		{Title: "Butterfly Knife Fade", Description: "Factory new fade, full pattern.", Price: "950.00", GameSlug: "cs2", CategorySlug: "skins"},
		{Title: "Immortal Pudge hook set", Description: "Scarlet Raiment of the Deep set.", Price: "34.50", GameSlug: "dota2", CategorySlug: "items"},
		{Title: "200k WoW gold, EU Silvermoon", Description: "Delivered by in-game trade within 2 hours.", Price: "12.00", GameSlug: "wow", CategorySlug: "gold"},
		{Title: "OG Fortnite account, 80+ skins", Description: "Season 2 account with Black Knight.", Price: "149.99", GameSlug: "fortnite", CategorySlug: "accounts"},
	}
}
