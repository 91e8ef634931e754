// Package main seeds a demo account with a funded balance and active
// pix keys, for local development.
package main

import (
	"log"

	"pixvault/internal/config"
	"pixvault/internal/models"
	"pixvault/internal/repositories"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	email := config.GetEnv("SEED_EMAIL", "demo@pixvault.dev")
	password := config.GetEnv("SEED_PASSWORD", "demo-password")

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if sqlDB, err := repositories.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Printf("Failed to close database connection: %v", err)
			}
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("Failed to close Redis connection: %v", err)
			}
		}
	}()

	var existing models.User
	if err := repositories.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Println("Demo user already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	balance := decimal.NewFromInt(1000)
	account := models.Account{Name: "Demo Account", Balance: balance}
	if err := repositories.DB.Create(&account).Error; err != nil {
		log.Fatalf("Failed to create account: %v", err)
	}

	if err := repositories.DB.Create(&models.LedgerEntry{
		AccountID:     account.ID,
		Type:          models.LedgerTypeDeposit,
		Amount:        balance,
		BalanceBefore: decimal.Zero,
		BalanceAfter:  balance,
		Description:   "Initial balance",
	}).Error; err != nil {
		log.Fatalf("Failed to create initial ledger entry: %v", err)
	}

	user := models.User{
		Name:      "Demo User",
		Email:     email,
		Password:  string(hashed),
		AccountID: account.ID,
	}
	if err := repositories.DB.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	keys := []models.PixKey{
		{AccountID: account.ID, KeyType: models.PixKeyTypeEmail, KeyValue: email, Status: models.PixKeyStatusActive},
		{AccountID: account.ID, KeyType: models.PixKeyTypePhone, KeyValue: "11987654321", Status: models.PixKeyStatusActive},
	}
	for i := range keys {
		if err := repositories.DB.Create(&keys[i]).Error; err != nil {
			log.Fatalf("Failed to create pix key: %v", err)
		}
	}

	log.Printf("Seeded demo account %s for %s with balance %s", account.ID, email, balance.StringFixed(2))
}
