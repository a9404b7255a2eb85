// Seed creates the initial admin account, an active payment config, and a
// small sample catalog. Safe to re-run: existing rows are left alone.
package main

import (
	"errors"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nabhon/smoif-shop/internal/config"
	"github.com/nabhon/smoif-shop/internal/database"
	"github.com/nabhon/smoif-shop/internal/models"
	"github.com/nabhon/smoif-shop/internal/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	if err := seedAdmin(db, cfg.SeedAdminUsername, cfg.SeedAdminPassword); err != nil {
		log.Fatalf("seeding admin failed: %v", err)
	}
	if err := seedPaymentConfig(db); err != nil {
		log.Fatalf("seeding payment config failed: %v", err)
	}
	if err := seedProducts(db); err != nil {
		log.Fatalf("seeding products failed: %v", err)
	}

	log.Println("Seeding complete")
}

func seedAdmin(db *gorm.DB, username, password string) error {
	var existing models.Admin
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		log.Printf("Admin %q already exists", username)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.Admin{Username: username, PasswordHash: passwordHash}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Admin created: %s", admin.Username)
	return nil
}

func seedPaymentConfig(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.PaymentConfig{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	paymentConfig := models.PaymentConfig{
		BankName:      "Test Bank",
		AccountName:   "Test Shop",
		AccountNumber: "123-456",
		IsActive:      true,
	}
	if err := db.Create(&paymentConfig).Error; err != nil {
		return err
	}

	log.Println("Payment config created")
	return nil
}

func seedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{
			Name:      "Classic T-Shirt",
			BasePrice: decimal.NewFromInt(299),
			IsActive:  true,
			Variants: []models.ProductVariant{
				{Price: decimal.NewFromInt(299), StockQuantity: 50, Combination: models.Combination{"color": "Red", "size": "S"}},
				{Price: decimal.NewFromInt(299), StockQuantity: 45, Combination: models.Combination{"color": "Red", "size": "M"}},
				{Price: decimal.NewFromInt(319), StockQuantity: 30, Combination: models.Combination{"color": "Blue", "size": "L"}},
			},
		},
		{
			Name:      "Cool Cap",
			BasePrice: decimal.NewFromInt(150),
			IsActive:  true,
			Variants: []models.ProductVariant{
				{Price: decimal.NewFromInt(150), StockQuantity: 20, Combination: models.Combination{"color": "Black"}},
				{Price: decimal.NewFromInt(150), StockQuantity: 15, Combination: models.Combination{"color": "White"}},
			},
		},
		{
			Name:      "Ceramic Mug",
			BasePrice: decimal.NewFromInt(120),
			IsActive:  true,
			Variants: []models.ProductVariant{
				{Price: decimal.NewFromInt(120), StockQuantity: 100, Combination: models.Combination{"style": "Standard"}},
			},
		},
	}

	for _, product := range products {
		if err := db.Create(&product).Error; err != nil {
			return err
		}
		log.Printf("Product created: %s with %d variants", product.Name, len(product.Variants))
	}

	return nil
}
