package database

import (
	"log"

	"github.com/0mgABear/crowdwatch/config"
	"github.com/0mgABear/crowdwatch/constants"
	"github.com/0mgABear/crowdwatch/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedData creates the settings row and the canonical price-list entries the
// visit engine looks up by name. Existing rows are left untouched.
func SeedData(db *gorm.DB) {
	password := config.ConfigDefault("ADMIN_PASSWORD", "changeme123")
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Println("failed to hash seed admin password:", err)
		return
	}

	setting := model.Setting{
		DTO:               model.DTO{ID: 1},
		AdminPasswordHash: string(bytes),
		PayNowUEN:         config.Config("PAYNOW_UEN"),
		MerchantName:      config.ConfigDefault("MERCHANT_NAME", "CrowdWatch"),
		MerchantCity:      config.ConfigDefault("MERCHANT_CITY", "Singapore"),
	}
	if err := db.Where(model.Setting{DTO: model.DTO{ID: 1}}).FirstOrCreate(&setting).Error; err != nil {
		log.Println("failed to seed settings:", err)
	}

	products := []model.Product{
		{Name: constants.PRODUCT_FIRST_HOUR, Price: 15, Active: true},
		{Name: constants.PRODUCT_SUBSEQUENT_HOUR, Price: 5, Active: true},
		{Name: constants.PRODUCT_EXTENSION_HOUR, Price: 5, Active: true},
		{Name: constants.PRODUCT_DRINK, Price: 2, Active: true},
	}
	for _, product := range products {
		if err := db.Where(model.Product{Name: product.Name}).FirstOrCreate(&product).Error; err != nil {
			log.Println("failed to seed product:", product.Name, "error:", err)
		}
	}
}
