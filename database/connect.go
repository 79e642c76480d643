package database

import (
	"fmt"
	"strconv"

	"github.com/0mgABear/crowdwatch/config"
	"github.com/0mgABear/crowdwatch/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	p := config.ConfigDefault("DB_PORT", "5432")
	port, err := strconv.ParseUint(p, 10, 32)

	if err != nil {
		panic("failed to parse database port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		config.Config("DB_HOST"), port, config.Config("DB_USER"), config.Config("DB_PASSWORD"), config.Config("DB_NAME"))
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		panic("failed to connect database")
	}

	fmt.Println("Connection Opened to Database")
	DB.AutoMigrate(
		&model.Setting{},
		&model.Product{},
		&model.Visit{},
		&model.VisitSeat{},
		&model.Payment{},
		&model.Sale{},
		&model.SaleItem{},
	)
	fmt.Println("Database Migrated")

	SeedData(DB)
}
