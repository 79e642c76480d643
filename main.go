package main

import (
	"log"

	"github.com/0mgABear/crowdwatch/config"
	"github.com/0mgABear/crowdwatch/database"
	"github.com/0mgABear/crowdwatch/handler"
	"github.com/0mgABear/crowdwatch/helper"
	"github.com/0mgABear/crowdwatch/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigDefault("CORS_ORIGIN", "http://localhost:3000"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()

	helper.StartDraftCleanupScheduler()
	defer helper.StopDraftCleanupScheduler()
	helper.StartDailyReportScheduler()
	defer helper.StopDailyReportScheduler()
	handler.StartDashboardFeed()

	router.SetupRoutes(app)
	log.Fatal(app.Listen(":" + config.ConfigDefault("PORT", "8002")))
}
