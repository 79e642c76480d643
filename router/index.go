package router

import (
	"github.com/0mgABear/crowdwatch/handler"
	"github.com/0mgABear/crowdwatch/middleware"
	"github.com/0mgABear/crowdwatch/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	visit := v1.Group("/visit", logger.New())
	visit.Get("/", handler.GetVisits)
	visit.Post("/", validate.CreateVisit(), handler.CreateVisit)
	visit.Get("/:visitId", validate.GetById("visitId"), handler.GetVisitById)
	visit.Post("/:visitId/start", validate.GetById("visitId"), validate.StartVisit(), handler.StartVisit)
	visit.Post("/:visitId/extend", validate.GetById("visitId"), validate.ExtendSeats(), handler.ExtendSeats)
	visit.Post("/:visitId/drink", validate.GetById("visitId"), validate.CollectDrink(), handler.CollectDrink)
	visit.Post("/:visitId/seat/end", validate.GetById("visitId"), validate.EndSeat(), handler.EndSeat)
	visit.Post("/:visitId/end", validate.GetById("visitId"), handler.EndVisit)
	visit.Delete("/:visitId", validate.GetById("visitId"), handler.AbandonDraft)

	sale := v1.Group("/sale", logger.New())
	sale.Post("/", validate.CreateSale(), handler.CreateSale)

	payment := v1.Group("/payment", logger.New())
	payment.Get("/", middleware.AdminProtected(), handler.GetPayments)

	totals := v1.Group("/totals", logger.New())
	totals.Get("/today", handler.GetTodayTotals)
	totals.Get("/occupancy", handler.GetOccupancy)

	paynow := v1.Group("/paynow", logger.New())
	paynow.Get("/qr", handler.GetPayNowQR)
	paynow.Get("/payload", handler.GetPayNowPayload)

	product := v1.Group("/product", logger.New())
	product.Get("/", handler.GetProducts)
	product.Post("/", middleware.AdminProtected(), validate.CreateProduct(), handler.CreateProduct)
	product.Put("/", middleware.AdminProtected(), validate.UpdateProducts(), handler.UpdateProducts)
	product.Delete("/:productId", middleware.AdminProtected(), validate.GetById("productId"), handler.DeleteProduct)
	product.Post("/upload-signature", middleware.AdminProtected(), handler.GenerateSignature)

	admin := v1.Group("/admin", logger.New())
	admin.Post("/login", handler.AdminLogin)
	admin.Post("/logout", handler.AdminLogout)
	admin.Get("/me", middleware.OptionalAdmin(), handler.AdminMe)
	admin.Post("/password", middleware.AdminProtected(), handler.AdminChangePassword)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/dashboard", websocket.New(handler.DashboardWebsocket))
}
