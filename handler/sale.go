package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/0mgABear/crowdwatch/constants"
	"github.com/0mgABear/crowdwatch/database"
	"github.com/0mgABear/crowdwatch/helper"
	"github.com/0mgABear/crowdwatch/model"
	"github.com/0mgABear/crowdwatch/queue"
	"github.com/0mgABear/crowdwatch/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateSale records a standalone counter sale: product line items priced
// from the catalog (never from the client) plus an optional donation amount.
func CreateSale(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateSaleInput)

	db := database.DB
	tx := db.Begin()

	// Server-side prices, active products only.
	priceById := map[uint]float64{}
	for _, line := range input.Items {
		if _, seen := priceById[line.ProductId]; seen {
			continue
		}
		var product model.Product
		if err := tx.First(&product, line.ProductId).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_PRODUCT,
				fmt.Errorf("product %d not found", line.ProductId))
		}
		if !product.Active {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_PRODUCT,
				fmt.Errorf("product %d inactive", line.ProductId))
		}
		priceById[line.ProductId] = product.Price
	}

	itemsTotal := 0.0
	for _, line := range input.Items {
		itemsTotal += float64(line.Qty) * priceById[line.ProductId]
	}
	total := utils.RoundMoney(itemsTotal + input.DonationAmount)
	if total <= 0 {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.EMPTY_SALE, errors.New("total must be > 0"))
	}

	now := time.Now()
	sale := model.Sale{
		PublicCode: "SALE-" + uuid.New().String()[:8],
		Amount:     total,
		Method:     input.Method,
		PaidAt:     now,
	}
	if err := tx.Create(&sale).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if len(input.Items) > 0 {
		items := make([]model.SaleItem, 0, len(input.Items))
		for _, line := range input.Items {
			items = append(items, model.SaleItem{
				SaleId:    sale.ID,
				ProductId: line.ProductId,
				Qty:       line.Qty,
				UnitPrice: priceById[line.ProductId],
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	helper.PublishEvent(helper.EventSaleCreated, 0)
	go queue.PublishPaymentCollected(context.Background(), queue.PaymentCollectedEvent{
		PaymentCode: sale.PublicCode,
		Kind:        "SALE",
		Amount:      sale.Amount,
		Method:      sale.Method,
		PaidAt:      sale.PaidAt.Format(time.RFC3339),
	})

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"saleId": sale.ID,
		"total":  total,
	})
}
