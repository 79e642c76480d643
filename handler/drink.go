package handler

import (
	"errors"

	"github.com/0mgABear/crowdwatch/constants"
	"github.com/0mgABear/crowdwatch/database"
	"github.com/0mgABear/crowdwatch/helper"
	"github.com/0mgABear/crowdwatch/model"
	"github.com/0mgABear/crowdwatch/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CollectDrink bumps the visit's drink counter, capped at pax. The guard and
// the increment are one conditional UPDATE, so two racing collectors both
// apply or the loser is rejected; the counter can never pass pax and never
// loses an increment.
func CollectDrink(c *fiber.Ctx) error {
	visitId := uint(c.Locals("inputId").(int))
	input := c.Locals("input").(model.CollectDrinkInput)

	db := database.DB

	result := db.Model(&model.Visit{}).
		Where("id = ? AND status = ? AND drinks_collected + ? <= pax",
			visitId, constants.VISIT_ACTIVE, input.Qty).
		Update("drinks_collected", gorm.Expr("drinks_collected + ?", input.Qty))
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}

	if result.RowsAffected == 0 {
		// Nothing changed; read the visit to say why.
		var visit model.Visit
		if err := db.First(&visit, visitId).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.VISIT_NOT_FOUND, err)
		}
		if visit.Status != constants.VISIT_ACTIVE {
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.VISIT_NOT_ACTIVE, errors.New("status "+visit.Status))
		}
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.OVER_LIMIT,
			errors.New("drinks collected would exceed pax"))
	}

	var visit model.Visit
	if err := db.First(&visit, visitId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	helper.PublishEvent(helper.EventDrinkChanged, visitId)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"visitId":         visitId,
		"drinksCollected": visit.DrinksCollected,
		"pax":             visit.Pax,
	})
}
