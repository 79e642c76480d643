package handler

import (
	"github.com/0mgABear/crowdwatch/constants"
	"github.com/0mgABear/crowdwatch/database"
	"github.com/0mgABear/crowdwatch/model"
	"github.com/0mgABear/crowdwatch/utils"

	"github.com/gofiber/fiber/v2"
)

// GetPayments lists the append-only payment trail, newest first. Audit view
// for the admin page; supports limit/page query params.
func GetPayments(c *fiber.Ctx) error {
	db := database.DB

	pagination := model.Pagination{
		Limit: utils.Ptr(c.QueryInt("limit", 50)),
		Page:  utils.Ptr(c.QueryInt("page", 1)),
	}

	var totalCount int64
	if err := db.Model(&model.Payment{}).Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var payments []model.Payment
	query := db.Order("paid_at DESC")
	query = utils.ApplyPagination(query, pagination.Limit, pagination.Page)
	if err := query.Find(&payments).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       payments,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: totalCount,
	})
}
