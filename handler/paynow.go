package handler

import (
	"errors"
	"strconv"

	"github.com/0mgABear/crowdwatch/constants"
	"github.com/0mgABear/crowdwatch/database"
	"github.com/0mgABear/crowdwatch/model"
	"github.com/0mgABear/crowdwatch/utils"

	"github.com/gofiber/fiber/v2"
)

// GetPayNowQR renders a dynamic PayNow QR PNG for an amount (and optional
// reference). The payee UEN and merchant identity come from the settings
// row; the payload itself is a pure deterministic encoding.
func GetPayNowQR(c *fiber.Ctx) error {
	amountStr := c.Query("amount")
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || amount <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, errors.New("amount must be > 0"))
	}
	ref := c.Query("ref")

	db := database.DB
	var setting model.Setting
	if err := db.First(&setting, 1).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if setting.PayNowUEN == "" {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, constants.PAYNOW_NOT_CONFIGURED, nil)
	}

	payload := utils.BuildPayNowPayload(utils.PayNowOptions{
		UEN:          setting.PayNowUEN,
		Amount:       utils.RoundMoney(amount),
		Ref:          ref,
		MerchantName: setting.MerchantName,
		MerchantCity: setting.MerchantCity,
	})

	png, err := utils.GenerateQRCode(payload, 512)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// GetPayNowPayload returns the raw payload string for clients that render
// their own QR.
func GetPayNowPayload(c *fiber.Ctx) error {
	amountStr := c.Query("amount")
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || amount <= 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, errors.New("amount must be > 0"))
	}
	ref := c.Query("ref")

	db := database.DB
	var setting model.Setting
	if err := db.First(&setting, 1).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if setting.PayNowUEN == "" {
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, constants.PAYNOW_NOT_CONFIGURED, nil)
	}

	payload := utils.BuildPayNowPayload(utils.PayNowOptions{
		UEN:          setting.PayNowUEN,
		Amount:       utils.RoundMoney(amount),
		Ref:          ref,
		MerchantName: setting.MerchantName,
		MerchantCity: setting.MerchantCity,
	})

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"payload": payload})
}
