package validate

import (
	"errors"

	"github.com/0mgABear/crowdwatch/constants"
	"github.com/0mgABear/crowdwatch/model"
	"github.com/0mgABear/crowdwatch/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateSale() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateSaleInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}

		if len(input.Items) == 0 && input.DonationAmount <= 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.EMPTY_SALE, errors.New("empty sale"))
		}

		c.Locals("input", input)
		return c.Next()
	}
}
