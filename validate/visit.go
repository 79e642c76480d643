package validate

import (
	"github.com/0mgABear/crowdwatch/constants"
	"github.com/0mgABear/crowdwatch/model"
	"github.com/0mgABear/crowdwatch/utils"

	"github.com/gofiber/fiber/v2"
)

func CreateVisit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateVisitInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func StartVisit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.StartVisitInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func ExtendSeats() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ExtendSeatsInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}

		// Reject duplicate seat numbers up front; the transaction assumes a set.
		seen := make(map[int]bool, len(input.SeatNos))
		for _, n := range input.SeatNos {
			if seen[n] {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_SEAT, nil)
			}
			seen[n] = true
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func CollectDrink() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := model.CollectDrinkInput{Qty: 1}
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&input); err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
			}
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}

func EndSeat() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.EndSeatInput
		if err := c.BodyParser(&input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}

		c.Locals("input", input)
		return c.Next()
	}
}
