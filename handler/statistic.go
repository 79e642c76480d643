package handler

import (
	"time"

	"github.com/0mgABear/crowdwatch/constants"
	"github.com/0mgABear/crowdwatch/database"
	"github.com/0mgABear/crowdwatch/helper"
	"github.com/0mgABear/crowdwatch/utils"

	"github.com/gofiber/fiber/v2"
)

// GetTodayTotals returns today's takings split by method, the groups and
// people that paid today, and the revenue change against yesterday.
func GetTodayTotals(c *fiber.Ctx) error {
	db := database.DB

	now := time.Now()
	start, end := helper.DayWindow(now)
	totals, err := helper.ComputeTotals(db, start, end)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	prevStart, prevEnd := helper.DayWindow(now.AddDate(0, 0, -1))
	previous, err := helper.ComputeTotals(db, prevStart, prevEnd)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"totals": totals,
		"growth": utils.RoundMoney(utils.CalculateGrowth(
			totals.Cash+totals.PayNow, previous.Cash+previous.PayNow)),
	})
}

// GetOccupancy reports how many people are currently inside, derived from
// active visits on every call. A visit whose seats fail to load still counts
// as its full pax so the dashboard degrades instead of failing.
func GetOccupancy(c *fiber.Ctx) error {
	db := database.DB

	now := time.Now()
	visits, err := helper.LoadActiveVisits(db)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"totalPeopleInside": helper.TotalPeopleInside(visits, now),
		"activeGroups":      len(visits),
		"asOf":              now,
	})
}
