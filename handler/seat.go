package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/0mgABear/crowdwatch/constants"
	"github.com/0mgABear/crowdwatch/database"
	"github.com/0mgABear/crowdwatch/helper"
	"github.com/0mgABear/crowdwatch/model"
	"github.com/0mgABear/crowdwatch/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// EndSeat checks out one person. A visit still on its group clock gets its
// seat rows materialized first (partial checkout is a partial operation), a
// single-pax visit skips straight to CLOSED. Ending the last active seat
// closes the visit in the same transaction.
func EndSeat(c *fiber.Ctx) error {
	visitId := uint(c.Locals("inputId").(int))
	input := c.Locals("input").(model.EndSeatInput)

	db := database.DB
	tx := db.Begin()

	var visit model.Visit
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&visit, visitId).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.VISIT_NOT_FOUND, err)
	}
	if visit.Status != constants.VISIT_ACTIVE {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.VISIT_NOT_ACTIVE, errors.New("status "+visit.Status))
	}
	if input.SeatNo < 1 || input.SeatNo > visit.Pax {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_SEAT,
			fmt.Errorf("seat %d out of range 1..%d", input.SeatNo, visit.Pax))
	}

	now := time.Now()
	closed := false

	if visit.Pax == 1 {
		// Last person of a party of one. An earlier extension may have
		// materialized the seat row; its clock stops with the visit.
		if err := tx.Model(&model.VisitSeat{}).
			Where("visit_id = ? AND (end_time IS NULL OR end_time > ?)", visit.ID, now).
			Update("end_time", now).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if err := tx.Model(&visit).Update("status", constants.VISIT_CLOSED).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		closed = true
	} else {
		seats, err := helper.MaterializeSeats(tx, visit, now)
		if err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}

		var target *model.VisitSeat
		for i := range seats {
			if seats[i].SeatNo == input.SeatNo {
				target = &seats[i]
				break
			}
		}
		if target == nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_SEAT,
				fmt.Errorf("seat %d not found", input.SeatNo))
		}
		if !helper.IsSeatActive(*target, now) {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.SEAT_ALREADY_ENDED, nil)
		}

		var locked model.VisitSeat
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&locked, target.ID).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.INVALID_SEAT, err)
		}
		// Ended seats keep their row with an expiry at checkout time; every
		// count and picker excludes them through the active filter.
		if err := tx.Model(&locked).Update("end_time", now).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}

		var remaining []model.VisitSeat
		if err := tx.Where("visit_id = ?", visit.ID).Find(&remaining).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if len(helper.ActiveSeats(remaining, now)) == 0 {
			if err := tx.Model(&visit).Update("status", constants.VISIT_CLOSED).Error; err != nil {
				tx.Rollback()
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
			}
			closed = true
		}
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	helper.PublishEvent(helper.EventSeatChanged, visit.ID)
	if closed {
		helper.PublishEvent(helper.EventVisitChanged, visit.ID)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"visitId":     visit.ID,
		"seatNo":      input.SeatNo,
		"visitClosed": closed,
	})
}
