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
	"gorm.io/gorm/clause"
)

// ExtendSeats adds paid time to the selected seats of an ACTIVE visit and
// records the payment, all-or-nothing. Seat rows are materialized first if
// the visit has only a group clock, so extending 2 of 5 seats works on a
// never-split visit. Locking order is visit row then seat rows, so two
// overlapping extension requests serialize on the visit and can never
// double-extend or double-charge.
func ExtendSeats(c *fiber.Ctx) error {
	visitId := uint(c.Locals("inputId").(int))
	input := c.Locals("input").(model.ExtendSeatsInput)

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

	for _, seatNo := range input.SeatNos {
		if seatNo < 1 || seatNo > visit.Pax {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_SEAT,
				fmt.Errorf("seat %d out of range 1..%d", seatNo, visit.Pax))
		}
	}

	// Price is read inside the transaction; a catalog change applies to the
	// next call, never retroactively, and a missing entry aborts the whole
	// operation before anything is written.
	extensionHour, err := helper.GetActivePrice(tx, constants.PRODUCT_EXTENSION_HOUR)
	if err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, constants.PRICING_UNAVAILABLE, err)
	}

	now := time.Now()

	seats, err := helper.MaterializeSeats(tx, visit, now)
	if err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	seatByNo := make(map[int]model.VisitSeat, len(seats))
	for _, s := range seats {
		seatByNo[s.SeatNo] = s
	}

	for _, seatNo := range input.SeatNos {
		seat, ok := seatByNo[seatNo]
		if !ok {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_SEAT,
				fmt.Errorf("seat %d not found", seatNo))
		}

		var locked model.VisitSeat
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&locked, seat.ID).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.INVALID_SEAT, err)
		}

		newEnd := helper.ExtendedEndTime(locked.EndTime, now, input.AddHours)
		if err := tx.Model(&locked).Update("end_time", newEnd).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	amount := utils.RoundMoney(helper.ExtensionTotal(extensionHour, len(input.SeatNos), input.AddHours))

	payment := model.Payment{
		PublicCode: "PAY-" + uuid.New().String()[:8],
		VisitId:    &visit.ID,
		Amount:     amount,
		Method:     input.Method,
		PaidAt:     now,
	}
	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// Refresh the cached group clock so dashboard readers that only look at
	// the visit row stay consistent with the seat ledger.
	var refreshed []model.VisitSeat
	if err := tx.Where("visit_id = ?", visit.ID).Find(&refreshed).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	visit.Seats = refreshed
	if groupEnd := helper.GroupEndTime(visit, now); groupEnd != nil {
		if err := tx.Model(&model.Visit{}).Where("id = ?", visit.ID).
			Update("est_end_time", *groupEnd).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	helper.PublishEvent(helper.EventSeatChanged, visit.ID)
	go queue.PublishPaymentCollected(context.Background(), queue.PaymentCollectedEvent{
		PaymentCode: payment.PublicCode,
		VisitCode:   visit.PublicCode,
		Kind:        "EXTENSION",
		Amount:      payment.Amount,
		Method:      payment.Method,
		PaidAt:      payment.PaidAt.Format(time.RFC3339),
	})

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"visitId":  visit.ID,
		"seatNos":  input.SeatNos,
		"addHours": input.AddHours,
		"amount":   amount,
		"payment":  payment.PublicCode,
	})
}
