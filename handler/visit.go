package handler

import (
	"context"
	"errors"
	"time"

	"github.com/0mgABear/crowdwatch/constants"
	"github.com/0mgABear/crowdwatch/database"
	"github.com/0mgABear/crowdwatch/helper"
	"github.com/0mgABear/crowdwatch/model"
	"github.com/0mgABear/crowdwatch/queue"
	"github.com/0mgABear/crowdwatch/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateVisit opens a DRAFT: no payment, no seats, no clock yet. The party
// size is fixed here and never changes afterwards.
func CreateVisit(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateVisitInput)
	db := database.DB

	visit := model.Visit{
		PublicCode: "VIS-" + uuid.New().String()[:8],
		Name:       input.Name,
		Pax:        input.Pax,
		Status:     constants.VISIT_DRAFT,
	}
	if err := db.Create(&visit).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	helper.PublishEvent(helper.EventVisitChanged, visit.ID)
	return utils.SuccessResponse(c, fiber.StatusCreated, visit)
}

// StartVisit takes a DRAFT to ACTIVE: prices the block, records the payment
// and stamps the group clock in one transaction. Either all of it commits or
// the visit stays an unpaid draft.
func StartVisit(c *fiber.Ctx) error {
	visitId := uint(c.Locals("inputId").(int))
	input := c.Locals("input").(model.StartVisitInput)

	db := database.DB
	tx := db.Begin()

	var visit model.Visit
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&visit, visitId).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.VISIT_NOT_FOUND, err)
	}
	if visit.Status != constants.VISIT_DRAFT {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.VISIT_NOT_DRAFT, errors.New("status "+visit.Status))
	}

	firstHour, err := helper.GetActivePrice(tx, constants.PRODUCT_FIRST_HOUR)
	if err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, constants.PRICING_UNAVAILABLE, err)
	}
	subsequentHour, err := helper.GetActivePrice(tx, constants.PRODUCT_SUBSEQUENT_HOUR)
	if err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, constants.PRICING_UNAVAILABLE, err)
	}

	amount := utils.RoundMoney(helper.CheckinTotal(firstHour, subsequentHour, input.Hours, visit.Pax))

	buffer := constants.DEFAULT_BUFFER_MINUTES
	if input.BufferMinutes != nil {
		buffer = *input.BufferMinutes
	}
	now := time.Now()
	estEnd := now.Add(time.Duration(input.Hours)*time.Hour + time.Duration(buffer)*time.Minute)

	if err := tx.Model(&visit).Updates(map[string]any{
		"status":       constants.VISIT_ACTIVE,
		"est_end_time": estEnd,
	}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

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

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	helper.PublishEvent(helper.EventVisitChanged, visit.ID)
	go queue.PublishPaymentCollected(context.Background(), queue.PaymentCollectedEvent{
		PaymentCode: payment.PublicCode,
		VisitCode:   visit.PublicCode,
		Kind:        "CHECKIN",
		Amount:      payment.Amount,
		Method:      payment.Method,
		PaidAt:      payment.PaidAt.Format(time.RFC3339),
	})

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"visitId":    visit.ID,
		"status":     constants.VISIT_ACTIVE,
		"amount":     amount,
		"estEndTime": estEnd,
		"payment":    payment.PublicCode,
	})
}

// AbandonDraft removes an unpaid draft. Anything past DRAFT is refused.
func AbandonDraft(c *fiber.Ctx) error {
	visitId := uint(c.Locals("inputId").(int))

	db := database.DB
	tx := db.Begin()

	var visit model.Visit
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&visit, visitId).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.VISIT_NOT_FOUND, err)
	}
	if visit.Status != constants.VISIT_DRAFT {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.VISIT_NOT_DRAFT, errors.New("status "+visit.Status))
	}

	if err := tx.Delete(&visit).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	helper.PublishEvent(helper.EventVisitChanged, visitId)
	return utils.SuccessResponse(c, fiber.StatusOK, "Draft removed")
}

// EndVisit is the manual group checkout: ACTIVE goes to CLOSED regardless of
// remaining time. CLOSED is terminal.
func EndVisit(c *fiber.Ctx) error {
	visitId := uint(c.Locals("inputId").(int))

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

	if err := tx.Model(&visit).Update("status", constants.VISIT_CLOSED).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	helper.PublishEvent(helper.EventVisitChanged, visit.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, "Visit closed")
}

// GetVisits returns the live dashboard: ACTIVE visits with seats, plus the
// derived people-left and group clock per visit.
func GetVisits(c *fiber.Ctx) error {
	db := database.DB

	visits, err := helper.LoadActiveVisits(db)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	now := time.Now()
	views := make([]model.VisitView, 0, len(visits))
	for _, v := range visits {
		views = append(views, model.VisitView{
			Visit:        v,
			PeopleLeft:   helper.PeopleRemaining(v, now),
			GroupEndTime: helper.GroupEndTime(v, now),
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"visits":            views,
		"totalPeopleInside": helper.TotalPeopleInside(visits, now),
	})
}

// GetVisitById returns one visit with seats and payments, any status.
func GetVisitById(c *fiber.Ctx) error {
	visitId := uint(c.Locals("inputId").(int))
	db := database.DB

	var visit model.Visit
	err := db.
		Preload("Seats", func(q *gorm.DB) *gorm.DB { return q.Order("seat_no") }).
		Preload("Payments").
		First(&visit, visitId).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.VISIT_NOT_FOUND, err)
	}

	now := time.Now()
	return utils.SuccessResponse(c, fiber.StatusOK, model.VisitView{
		Visit:        visit,
		PeopleLeft:   helper.PeopleRemaining(visit, now),
		GroupEndTime: helper.GroupEndTime(visit, now),
	})
}
