package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/0mgABear/crowdwatch/constants"
	"github.com/0mgABear/crowdwatch/database"
	"github.com/0mgABear/crowdwatch/model"
	"github.com/0mgABear/crowdwatch/validate"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupVisitApp wires the visit routes against a throwaway database so the
// handlers run their real transactions end to end.
func setupVisitApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Visit{}, &model.VisitSeat{}, &model.Payment{}, &model.Product{}))
	require.NoError(t, db.Create(&model.Product{Name: constants.PRODUCT_EXTENSION_HOUR, Price: 5, Active: true}).Error)
	database.DB = db

	app := fiber.New()
	app.Post("/visit/:visitId/extend", validate.GetById("visitId"), validate.ExtendSeats(), ExtendSeats)
	app.Post("/visit/:visitId/seat/end", validate.GetById("visitId"), validate.EndSeat(), EndSeat)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestExtendSeatsExtendsAndCharges(t *testing.T) {
	app := setupVisitApp(t)

	est := time.Now().Add(time.Hour).Truncate(time.Second)
	visit := model.Visit{PublicCode: "VIS-ext00001", Name: "Ng", Pax: 4, Status: constants.VISIT_ACTIVE, EstEndTime: &est}
	require.NoError(t, database.DB.Create(&visit).Error)

	resp := postJSON(t, app, fmt.Sprintf("/visit/%d/extend", visit.ID), fiber.Map{
		"seatNos":  []int{1, 3},
		"addHours": 2,
		"method":   constants.METHOD_CASH,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var seats []model.VisitSeat
	require.NoError(t, database.DB.Where("visit_id = ?", visit.ID).Order("seat_no").Find(&seats).Error)
	require.Len(t, seats, 4)
	require.NotNil(t, seats[0].EndTime)
	assert.WithinDuration(t, est.Add(2*time.Hour), *seats[0].EndTime, 2*time.Second)
	require.NotNil(t, seats[1].EndTime)
	assert.WithinDuration(t, est, *seats[1].EndTime, 2*time.Second)
	require.NotNil(t, seats[2].EndTime)
	assert.WithinDuration(t, est.Add(2*time.Hour), *seats[2].EndTime, 2*time.Second)

	// 2 seats x 2 hours x $5, recorded once.
	var payments []model.Payment
	require.NoError(t, database.DB.Where("visit_id = ?", visit.ID).Find(&payments).Error)
	require.Len(t, payments, 1)
	assert.Equal(t, 20.0, payments[0].Amount)
	assert.Equal(t, constants.METHOD_CASH, payments[0].Method)

	// The cached group clock follows the furthest extended seat.
	var refreshed model.Visit
	require.NoError(t, database.DB.First(&refreshed, visit.ID).Error)
	require.NotNil(t, refreshed.EstEndTime)
	assert.WithinDuration(t, est.Add(2*time.Hour), *refreshed.EstEndTime, 2*time.Second)
}

func TestExtendSeatsRollsBackWhenPaymentFails(t *testing.T) {
	app := setupVisitApp(t)

	est := time.Now().Add(time.Hour).Truncate(time.Second)
	visit := model.Visit{PublicCode: "VIS-ext00002", Name: "Koh", Pax: 3, Status: constants.VISIT_ACTIVE, EstEndTime: &est}
	require.NoError(t, database.DB.Create(&visit).Error)

	// Make the payment insert fail so the whole transaction must unwind.
	require.NoError(t, database.DB.Migrator().DropTable(&model.Payment{}))

	resp := postJSON(t, app, fmt.Sprintf("/visit/%d/extend", visit.ID), fiber.Map{
		"seatNos":  []int{1, 2},
		"addHours": 3,
		"method":   constants.METHOD_PAYNOW,
	})
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	// Seats were materialized and extended inside the transaction; none of it
	// may survive the failed charge.
	var count int64
	require.NoError(t, database.DB.Model(&model.VisitSeat{}).Where("visit_id = ?", visit.ID).Count(&count).Error)
	assert.Zero(t, count)

	var refreshed model.Visit
	require.NoError(t, database.DB.First(&refreshed, visit.ID).Error)
	assert.Equal(t, constants.VISIT_ACTIVE, refreshed.Status)
	require.NotNil(t, refreshed.EstEndTime)
	assert.WithinDuration(t, est, *refreshed.EstEndTime, time.Second)
}

func TestExtendSeatsRejectsClosedVisit(t *testing.T) {
	app := setupVisitApp(t)

	visit := model.Visit{PublicCode: "VIS-ext00003", Name: "Teo", Pax: 2, Status: constants.VISIT_CLOSED}
	require.NoError(t, database.DB.Create(&visit).Error)

	resp := postJSON(t, app, fmt.Sprintf("/visit/%d/extend", visit.ID), fiber.Map{
		"seatNos":  []int{1},
		"addHours": 1,
		"method":   constants.METHOD_CASH,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var count int64
	require.NoError(t, database.DB.Model(&model.Payment{}).Count(&count).Error)
	assert.Zero(t, count)
}
