package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/0mgABear/crowdwatch/constants"
	"github.com/0mgABear/crowdwatch/database"
	"github.com/0mgABear/crowdwatch/helper"
	"github.com/0mgABear/crowdwatch/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndSeatClosesSinglePaxWithMaterializedSeat(t *testing.T) {
	app := setupVisitApp(t)

	est := time.Now().Add(time.Hour).Truncate(time.Second)
	visit := model.Visit{PublicCode: "VIS-solo0001", Name: "Ong", Pax: 1, Status: constants.VISIT_ACTIVE, EstEndTime: &est}
	require.NoError(t, database.DB.Create(&visit).Error)

	// An extension already split this party of one into the seat ledger.
	future := time.Now().Add(3 * time.Hour)
	require.NoError(t, database.DB.Create(&model.VisitSeat{VisitId: visit.ID, SeatNo: 1, EndTime: &future}).Error)

	resp := postJSON(t, app, fmt.Sprintf("/visit/%d/seat/end", visit.ID), fiber.Map{"seatNo": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Closing the visit must stop the seat clock too, or the closed visit
	// would still report one person inside.
	var refreshed model.Visit
	require.NoError(t, database.DB.Preload("Seats").First(&refreshed, visit.ID).Error)
	assert.Equal(t, constants.VISIT_CLOSED, refreshed.Status)
	require.Len(t, refreshed.Seats, 1)
	require.NotNil(t, refreshed.Seats[0].EndTime)
	assert.False(t, refreshed.Seats[0].EndTime.After(time.Now()))
	assert.Zero(t, helper.PeopleRemaining(refreshed, time.Now()))
}

func TestEndSeatLastActiveSeatClosesVisit(t *testing.T) {
	app := setupVisitApp(t)

	est := time.Now().Add(time.Hour).Truncate(time.Second)
	visit := model.Visit{PublicCode: "VIS-last0001", Name: "Chua", Pax: 2, Status: constants.VISIT_ACTIVE, EstEndTime: &est}
	require.NoError(t, database.DB.Create(&visit).Error)

	resp := postJSON(t, app, fmt.Sprintf("/visit/%d/seat/end", visit.ID), fiber.Map{"seatNo": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var mid model.Visit
	require.NoError(t, database.DB.First(&mid, visit.ID).Error)
	assert.Equal(t, constants.VISIT_ACTIVE, mid.Status)

	resp = postJSON(t, app, fmt.Sprintf("/visit/%d/seat/end", visit.ID), fiber.Map{"seatNo": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var closed model.Visit
	require.NoError(t, database.DB.First(&closed, visit.ID).Error)
	assert.Equal(t, constants.VISIT_CLOSED, closed.Status)
}
