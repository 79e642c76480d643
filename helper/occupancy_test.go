package helper

import (
	"testing"
	"time"

	"github.com/0mgABear/crowdwatch/constants"
	"github.com/0mgABear/crowdwatch/model"

	"github.com/stretchr/testify/assert"
)

func TestTotalPeopleInside(t *testing.T) {
	now := time.Now()

	visits := []model.Visit{
		// Group clock only: counts full pax.
		{Pax: 3, Status: constants.VISIT_ACTIVE},
		// Split visit: 1 of 2 seats still active.
		{Pax: 2, Status: constants.VISIT_ACTIVE, Seats: []model.VisitSeat{
			{SeatNo: 1, EndTime: ts(now.Add(-time.Minute))},
			{SeatNo: 2, EndTime: ts(now.Add(time.Hour))},
		}},
		// Closed and draft visits never count.
		{Pax: 10, Status: constants.VISIT_CLOSED},
		{Pax: 5, Status: constants.VISIT_DRAFT},
	}

	assert.Equal(t, 4, TotalPeopleInside(visits, now))
}

func TestTotalPeopleInsideEmpty(t *testing.T) {
	assert.Equal(t, 0, TotalPeopleInside(nil, time.Now()))
}

func TestTotalPeopleInsideToleratesOpenSeats(t *testing.T) {
	now := time.Now()
	visits := []model.Visit{
		{Pax: 2, Status: constants.VISIT_ACTIVE, Seats: []model.VisitSeat{
			{SeatNo: 1, EndTime: nil},
			{SeatNo: 2, EndTime: ts(now.Add(-time.Hour))},
		}},
	}

	assert.Equal(t, 1, TotalPeopleInside(visits, now), "nil end_time counts, expired does not")
}
