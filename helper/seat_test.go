package helper

import (
	"testing"
	"time"

	"github.com/0mgABear/crowdwatch/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(t time.Time) *time.Time { return &t }

func TestIsSeatActive(t *testing.T) {
	now := time.Now()

	assert.True(t, IsSeatActive(model.VisitSeat{EndTime: ts(now.Add(time.Minute))}, now))
	assert.False(t, IsSeatActive(model.VisitSeat{EndTime: ts(now.Add(-time.Minute))}, now))
	assert.False(t, IsSeatActive(model.VisitSeat{EndTime: ts(now)}, now), "expiry exactly now is not active")
	assert.True(t, IsSeatActive(model.VisitSeat{EndTime: nil}, now), "open seat with no expiry stays active")
}

func TestActiveSeatsOrdersBySeatNo(t *testing.T) {
	now := time.Now()
	seats := []model.VisitSeat{
		{SeatNo: 3, EndTime: ts(now.Add(time.Hour))},
		{SeatNo: 1, EndTime: ts(now.Add(time.Hour))},
		{SeatNo: 2, EndTime: ts(now.Add(-time.Hour))},
	}

	active := ActiveSeats(seats, now)
	require.Len(t, active, 2)
	assert.Equal(t, 1, active[0].SeatNo)
	assert.Equal(t, 3, active[1].SeatNo)
}

func TestPeopleRemaining(t *testing.T) {
	now := time.Now()

	noRows := model.Visit{Pax: 4}
	assert.Equal(t, 4, PeopleRemaining(noRows, now), "no seat rows falls back to pax")

	// pax=4 with seats 1,2 expired and 3,4 in the future.
	split := model.Visit{Pax: 4, Seats: []model.VisitSeat{
		{SeatNo: 1, EndTime: ts(now.Add(-time.Hour))},
		{SeatNo: 2, EndTime: ts(now.Add(-time.Minute))},
		{SeatNo: 3, EndTime: ts(now.Add(time.Minute))},
		{SeatNo: 4, EndTime: ts(now.Add(time.Hour))},
	}}
	assert.Equal(t, 2, PeopleRemaining(split, now))

	allEnded := model.Visit{Pax: 2, Seats: []model.VisitSeat{
		{SeatNo: 1, EndTime: ts(now.Add(-time.Hour))},
		{SeatNo: 2, EndTime: ts(now.Add(-time.Hour))},
	}}
	assert.Equal(t, 0, PeopleRemaining(allEnded, now), "rows exist but none active")
}

func TestGroupEndTime(t *testing.T) {
	now := time.Now()
	est := now.Add(2 * time.Hour)

	noRows := model.Visit{Pax: 3, EstEndTime: &est}
	require.NotNil(t, GroupEndTime(noRows, now))
	assert.Equal(t, est, *GroupEndTime(noRows, now))

	later := now.Add(3 * time.Hour)
	split := model.Visit{Pax: 3, EstEndTime: &est, Seats: []model.VisitSeat{
		{SeatNo: 1, EndTime: ts(now.Add(time.Hour))},
		{SeatNo: 2, EndTime: ts(later)},
		{SeatNo: 3, EndTime: ts(now.Add(-time.Hour))},
	}}
	require.NotNil(t, GroupEndTime(split, now))
	assert.Equal(t, later, *GroupEndTime(split, now), "latest active seat wins; expired seats ignored")

	allEnded := model.Visit{Pax: 2, EstEndTime: &est, Seats: []model.VisitSeat{
		{SeatNo: 1, EndTime: ts(now.Add(-time.Hour))},
	}}
	require.NotNil(t, GroupEndTime(allEnded, now))
	assert.Equal(t, est, *GroupEndTime(allEnded, now), "no active seats falls back to the estimate")
}

func TestBuildSeatRows(t *testing.T) {
	now := time.Now()
	est := now.Add(90 * time.Minute)

	visit := model.Visit{DTO: model.DTO{ID: 7}, Pax: 3, EstEndTime: &est}
	rows := BuildSeatRows(visit, now)

	require.Len(t, rows, 3)
	seen := map[int]bool{}
	for i, r := range rows {
		assert.Equal(t, uint(7), r.VisitId)
		assert.Equal(t, i+1, r.SeatNo)
		assert.False(t, seen[r.SeatNo], "seat numbers unique within the visit")
		seen[r.SeatNo] = true
		require.NotNil(t, r.EndTime)
		assert.Equal(t, est, *r.EndTime, "all rows inherit the group clock")
	}
}

func TestBuildSeatRowsFallbackWhenNoEstimate(t *testing.T) {
	now := time.Now()
	rows := BuildSeatRows(model.Visit{DTO: model.DTO{ID: 1}, Pax: 2}, now)

	require.Len(t, rows, 2)
	for _, r := range rows {
		require.NotNil(t, r.EndTime)
		assert.Equal(t, now.Add(time.Hour), *r.EndTime)
	}
}

func TestExtendedEndTimeAnchorsOnFutureExpiry(t *testing.T) {
	now := time.Now()
	current := now.Add(30 * time.Minute)

	got := ExtendedEndTime(&current, now, 2)
	assert.Equal(t, current.Add(2*time.Hour), got)
	assert.True(t, got.After(current), "extension strictly increases the expiry")
}

func TestExtendedEndTimeAnchorsOnNowForLapsedSeat(t *testing.T) {
	now := time.Now()
	stale := now.Add(-3 * time.Hour)

	got := ExtendedEndTime(&stale, now, 1)
	assert.Equal(t, now.Add(time.Hour), got, "lapsed seat buys time from the purchase moment")
}

func TestExtendedEndTimeNilCurrent(t *testing.T) {
	now := time.Now()
	assert.Equal(t, now.Add(4*time.Hour), ExtendedEndTime(nil, now, 4))
}
