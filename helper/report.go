package helper

import (
	"log"
	"time"

	"github.com/0mgABear/crowdwatch/config"
	"github.com/0mgABear/crowdwatch/constants"
	"github.com/0mgABear/crowdwatch/database"
	"github.com/0mgABear/crowdwatch/model"
	"github.com/0mgABear/crowdwatch/utils"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

type Totals struct {
	Cash   float64 `json:"cash"`
	PayNow float64 `json:"paynow"`
	Groups int64   `json:"groups"`
	People int64   `json:"people"`
}

// ComputeTotals sums visit payments and counter sales inside the window,
// split by method, plus the groups/people that paid in it.
func ComputeTotals(db *gorm.DB, start, end time.Time) (Totals, error) {
	var totals Totals

	var payments []model.Payment
	if err := db.
		Where("paid_at >= ? AND paid_at < ?", start, end).
		Find(&payments).Error; err != nil {
		return totals, err
	}

	visitIds := map[uint]bool{}
	for _, p := range payments {
		switch p.Method {
		case constants.METHOD_CASH:
			totals.Cash += p.Amount
		case constants.METHOD_PAYNOW:
			totals.PayNow += p.Amount
		}
		if p.VisitId != nil {
			visitIds[*p.VisitId] = true
		}
	}

	var sales []model.Sale
	if err := db.
		Where("paid_at >= ? AND paid_at < ?", start, end).
		Find(&sales).Error; err != nil {
		return totals, err
	}
	for _, s := range sales {
		switch s.Method {
		case constants.METHOD_CASH:
			totals.Cash += s.Amount
		case constants.METHOD_PAYNOW:
			totals.PayNow += s.Amount
		}
	}

	if len(visitIds) > 0 {
		ids := make([]uint, 0, len(visitIds))
		for id := range visitIds {
			ids = append(ids, id)
		}
		var visits []model.Visit
		if err := db.Where("id IN ?", ids).Find(&visits).Error; err != nil {
			return totals, err
		}
		totals.Groups = int64(len(visits))
		for _, v := range visits {
			totals.People += int64(v.Pax)
		}
	}

	totals.Cash = utils.RoundMoney(totals.Cash)
	totals.PayNow = utils.RoundMoney(totals.PayNow)
	return totals, nil
}

// DrinksServed sums the drinks of visits that checked in during the window.
// There is no per-drink row, so a drink counts on its visit's start day; a
// visit straddling midnight attributes all drinks to the day it began.
func DrinksServed(db *gorm.DB, start, end time.Time) (int64, error) {
	var drinks int64
	err := db.Model(&model.Visit{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Select("COALESCE(SUM(drinks_collected), 0)").Scan(&drinks).Error
	return drinks, err
}

// DayWindow returns the local-day [start, end) bounds containing t.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

var reportScheduler gocron.Scheduler

// StartDailyReportScheduler emails yesterday's takings at 00:05 local time.
// Skipped entirely when no report inbox is configured.
func StartDailyReportScheduler() {
	to := config.Config("REPORT_EMAIL")
	if to == "" {
		log.Println("REPORT_EMAIL not set, daily report disabled")
		return
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(time.Local))
	if err != nil {
		log.Printf("failed to create report scheduler: %v", err)
		return
	}
	reportScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(func() { sendDailyReport(to) }),
	)
	if err != nil {
		log.Printf("failed to schedule daily report: %v", err)
		return
	}

	s.Start()
	log.Println("Daily report scheduler started (00:05 local)")
}

func sendDailyReport(to string) {
	db := database.DB
	yesterday := time.Now().AddDate(0, 0, -1)
	start, end := DayWindow(yesterday)

	totals, err := ComputeTotals(db, start, end)
	if err != nil {
		log.Printf("failed to compute daily totals: %v", err)
		return
	}

	var salesCount int64
	db.Model(&model.Sale{}).Where("paid_at >= ? AND paid_at < ?", start, end).Count(&salesCount)

	drinksServed, err := DrinksServed(db, start, end)
	if err != nil {
		log.Printf("failed to compute drinks served: %v", err)
		return
	}

	utils.SendDailyReportEmail(to, utils.DailyReportData{
		Date:         start.Format("2006-01-02"),
		CashTotal:    totals.Cash,
		PayNowTotal:  totals.PayNow,
		GrandTotal:   utils.RoundMoney(totals.Cash + totals.PayNow),
		Groups:       totals.Groups,
		People:       totals.People,
		SalesCount:   salesCount,
		DrinksServed: drinksServed,
	})
}

func StopDailyReportScheduler() {
	if reportScheduler != nil {
		_ = reportScheduler.Shutdown()
		log.Println("Daily report scheduler stopped")
	}
}
