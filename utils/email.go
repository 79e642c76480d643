package utils

import (
	"bytes"
	"html/template"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// DailyReportData feeds the takings report template.
type DailyReportData struct {
	Date         string
	CashTotal    float64
	PayNowTotal  float64
	GrandTotal   float64
	Groups       int64
	People       int64
	SalesCount   int64
	DrinksServed int64
}

// SendDailyReportEmail sends the takings summary to the venue inbox (async so
// the scheduler tick is never blocked on SMTP).
func SendDailyReportEmail(to string, data DailyReportData) {
	go func() {
		tmplPath := "templates/daily_report.html"
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			log.Printf("failed to load report template: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("failed to render report template: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		port, _ := strconv.Atoi(portStr)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Daily takings "+data.Date)
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("failed to send daily report: %v", err)
		}
	}()
}
