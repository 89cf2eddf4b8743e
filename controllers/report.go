// controllers/report.go
package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"salonpos-backend/config"
	"salonpos-backend/models"
	"salonpos-backend/utils"

	"github.com/gin-gonic/gin"
)

// DailySummary aggregates one calendar day of sales.
type DailySummary struct {
	TransactionCount int                    `json:"transaction_count"`
	TotalSales       float64                `json:"total_sales"`
	TotalDiscounts   float64                `json:"total_discounts"`
	AverageSale      float64                `json:"average_sale"`
	ByPaymentMethod  []PaymentMethodSummary `json:"by_payment_method" gorm:"-"`
	TopServices      []TopService           `json:"top_services" gorm:"-"`
}

type PaymentMethodSummary struct {
	PaymentMethod string  `json:"payment_method"`
	Count         int     `json:"count"`
	Total         float64 `json:"total"`
}

type TopService struct {
	ServiceName string  `json:"service_name"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

// DailyJob is one sold line item in the live job feed.
type DailyJob struct {
	ServiceName string  `json:"service_name"`
	Quantity    int     `json:"quantity"`
	StaffName   *string `json:"staff_name"`
	CreatedAt   string  `json:"created_at"`
	Category    string  `json:"category"`
}

// StaffPayment is a per-payment-method subtotal for one staff member.
type StaffPayment struct {
	Method    string  `json:"method"`
	Total     float64 `json:"total"`
	JobsCount int     `json:"jobs_count"`
}

// StaffDailyRow combines sales, payment and attendance figures for one
// staff member on one date. Staff with no activity appear zeroed.
type StaffDailyRow struct {
	StaffID      int            `json:"staff_id"`
	StaffName    string         `json:"staff_name"`
	Active       bool           `json:"active"`
	Role         string         `json:"role"`
	JobsCount    int            `json:"jobs_count"`
	TotalSales   float64        `json:"total_sales"`
	Payments     []StaffPayment `json:"payments"`
	FirstClockIn *time.Time     `json:"first_clock_in"`
	LastClockOut *time.Time     `json:"last_clock_out"`
	TotalMinutes float64        `json:"total_minutes"`
}

// ReservationRow is a reservation annotated with its staff member's name.
type ReservationRow struct {
	models.Reservation
	StaffName *string `json:"staff_name"`
}

func reportDate(c *gin.Context) (string, bool) {
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	if _, err := time.Parse("2006-01-02", date); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return "", false
	}
	return date, true
}

// GetDailySummary reports transaction counts, revenue, discounts, the
// payment-method breakdown and the top 10 services for one date.
func GetDailySummary(c *gin.Context) {
	date, ok := reportDate(c)
	if !ok {
		return
	}

	var summary DailySummary
	if err := config.DB.Raw(`
		SELECT
			COUNT(*) as transaction_count,
			COALESCE(SUM(total), 0) as total_sales,
			COALESCE(SUM(discount_amount), 0) as total_discounts,
			COALESCE(AVG(total), 0) as average_sale
		FROM bills
		WHERE date(created_at) = ?
	`, date).Scan(&summary).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build daily summary")
		return
	}

	if err := config.DB.Raw(`
		SELECT payment_method, COUNT(*) as count, SUM(total) as total
		FROM bills
		WHERE date(created_at) = ?
		GROUP BY payment_method
	`, date).Scan(&summary.ByPaymentMethod).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build payment breakdown")
		return
	}

	if err := config.DB.Raw(`
		SELECT bi.service_name, SUM(bi.quantity) as quantity, SUM(bi.price * bi.quantity) as revenue
		FROM bill_items bi
		JOIN bills b ON bi.bill_id = b.id
		WHERE date(b.created_at) = ?
		GROUP BY bi.service_id
		ORDER BY quantity DESC
		LIMIT 10
	`, date).Scan(&summary.TopServices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build top services")
		return
	}

	if summary.ByPaymentMethod == nil {
		summary.ByPaymentMethod = []PaymentMethodSummary{}
	}
	if summary.TopServices == nil {
		summary.TopServices = []TopService{}
	}

	utils.RespondWithData(c, http.StatusOK, summary)
}

// GetDailyJobs returns every line item sold on a date, newest first, each
// annotated with its service's current category.
func GetDailyJobs(c *gin.Context) {
	date, ok := reportDate(c)
	if !ok {
		return
	}

	jobs := []DailyJob{}
	if err := config.DB.Raw(`
		SELECT
			bi.service_name,
			bi.quantity,
			bi.staff_name,
			b.created_at,
			COALESCE(s.category, 'Uncategorized') as category
		FROM bill_items bi
		JOIN bills b ON bi.bill_id = b.id
		LEFT JOIN services s ON bi.service_id = s.id
		WHERE date(b.created_at) = ?
		ORDER BY b.created_at DESC, bi.id DESC
	`, date).Scan(&jobs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build job feed")
		return
	}

	utils.RespondWithData(c, http.StatusOK, jobs)
}

// staffDailyReport merges three independently grouped result sets, keyed by
// staff id: line-item sales, per-payment-method subtotals, and attendance.
// With useNow set, an open clock log counts up to the current instant.
func staffDailyReport(date string, useNow bool) ([]StaffDailyRow, error) {
	var staff []models.Staff
	if err := config.DB.Order("name").Find(&staff).Error; err != nil {
		return nil, err
	}

	type salesRow struct {
		StaffID    int
		JobsCount  int
		TotalSales float64
	}
	var sales []salesRow
	if err := config.DB.Raw(`
		SELECT bi.staff_id,
		       SUM(bi.quantity) as jobs_count,
		       SUM(bi.price * bi.quantity) as total_sales
		FROM bill_items bi
		JOIN bills b ON bi.bill_id = b.id
		WHERE date(b.created_at) = ? AND bi.staff_id IS NOT NULL
		GROUP BY bi.staff_id
	`, date).Scan(&sales).Error; err != nil {
		return nil, err
	}

	type paymentRow struct {
		StaffID       int
		PaymentMethod string
		Total         float64
		JobsCount     int
	}
	var payments []paymentRow
	if err := config.DB.Raw(`
		SELECT bi.staff_id, b.payment_method,
		       SUM(bi.price * bi.quantity) as total,
		       SUM(bi.quantity) as jobs_count
		FROM bill_items bi
		JOIN bills b ON bi.bill_id = b.id
		WHERE date(b.created_at) = ? AND bi.staff_id IS NOT NULL
		GROUP BY bi.staff_id, b.payment_method
		ORDER BY b.payment_method
	`, date).Scan(&payments).Error; err != nil {
		return nil, err
	}

	var timeLogs []models.StaffTimeLog
	if err := config.DB.Where("date(clock_in) = ?", date).Find(&timeLogs).Error; err != nil {
		return nil, err
	}

	salesMap := make(map[int]salesRow)
	for _, row := range sales {
		salesMap[row.StaffID] = row
	}

	paymentsMap := make(map[int][]StaffPayment)
	for _, row := range payments {
		paymentsMap[row.StaffID] = append(paymentsMap[row.StaffID], StaffPayment{
			Method:    row.PaymentMethod,
			Total:     row.Total,
			JobsCount: row.JobsCount,
		})
	}

	type attendance struct {
		firstClockIn *time.Time
		lastClockOut *time.Time
		totalMinutes float64
	}
	now := time.Now()
	timeMap := make(map[int]*attendance)
	for i := range timeLogs {
		entry := timeLogs[i]
		att := timeMap[entry.StaffID]
		if att == nil {
			att = &attendance{}
			timeMap[entry.StaffID] = att
		}
		if att.firstClockIn == nil || entry.ClockIn.Before(*att.firstClockIn) {
			t := entry.ClockIn
			att.firstClockIn = &t
		}
		switch {
		case entry.ClockOut != nil:
			if att.lastClockOut == nil || entry.ClockOut.After(*att.lastClockOut) {
				att.lastClockOut = entry.ClockOut
			}
			att.totalMinutes += entry.ClockOut.Sub(entry.ClockIn).Minutes()
		case useNow:
			// Open log: count up to the current instant when asked to.
			att.totalMinutes += now.Sub(entry.ClockIn).Minutes()
		}
	}

	report := make([]StaffDailyRow, 0, len(staff))
	for _, member := range staff {
		row := StaffDailyRow{
			StaffID:   member.ID,
			StaffName: member.Name,
			Active:    member.IsActive,
			Role:      member.Role,
			Payments:  []StaffPayment{},
		}
		if s, ok := salesMap[member.ID]; ok {
			row.JobsCount = s.JobsCount
			row.TotalSales = s.TotalSales
		}
		if p, ok := paymentsMap[member.ID]; ok {
			row.Payments = p
		}
		if att, ok := timeMap[member.ID]; ok {
			row.FirstClockIn = att.firstClockIn
			row.LastClockOut = att.lastClockOut
			row.TotalMinutes = att.totalMinutes
		}
		report = append(report, row)
	}

	return report, nil
}

// GetStaffDailyReport returns per-staff sales, payments and attendance for
// one date; use_now=true extends open clock logs to the current time.
func GetStaffDailyReport(c *gin.Context) {
	date, ok := reportDate(c)
	if !ok {
		return
	}
	useNow := c.DefaultQuery("use_now", "false") == "true"

	report, err := staffDailyReport(date, useNow)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build staff report")
		return
	}

	utils.RespondWithData(c, http.StatusOK, report)
}

func reservationsByDate(date string) ([]ReservationRow, error) {
	var reservations []models.Reservation
	if err := config.DB.
		Where("date(start_time) = ?", date).
		Order("start_time ASC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}

	staffNames := map[int]string{}
	var staff []models.Staff
	if err := config.DB.Find(&staff).Error; err != nil {
		return nil, err
	}
	for _, member := range staff {
		staffNames[member.ID] = member.Name
	}

	rows := make([]ReservationRow, 0, len(reservations))
	for _, res := range reservations {
		row := ReservationRow{Reservation: res}
		if res.StaffID != nil {
			if name, ok := staffNames[*res.StaffID]; ok {
				n := name
				row.StaffName = &n
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// GetReservationsByDate lists reservations starting on a calendar date,
// earliest first.
func GetReservationsByDate(c *gin.Context) {
	date, ok := reportDate(c)
	if !ok {
		return
	}

	rows, err := reservationsByDate(date)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reservations")
		return
	}

	utils.RespondWithData(c, http.StatusOK, rows)
}

const clockTimeLayout = "2006-01-02 15:04:05"

func formatClock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(clockTimeLayout)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ExportStaffCSV renders the staff daily report and the day's reservations
// as a two-section CSV download.
func ExportStaffCSV(c *gin.Context) {
	date, ok := reportDate(c)
	if !ok {
		return
	}

	report, err := staffDailyReport(date, false)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build staff report")
		return
	}
	reservations, err := reservationsByDate(date)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reservations")
		return
	}

	lines := []string{
		"Section,Staff,Clock In,Clock Out,Total Minutes,Jobs,Total Sales,Payments",
	}
	for _, row := range report {
		parts := make([]string, 0, len(row.Payments))
		for _, p := range row.Payments {
			parts = append(parts, fmt.Sprintf("%s:%s", p.Method, formatAmount(p.Total)))
		}
		lines = append(lines, strings.Join([]string{
			"STAFF_SUMMARY",
			utils.CSVEscape(row.StaffName),
			formatClock(row.FirstClockIn),
			formatClock(row.LastClockOut),
			formatAmount(row.TotalMinutes),
			strconv.Itoa(row.JobsCount),
			formatAmount(row.TotalSales),
			utils.CSVEscape(strings.Join(parts, " | ")),
		}, ","))
	}

	lines = append(lines,
		"",
		"Section,Start Time,End Time,Staff,Customer,Phone,Service,Status,Notes",
	)
	for _, res := range reservations {
		staffName := ""
		if res.StaffName != nil {
			staffName = *res.StaffName
		}
		notes := ""
		if res.Notes != nil {
			notes = *res.Notes
		}
		endTime := ""
		if res.EndTime != nil {
			endTime = res.EndTime.Format(clockTimeLayout)
		}
		lines = append(lines, strings.Join([]string{
			"RESERVATION",
			res.StartTime.Format(clockTimeLayout),
			endTime,
			utils.CSVEscape(staffName),
			utils.CSVEscape(res.CustomerName),
			utils.CSVEscape(res.CustomerPhone),
			utils.CSVEscape(res.ServiceName),
			utils.CSVEscape(res.Status),
			utils.CSVEscape(notes),
		}, ","))
	}

	csv := strings.Join(lines, "\n")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="staff-report-%s.csv"`, date))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}
