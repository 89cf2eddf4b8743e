package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salonpos-backend/config"
	"salonpos-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportDay = time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)

func seedReportFixtures(t *testing.T) models.Staff {
	t.Helper()

	staff := models.Staff{Name: "Smith, Jr.", CommissionRate: 15, IsActive: true, Role: "staff"}
	require.NoError(t, config.DB.Create(&staff).Error)

	svc := models.Service{Name: "Deluxe Facial", Price: 40, Category: "Facial", IsActive: true}
	require.NoError(t, config.DB.Create(&svc).Error)

	bill := models.Bill{
		Subtotal:      40,
		Total:         40,
		PaymentMethod: "cash",
		PaymentStatus: "completed",
		CreatedAt:     reportDay,
		Items: []models.BillItem{{
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			Price:       svc.Price,
			Quantity:    1,
			StaffID:     &staff.ID,
			StaffName:   &staff.Name,
		}},
	}
	require.NoError(t, config.DB.Create(&bill).Error)

	clockIn := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	clockOut := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)
	log := models.StaffTimeLog{StaffID: staff.ID, ClockIn: clockIn, ClockOut: &clockOut}
	require.NoError(t, config.DB.Create(&log).Error)

	return staff
}

func findStaffRow(t *testing.T, rows []StaffDailyRow, staffID int) StaffDailyRow {
	t.Helper()
	for _, row := range rows {
		if row.StaffID == staffID {
			return row
		}
	}
	t.Fatalf("staff %d missing from report", staffID)
	return StaffDailyRow{}
}

func TestStaffDailyReportMergesSalesPaymentsAttendance(t *testing.T) {
	r := setupTest(t)
	staff := seedReportFixtures(t)

	_, env := doJSON(t, r, "GET", "/reports/staff-daily?date=2024-03-05", nil)
	require.True(t, env.Success)

	var rows []StaffDailyRow
	decodeData(t, env, &rows)

	row := findStaffRow(t, rows, staff.ID)
	assert.Equal(t, "Smith, Jr.", row.StaffName)
	assert.Equal(t, 1, row.JobsCount)
	assert.Equal(t, 40.0, row.TotalSales)
	require.Len(t, row.Payments, 1)
	assert.Equal(t, "cash", row.Payments[0].Method)
	assert.Equal(t, 40.0, row.Payments[0].Total)
	require.NotNil(t, row.FirstClockIn)
	require.NotNil(t, row.LastClockOut)
	assert.InDelta(t, 90.0, row.TotalMinutes, 0.01)

	// Seeded staff with no activity that day still appear, zeroed.
	for _, other := range rows {
		if other.StaffID == staff.ID {
			continue
		}
		assert.Zero(t, other.JobsCount)
		assert.Zero(t, other.TotalSales)
		assert.Empty(t, other.Payments)
	}
}

func TestStaffDailyReportOpenLogUseNow(t *testing.T) {
	r := setupTest(t)

	staff := models.Staff{Name: "Open Log", IsActive: true, Role: "staff"}
	require.NoError(t, config.DB.Create(&staff).Error)

	clockIn := time.Now().UTC().Add(-10 * time.Minute)
	log := models.StaffTimeLog{StaffID: staff.ID, ClockIn: clockIn}
	require.NoError(t, config.DB.Create(&log).Error)
	date := clockIn.Format("2006-01-02")

	_, env := doJSON(t, r, "GET", "/reports/staff-daily?date="+date, nil)
	var rows []StaffDailyRow
	decodeData(t, env, &rows)
	row := findStaffRow(t, rows, staff.ID)
	assert.Zero(t, row.TotalMinutes, "open logs are excluded by default")
	require.NotNil(t, row.FirstClockIn)
	assert.Nil(t, row.LastClockOut)

	_, env = doJSON(t, r, "GET", "/reports/staff-daily?date="+date+"&use_now=true", nil)
	decodeData(t, env, &rows)
	row = findStaffRow(t, rows, staff.ID)
	assert.Greater(t, row.TotalMinutes, 9.0, "use_now counts the open log up to the present")
}

func TestDailySummaryAggregates(t *testing.T) {
	r := setupTest(t)
	seedReportFixtures(t)

	// Second bill the same day, different payment method, with a discount.
	bill := models.Bill{
		Subtotal:       25,
		DiscountAmount: 5,
		Total:          20,
		PaymentMethod:  "card",
		PaymentStatus:  "completed",
		CreatedAt:      reportDay.Add(2 * time.Hour),
	}
	require.NoError(t, config.DB.Create(&bill).Error)

	_, env := doJSON(t, r, "GET", "/reports/daily?date=2024-03-05", nil)
	require.True(t, env.Success)

	var summary DailySummary
	decodeData(t, env, &summary)
	assert.Equal(t, 2, summary.TransactionCount)
	assert.Equal(t, 60.0, summary.TotalSales)
	assert.Equal(t, 5.0, summary.TotalDiscounts)
	assert.InDelta(t, 30.0, summary.AverageSale, 0.01)
	assert.Len(t, summary.ByPaymentMethod, 2)
	require.Len(t, summary.TopServices, 1)
	assert.Equal(t, "Deluxe Facial", summary.TopServices[0].ServiceName)
	assert.Equal(t, 40.0, summary.TopServices[0].Revenue)
}

func TestDailySummaryEmptyDay(t *testing.T) {
	r := setupTest(t)

	_, env := doJSON(t, r, "GET", "/reports/daily?date=2024-01-01", nil)
	require.True(t, env.Success)

	var summary DailySummary
	decodeData(t, env, &summary)
	assert.Zero(t, summary.TransactionCount)
	assert.Zero(t, summary.TotalSales)
	assert.NotNil(t, summary.ByPaymentMethod, "breakdown must be an empty list, not null")
	assert.NotNil(t, summary.TopServices)
}

func TestDailySummaryRejectsBadDate(t *testing.T) {
	r := setupTest(t)

	w, env := doJSON(t, r, "GET", "/reports/daily?date=03-05-2024", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
}

func TestDailyJobsAnnotatesCategory(t *testing.T) {
	r := setupTest(t)
	seedReportFixtures(t)

	_, env := doJSON(t, r, "GET", "/reports/daily-jobs?date=2024-03-05", nil)
	var jobs []DailyJob
	decodeData(t, env, &jobs)

	require.Len(t, jobs, 1)
	assert.Equal(t, "Deluxe Facial", jobs[0].ServiceName)
	assert.Equal(t, "Facial", jobs[0].Category)
	require.NotNil(t, jobs[0].StaffName)
	assert.Equal(t, "Smith, Jr.", *jobs[0].StaffName)
}

func TestExportStaffCSVQuoting(t *testing.T) {
	r := setupTest(t)
	staff := seedReportFixtures(t)

	notes := `She said "around noon"`
	res := models.Reservation{
		CustomerName:  "Ann, Annie",
		CustomerPhone: "5552223333",
		StaffID:       &staff.ID,
		ServiceName:   "Deluxe Facial",
		Notes:         &notes,
		Status:        models.ReservationScheduled,
		StartTime:     time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC),
	}
	require.NoError(t, config.DB.Create(&res).Error)

	req, err := http.NewRequest("GET", "/reports/staff-csv?date=2024-03-05", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Section,Staff,Clock In,Clock Out,Total Minutes,Jobs,Total Sales,Payments")
	assert.Contains(t, body, "Section,Start Time,End Time,Staff,Customer,Phone,Service,Status,Notes")
	assert.Contains(t, body, `"Smith, Jr."`, "names with commas are quoted")
	assert.Contains(t, body, `"Ann, Annie"`)
	assert.Contains(t, body, `"She said ""around noon"""`, "embedded quotes are doubled")
	assert.Contains(t, body, "cash:40")
	assert.Contains(t, body, "2024-03-05 09:00:00")
	assert.Contains(t, body, "attachment", "served as a download")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "staff-report-2024-03-05.csv")
}
