package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"salonpos-backend/config"
	"salonpos-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// envelope mirrors the response shape every operation answers with.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// setupTest opens a fresh seeded database in a temp dir and returns a router
// with the handlers mounted directly, without the admin guard.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("POS_DATA_DIR", t.TempDir())
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, config.ConnectDB())
	t.Cleanup(config.Close)

	r := gin.New()
	r.POST("/auth/verify-pin", VerifyAdminPin)
	r.GET("/services", GetServices)
	r.GET("/services/category/:name", GetServicesByCategory)
	r.GET("/services/:id", GetService)
	r.POST("/services", CreateService)
	r.PUT("/services/:id", UpdateService)
	r.DELETE("/services/:id", DeleteService)
	r.GET("/categories", GetCategories)
	r.POST("/categories", CreateCategory)
	r.DELETE("/categories/:id", DeleteCategory)
	r.GET("/customers", GetCustomers)
	r.GET("/customers/search", SearchCustomers)
	r.GET("/customers/:id", GetCustomer)
	r.POST("/customers", CreateCustomer)
	r.PUT("/customers/:id", UpdateCustomer)
	r.DELETE("/customers/:id", DeleteCustomer)
	r.GET("/staff", GetStaff)
	r.POST("/staff", CreateStaff)
	r.PUT("/staff/:id", UpdateStaff)
	r.DELETE("/staff/:id", DeleteStaff)
	r.POST("/staff/:id/clock-in", ClockInStaff)
	r.GET("/staff/:id/clock-status", GetStaffClockStatus)
	r.POST("/time-logs/:id/clock-out", ClockOutStaff)
	r.POST("/bills", CreateBill)
	r.GET("/bills", GetBills)
	r.GET("/bills/:id", GetBill)
	r.POST("/reservations", CreateReservation)
	r.PUT("/reservations/:id", UpdateReservation)
	r.DELETE("/reservations/:id", CancelReservation)
	r.GET("/reports/daily", GetDailySummary)
	r.GET("/reports/daily-jobs", GetDailyJobs)
	r.GET("/reports/staff-daily", GetStaffDailyReport)
	r.GET("/reports/reservations", GetReservationsByDate)
	r.GET("/reports/staff-csv", ExportStaffCSV)
	r.GET("/settings", GetSettings)
	r.GET("/settings/:key", GetSetting)
	r.PUT("/settings/:key", SetSetting)
	return r
}

// newGuardedRouter mounts a mutation behind the admin token check, the way
// the real route table does.
func newGuardedRouter() *gin.Engine {
	r := gin.New()
	r.DELETE("/services/:id", utils.AdminAuthMiddleware(), DeleteService)
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decodeData(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}
