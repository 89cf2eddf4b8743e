package routes

import (
	"salonpos-backend/config"
	"salonpos-backend/controllers"
	"salonpos-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	r.POST("/auth/verify-pin", controllers.VerifyAdminPin)

	api := r.Group("/api")
	{
		admin := utils.AdminAuthMiddleware()

		// Service routes
		services := api.Group("/services")
		{
			services.GET("", controllers.GetServices)
			services.GET("/category/:name", controllers.GetServicesByCategory)
			services.GET("/:id", controllers.GetService)
			services.POST("", admin, controllers.CreateService)
			services.PUT("/:id", admin, controllers.UpdateService)
			services.DELETE("/:id", admin, controllers.DeleteService)
		}

		// Category routes
		categories := api.Group("/categories")
		{
			categories.GET("", controllers.GetCategories)
			categories.POST("", admin, controllers.CreateCategory)
			categories.DELETE("/:id", admin, controllers.DeleteCategory)
		}

		// Customer routes
		customers := api.Group("/customers")
		{
			customers.GET("", controllers.GetCustomers)
			customers.GET("/search", controllers.SearchCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.POST("", controllers.CreateCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", admin, controllers.DeleteCustomer)
		}

		// Staff routes
		staff := api.Group("/staff")
		{
			staff.GET("", controllers.GetStaff)
			staff.GET("/:id", controllers.GetStaffMember)
			staff.GET("/:id/clock-status", controllers.GetStaffClockStatus)
			staff.POST("/:id/clock-in", controllers.ClockInStaff)
			staff.POST("", admin, controllers.CreateStaff)
			staff.PUT("/:id", admin, controllers.UpdateStaff)
			staff.DELETE("/:id", admin, controllers.DeleteStaff)
		}
		api.POST("/time-logs/:id/clock-out", controllers.ClockOutStaff)

		// Bill routes
		bills := api.Group("/bills")
		{
			bills.POST("", controllers.CreateBill)
			bills.GET("", controllers.GetBills)
			bills.GET("/:id", controllers.GetBill)
		}

		// Reservation routes
		reservations := api.Group("/reservations")
		{
			reservations.POST("", controllers.CreateReservation)
			reservations.PUT("/:id", controllers.UpdateReservation)
			reservations.DELETE("/:id", controllers.CancelReservation)
		}

		// Report routes
		reports := api.Group("/reports")
		{
			reports.GET("/daily", controllers.GetDailySummary)
			reports.GET("/daily-jobs", controllers.GetDailyJobs)
			reports.GET("/staff-daily", controllers.GetStaffDailyReport)
			reports.GET("/reservations", controllers.GetReservationsByDate)
			reports.GET("/staff-csv", controllers.ExportStaffCSV)
		}

		// Settings routes
		settings := api.Group("/settings")
		{
			settings.GET("", controllers.GetSettings)
			settings.GET("/:key", controllers.GetSetting)
			settings.PUT("/:key", admin, controllers.SetSetting)
		}

		// Database maintenance routes
		database := api.Group("/database", admin)
		{
			database.POST("/backup", controllers.BackupDatabase)
			database.POST("/restore", controllers.RestoreDatabase)
		}
	}

	return r
}
