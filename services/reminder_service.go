// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"salonpos-backend/models"
	"salonpos-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService texts customers about tomorrow's reservations. It stays
// dormant unless Twilio credentials are configured in the environment.
type ReminderService struct {
	db      *gorm.DB
	client  *twilio.RestClient
	from    string
	enabled bool
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_PHONE_NUMBER")

	return &ReminderService{
		db:   db,
		from: from,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		enabled: accountSid != "" && authToken != "" && from != "",
	}
}

func (s *ReminderService) StartScheduler() {
	if !s.enabled {
		log.Println("Twilio not configured, reservation reminders disabled")
		return
	}

	c := cron.New()

	// Run every day at 6 PM for the next day's bookings
	c.AddFunc("0 18 * * *", s.SendReservationReminders)

	c.Start()
	log.Println("Reservation reminder scheduler started")
}

func (s *ReminderService) SendReservationReminders() {
	log.Println("Starting reservation reminder processing...")

	tomorrow := utils.BeginningOfDay(time.Now()).AddDate(0, 0, 1)

	var reservations []models.Reservation
	if err := s.db.
		Where("date(start_time) = ? AND status IN ? AND customer_phone <> ''",
			tomorrow.Format("2006-01-02"),
			[]string{models.ReservationScheduled, models.ReservationConfirmed}).
		Order("start_time").
		Find(&reservations).Error; err != nil {
		log.Printf("Failed to fetch reservations: %v", err)
		return
	}

	businessName := "our salon"
	var setting models.Setting
	if err := s.db.First(&setting, "key = ?", models.SettingBusinessName).Error; err == nil && setting.Value != "" {
		businessName = setting.Value
	}

	for _, res := range reservations {
		message := fmt.Sprintf("Hi %s, this is a reminder of your %s appointment at %s tomorrow at %s. See you then!",
			res.CustomerName, res.ServiceName, businessName, res.StartTime.Format("3:04 PM"))

		params := &twilioApi.CreateMessageParams{}
		params.SetTo(res.CustomerPhone)
		params.SetFrom(s.from)
		params.SetBody(message)

		resp, err := s.client.Api.CreateMessage(params)
		if err != nil {
			log.Printf("Failed to send reminder to %s: %v", res.CustomerPhone, err)
			continue
		}
		if resp.Sid != nil {
			log.Printf("Reminder sent to %s, SID: %s", res.CustomerPhone, *resp.Sid)
		} else {
			log.Printf("Reminder sent to %s, but no SID returned", res.CustomerPhone)
		}
	}

	log.Println("Reservation reminder processing completed")
}
