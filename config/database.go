package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"salonpos-backend/models"
	"salonpos-backend/utils"

	"github.com/glebarez/sqlite"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

var DB *gorm.DB

var (
	mu             sync.Mutex
	dataDir        string
	dbPath         string
	checkpointCron *cron.Cron
	closed         bool
)

// DataDir returns the directory holding the database file and side files
// (action log, default backups).
func DataDir() string {
	return dataDir
}

func DBPath() string {
	return dbPath
}

// ConnectDB opens (or creates) the embedded database under POS_DATA_DIR,
// applies schema migration and seeds default data. A failure here is fatal
// to startup; the caller decides how loudly to die.
func ConnectDB() error {
	dir := os.Getenv("POS_DATA_DIR")
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return openAt(dir, filepath.Join(dir, "pos.db"))
}

func openAt(dir, path string) error {
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := migrate(db); err != nil {
		return err
	}
	if err := seedDefaultData(db); err != nil {
		return err
	}

	mu.Lock()
	DB = db
	dataDir = dir
	dbPath = path
	closed = false
	mu.Unlock()

	log.Printf("Database initialized at: %s", path)
	return nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Service{},
		&models.Category{},
		&models.Customer{},
		&models.Staff{},
		&models.Bill{},
		&models.BillItem{},
		&models.StaffTimeLog{},
		&models.Reservation{},
		&models.Setting{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	// Columns added after initial release; safe to run on every startup.
	if err := EnsureColumn(db, "services", "show_on_home", "INTEGER NOT NULL DEFAULT 0"); err != nil {
		return err
	}
	if err := EnsureColumn(db, "staff", "photo_path", "TEXT"); err != nil {
		return err
	}

	// Legacy data fixup: early builds seeded "Other" at the end of the list.
	return db.Exec("UPDATE categories SET display_order = 7 WHERE name = 'Other' AND display_order = 99").Error
}

// EnsureColumn adds a column to a table if it is not already present.
// Idempotent; table and column names come from code, never from input.
func EnsureColumn(db *gorm.DB, table, column, definition string) error {
	var cols []struct {
		Name string `gorm:"column:name"`
	}
	if err := db.Raw(fmt.Sprintf("PRAGMA table_info(%s)", table)).Scan(&cols).Error; err != nil {
		return fmt.Errorf("inspect %s: %w", table, err)
	}
	for _, col := range cols {
		if col.Name == column {
			return nil
		}
	}
	if err := db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition)).Error; err != nil {
		return fmt.Errorf("add column %s.%s: %w", table, column, err)
	}
	return nil
}

// seedDefaultData populates each table on first run. Every table has its own
// emptiness check so a partially seeded database never reseeds what exists.
func seedDefaultData(db *gorm.DB) error {
	var count int64

	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		categories := []models.Category{
			{Name: "HOME", DisplayOrder: 0, IsActive: true},
			{Name: "Hair", DisplayOrder: 1, IsActive: true},
			{Name: "Facial", DisplayOrder: 2, IsActive: true},
			{Name: "Makeup", DisplayOrder: 3, IsActive: true},
			{Name: "Waxing", DisplayOrder: 4, IsActive: true},
			{Name: "Other", DisplayOrder: 5, IsActive: true},
		}
		if err := db.Create(&categories).Error; err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
	}

	if err := db.Model(&models.Service{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		type seedService struct {
			name     string
			price    float64
			category string
		}
		defaults := []seedService{
			{"Haircut - Women", 50, "Hair"},
			{"Haircut - Men", 30, "Hair"},
			{"Hair Color", 80, "Hair"},
			{"Highlights", 120, "Hair"},
			{"Blowout", 40, "Hair"},
			{"Facial - Basic", 60, "Facial"},
			{"Facial - Deep Clean", 85, "Facial"},
			{"Makeup - Basic", 50, "Makeup"},
			{"Makeup - Bridal", 150, "Makeup"},
			{"Eyebrow Wax", 15, "Waxing"},
			{"Lip Wax", 10, "Waxing"},
			{"Full Leg Wax", 60, "Waxing"},
		}
		for _, s := range defaults {
			svc := models.Service{Name: s.name, Price: s.price, Category: s.category, IsActive: true}
			if err := db.Create(&svc).Error; err != nil {
				return fmt.Errorf("seed services: %w", err)
			}
		}
	}

	if err := db.Model(&models.Staff{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		adminPin, err := utils.HashPin("12345")
		if err != nil {
			return fmt.Errorf("hash default pin: %w", err)
		}
		staff := []models.Staff{
			{Name: "Admin", CommissionRate: 0, Role: "admin", Pin: &adminPin, IsActive: true},
			{Name: "Staff 1", CommissionRate: 10, Role: "staff", IsActive: true},
			{Name: "Staff 2", CommissionRate: 10, Role: "staff", IsActive: true},
		}
		if err := db.Create(&staff).Error; err != nil {
			return fmt.Errorf("seed staff: %w", err)
		}
	}

	if err := db.Model(&models.Setting{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		adminPin, err := utils.HashPin("12345")
		if err != nil {
			return fmt.Errorf("hash default pin: %w", err)
		}
		settings := []models.Setting{
			{Key: models.SettingBusinessName, Value: "VanisBeauty"},
			{Key: models.SettingAdminPin, Value: adminPin},
			{Key: models.SettingCurrencySymbol, Value: "$"},
			{Key: models.SettingTaxRate, Value: "0"},
		}
		if err := db.Create(&settings).Error; err != nil {
			return fmt.Errorf("seed settings: %w", err)
		}
	}

	return nil
}

// StartCheckpointSchedule flushes the WAL into the main database file every
// 30 seconds, replacing the old whole-image autosave. Failures are logged,
// never fatal; the next checkpoint or clean shutdown picks the data up.
func StartCheckpointSchedule() {
	mu.Lock()
	defer mu.Unlock()
	if checkpointCron != nil {
		return
	}
	c := cron.New(cron.WithSeconds())
	c.AddFunc("*/30 * * * * *", func() {
		if err := Checkpoint(); err != nil {
			log.Printf("Database checkpoint error: %v", err)
		}
	})
	c.Start()
	checkpointCron = c
}

func Checkpoint() error {
	if DB == nil {
		return nil
	}
	return DB.Exec("PRAGMA wal_checkpoint(TRUNCATE)").Error
}

// Backup writes a full, self-contained snapshot to destPath, independent of
// the live file and its WAL.
func Backup(destPath string) error {
	if DB == nil {
		return fmt.Errorf("database not open")
	}
	if err := Checkpoint(); err != nil {
		return err
	}
	return DB.Exec("VACUUM INTO ?", destPath).Error
}

// Restore swaps the live database file with a backup. The previous live file
// is kept as a .temp copy until the swapped-in database opens cleanly, so a
// bad backup rolls back instead of bricking the terminal.
func Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); err != nil {
		return fmt.Errorf("backup file: %w", err)
	}

	dir, live := dataDir, dbPath
	Close()

	temp := live + ".temp"
	if err := copyFile(live, temp); err != nil {
		return fmt.Errorf("preserve current database: %w", err)
	}

	if err := copyFile(backupPath, live); err != nil {
		copyFile(temp, live)
		os.Remove(temp)
		openAt(dir, live)
		return fmt.Errorf("copy backup: %w", err)
	}

	if err := openAt(dir, live); err != nil {
		copyFile(temp, live)
		os.Remove(temp)
		openAt(dir, live)
		return fmt.Errorf("open restored database: %w", err)
	}

	os.Remove(temp)
	return nil
}

// Close stops the checkpoint schedule, performs a final checkpoint and
// releases the connection. Safe to call more than once.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if checkpointCron != nil {
		checkpointCron.Stop()
		checkpointCron = nil
	}
	if closed || DB == nil {
		return
	}
	if err := DB.Exec("PRAGMA wal_checkpoint(TRUNCATE)").Error; err != nil {
		log.Printf("Final checkpoint error: %v", err)
	}
	if sqlDB, err := DB.DB(); err == nil {
		sqlDB.Close()
	}
	closed = true
	log.Println("Database connection closed")
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
