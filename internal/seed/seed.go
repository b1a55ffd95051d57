// Package seed provides the demo fixtures the chat API boots with and
// helpers to load them into a database when a durable driver is configured.
package seed

import (
	"fmt"
	"log"
	"time"

	"thaichat/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultThemeID is the theme active on a fresh store.
const DefaultThemeID int64 = 1

func strptr(s string) *string { return &s }

func mustHash(password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("seed: hash password: %v", err))
	}
	return string(hashed)
}

// Users returns the demo user fixtures. Passwords are hashed here so the
// documented demo credentials (panida / 12345qazAZ) keep working.
func Users() []models.User {
	now := time.Now().UTC()
	return []models.User{
		{
			ID:           18581680,
			Username:     "panida",
			Email:        "panida@gmail.com",
			Password:     mustHash("12345qazAZ"),
			FirstName:    "Panida",
			LastName:     "ใสใจ",
			Avatar:       "https://api.dicebear.com/7.x/avataaars/svg?seed=panida",
			Bio:          strptr("รักการเขียนโปรแกรม และการสร้างแอปแชท"),
			Location:     strptr("กรุงเทพฯ"),
			Website:      strptr("https://github.com/panida"),
			DateOfBirth:  strptr("1995-05-15"),
			IsOnline:     true,
			LastActivity: now,
			CreatedAt:    time.Date(2025, 7, 22, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:           71157855,
			Username:     "kuyyy",
			Email:        "kuy@gmail.com",
			Password:     mustHash("12345qazAZ"),
			FirstName:    "Kuy",
			LastName:     "Kuy",
			Avatar:       "https://api.dicebear.com/7.x/avataaars/svg?seed=kuy",
			Bio:          strptr("Hello world! 👋 ชื่อจริงของผมคือ กุย"),
			Location:     strptr("เชียงใหม่"),
			Website:      strptr("https://github.com/kuyyy"),
			DateOfBirth:  strptr("1992-10-10"),
			IsOnline:     true,
			LastActivity: now,
			CreatedAt:    time.Date(2025, 7, 23, 3, 9, 13, 0, time.UTC),
		},
		{
			ID:           12345678,
			Username:     "admin",
			Email:        "admin@thaichat.com",
			Password:     mustHash("admin123"),
			FirstName:    "Admin",
			LastName:     "System",
			Avatar:       "https://api.dicebear.com/7.x/avataaars/svg?seed=admin",
			Bio:          strptr("ผู้ดูแลระบบแชทไทย"),
			Location:     strptr("กรุงเทพฯ"),
			Website:      strptr("https://thaichat.com"),
			DateOfBirth:  strptr("1990-01-01"),
			IsOnline:     true,
			LastActivity: now,
			CreatedAt:    time.Date(2025, 7, 22, 10, 0, 0, 0, time.UTC),
		},
	}
}

// Messages returns the demo message fixtures in chronological order.
func Messages() []models.Message {
	return []models.Message{
		{
			ID:        1,
			Content:   "สวัสดีครับ ยินดีต้อนรับสู่ห้องแชท!",
			Username:  "Panida ใสใจ",
			UserID:    18581680,
			CreatedAt: time.Date(2025, 7, 22, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:        2,
			Content:   "สวัสดีครับ ผมชื่อ Kuy",
			Username:  "kuyyy",
			UserID:    71157855,
			CreatedAt: time.Date(2025, 7, 23, 3, 10, 0, 0, time.UTC),
		},
		{
			ID:        3,
			Content:   "แอปนี้ทำงานได้ดีมากเลย!",
			Username:  "Panida ใสใจ",
			UserID:    18581680,
			CreatedAt: time.Date(2025, 7, 23, 3, 15, 0, 0, time.UTC),
		},
	}
}

// Themes returns the static theme catalog.
func Themes() []models.Theme {
	return []models.Theme{
		{
			ID:                     1,
			Name:                   "Classic Blue",
			PrimaryColor:           "#3b82f6",
			SecondaryColor:         "#1e40af",
			BackgroundColor:        "#ffffff",
			MessageBackgroundSelf:  "#3b82f6",
			MessageBackgroundOther: "#f1f5f9",
			TextColor:              "#1e293b",
		},
		{
			ID:                     2,
			Name:                   "Sunset Orange",
			PrimaryColor:           "#f97316",
			SecondaryColor:         "#ea580c",
			BackgroundColor:        "#ffffff",
			MessageBackgroundSelf:  "#f97316",
			MessageBackgroundOther: "#fed7aa",
			TextColor:              "#9a3412",
		},
		{
			ID:                     3,
			Name:                   "Forest Green",
			PrimaryColor:           "#059669",
			SecondaryColor:         "#047857",
			BackgroundColor:        "#ffffff",
			MessageBackgroundSelf:  "#059669",
			MessageBackgroundOther: "#bbf7d0",
			TextColor:              "#064e3b",
		},
		{
			ID:                     4,
			Name:                   "Purple Dreams",
			PrimaryColor:           "#9333ea",
			SecondaryColor:         "#7c3aed",
			BackgroundColor:        "#ffffff",
			MessageBackgroundSelf:  "#9333ea",
			MessageBackgroundOther: "#e9d5ff",
			TextColor:              "#581c87",
		},
	}
}

// Database populates a gorm-backed database with the demo fixtures.
// The theme catalog is always ensured; users and messages are only created
// when their tables are empty, unless clean is set.
func Database(db *gorm.DB, clean bool) error {
	log.Println("Seeding database...")

	if clean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}
	}

	if err := EnsureThemes(db); err != nil {
		return fmt.Errorf("failed to seed themes: %w", err)
	}

	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		users := Users()
		if err := db.Create(&users).Error; err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}
		log.Printf("Seeded %d users", len(users))
	}

	var messageCount int64
	if err := db.Model(&models.Message{}).Count(&messageCount).Error; err != nil {
		return err
	}
	if messageCount == 0 {
		messages := Messages()
		if err := db.Create(&messages).Error; err != nil {
			return fmt.Errorf("failed to seed messages: %w", err)
		}
		log.Printf("Seeded %d messages", len(messages))
	}

	log.Println("Database seeding completed")
	return nil
}

// EnsureThemes upserts the static theme catalog and the active-theme
// pointer so theme rows exist even on databases seeded by older builds.
func EnsureThemes(db *gorm.DB) error {
	for _, theme := range Themes() {
		if err := db.Where(models.Theme{ID: theme.ID}).FirstOrCreate(&theme).Error; err != nil {
			return err
		}
	}

	setting := models.Setting{
		Key:   models.ActiveThemeKey,
		Value: fmt.Sprintf("%d", DefaultThemeID),
	}
	return db.Where(models.Setting{Key: models.ActiveThemeKey}).FirstOrCreate(&setting).Error
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")

	// Delete in dependency order.
	for _, table := range []string{"messages", "users", "settings", "themes"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
