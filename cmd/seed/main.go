package main

import (
	"log"
	"os"
	"time"

	"kurazhelp-be/internal/model"
	"kurazhelp-be/pkg/textutil"
	"kurazhelp-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const welcomeContent = `# Welcome to KurazHelp

This is your first document. It supports **Markdown** formatting.

## Getting started

- Create documents from the sidebar
- Edits are saved as you type
- Ask the AI assistant for summaries, translations, or grammar fixes

Happy writing!`

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("🌱 Seeding demo data\n")

	seedDemoUser(db)

	color.Green("\n✅ Seed complete")
}

func seedDemoUser(db *gorm.DB) {
	color.Yellow("[1] Demo user")

	hash, err := bcrypt.GenerateFromPassword([]byte("Demo@1234"), bcrypt.DefaultCost)
	if err != nil {
		color.Red("Failed to hash password: %v", err)
		return
	}
	passwordHash := string(hash)

	user := model.User{
		Id:           uuid.New(),
		Email:        "demo@kurazhelp.com",
		PasswordHash: &passwordHash,
		FullName:     "Demo User",
		Status:       "active",
	}

	// Idempotent: re-running the seeder leaves an existing demo user alone
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&user)
	if res.Error != nil {
		color.Red("Failed to create demo user: %v", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		color.Green("Demo user already exists, skipping")
		return
	}
	color.Green("Created demo user: %s (password: Demo@1234)", user.Email)

	color.Yellow("\n[2] Welcome document")
	doc := model.Document{
		Id:         uuid.New(),
		Title:      "Welcome to KurazHelp",
		Content:    welcomeContent,
		WordCount:  textutil.WordCount(welcomeContent),
		UserId:     user.Id,
		LastEdited: time.Now(),
	}
	if err := db.Create(&doc).Error; err != nil {
		color.Red("Failed to create welcome document: %v", err)
		return
	}
	color.Green("Created welcome document (%d words)", doc.WordCount)

	color.Yellow("\n[3] Default preferences")
	pref := model.Preference{
		Id:          uuid.New(),
		UserId:      user.Id,
		Theme:       "dark",
		SidebarOpen: true,
	}
	if err := db.Create(&pref).Error; err != nil {
		color.Red("Failed to create preferences: %v", err)
		return
	}
	color.Green("Created default preferences (dark theme, sidebar open)")
}
