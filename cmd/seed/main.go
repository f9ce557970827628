package main

import (
	"log"
	"os"
	"time"

	"ai-medassist-be/internal/model"
	"ai-medassist-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding starter clinical corpus...")

	// Starter corpus for local development; ingesting through the API adds
	// to it, this never replaces existing rows.
	documents := []model.Document{
		{
			Title:   "Type 2 Diabetes Overview",
			Content: "Type 2 diabetes mellitus is a chronic metabolic disorder characterized by insulin resistance and relative insulin deficiency. First-line management includes lifestyle modification and metformin. Target HbA1c for most adults is below 7 percent.",
			Source:  "Starter Corpus",
		},
		{
			Title:   "Hypertension Management Guidelines",
			Content: "Hypertension is defined as sustained blood pressure at or above 130/80 mmHg. Initial therapy options include thiazide diuretics, ACE inhibitors, angiotensin receptor blockers, and calcium channel blockers. Lifestyle measures include sodium restriction and regular aerobic exercise.",
			Source:  "Starter Corpus",
		},
		{
			Title:   "Community-Acquired Pneumonia",
			Content: "Community-acquired pneumonia presents with fever, productive cough, and dyspnea. Outpatient treatment for previously healthy adults is amoxicillin or doxycycline. Severity assessment uses the CURB-65 score to guide admission decisions.",
			Source:  "Starter Corpus",
		},
	}

	seeded := 0
	for _, doc := range documents {
		var count int64
		db.Model(&model.Document{}).Where("title = ?", doc.Title).Count(&count)
		if count > 0 {
			color.Yellow("  skip: %s (already present)", doc.Title)
			continue
		}

		doc.CreatedAt = time.Now()
		if err := db.Create(&doc).Error; err != nil {
			color.Red("  fail: %s: %v", doc.Title, err)
			continue
		}
		color.Green("  ok:   %s (id=%d)", doc.Title, doc.Id)
		seeded++
	}

	color.Cyan("Done. %d document(s) seeded.", seeded)
}
