package database

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"waypoint/models"
	courseModels "waypoint/models/course"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance, constructed once at startup.
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	RunMigrations(db)

	Database = DbInstance{Db: db}
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Role{},
		&models.ProfileRole{},
		&models.AuditEvent{},
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Lesson{},
		&courseModels.Enrollment{},
		&courseModels.LessonProgress{},
		&courseModels.CheckIn{},
		&courseModels.Checkpoint{},
		&courseModels.CheckpointProgress{},
		&courseModels.Capstone{},
		&courseModels.CapstoneSchedule{},
		&courseModels.Certificate{},
		&courseModels.LiveSession{},
		&courseModels.Attendance{},
		&courseModels.Quiz{},
		&courseModels.QuizAttempt{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	seedRoles(db)

	log.Println("Migrations completed successfully.")
}

// seedRoles inserts the fixed role rows if they are missing.
func seedRoles(db *gorm.DB) {
	defaults := []models.Role{
		{Slug: "admin", Name: "Administrator"},
		{Slug: "instructor", Name: "Instructor"},
		{Slug: "student", Name: "Student", IsDefault: true},
		{Slug: "applicant", Name: "Applicant"},
	}
	for _, role := range defaults {
		var existing models.Role
		if err := db.Where("slug = ?", role.Slug).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := db.Create(&role).Error; err != nil {
				log.Printf("Failed to seed role %s: %v", role.Slug, err)
			}
		}
	}
}
