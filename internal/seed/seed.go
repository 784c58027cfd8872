// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"tapcard/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	ShouldClean bool
	// SkipBcrypt stores a fixed placeholder hash instead of hashing each
	// password. Hashing dominates seeding time for large NumUsers.
	SkipBcrypt bool
	// MaxDays spreads generated timestamps over this many days back.
	MaxDays int
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users...", opts.NumUsers)

	// Clear existing data to avoid conflicts if requested
	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db, opts)

	users := make([]models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, *user)
	}
	log.Printf("✓ %d test users created", len(users))

	links, items, jobs := 0, 0, 0
	for i := range users {
		n, err := f.CreateProfileContent(&users[i])
		if err != nil {
			return fmt.Errorf("failed to create profile content: %w", err)
		}
		links += n.SocialLinks
		items += n.PortfolioItems
		jobs += n.WorkExperiences
	}
	log.Printf("✓ %d social links, %d portfolio items, %d work experiences created", links, items, jobs)

	circles, err := f.CreateCircleMesh(users)
	if err != nil {
		return fmt.Errorf("failed to create circle mesh: %w", err)
	}
	log.Printf("✓ %d circle rows created", circles)

	events, err := f.CreateAnalyticsHistory(users)
	if err != nil {
		return fmt.Errorf("failed to create analytics history: %w", err)
	}
	log.Printf("✓ %d analytics events created", events)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	// Delete in dependency order. Raw deletes: soft-delete hooks would keep
	// rows around and trip the unique indexes on the next run.
	tables := []string{"analytics", "circles", "qr_codes", "work_experience", "portfolio_items", "social_links", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

// pastTime picks a random moment within the last maxDays days.
func pastTime(r *rand.Rand, maxDays int) time.Time {
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := r.Intn(maxDays)
	hoursBack := r.Intn(24)
	minsBack := r.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}
