// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"tapcard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// seedPasswordHash is the bcrypt hash of "Password123!" reused when
// Options.SkipBcrypt is set.
const seedPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

var socialPlatforms = []string{
	"github", "linkedin", "twitter", "instagram", "youtube", "twitch",
	"dribbble", "behance", "medium", "website",
}

var jobRoles = []string{
	"Software Engineer", "Senior Software Engineer", "Staff Engineer",
	"Product Designer", "Product Manager", "Data Engineer", "SRE",
	"Engineering Manager", "Frontend Developer", "Backend Developer",
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	password := seedPasswordHash
	if !f.opts.SkipBcrypt {
		hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		password = string(hashed)
	}

	dob := gofakeit.DateRange(
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC))

	user := &models.User{
		Username:  gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:     gofakeit.Email(),
		Password:  password,
		Fullname:  gofakeit.Name(),
		Bio:       gofakeit.Sentence(10),
		DOB:       &dob,
		CreatedAt: pastTime(f.rng, f.opts.MaxDays),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// ProfileContentCounts reports what CreateProfileContent generated for a user.
type ProfileContentCounts struct {
	SocialLinks     int
	PortfolioItems  int
	WorkExperiences int
}

// CreateProfileContent fills out a user's public profile with a random
// number of social links, portfolio items and work experience entries.
func (f *Factory) CreateProfileContent(user *models.User) (ProfileContentCounts, error) {
	var counts ProfileContentCounts

	platforms := f.rng.Perm(len(socialPlatforms))
	for _, idx := range platforms[:f.rng.Intn(4)+1] {
		if _, err := f.CreateSocialLink(user, socialPlatforms[idx]); err != nil {
			return counts, err
		}
		counts.SocialLinks++
	}

	for i := 0; i < f.rng.Intn(3); i++ {
		if _, err := f.CreatePortfolioItem(user); err != nil {
			return counts, err
		}
		counts.PortfolioItems++
	}

	for i := 0; i < f.rng.Intn(3)+1; i++ {
		if _, err := f.CreateWorkExperience(user, i == 0); err != nil {
			return counts, err
		}
		counts.WorkExperiences++
	}

	return counts, nil
}

// CreateSocialLink persists a social link for the user on the given platform.
func (f *Factory) CreateSocialLink(user *models.User, platform string) (*models.SocialLink, error) {
	link := &models.SocialLink{
		UserID:       user.ID,
		PlatformName: platform,
		LinkURL:      fmt.Sprintf("https://%s.com/%s", platform, user.Username),
	}
	if err := f.db.Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

// CreatePortfolioItem persists a portfolio item for the user.
func (f *Factory) CreatePortfolioItem(user *models.User, overrides ...func(*models.PortfolioItem)) (*models.PortfolioItem, error) {
	item := &models.PortfolioItem{
		UserID:      user.ID,
		Title:       gofakeit.Sentence(4),
		Description: gofakeit.Paragraph(1, 3, 8, "\n"),
		MediaURL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		CreatedAt:   pastTime(f.rng, f.opts.MaxDays),
	}
	for _, override := range overrides {
		override(item)
	}
	if err := f.db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// CreateWorkExperience persists a work experience entry. A current role has
// no end date.
func (f *Factory) CreateWorkExperience(user *models.User, current bool) (*models.WorkExperience, error) {
	start := gofakeit.DateRange(
		time.Now().AddDate(-8, 0, 0),
		time.Now().AddDate(-1, 0, 0))

	exp := &models.WorkExperience{
		UserID:      user.ID,
		CompanyName: gofakeit.Company(),
		Role:        jobRoles[f.rng.Intn(len(jobRoles))],
		StartDate:   start,
		Description: gofakeit.Sentence(12),
	}
	if !current {
		end := gofakeit.DateRange(start, time.Now())
		exp.EndDate = &end
	}
	if err := f.db.Create(exp).Error; err != nil {
		return nil, err
	}
	return exp, nil
}

// CreateCircle persists a circle row between two users with the given status.
func (f *Factory) CreateCircle(requester, receiver *models.User, status models.CircleStatus) (*models.Circle, error) {
	circle := &models.Circle{
		RequesterID: requester.ID,
		ReceiverID:  receiver.ID,
		Status:      status,
		CreatedAt:   pastTime(f.rng, f.opts.MaxDays),
	}
	if err := f.db.Create(circle).Error; err != nil {
		return nil, err
	}
	return circle, nil
}

// CreateCircleMesh wires the seeded users into a plausible connection graph:
// most pairs untouched, the connected ones mostly accepted with a sprinkling
// of pending and rejected invites. Returns the number of circle rows created.
func (f *Factory) CreateCircleMesh(users []models.User) (int, error) {
	created := 0
	for i := range users {
		for j := i + 1; j < len(users); j++ {
			roll := f.rng.Float64()
			if roll > 0.25 {
				continue
			}
			// Direction varies so pending invites point both ways in the demo data.
			requester, receiver := &users[i], &users[j]
			if f.rng.Intn(2) == 0 {
				requester, receiver = receiver, requester
			}
			status := models.CircleStatusAccepted
			switch {
			case roll < 0.04:
				status = models.CircleStatusPending
			case roll < 0.06:
				status = models.CircleStatusRejected
			}
			if _, err := f.CreateCircle(requester, receiver, status); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

// CreateAnalyticsEvent persists a single analytics event for the user.
func (f *Factory) CreateAnalyticsEvent(user *models.User, eventType, eventData string) (*models.AnalyticsEvent, error) {
	event := &models.AnalyticsEvent{
		UserID:    user.ID,
		EventType: eventType,
		EventData: eventData,
		CreatedAt: pastTime(f.rng, f.opts.MaxDays),
	}
	if err := f.db.Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// CreateAnalyticsHistory generates a history of profile views, link clicks
// and QR scans for each user. Returns the number of events created.
func (f *Factory) CreateAnalyticsHistory(users []models.User) (int, error) {
	created := 0
	for i := range users {
		n := f.rng.Intn(20)
		for j := 0; j < n; j++ {
			eventType := models.EventTypeProfileView
			eventData := ""
			switch f.rng.Intn(3) {
			case 1:
				eventType = models.EventTypeLinkClick
				raw, _ := json.Marshal(map[string]string{
					"platform": socialPlatforms[f.rng.Intn(len(socialPlatforms))],
				})
				eventData = string(raw)
			case 2:
				eventType = models.EventTypeQRScan
			}
			if _, err := f.CreateAnalyticsEvent(&users[i], eventType, eventData); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}
