package seed

import (
	"testing"

	"tapcard/internal/database"
	"tapcard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func TestSeed_PopulatesAllTables(t *testing.T) {
	db := newSeedDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 8, SkipBcrypt: true, MaxDays: 30}))

	var userCount, linkCount, workCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	assert.Equal(t, int64(8), userCount)

	// Every user gets at least one social link and one work experience
	require.NoError(t, db.Model(&models.SocialLink{}).Count(&linkCount).Error)
	assert.GreaterOrEqual(t, linkCount, int64(8))
	require.NoError(t, db.Model(&models.WorkExperience{}).Count(&workCount).Error)
	assert.GreaterOrEqual(t, workCount, int64(8))
}

func TestSeed_CleanRunsTwice(t *testing.T) {
	db := newSeedDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 3, SkipBcrypt: true}))
	require.NoError(t, Seed(db, Options{NumUsers: 3, SkipBcrypt: true, ShouldClean: true}))

	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	assert.Equal(t, int64(3), userCount)
}

func TestFactory_CreateUser(t *testing.T) {
	db := newSeedDB(t)
	f := NewFactory(db, Options{SkipBcrypt: true})

	user, err := f.CreateUser(func(u *models.User) {
		u.Username = "override_name"
	})
	require.NoError(t, err)
	assert.Equal(t, "override_name", user.Username)
	assert.NotEmpty(t, user.Email)
	assert.NotEmpty(t, user.Fullname)
	assert.NotEqual(t, "", user.Password)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.Equal(t, "override_name", stored.Username)
}

func TestFactory_CreateCircleMesh_UniquePairs(t *testing.T) {
	db := newSeedDB(t)
	f := NewFactory(db, Options{SkipBcrypt: true})

	users := make([]models.User, 0, 10)
	for i := 0; i < 10; i++ {
		u, err := f.CreateUser()
		require.NoError(t, err)
		users = append(users, *u)
	}

	created, err := f.CreateCircleMesh(users)
	require.NoError(t, err)

	var rows []models.Circle
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, created)

	// Loop visits each unordered pair once, so pair keys never collide
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		key := models.PairKeyFor(row.RequesterID, row.ReceiverID)
		assert.False(t, seen[key], "duplicate pair key %s", key)
		seen[key] = true
		assert.NotEqual(t, row.RequesterID, row.ReceiverID)
	}
}

func TestFactory_CreateWorkExperience_CurrentRoleHasNoEndDate(t *testing.T) {
	db := newSeedDB(t)
	f := NewFactory(db, Options{SkipBcrypt: true})

	user, err := f.CreateUser()
	require.NoError(t, err)

	current, err := f.CreateWorkExperience(user, true)
	require.NoError(t, err)
	assert.Nil(t, current.EndDate)

	past, err := f.CreateWorkExperience(user, false)
	require.NoError(t, err)
	require.NotNil(t, past.EndDate)
	assert.True(t, past.EndDate.After(past.StartDate) || past.EndDate.Equal(past.StartDate))
}
