package repository

import (
	"context"
	"errors"
	"testing"

	"tapcard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	got, err := repo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	got, err = repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, alice.ID, got.ID)

	// Missing rows come back as nil, not an error.
	got, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "alice")

	err := repo.Create(ctx, &models.User{
		Username: "alice",
		Email:    "other@example.com",
		Password: "hashed",
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestUserRepository_Search(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "alice")
	createTestUser(t, db, "alicia")
	createTestUser(t, db, "bob")

	users, err := repo.Search(ctx, "ALI", 10, 0)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "alicia", users[1].Username)

	users, err = repo.Search(ctx, "zzz", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserRepository_SearchTreatsWildcardsLiterally(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "alice")
	createTestUser(t, db, "under_score")

	// A bare wildcard must not match everyone.
	users, err := repo.Search(ctx, "%", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, users)

	// "_" is a literal underscore, not a single-character wildcard.
	users, err = repo.Search(ctx, "a_ice", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, users)

	users, err = repo.Search(ctx, "der_sc", 10, 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "under_score", users[0].Username)
}

func TestUserRepository_GetByUsernameWithProfile(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	require.NoError(t, db.Create(&models.SocialLink{
		UserID:       alice.ID,
		PlatformName: "github",
		LinkURL:      "https://github.com/alice",
	}).Error)

	got, err := repo.GetByUsernameWithProfile(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got.SocialLinks, 1)
	assert.Equal(t, "github", got.SocialLinks[0].PlatformName)

	_, err = repo.GetByUsernameWithProfile(ctx, "nobody")
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
