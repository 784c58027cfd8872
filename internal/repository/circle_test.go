package repository

import (
	"context"
	"errors"
	"testing"

	"tapcard/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircleRepository_PairUniqueness(t *testing.T) {
	db := newTestDB(t)
	repo := NewCircleRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	first := &models.Circle{RequesterID: alice.ID, ReceiverID: bob.ID}
	require.NoError(t, repo.Create(ctx, first))

	// Same pair, same direction.
	err := repo.Create(ctx, &models.Circle{RequesterID: alice.ID, ReceiverID: bob.ID})
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeDuplicateInvite, appErr.Code)

	// Same pair, reversed direction still collides on pair_key.
	err = repo.Create(ctx, &models.Circle{RequesterID: bob.ID, ReceiverID: alice.ID})
	require.Error(t, err)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeDuplicateInvite, appErr.Code)
}

func TestCircleRepository_GetBetweenUsers(t *testing.T) {
	db := newTestDB(t)
	repo := NewCircleRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	created := &models.Circle{RequesterID: alice.ID, ReceiverID: bob.ID}
	require.NoError(t, repo.Create(ctx, created))

	// Found regardless of argument order.
	got, err := repo.GetBetweenUsers(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, alice.ID, got.RequesterID)
	assert.Equal(t, "alice", got.Requester.Username)

	// No row between unrelated users.
	got, err = repo.GetBetweenUsers(ctx, alice.ID, carol.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCircleRepository_UpdateStatusIfPending(t *testing.T) {
	db := newTestDB(t)
	repo := NewCircleRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	circle := &models.Circle{RequesterID: alice.ID, ReceiverID: bob.ID}
	require.NoError(t, repo.Create(ctx, circle))

	ok, err := repo.UpdateStatusIfPending(ctx, circle.ID, models.CircleStatusAccepted)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second transition finds no pending row.
	ok, err = repo.UpdateStatusIfPending(ctx, circle.ID, models.CircleStatusRejected)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetBetweenUsers(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.CircleStatusAccepted, got.Status)
}

func TestCircleRepository_Replace(t *testing.T) {
	db := newTestDB(t)
	repo := NewCircleRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	old := &models.Circle{RequesterID: alice.ID, ReceiverID: bob.ID, Status: models.CircleStatusRejected}
	require.NoError(t, repo.Create(ctx, old))

	// Bob re-invites Alice after she rejected him: direction flips, status resets.
	fresh := &models.Circle{RequesterID: bob.ID, ReceiverID: alice.ID, Status: models.CircleStatusPending}
	require.NoError(t, repo.Replace(ctx, old.ID, fresh))

	got, err := repo.GetBetweenUsers(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, bob.ID, got.RequesterID)
	assert.Equal(t, models.CircleStatusPending, got.Status)
	assert.NotEqual(t, old.ID, got.ID)
}

func TestCircleRepository_Replace_MissingRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewCircleRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	fresh := &models.Circle{RequesterID: bob.ID, ReceiverID: alice.ID}
	err := repo.Replace(ctx, uuid.New(), fresh)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	// The transaction rolled back, nothing was inserted.
	got, err := repo.GetBetweenUsers(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCircleRepository_DeleteAcceptedBetween(t *testing.T) {
	db := newTestDB(t)
	repo := NewCircleRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	circle := &models.Circle{RequesterID: alice.ID, ReceiverID: bob.ID, Status: models.CircleStatusAccepted}
	require.NoError(t, repo.Create(ctx, circle))

	removed, err := repo.DeleteAcceptedBetween(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	// Already gone.
	removed, err = repo.DeleteAcceptedBetween(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestCircleRepository_ConnectionsAndPending(t *testing.T) {
	db := newTestDB(t)
	repo := NewCircleRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	dave := createTestUser(t, db, "dave")

	// alice <-> bob accepted, carol -> alice pending, alice -> dave pending.
	require.NoError(t, repo.Create(ctx, &models.Circle{RequesterID: alice.ID, ReceiverID: bob.ID, Status: models.CircleStatusAccepted}))
	require.NoError(t, repo.Create(ctx, &models.Circle{RequesterID: carol.ID, ReceiverID: alice.ID}))
	require.NoError(t, repo.Create(ctx, &models.Circle{RequesterID: alice.ID, ReceiverID: dave.ID}))

	conns, err := repo.GetConnections(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.Equal(t, bob.ID, conns[0].ID)

	count, err := repo.CountConnections(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	received, err := repo.GetPendingReceived(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, carol.ID, received[0].RequesterID)

	sent, err := repo.GetPendingSent(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, dave.ID, sent[0].ReceiverID)

	pendingCount, err := repo.CountPendingReceived(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pendingCount)

	// Pending invites never count as connections.
	count, err = repo.CountConnections(ctx, carol.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
