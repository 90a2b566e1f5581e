package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/poolcrm/backend/internal/domain/communication"
	"github.com/poolcrm/backend/internal/domain/shared"
	"github.com/poolcrm/backend/internal/infrastructure/persistence/models"
)

func setupCommunicationTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.CommunicationModel{}, &models.CustomerModel{}))
	return db
}

func seedCommunications(t *testing.T, repo *GormCommunicationRepository, customerID uuid.UUID, n int, base time.Time) []*communication.Communication {
	t.Helper()
	ctx := context.Background()
	admin := uuid.New()

	comms := make([]*communication.Communication, n)
	for i := 0; i < n; i++ {
		occurred := base.Add(time.Duration(i) * time.Hour)
		comm, err := communication.NewCommunication(customerID, admin,
			communication.TypeCall, communication.DirectionOutbound,
			"follow-up call", occurred)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, comm))
		comms[i] = comm
	}
	return comms
}

func TestGormCommunicationRepository_SaveAndFind(t *testing.T) {
	db := setupCommunicationTestDB(t)
	repo := NewGormCommunicationRepository(db)
	ctx := context.Background()

	comm, err := communication.NewCommunication(uuid.New(), uuid.New(),
		communication.TypeEmail, communication.DirectionInbound,
		"asked for an estimate", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, comm))

	found, err := repo.FindByID(ctx, comm.ID)
	require.NoError(t, err)
	assert.Equal(t, comm.ID, found.ID)
	assert.Equal(t, communication.TypeEmail, found.Type)
	assert.Equal(t, communication.DirectionInbound, found.Direction)
	assert.Equal(t, "asked for an estimate", found.Summary)
}

func TestGormCommunicationRepository_FindByCustomerID_Pagination(t *testing.T) {
	db := setupCommunicationTestDB(t)
	repo := NewGormCommunicationRepository(db)
	ctx := context.Background()

	customerID := uuid.New()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seedCommunications(t, repo, customerID, 5, base)

	t.Run("returns newest first with has_more", func(t *testing.T) {
		comms, hasMore, err := repo.FindByCustomerID(ctx, customerID, communication.Query{Limit: 2})
		require.NoError(t, err)
		require.Len(t, comms, 2)
		assert.True(t, hasMore)
		assert.True(t, comms[0].OccurredAt.After(comms[1].OccurredAt))
	})

	t.Run("cursor resumes after last row of previous page", func(t *testing.T) {
		first, _, err := repo.FindByCustomerID(ctx, customerID, communication.Query{Limit: 2})
		require.NoError(t, err)
		last := first[len(first)-1]

		cursor := &shared.Cursor{OccurredAt: last.OccurredAt, ID: last.ID}
		second, hasMore, err := repo.FindByCustomerID(ctx, customerID, communication.Query{
			Cursor: cursor,
			Limit:  2,
		})
		require.NoError(t, err)
		require.Len(t, second, 2)
		assert.True(t, hasMore)
		assert.True(t, second[0].OccurredAt.Before(last.OccurredAt))

		// Final page
		last = second[len(second)-1]
		third, hasMore, err := repo.FindByCustomerID(ctx, customerID, communication.Query{
			Cursor: &shared.Cursor{OccurredAt: last.OccurredAt, ID: last.ID},
			Limit:  2,
		})
		require.NoError(t, err)
		assert.Len(t, third, 1)
		assert.False(t, hasMore)
	})

	t.Run("last page reports no more rows", func(t *testing.T) {
		comms, hasMore, err := repo.FindByCustomerID(ctx, customerID, communication.Query{Limit: 10})
		require.NoError(t, err)
		assert.Len(t, comms, 5)
		assert.False(t, hasMore)
	})
}

func TestGormCommunicationRepository_FindByCustomerID_Filters(t *testing.T) {
	db := setupCommunicationTestDB(t)
	repo := NewGormCommunicationRepository(db)
	ctx := context.Background()

	customerID := uuid.New()
	admin := uuid.New()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	call, err := communication.NewCommunication(customerID, admin,
		communication.TypeCall, communication.DirectionOutbound, "call", base)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, call))

	text, err := communication.NewCommunication(customerID, admin,
		communication.TypeText, communication.DirectionInbound, "text", base.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, text))

	t.Run("filters by type", func(t *testing.T) {
		callType := communication.TypeCall
		comms, _, err := repo.FindByCustomerID(ctx, customerID, communication.Query{Type: &callType})
		require.NoError(t, err)
		require.Len(t, comms, 1)
		assert.Equal(t, call.ID, comms[0].ID)
	})

	t.Run("filters by direction", func(t *testing.T) {
		inbound := communication.DirectionInbound
		comms, _, err := repo.FindByCustomerID(ctx, customerID, communication.Query{Direction: &inbound})
		require.NoError(t, err)
		require.Len(t, comms, 1)
		assert.Equal(t, text.ID, comms[0].ID)
	})

	t.Run("filters by date range", func(t *testing.T) {
		from := base.Add(30 * time.Minute)
		to := base.Add(2 * time.Hour)
		comms, _, err := repo.FindByCustomerID(ctx, customerID, communication.Query{
			DateFrom: &from,
			DateTo:   &to,
		})
		require.NoError(t, err)
		require.Len(t, comms, 1)
		assert.Equal(t, text.ID, comms[0].ID)
	})

	t.Run("other customers are excluded", func(t *testing.T) {
		comms, _, err := repo.FindByCustomerID(ctx, uuid.New(), communication.Query{})
		require.NoError(t, err)
		assert.Empty(t, comms)
	})
}

func TestGormCommunicationRepository_Delete(t *testing.T) {
	db := setupCommunicationTestDB(t)
	repo := NewGormCommunicationRepository(db)
	ctx := context.Background()

	comm, err := communication.NewCommunication(uuid.New(), uuid.New(),
		communication.TypeCall, communication.DirectionOutbound, "call", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, comm))

	require.NoError(t, repo.Delete(ctx, comm.ID))
	assert.ErrorIs(t, repo.Delete(ctx, comm.ID), shared.ErrNotFound)
}
