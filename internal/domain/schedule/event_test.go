package schedule

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/poolcrm/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScheduledEvent(t *testing.T) *Event {
	t.Helper()
	starts := time.Now().Add(24 * time.Hour)
	event, err := NewEvent("Weekly clean", uuid.New(), starts, starts.Add(time.Hour))
	require.NoError(t, err)
	return event
}

func TestNewEvent(t *testing.T) {
	t.Run("valid event", func(t *testing.T) {
		event := newScheduledEvent(t)
		assert.Equal(t, EventStatusScheduled, event.Status)
		assert.Equal(t, 1, event.GetVersion())
	})

	t.Run("ends_at must be after starts_at", func(t *testing.T) {
		starts := time.Now()
		_, err := NewEvent("Weekly clean", uuid.New(), starts, starts)
		require.Error(t, err)

		_, err = NewEvent("Weekly clean", uuid.New(), starts, starts.Add(-time.Hour))
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeValidation, domainErr.Code)
	})

	t.Run("requires assignee and title", func(t *testing.T) {
		starts := time.Now()
		_, err := NewEvent("Weekly clean", uuid.Nil, starts, starts.Add(time.Hour))
		require.Error(t, err)

		_, err = NewEvent("  ", uuid.New(), starts, starts.Add(time.Hour))
		require.Error(t, err)
	})
}

func TestEventStatusGuards(t *testing.T) {
	t.Run("complete then modify", func(t *testing.T) {
		event := newScheduledEvent(t)
		require.NoError(t, event.Complete())
		assert.Equal(t, EventStatusCompleted, event.Status)

		var domainErr *shared.DomainError
		err := event.Reschedule("Moved", event.StartsAt, event.EndsAt.Add(time.Hour))
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeConflict, domainErr.Code)

		err = event.Cancel()
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeConflict, domainErr.Code)
	})

	t.Run("cancel then complete", func(t *testing.T) {
		event := newScheduledEvent(t)
		require.NoError(t, event.Cancel())

		err := event.Complete()
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeConflict, domainErr.Code)
	})
}

func TestEventReschedule(t *testing.T) {
	event := newScheduledEvent(t)
	newStart := event.StartsAt.Add(48 * time.Hour)

	require.NoError(t, event.Reschedule("Moved visit", newStart, newStart.Add(2*time.Hour)))
	assert.Equal(t, "Moved visit", event.Title)
	assert.Equal(t, newStart, event.StartsAt)

	err := event.Reschedule("Bad", newStart, newStart)
	require.Error(t, err)
}
