package estimate

import (
	"testing"

	"github.com/google/uuid"
	"github.com/poolcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftEstimate(t *testing.T) *Estimate {
	t.Helper()
	est, err := NewEstimate(uuid.New(), nil, "EST-2025-0001", "Weekly service", decimal.NewFromFloat(0.08))
	require.NoError(t, err)
	est.ClearDomainEvents()
	return est
}

func TestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     Status
		to       Status
		canTrans bool
	}{
		{"draft to sent", StatusDraft, StatusSent, true},
		{"draft to internal_final", StatusDraft, StatusInternalFinal, true},
		{"draft to converted", StatusDraft, StatusConverted, true},
		{"draft to declined", StatusDraft, StatusDeclined, true},
		{"sent to converted", StatusSent, StatusConverted, true},
		{"sent to declined", StatusSent, StatusDeclined, true},
		{"sent to draft", StatusSent, StatusDraft, false},
		{"sent to internal_final", StatusSent, StatusInternalFinal, false},
		{"internal_final to converted", StatusInternalFinal, StatusConverted, true},
		{"internal_final to declined", StatusInternalFinal, StatusDeclined, true},
		{"internal_final to sent", StatusInternalFinal, StatusSent, false},
		{"converted is terminal", StatusConverted, StatusDeclined, false},
		{"declined is terminal", StatusDeclined, StatusConverted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestEstimateTotals(t *testing.T) {
	est := newDraftEstimate(t)

	_, err := est.AddItem("Filter cleaning", decimal.NewFromInt(2), decimal.NewFromFloat(45.50))
	require.NoError(t, err)
	_, err = est.AddItem("Salt cell replacement", decimal.NewFromInt(1), decimal.NewFromFloat(389.99))
	require.NoError(t, err)

	// 2*45.50 + 389.99 = 480.99; tax 8% = 38.48; total 519.47
	assert.True(t, est.Subtotal.Equal(decimal.NewFromFloat(480.99)), est.Subtotal.String())
	assert.True(t, est.Tax.Equal(decimal.NewFromFloat(38.48)), est.Tax.String())
	assert.True(t, est.Total.Equal(decimal.NewFromFloat(519.47)), est.Total.String())
}

func TestEstimateItemMutations(t *testing.T) {
	est := newDraftEstimate(t)

	item, err := est.AddItem("Acid wash", decimal.NewFromInt(1), decimal.NewFromFloat(250))
	require.NoError(t, err)

	require.NoError(t, est.UpdateItem(item.ID, "Acid wash", decimal.NewFromInt(2), decimal.NewFromFloat(250)))
	assert.True(t, est.Subtotal.Equal(decimal.NewFromFloat(500)))

	require.NoError(t, est.RemoveItem(item.ID))
	assert.True(t, est.Subtotal.IsZero())
	assert.True(t, est.Total.IsZero())

	err = est.UpdateItem(uuid.New(), "x", decimal.NewFromInt(1), decimal.Zero)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeNotFound, domainErr.Code)
}

func TestEstimateItemsImmutableAfterDraft(t *testing.T) {
	est := newDraftEstimate(t)
	item, err := est.AddItem("Acid wash", decimal.NewFromInt(1), decimal.NewFromFloat(250))
	require.NoError(t, err)

	require.NoError(t, est.MarkSent("dana@example.com"))

	_, err = est.AddItem("Extra", decimal.NewFromInt(1), decimal.NewFromFloat(10))
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeConflict, domainErr.Code)

	err = est.UpdateItem(item.ID, "Acid wash", decimal.NewFromInt(2), decimal.NewFromFloat(250))
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeConflict, domainErr.Code)
}

func TestEstimateTransitions(t *testing.T) {
	t.Run("send records recipient and timestamp", func(t *testing.T) {
		est := newDraftEstimate(t)

		require.NoError(t, est.MarkSent(" Dana@Example.com "))
		assert.Equal(t, StatusSent, est.Status)
		assert.Equal(t, "dana@example.com", est.EmailedTo)
		require.NotNil(t, est.SentAt)
	})

	t.Run("convert from sent records decision", func(t *testing.T) {
		est := newDraftEstimate(t)
		require.NoError(t, est.MarkSent("dana@example.com"))

		require.NoError(t, est.Convert())
		assert.Equal(t, StatusConverted, est.Status)
		require.NotNil(t, est.DecidedAt)
	})

	t.Run("invalid transition is a conflict", func(t *testing.T) {
		est := newDraftEstimate(t)
		require.NoError(t, est.Convert())

		err := est.Decline()
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeConflict, domainErr.Code)
	})

	t.Run("internal_final can still be decided", func(t *testing.T) {
		est := newDraftEstimate(t)
		require.NoError(t, est.MarkInternalFinal())
		require.NoError(t, est.Decline())
		assert.Equal(t, StatusDeclined, est.Status)
	})
}

func TestNewEstimateValidation(t *testing.T) {
	_, err := NewEstimate(uuid.Nil, nil, "EST-1", "Title", decimal.Zero)
	require.Error(t, err)

	_, err = NewEstimate(uuid.New(), nil, " ", "Title", decimal.Zero)
	require.Error(t, err)

	_, err = NewEstimate(uuid.New(), nil, "EST-1", "Title", decimal.NewFromFloat(1.5))
	require.Error(t, err)

	_, err = NewEstimate(uuid.New(), nil, "EST-1", "Title", decimal.NewFromFloat(-0.1))
	require.Error(t, err)
}
