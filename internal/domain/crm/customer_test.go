package crm

import (
	"testing"

	"github.com/poolcrm/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates lead with normalized phone", func(t *testing.T) {
		customer, err := NewCustomer("Dana Brooks", "(555) 123-4567", "Dana@Example.com", SourceWebsite)
		require.NoError(t, err)

		assert.Equal(t, "5551234567", customer.Phone)
		assert.Equal(t, "dana@example.com", customer.Email)
		assert.Equal(t, CustomerStatusLead, customer.Status)
		assert.Equal(t, SourceWebsite, customer.Source)
		assert.False(t, customer.IsDeleted())
		require.Len(t, customer.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeCustomerCreated, customer.GetDomainEvents()[0].EventType())
	})

	t.Run("email is optional", func(t *testing.T) {
		customer, err := NewCustomer("Dana Brooks", "5551234567", "", "referral")
		require.NoError(t, err)
		assert.Empty(t, customer.Email)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		tests := []struct {
			name  string
			cname string
			phone string
			email string
		}{
			{"empty name", "", "5551234567", ""},
			{"empty phone", "Dana", "", ""},
			{"phone with letters", "Dana", "555-CALL-NOW", ""},
			{"phone too short", "Dana", "12345", ""},
			{"bad email", "Dana", "5551234567", "nope"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewCustomer(tt.cname, tt.phone, tt.email, "")
				require.Error(t, err)

				var domainErr *shared.DomainError
				require.ErrorAs(t, err, &domainErr)
				assert.Equal(t, shared.CodeValidation, domainErr.Code)
			})
		}
	})
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"(555) 123-4567", "5551234567"},
		{"555.123.4567", "5551234567"},
		{" +1 555 123 4567 ", "+15551234567"},
		{"5551234567", "5551234567"},
	}

	for _, tt := range tests {
		got, err := NormalizePhone(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestCustomerSoftDeleteAndRestore(t *testing.T) {
	customer, err := NewCustomer("Dana Brooks", "5551234567", "", "")
	require.NoError(t, err)
	customer.ClearDomainEvents()

	require.NoError(t, customer.SoftDelete())
	assert.True(t, customer.IsDeleted())

	err = customer.SoftDelete()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeConflict, domainErr.Code)

	require.NoError(t, customer.Restore())
	assert.False(t, customer.IsDeleted())

	err = customer.Restore()
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.CodeConflict, domainErr.Code)
}

func TestCustomerSetStatus(t *testing.T) {
	customer, err := NewCustomer("Dana Brooks", "5551234567", "", "")
	require.NoError(t, err)

	require.NoError(t, customer.SetStatus(CustomerStatusActive))
	assert.Equal(t, CustomerStatusActive, customer.Status)

	err = customer.SetStatus(CustomerStatus("vip"))
	require.Error(t, err)
}
