package crm

import (
	"strings"

	"github.com/google/uuid"
	"github.com/poolcrm/backend/internal/domain/shared"
)

// Property represents a serviced address belonging to a customer
type Property struct {
	shared.BaseAggregateRoot
	CustomerID  uuid.UUID
	Street      string
	City        string
	State       string
	Zip         string
	AccessNotes string
	GateCode    string
}

// NewProperty creates a new property for a customer
func NewProperty(customerID uuid.UUID, street, city, state, zip string) (*Property, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("customer id cannot be empty")
	}
	if err := validateAddress(street, city, state, zip); err != nil {
		return nil, err
	}

	return &Property{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		Street:            strings.TrimSpace(street),
		City:              strings.TrimSpace(city),
		State:             strings.ToUpper(strings.TrimSpace(state)),
		Zip:               strings.TrimSpace(zip),
	}, nil
}

// Update updates the property's address
func (p *Property) Update(street, city, state, zip string) error {
	if err := validateAddress(street, city, state, zip); err != nil {
		return err
	}

	p.Street = strings.TrimSpace(street)
	p.City = strings.TrimSpace(city)
	p.State = strings.ToUpper(strings.TrimSpace(state))
	p.Zip = strings.TrimSpace(zip)
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetAccess sets technician access details for the property
func (p *Property) SetAccess(accessNotes, gateCode string) {
	p.AccessNotes = accessNotes
	p.GateCode = strings.TrimSpace(gateCode)
	p.Touch()
	p.IncrementVersion()
}

// FullAddress renders the address on one line
func (p *Property) FullAddress() string {
	return p.Street + ", " + p.City + ", " + p.State + " " + p.Zip
}

func validateAddress(street, city, state, zip string) error {
	if strings.TrimSpace(street) == "" {
		return shared.NewValidationError("street cannot be empty")
	}
	if strings.TrimSpace(city) == "" {
		return shared.NewValidationError("city cannot be empty")
	}
	if len(strings.TrimSpace(state)) != 2 {
		return shared.NewValidationError("state must be a 2-letter code")
	}
	zip = strings.TrimSpace(zip)
	if len(zip) < 5 || len(zip) > 10 {
		return shared.NewValidationError("invalid zip code")
	}
	return nil
}
