package crm

import (
	"regexp"
	"strings"
	"time"

	"github.com/poolcrm/backend/internal/domain/shared"
)

// CustomerStatus represents the lifecycle status of a customer
type CustomerStatus string

const (
	CustomerStatusLead     CustomerStatus = "lead"
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// CustomerSource records where a customer came from (website form, referral,
// phone call). Free text, but the website contact form always uses "website".
const SourceWebsite = "website"

// Customer represents a pool-service customer.
// It is the aggregate root for customer-related operations.
// Phone is unique among non-deleted customers.
type Customer struct {
	shared.BaseAggregateRoot
	Name      string
	Phone     string
	Email     string
	Status    CustomerStatus
	Source    string
	Notes     string
	DeletedAt *time.Time
}

// NewCustomer creates a new customer. Phone is stored normalized so the
// uniqueness check is format-insensitive.
func NewCustomer(name, phone, email, source string) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return nil, err
		}
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Phone:             normalized,
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Status:            CustomerStatusLead,
		Source:            strings.TrimSpace(source),
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Update updates the customer's contact information
func (c *Customer) Update(name, phone, email string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return err
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	c.Name = strings.TrimSpace(name)
	c.Phone = normalized
	c.Email = strings.ToLower(strings.TrimSpace(email))
	c.Touch()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerUpdatedEvent(c))

	return nil
}

// SetStatus changes the lifecycle status
func (c *Customer) SetStatus(status CustomerStatus) error {
	switch status {
	case CustomerStatusLead, CustomerStatusActive, CustomerStatusInactive:
	default:
		return shared.NewValidationError("invalid customer status: %s", status)
	}

	c.Status = status
	c.Touch()
	c.IncrementVersion()

	return nil
}

// SetNotes replaces the free-form notes
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.Touch()
	c.IncrementVersion()
}

// SoftDelete marks the customer as deleted. Deleted customers are excluded
// from listings and from the phone uniqueness check.
func (c *Customer) SoftDelete() error {
	if c.DeletedAt != nil {
		return shared.NewConflictError("customer is already deleted")
	}

	now := time.Now()
	c.DeletedAt = &now
	c.Touch()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerDeletedEvent(c))

	return nil
}

// Restore undoes a soft delete
func (c *Customer) Restore() error {
	if c.DeletedAt == nil {
		return shared.NewConflictError("customer is not deleted")
	}

	c.DeletedAt = nil
	c.Touch()
	c.IncrementVersion()

	return nil
}

// IsDeleted returns true if the customer is soft-deleted
func (c *Customer) IsDeleted() bool {
	return c.DeletedAt != nil
}

// Validation functions

var (
	phoneDigitsRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	emailRegex       = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneStripRegex  = regexp.MustCompile(`[\s\-().]`)
)

// NormalizePhone strips formatting characters and validates the result.
// "(555) 123-4567" and "555.123.4567" normalize to the same value.
func NormalizePhone(phone string) (string, error) {
	normalized := phoneStripRegex.ReplaceAllString(strings.TrimSpace(phone), "")
	if normalized == "" {
		return "", shared.NewValidationError("phone cannot be empty")
	}
	if !phoneDigitsRegex.MatchString(normalized) {
		return "", shared.NewValidationError("invalid phone number")
	}
	return normalized, nil
}

func validateCustomerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("name cannot exceed 200 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewValidationError("email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return shared.NewValidationError("invalid email format")
	}
	return nil
}
