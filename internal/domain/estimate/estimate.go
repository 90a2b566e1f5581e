package estimate

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/poolcrm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle status of an estimate
type Status string

const (
	StatusDraft         Status = "draft"
	StatusSent          Status = "sent"
	StatusInternalFinal Status = "internal_final"
	StatusConverted     Status = "converted"
	StatusDeclined      Status = "declined"
)

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusInternalFinal, StatusConverted, StatusDeclined:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusDraft:
		return target == StatusSent || target == StatusInternalFinal ||
			target == StatusConverted || target == StatusDeclined
	case StatusSent:
		return target == StatusConverted || target == StatusDeclined
	case StatusInternalFinal:
		return target == StatusConverted || target == StatusDeclined
	case StatusConverted, StatusDeclined:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true for converted and declined
func (s Status) IsTerminal() bool {
	return s == StatusConverted || s == StatusDeclined
}

// Item represents a line item on an estimate
type Item struct {
	ID          uuid.UUID
	EstimateID  uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
	SortOrder   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewItem creates a new estimate line item. Amount is quantity times unit
// price, rounded to cents.
func NewItem(estimateID uuid.UUID, description string, quantity, unitPrice decimal.Decimal) (*Item, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewValidationError("item description cannot be empty")
	}
	if len(description) > 500 {
		return nil, shared.NewValidationError("item description cannot exceed 500 characters")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewValidationError("item unit price cannot be negative")
	}

	now := time.Now()
	return &Item{
		ID:          uuid.New(),
		EstimateID:  estimateID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      quantity.Mul(unitPrice).Round(2),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Estimate represents a priced service proposal for a customer.
// It is the aggregate root for estimate operations. Totals are recalculated
// on every item change; line items are mutable only while in draft.
type Estimate struct {
	shared.BaseAggregateRoot
	CustomerID uuid.UUID
	PropertyID *uuid.UUID
	Number     string
	Title      string
	Items      []Item
	Subtotal   decimal.Decimal
	TaxRate    decimal.Decimal
	Tax        decimal.Decimal
	Total      decimal.Decimal
	Status     Status
	SentAt     *time.Time
	DecidedAt  *time.Time
	EmailedTo  string
}

// NewEstimate creates a draft estimate
func NewEstimate(customerID uuid.UUID, propertyID *uuid.UUID, number, title string, taxRate decimal.Decimal) (*Estimate, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("customer id cannot be empty")
	}
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewValidationError("estimate number cannot be empty")
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateTaxRate(taxRate); err != nil {
		return nil, err
	}

	est := &Estimate{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		PropertyID:        propertyID,
		Number:            strings.TrimSpace(number),
		Title:             strings.TrimSpace(title),
		Items:             make([]Item, 0),
		Subtotal:          decimal.Zero,
		TaxRate:           taxRate,
		Tax:               decimal.Zero,
		Total:             decimal.Zero,
		Status:            StatusDraft,
	}

	est.AddDomainEvent(NewEstimateCreatedEvent(est))

	return est, nil
}

// UpdateDetails updates title, property, and tax rate while in draft
func (e *Estimate) UpdateDetails(title string, propertyID *uuid.UUID, taxRate decimal.Decimal) error {
	if err := e.requireDraft(); err != nil {
		return err
	}
	if err := validateTitle(title); err != nil {
		return err
	}
	if err := validateTaxRate(taxRate); err != nil {
		return err
	}

	e.Title = strings.TrimSpace(title)
	e.PropertyID = propertyID
	e.TaxRate = taxRate
	e.recalculate()
	e.Touch()
	e.IncrementVersion()

	return nil
}

// AddItem appends a line item and recalculates totals
func (e *Estimate) AddItem(description string, quantity, unitPrice decimal.Decimal) (*Item, error) {
	if err := e.requireDraft(); err != nil {
		return nil, err
	}

	item, err := NewItem(e.ID, description, quantity, unitPrice)
	if err != nil {
		return nil, err
	}
	item.SortOrder = len(e.Items)

	e.Items = append(e.Items, *item)
	e.recalculate()
	e.Touch()
	e.IncrementVersion()

	return item, nil
}

// UpdateItem revises a line item and recalculates totals
func (e *Estimate) UpdateItem(itemID uuid.UUID, description string, quantity, unitPrice decimal.Decimal) error {
	if err := e.requireDraft(); err != nil {
		return err
	}

	for i := range e.Items {
		if e.Items[i].ID != itemID {
			continue
		}

		updated, err := NewItem(e.ID, description, quantity, unitPrice)
		if err != nil {
			return err
		}

		e.Items[i].Description = updated.Description
		e.Items[i].Quantity = updated.Quantity
		e.Items[i].UnitPrice = updated.UnitPrice
		e.Items[i].Amount = updated.Amount
		e.Items[i].UpdatedAt = time.Now()

		e.recalculate()
		e.Touch()
		e.IncrementVersion()

		return nil
	}

	return shared.NewNotFoundError("estimate item")
}

// RemoveItem deletes a line item and recalculates totals
func (e *Estimate) RemoveItem(itemID uuid.UUID) error {
	if err := e.requireDraft(); err != nil {
		return err
	}

	for i := range e.Items {
		if e.Items[i].ID != itemID {
			continue
		}

		e.Items = append(e.Items[:i], e.Items[i+1:]...)
		for j := range e.Items {
			e.Items[j].SortOrder = j
		}

		e.recalculate()
		e.Touch()
		e.IncrementVersion()

		return nil
	}

	return shared.NewNotFoundError("estimate item")
}

// MarkSent transitions draft -> sent, recording the email recipient
func (e *Estimate) MarkSent(recipient string) error {
	if err := e.transitionTo(StatusSent); err != nil {
		return err
	}

	now := time.Now()
	e.SentAt = &now
	e.EmailedTo = strings.ToLower(strings.TrimSpace(recipient))

	e.AddDomainEvent(NewEstimateSentEvent(e))

	return nil
}

// MarkInternalFinal finalizes the estimate without sending it to the customer
func (e *Estimate) MarkInternalFinal() error {
	return e.transitionTo(StatusInternalFinal)
}

// Convert marks the estimate as won
func (e *Estimate) Convert() error {
	if err := e.transitionTo(StatusConverted); err != nil {
		return err
	}

	now := time.Now()
	e.DecidedAt = &now

	e.AddDomainEvent(NewEstimateDecidedEvent(e))

	return nil
}

// Decline marks the estimate as lost
func (e *Estimate) Decline() error {
	if err := e.transitionTo(StatusDeclined); err != nil {
		return err
	}

	now := time.Now()
	e.DecidedAt = &now

	e.AddDomainEvent(NewEstimateDecidedEvent(e))

	return nil
}

// TransitionTo moves to an arbitrary valid target status
func (e *Estimate) TransitionTo(target Status) error {
	switch target {
	case StatusSent:
		return e.MarkSent(e.EmailedTo)
	case StatusInternalFinal:
		return e.MarkInternalFinal()
	case StatusConverted:
		return e.Convert()
	case StatusDeclined:
		return e.Decline()
	default:
		return shared.NewValidationError("invalid estimate status: %s", target)
	}
}

func (e *Estimate) transitionTo(target Status) error {
	if !target.IsValid() {
		return shared.NewValidationError("invalid estimate status: %s", target)
	}
	if !e.Status.CanTransitionTo(target) {
		return shared.NewConflictError("cannot transition estimate from %s to %s", e.Status, target)
	}

	e.Status = target
	e.Touch()
	e.IncrementVersion()

	return nil
}

func (e *Estimate) requireDraft() error {
	if e.Status != StatusDraft {
		return shared.NewConflictError("estimate is %s; only draft estimates can be edited", e.Status)
	}
	return nil
}

// recalculate derives subtotal, tax, and total from the line items
func (e *Estimate) recalculate() {
	subtotal := decimal.Zero
	for i := range e.Items {
		subtotal = subtotal.Add(e.Items[i].Amount)
	}

	e.Subtotal = subtotal
	e.Tax = subtotal.Mul(e.TaxRate).Round(2)
	e.Total = e.Subtotal.Add(e.Tax)
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewValidationError("title cannot be empty")
	}
	if len(title) > 300 {
		return shared.NewValidationError("title cannot exceed 300 characters")
	}
	return nil
}

func validateTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return shared.NewValidationError("tax rate must be between 0 and 1")
	}
	return nil
}
