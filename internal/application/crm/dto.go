package crm

import (
	"time"

	"github.com/google/uuid"

	"github.com/poolcrm/backend/internal/domain/crm"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=200"`
	Phone  string `json:"phone" binding:"required,max=50"`
	Email  string `json:"email" binding:"omitempty,email,max=200"`
	Source string `json:"source" binding:"max=100"`
	Notes  string `json:"notes"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=1,max=200"`
	Phone  *string `json:"phone" binding:"omitempty,max=50"`
	Email  *string `json:"email" binding:"omitempty,email,max=200"`
	Status *string `json:"status" binding:"omitempty,oneof=lead active inactive"`
	Notes  *string `json:"notes"`
}

// CustomerListFilter represents filter options for the customer list
type CustomerListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=lead active inactive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone"`
	Email     string     `json:"email"`
	Status    string     `json:"status"`
	Source    string     `json:"source"`
	Notes     string     `json:"notes"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Version   int        `json:"version"`
}

// CustomerListResult is a paginated customer listing
type CustomerListResult struct {
	Items    []*CustomerResponse `json:"items"`
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

// ToCustomerResponse converts a domain customer to an API response
func ToCustomerResponse(customer *crm.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Phone:     customer.Phone,
		Email:     customer.Email,
		Status:    string(customer.Status),
		Source:    customer.Source,
		Notes:     customer.Notes,
		DeletedAt: customer.DeletedAt,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
		Version:   customer.Version,
	}
}

// =============================================================================
// Property DTOs
// =============================================================================

// CreatePropertyRequest represents a request to add a property to a customer
type CreatePropertyRequest struct {
	CustomerID  uuid.UUID `json:"customer_id" binding:"required"`
	Street      string    `json:"street" binding:"required,max=300"`
	City        string    `json:"city" binding:"required,max=100"`
	State       string    `json:"state" binding:"required,len=2"`
	Zip         string    `json:"zip" binding:"required,min=5,max=10"`
	AccessNotes string    `json:"access_notes"`
	GateCode    string    `json:"gate_code" binding:"max=50"`
}

// UpdatePropertyRequest represents a request to update a property
type UpdatePropertyRequest struct {
	Street      *string `json:"street" binding:"omitempty,max=300"`
	City        *string `json:"city" binding:"omitempty,max=100"`
	State       *string `json:"state" binding:"omitempty,len=2"`
	Zip         *string `json:"zip" binding:"omitempty,min=5,max=10"`
	AccessNotes *string `json:"access_notes"`
	GateCode    *string `json:"gate_code" binding:"omitempty,max=50"`
}

// PropertyResponse represents a property in API responses
type PropertyResponse struct {
	ID          uuid.UUID `json:"id"`
	CustomerID  uuid.UUID `json:"customer_id"`
	Street      string    `json:"street"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Zip         string    `json:"zip"`
	FullAddress string    `json:"full_address"`
	AccessNotes string    `json:"access_notes"`
	GateCode    string    `json:"gate_code"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// ToPropertyResponse converts a domain property to an API response
func ToPropertyResponse(property *crm.Property) *PropertyResponse {
	return &PropertyResponse{
		ID:          property.ID,
		CustomerID:  property.CustomerID,
		Street:      property.Street,
		City:        property.City,
		State:       property.State,
		Zip:         property.Zip,
		FullAddress: property.FullAddress(),
		AccessNotes: property.AccessNotes,
		GateCode:    property.GateCode,
		CreatedAt:   property.CreatedAt,
		UpdatedAt:   property.UpdatedAt,
		Version:     property.Version,
	}
}

// =============================================================================
// Pool DTOs
// =============================================================================

// CreatePoolRequest represents a request to record a property's pool
type CreatePoolRequest struct {
	PropertyID     uuid.UUID `json:"property_id" binding:"required"`
	Kind           string    `json:"kind" binding:"required,oneof=inground above_ground spa"`
	Sanitizer      string    `json:"sanitizer" binding:"required,oneof=chlorine salt bromine"`
	VolumeGallons  int       `json:"volume_gallons" binding:"required,min=1"`
	Surface        string    `json:"surface" binding:"max=100"`
	EquipmentNotes string    `json:"equipment_notes"`
}

// UpdatePoolRequest represents a request to update a pool
type UpdatePoolRequest struct {
	Kind           *string `json:"kind" binding:"omitempty,oneof=inground above_ground spa"`
	Sanitizer      *string `json:"sanitizer" binding:"omitempty,oneof=chlorine salt bromine"`
	VolumeGallons  *int    `json:"volume_gallons" binding:"omitempty,min=1"`
	Surface        *string `json:"surface" binding:"omitempty,max=100"`
	EquipmentNotes *string `json:"equipment_notes"`
}

// PoolResponse represents a pool in API responses
type PoolResponse struct {
	ID             uuid.UUID `json:"id"`
	PropertyID     uuid.UUID `json:"property_id"`
	Kind           string    `json:"kind"`
	Sanitizer      string    `json:"sanitizer"`
	VolumeGallons  int       `json:"volume_gallons"`
	Surface        string    `json:"surface"`
	EquipmentNotes string    `json:"equipment_notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Version        int       `json:"version"`
}

// ToPoolResponse converts a domain pool to an API response
func ToPoolResponse(pool *crm.Pool) *PoolResponse {
	return &PoolResponse{
		ID:             pool.ID,
		PropertyID:     pool.PropertyID,
		Kind:           string(pool.Kind),
		Sanitizer:      string(pool.Sanitizer),
		VolumeGallons:  pool.VolumeGallons,
		Surface:        pool.Surface,
		EquipmentNotes: pool.EquipmentNotes,
		CreatedAt:      pool.CreatedAt,
		UpdatedAt:      pool.UpdatedAt,
		Version:        pool.Version,
	}
}

// =============================================================================
// Note DTOs
// =============================================================================

// CreateNoteRequest represents a request to add a note to a customer
type CreateNoteRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
	Body       string    `json:"body" binding:"required,max=10000"`
	Pinned     bool      `json:"pinned"`
}

// UpdateNoteRequest represents a request to update a note
type UpdateNoteRequest struct {
	Body   *string `json:"body" binding:"omitempty,max=10000"`
	Pinned *bool   `json:"pinned"`
}

// NoteResponse represents a note in API responses
type NoteResponse struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	Body       string    `json:"body"`
	Pinned     bool      `json:"pinned"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Version    int       `json:"version"`
}

// ToNoteResponse converts a domain note to an API response
func ToNoteResponse(note *crm.Note) *NoteResponse {
	return &NoteResponse{
		ID:         note.ID,
		CustomerID: note.CustomerID,
		AuthorID:   note.AuthorID,
		Body:       note.Body,
		Pinned:     note.Pinned,
		CreatedAt:  note.CreatedAt,
		UpdatedAt:  note.UpdatedAt,
		Version:    note.Version,
	}
}
