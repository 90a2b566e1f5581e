package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/poolcrm/backend/internal/domain/crm"
)

// CustomerModel is the persistence model for the Customer domain entity.
// DeletedAt is a plain nullable timestamp rather than gorm.DeletedAt so the
// repository stays in control of which queries see soft-deleted rows. Phone
// uniqueness is a partial index over non-deleted rows; it lives in the
// migration because struct tags cannot express the WHERE clause.
type CustomerModel struct {
	AggregateModel
	Name      string             `gorm:"type:varchar(200);not null"`
	Phone     string             `gorm:"type:varchar(20);not null;index"`
	Email     string             `gorm:"type:varchar(200);index"`
	Status    crm.CustomerStatus `gorm:"type:varchar(20);not null;default:'lead';index"`
	Source    string             `gorm:"type:varchar(50)"`
	Notes     string             `gorm:"type:text"`
	DeletedAt *time.Time         `gorm:"index"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *crm.Customer {
	return &crm.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Phone:             m.Phone,
		Email:             m.Email,
		Status:            m.Status,
		Source:            m.Source,
		Notes:             m.Notes,
		DeletedAt:         m.DeletedAt,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *crm.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Phone = c.Phone
	m.Email = c.Email
	m.Status = c.Status
	m.Source = c.Source
	m.Notes = c.Notes
	m.DeletedAt = c.DeletedAt
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *crm.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// PropertyModel is the persistence model for the Property domain entity.
type PropertyModel struct {
	AggregateModel
	CustomerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Street      string    `gorm:"type:varchar(200);not null"`
	City        string    `gorm:"type:varchar(100);not null"`
	State       string    `gorm:"type:varchar(2);not null"`
	Zip         string    `gorm:"type:varchar(10);not null"`
	AccessNotes string    `gorm:"type:text"`
	GateCode    string    `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property entity.
func (m *PropertyModel) ToDomain() *crm.Property {
	return &crm.Property{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CustomerID:        m.CustomerID,
		Street:            m.Street,
		City:              m.City,
		State:             m.State,
		Zip:               m.Zip,
		AccessNotes:       m.AccessNotes,
		GateCode:          m.GateCode,
	}
}

// FromDomain populates the persistence model from a domain Property entity.
func (m *PropertyModel) FromDomain(p *crm.Property) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.CustomerID = p.CustomerID
	m.Street = p.Street
	m.City = p.City
	m.State = p.State
	m.Zip = p.Zip
	m.AccessNotes = p.AccessNotes
	m.GateCode = p.GateCode
}

// PropertyModelFromDomain creates a new persistence model from a domain Property entity.
func PropertyModelFromDomain(p *crm.Property) *PropertyModel {
	m := &PropertyModel{}
	m.FromDomain(p)
	return m
}

// PoolModel is the persistence model for the Pool domain entity.
// The unique index on property_id enforces one pool per property.
type PoolModel struct {
	AggregateModel
	PropertyID     uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex"`
	Kind           crm.PoolKind  `gorm:"type:varchar(20);not null"`
	Sanitizer      crm.Sanitizer `gorm:"type:varchar(20);not null"`
	VolumeGallons  int           `gorm:"not null"`
	Surface        string        `gorm:"type:varchar(50)"`
	EquipmentNotes string        `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PoolModel) TableName() string {
	return "pools"
}

// ToDomain converts the persistence model to a domain Pool entity.
func (m *PoolModel) ToDomain() *crm.Pool {
	return &crm.Pool{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		PropertyID:        m.PropertyID,
		Kind:              m.Kind,
		Sanitizer:         m.Sanitizer,
		VolumeGallons:     m.VolumeGallons,
		Surface:           m.Surface,
		EquipmentNotes:    m.EquipmentNotes,
	}
}

// FromDomain populates the persistence model from a domain Pool entity.
func (m *PoolModel) FromDomain(p *crm.Pool) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.PropertyID = p.PropertyID
	m.Kind = p.Kind
	m.Sanitizer = p.Sanitizer
	m.VolumeGallons = p.VolumeGallons
	m.Surface = p.Surface
	m.EquipmentNotes = p.EquipmentNotes
}

// PoolModelFromDomain creates a new persistence model from a domain Pool entity.
func PoolModelFromDomain(p *crm.Pool) *PoolModel {
	m := &PoolModel{}
	m.FromDomain(p)
	return m
}

// NoteModel is the persistence model for the Note domain entity.
type NoteModel struct {
	AggregateModel
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null"`
	Body       string    `gorm:"type:text;not null"`
	Pinned     bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (NoteModel) TableName() string {
	return "notes"
}

// ToDomain converts the persistence model to a domain Note entity.
func (m *NoteModel) ToDomain() *crm.Note {
	return &crm.Note{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CustomerID:        m.CustomerID,
		AuthorID:          m.AuthorID,
		Body:              m.Body,
		Pinned:            m.Pinned,
	}
}

// FromDomain populates the persistence model from a domain Note entity.
func (m *NoteModel) FromDomain(n *crm.Note) {
	m.FromDomainAggregateRoot(n.BaseAggregateRoot)
	m.CustomerID = n.CustomerID
	m.AuthorID = n.AuthorID
	m.Body = n.Body
	m.Pinned = n.Pinned
}

// NoteModelFromDomain creates a new persistence model from a domain Note entity.
func NoteModelFromDomain(n *crm.Note) *NoteModel {
	m := &NoteModel{}
	m.FromDomain(n)
	return m
}
