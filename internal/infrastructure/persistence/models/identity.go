package models

import (
	"time"

	"github.com/poolcrm/backend/internal/domain/identity"
)

// AdminModel is the persistence model for the Admin domain entity.
type AdminModel struct {
	AggregateModel
	Email        string             `gorm:"type:varchar(200);not null;uniqueIndex"`
	FullName     string             `gorm:"type:varchar(200);not null"`
	PasswordHash string             `gorm:"type:varchar(255);not null"`
	Role         identity.AdminRole `gorm:"type:varchar(20);not null;default:'staff'"`
	Active       bool               `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (AdminModel) TableName() string {
	return "admins"
}

// ToDomain converts the persistence model to a domain Admin entity.
func (m *AdminModel) ToDomain() *identity.Admin {
	return &identity.Admin{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Email:             m.Email,
		FullName:          m.FullName,
		PasswordHash:      m.PasswordHash,
		Role:              m.Role,
		Active:            m.Active,
		LastLoginAt:       m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain Admin entity.
func (m *AdminModel) FromDomain(a *identity.Admin) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Email = a.Email
	m.FullName = a.FullName
	m.PasswordHash = a.PasswordHash
	m.Role = a.Role
	m.Active = a.Active
	m.LastLoginAt = a.LastLoginAt
}

// AdminModelFromDomain creates a new persistence model from a domain Admin entity.
func AdminModelFromDomain(a *identity.Admin) *AdminModel {
	m := &AdminModel{}
	m.FromDomain(a)
	return m
}
