package models

import (
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/domain/contracts"
	"gorm.io/gorm"
)

// ContractModel is the GORM database model for contracts. Deletes are soft.
type ContractModel struct {
	ID              string         `gorm:"primaryKey;type:uuid"`
	OrganizationID  string         `gorm:"not null;index;type:uuid"`
	Title           string         `gorm:"not null;type:varchar(255)"`
	Counterparty    string         `gorm:"not null;index;type:varchar(255)"`
	Status          string         `gorm:"not null;index;type:varchar(20)"`
	TemplateID      *string        `gorm:"type:uuid;index"`
	OwnerID         string         `gorm:"not null;index;type:uuid"`
	CurrentVersion  int            `gorm:"not null"`
	Value           int64          `gorm:"not null"`
	Currency        string         `gorm:"not null;type:varchar(3)"`
	EffectiveDate   *time.Time     `gorm:"type:date"`
	ExpiryDate      *time.Time     `gorm:"type:date"`
	DateTimeCreated time.Time      `gorm:"not null"`
	DateTimeUpdated time.Time      `gorm:"not null"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (ContractModel) TableName() string {
	return "contracts"
}

// ToDomain converts GORM model to domain entity
func (m *ContractModel) ToDomain() *contracts.Contract {
	return &contracts.Contract{
		ID:              m.ID,
		OrganizationID:  m.OrganizationID,
		Title:           m.Title,
		Counterparty:    m.Counterparty,
		Status:          m.Status,
		TemplateID:      m.TemplateID,
		OwnerID:         m.OwnerID,
		CurrentVersion:  m.CurrentVersion,
		Value:           m.Value,
		Currency:        m.Currency,
		EffectiveDate:   m.EffectiveDate,
		ExpiryDate:      m.ExpiryDate,
		DateTimeCreated: m.DateTimeCreated,
		DateTimeUpdated: m.DateTimeUpdated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ContractModel) FromDomain(c *contracts.Contract) {
	m.ID = c.ID
	m.OrganizationID = c.OrganizationID
	m.Title = c.Title
	m.Counterparty = c.Counterparty
	m.Status = c.Status
	m.TemplateID = c.TemplateID
	m.OwnerID = c.OwnerID
	m.CurrentVersion = c.CurrentVersion
	m.Value = c.Value
	m.Currency = c.Currency
	m.EffectiveDate = c.EffectiveDate
	m.ExpiryDate = c.ExpiryDate
	m.DateTimeCreated = c.DateTimeCreated
	m.DateTimeUpdated = c.DateTimeUpdated
}
