package models

import (
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/domain/organizations"
)

// OrganizationModel is the GORM database model for tenants
type OrganizationModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	Name            string    `gorm:"not null;type:varchar(255)"`
	Slug            string    `gorm:"not null;uniqueIndex;type:varchar(63)"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (OrganizationModel) TableName() string {
	return "organizations"
}

// ToDomain converts GORM model to domain entity
func (m *OrganizationModel) ToDomain() *organizations.Organization {
	return &organizations.Organization{
		ID:              m.ID,
		Name:            m.Name,
		Slug:            m.Slug,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *OrganizationModel) FromDomain(o *organizations.Organization) {
	m.ID = o.ID
	m.Name = o.Name
	m.Slug = o.Slug
	m.DateTimeCreated = o.DateTimeCreated
}
