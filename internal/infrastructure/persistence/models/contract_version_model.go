package models

import (
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/domain/versions"
	"gorm.io/datatypes"
)

// ContractVersionModel is the GORM database model for contract versions
type ContractVersionModel struct {
	ID              string         `gorm:"primaryKey;type:uuid"`
	ContractID      string         `gorm:"not null;type:uuid;uniqueIndex:idx_versions_contract_number"`
	Number          int            `gorm:"not null;uniqueIndex:idx_versions_contract_number"`
	OrganizationID  string         `gorm:"not null;index;type:uuid"`
	Snapshot        datatypes.JSON `gorm:"not null"`
	ContentHash     string         `gorm:"not null;type:varchar(71)"`
	AuthorID        string         `gorm:"not null;type:uuid"`
	Comment         string         `gorm:"type:varchar(500)"`
	DateTimeCreated time.Time      `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ContractVersionModel) TableName() string {
	return "contract_versions"
}

// ToDomain converts GORM model to domain entity
func (m *ContractVersionModel) ToDomain() *versions.ContractVersion {
	return &versions.ContractVersion{
		ID:              m.ID,
		ContractID:      m.ContractID,
		OrganizationID:  m.OrganizationID,
		Number:          m.Number,
		Snapshot:        []byte(m.Snapshot),
		ContentHash:     m.ContentHash,
		AuthorID:        m.AuthorID,
		Comment:         m.Comment,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ContractVersionModel) FromDomain(v *versions.ContractVersion) {
	m.ID = v.ID
	m.ContractID = v.ContractID
	m.OrganizationID = v.OrganizationID
	m.Number = v.Number
	m.Snapshot = datatypes.JSON(v.Snapshot)
	m.ContentHash = v.ContentHash
	m.AuthorID = v.AuthorID
	m.Comment = v.Comment
	m.DateTimeCreated = v.DateTimeCreated
}
