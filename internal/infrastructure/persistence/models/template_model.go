package models

import (
	"encoding/json"
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/domain/templates"
	"gorm.io/datatypes"
)

// TemplateModel is the GORM database model for contract templates
type TemplateModel struct {
	ID              string         `gorm:"primaryKey;type:uuid"`
	OrganizationID  string         `gorm:"not null;index;type:uuid"`
	Name            string         `gorm:"not null;type:varchar(255)"`
	Category        string         `gorm:"type:varchar(100);index"`
	Body            string         `gorm:"not null;type:text"`
	Variables       datatypes.JSON `gorm:"not null"`
	Active          bool           `gorm:"not null"`
	CreatedBy       string         `gorm:"not null;type:uuid"`
	DateTimeCreated time.Time      `gorm:"not null"`
	DateTimeUpdated time.Time      `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (TemplateModel) TableName() string {
	return "templates"
}

// ToDomain converts GORM model to domain entity
func (m *TemplateModel) ToDomain() *templates.Template {
	var variables []string
	if len(m.Variables) > 0 {
		// the column is only ever written by FromDomain
		_ = json.Unmarshal(m.Variables, &variables)
	}
	return &templates.Template{
		ID:              m.ID,
		OrganizationID:  m.OrganizationID,
		Name:            m.Name,
		Category:        m.Category,
		Body:            m.Body,
		Variables:       variables,
		Active:          m.Active,
		CreatedBy:       m.CreatedBy,
		DateTimeCreated: m.DateTimeCreated,
		DateTimeUpdated: m.DateTimeUpdated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *TemplateModel) FromDomain(t *templates.Template) {
	variables := t.Variables
	if variables == nil {
		variables = []string{}
	}
	data, _ := json.Marshal(variables)

	m.ID = t.ID
	m.OrganizationID = t.OrganizationID
	m.Name = t.Name
	m.Category = t.Category
	m.Body = t.Body
	m.Variables = datatypes.JSON(data)
	m.Active = t.Active
	m.CreatedBy = t.CreatedBy
	m.DateTimeCreated = t.DateTimeCreated
	m.DateTimeUpdated = t.DateTimeUpdated
}
