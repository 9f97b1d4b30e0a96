package models

import (
	"encoding/json"
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/domain/audit"
	"gorm.io/datatypes"
)

// AuditLogModel is the GORM database model for audit rows
type AuditLogModel struct {
	ID              string         `gorm:"primaryKey;type:uuid"`
	OrganizationID  string         `gorm:"not null;index;type:uuid"`
	ActorID         *string        `gorm:"type:uuid;index"`
	Action          string         `gorm:"not null;index;type:varchar(64)"`
	ResourceType    string         `gorm:"not null;type:varchar(64);index:idx_audit_resource"`
	ResourceID      string         `gorm:"not null;type:varchar(64);index:idx_audit_resource"`
	Metadata        datatypes.JSON `gorm:"not null"`
	IPAddress       string         `gorm:"type:varchar(45)"`
	DateTimeCreated time.Time      `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToDomain converts GORM model to domain entity
func (m *AuditLogModel) ToDomain() *audit.AuditLog {
	metadata := map[string]interface{}{}
	if len(m.Metadata) > 0 {
		_ = json.Unmarshal(m.Metadata, &metadata)
	}
	return &audit.AuditLog{
		ID:              m.ID,
		OrganizationID:  m.OrganizationID,
		ActorID:         m.ActorID,
		Action:          m.Action,
		ResourceType:    m.ResourceType,
		ResourceID:      m.ResourceID,
		Metadata:        metadata,
		IPAddress:       m.IPAddress,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model. Metadata that cannot be
// encoded is an error because audit rows are never rewritten.
func (m *AuditLogModel) FromDomain(l *audit.AuditLog) error {
	metadata := l.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return err
	}

	m.ID = l.ID
	m.OrganizationID = l.OrganizationID
	m.ActorID = l.ActorID
	m.Action = l.Action
	m.ResourceType = l.ResourceType
	m.ResourceID = l.ResourceID
	m.Metadata = datatypes.JSON(data)
	m.IPAddress = l.IPAddress
	m.DateTimeCreated = l.DateTimeCreated
	return nil
}
