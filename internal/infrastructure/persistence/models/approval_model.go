package models

import (
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/domain/approvals"
)

// ApprovalModel is the GORM database model for approval steps
type ApprovalModel struct {
	ID              string `gorm:"primaryKey;type:uuid"`
	ContractID      string `gorm:"not null;index;type:uuid"`
	OrganizationID  string `gorm:"not null;index;type:uuid"`
	ApproverID      string `gorm:"not null;index;type:uuid"`
	Round           int    `gorm:"column:approval_round;not null"`
	Step            int    `gorm:"not null"`
	Decision        string `gorm:"not null;index;type:varchar(20)"`
	Comment         string `gorm:"type:varchar(1000)"`
	DecidedAt       *time.Time
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (ApprovalModel) TableName() string {
	return "approvals"
}

// ToDomain converts GORM model to domain entity
func (m *ApprovalModel) ToDomain() *approvals.Approval {
	return &approvals.Approval{
		ID:              m.ID,
		ContractID:      m.ContractID,
		OrganizationID:  m.OrganizationID,
		ApproverID:      m.ApproverID,
		Round:           m.Round,
		Step:            m.Step,
		Decision:        m.Decision,
		Comment:         m.Comment,
		DecidedAt:       m.DecidedAt,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ApprovalModel) FromDomain(a *approvals.Approval) {
	m.ID = a.ID
	m.ContractID = a.ContractID
	m.OrganizationID = a.OrganizationID
	m.ApproverID = a.ApproverID
	m.Round = a.Round
	m.Step = a.Step
	m.Decision = a.Decision
	m.Comment = a.Comment
	m.DecidedAt = a.DecidedAt
	m.DateTimeCreated = a.DateTimeCreated
}
