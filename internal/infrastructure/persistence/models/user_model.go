package models

import (
	"time"

	"github.com/rpsg-tech/clm-sub005/internal/domain/users"
)

// UserModel is the GORM database model for users. Email is unique per organization.
type UserModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	OrganizationID  string    `gorm:"not null;type:uuid;uniqueIndex:idx_users_org_email"`
	Email           string    `gorm:"not null;type:varchar(320);uniqueIndex:idx_users_org_email"`
	DisplayName     string    `gorm:"not null;type:varchar(255)"`
	Role            string    `gorm:"not null;index;type:varchar(20)"`
	PasswordHash    string    `gorm:"not null;type:varchar(100)"`
	Active          bool      `gorm:"not null"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts GORM model to domain entity
func (m *UserModel) ToDomain() *users.User {
	return &users.User{
		ID:              m.ID,
		OrganizationID:  m.OrganizationID,
		Email:           m.Email,
		DisplayName:     m.DisplayName,
		Role:            m.Role,
		PasswordHash:    m.PasswordHash,
		Active:          m.Active,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *UserModel) FromDomain(u *users.User) {
	m.ID = u.ID
	m.OrganizationID = u.OrganizationID
	m.Email = u.Email
	m.DisplayName = u.DisplayName
	m.Role = u.Role
	m.PasswordHash = u.PasswordHash
	m.Active = u.Active
	m.DateTimeCreated = u.DateTimeCreated
}
