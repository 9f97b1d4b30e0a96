// Package models holds the GORM rows behind each repository. Rows carry the
// column layout and indexes, and convert to and from domain entities with
// ToDomain and FromDomain so gorm tags never leak into internal/domain.
package models
