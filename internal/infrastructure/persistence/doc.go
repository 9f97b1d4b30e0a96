// Package persistence provides database repository implementations.
// It uses GORM as the ORM layer over PostgreSQL or SQLite. Every tenant-owned
// query is scoped by organization, and a UnitOfWork hands out repositories
// bound to one transaction.
package persistence
