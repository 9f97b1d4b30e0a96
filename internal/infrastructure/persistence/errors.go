package persistence

import (
	"errors"
	"fmt"

	"github.com/rpsg-tech/clm-sub005/internal/domain/clmerr"
	"gorm.io/gorm"
)

// translateError maps gorm errors onto the domain sentinels
func translateError(err error, op, entity, id string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s with ID %s %w", entity, id, clmerr.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s %s already exists: %w", entity, id, clmerr.ErrConflict)
	default:
		return fmt.Errorf("failed to %s %s: %w", op, entity, err)
	}
}

func applyPaging(q *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	if sortBy != "" {
		order := sortOrder
		if order == "" {
			order = "asc"
		}
		q = q.Order(fmt.Sprintf("%s %s", sortBy, order))
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	return q
}
