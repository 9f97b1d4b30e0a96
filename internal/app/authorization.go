package app

import (
	"fmt"

	"github.com/rpsg-tech/clm-sub005/internal/domain/clmerr"
	"github.com/rpsg-tech/clm-sub005/internal/domain/identity"
)

// requireRole fails with ErrForbidden unless actor holds one of roles
func requireRole(actor identity.Actor, roles ...string) error {
	if actor.OrganizationID == "" {
		return fmt.Errorf("%w: no organization in session", clmerr.ErrUnauthorized)
	}
	if !actor.HasRole(roles...) {
		return fmt.Errorf("%w: role %q may not perform this operation", clmerr.ErrForbidden, actor.Role)
	}
	return nil
}

// requireMember fails unless actor belongs to an organization
func requireMember(actor identity.Actor) error {
	if actor.OrganizationID == "" {
		return fmt.Errorf("%w: no organization in session", clmerr.ErrUnauthorized)
	}
	return nil
}
