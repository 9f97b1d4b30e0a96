// Package identity describes who is performing an operation.
package identity

// Actor is the authenticated caller of a service operation. Every tenant-owned
// read and write is scoped to OrganizationID.
type Actor struct {
	UserID         string
	OrganizationID string
	Role           string
	IPAddress      string
}

// IsSystem reports whether the actor is a maintenance process rather than a user.
func (a Actor) IsSystem() bool {
	return a.UserID == ""
}

// HasRole reports whether the actor holds one of roles.
func (a Actor) HasRole(roles ...string) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

// System returns an actor for maintenance work inside organizationID.
func System(organizationID string) Actor {
	return Actor{OrganizationID: organizationID, Role: "admin"}
}
