package permissions

import "github.com/TheShield2594/vortexchat-sub001/internal/models"

// Snapshot is the resolved authority of one member at one point in time.
// It is computed from data the caller already holds and performs no I/O.
type Snapshot struct {
	IsOwner   bool
	Effective Permission
	IsAdmin   bool
}

// Resolve computes a member's effective guild-level authority.
//  1. OR together the permissions of every assigned role (none => 0).
//  2. The guild owner is an admin regardless of role assignments.
//  3. A member whose effective set includes ADMINISTRATOR is an admin.
//
// A user with no membership resolves to a zero Snapshot; absence is never an
// error at this layer.
func Resolve(ownerID, actorID int64, roles []models.Role) Snapshot {
	var effective Permission
	for _, role := range roles {
		effective = effective.Add(Permission(role.Permissions))
	}

	isOwner := actorID == ownerID
	return Snapshot{
		IsOwner:   isOwner,
		Effective: effective,
		IsAdmin:   isOwner || effective.Has(PermAdministrator),
	}
}

// Can reports whether the snapshot grants the given permission. Owners and
// administrators pass every check.
func (s Snapshot) Can(perm Permission) bool {
	if s.IsAdmin {
		return true
	}
	return s.Effective.Has(perm)
}
