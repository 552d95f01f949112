package permissions

import "github.com/TheShield2594/vortexchat-sub001/internal/models"

// HighestPosition returns the maximum role position among the given roles,
// or 0 when the member has no roles.
func HighestPosition(roles []models.Role) int {
	highest := 0
	for _, r := range roles {
		if r.Position > highest {
			highest = r.Position
		}
	}
	return highest
}

// Outranks reports whether a member at actorPos may moderate a member at
// targetPos. The comparison is strict: equal positions never outrank, so
// same-rank members cannot kick each other. Owner and self-targeting cases
// bypass this check entirely and are handled by the caller.
func Outranks(actorPos, targetPos int) bool {
	return actorPos > targetPos
}
