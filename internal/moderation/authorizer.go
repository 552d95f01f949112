package moderation

import (
	"github.com/TheShield2594/vortexchat-sub001/internal/permissions"
)

// Action identifies a privileged operation being authorized.
type Action string

const (
	ActionKick          Action = "kick"
	ActionTimeoutApply  Action = "timeout_apply"
	ActionTimeoutRemove Action = "timeout_remove"
	ActionRoleAssign    Action = "role_assign"
	ActionRoleRemove    Action = "role_remove"
	ActionMessagePin    Action = "message_pin"
	ActionMessageUnpin  Action = "message_unpin"
	ActionWebhookManage Action = "webhook_manage"
	ActionAutomodManage Action = "automod_manage"
	ActionAutomodRead   Action = "automod_read"
)

// Actor is the snapshot of the requesting member at decision time. The
// caller gathers it from storage; Authorize itself never performs I/O.
type Actor struct {
	UserID          int64
	IsMember        bool
	Snapshot        permissions.Snapshot
	HighestPosition int
}

// Target describes the member an action is aimed at, when the action has
// one. Actions without a member target (webhooks, automod rules) pass nil.
type Target struct {
	UserID          int64
	IsOwner         bool
	HighestPosition int
}

// Verdict is the outcome of an authorization decision. A denied verdict
// always carries the specific unmet requirement, never a generic refusal.
type Verdict struct {
	Allowed bool
	Code    string
	Message string
}

func allow() Verdict {
	return Verdict{Allowed: true}
}

func deny(code, message string) Verdict {
	return Verdict{Code: code, Message: message}
}

func missingPerm(perm permissions.Permission) Verdict {
	return deny("MISSING_PERMISSIONS", "requires the "+permissions.Name(perm)+" permission")
}

// Authorize decides whether actor may perform action on target. Existence
// checks (unknown guild, member, rule) belong to the caller and must happen
// before authorization; Authorize assumes every referenced entity exists.
//
// Kicks compare role hierarchy; timeout operations deliberately do not, so a
// MODERATE_MEMBERS holder can mute a peer of equal or higher rank. Automod
// rule mutation is reserved to the guild owner, stricter than ADMINISTRATOR.
func Authorize(action Action, actor Actor, target *Target) Verdict {
	switch action {
	case ActionKick:
		if target.IsOwner {
			return deny("OWNER_IMMUNE", "the guild owner cannot be kicked")
		}
		if actor.UserID == target.UserID {
			return deny("CANNOT_TARGET_SELF", "you cannot kick yourself")
		}
		if actor.Snapshot.IsOwner {
			return allow()
		}
		if !actor.Snapshot.Can(permissions.PermKickMembers) {
			return missingPerm(permissions.PermKickMembers)
		}
		if !permissions.Outranks(actor.HighestPosition, target.HighestPosition) {
			return deny("ROLE_HIERARCHY", "your highest role must be above the target's highest role")
		}
		return allow()

	case ActionTimeoutApply, ActionTimeoutRemove:
		if target.IsOwner {
			return deny("OWNER_IMMUNE", "the guild owner cannot be timed out")
		}
		if actor.Snapshot.IsOwner {
			return allow()
		}
		if !actor.Snapshot.Can(permissions.PermModerateMembers) {
			return missingPerm(permissions.PermModerateMembers)
		}
		return allow()

	case ActionRoleAssign, ActionRoleRemove:
		if actor.Snapshot.IsOwner {
			return allow()
		}
		if !actor.Snapshot.Can(permissions.PermManageRoles) {
			return missingPerm(permissions.PermManageRoles)
		}
		return allow()

	case ActionMessagePin, ActionMessageUnpin:
		if !actor.Snapshot.Can(permissions.PermManageMessages) {
			return missingPerm(permissions.PermManageMessages)
		}
		return allow()

	case ActionWebhookManage:
		if !actor.Snapshot.Can(permissions.PermManageWebhooks) {
			return missingPerm(permissions.PermManageWebhooks)
		}
		return allow()

	case ActionAutomodManage:
		if !actor.Snapshot.IsOwner {
			return deny("OWNER_ONLY", "automod rules can only be managed by the guild owner")
		}
		return allow()

	case ActionAutomodRead:
		if !actor.IsMember && !actor.Snapshot.IsOwner {
			return deny("NOT_A_MEMBER", "you are not a member of this guild")
		}
		return allow()
	}

	return deny("UNKNOWN_ACTION", "unknown moderation action")
}
