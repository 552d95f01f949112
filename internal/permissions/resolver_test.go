package permissions

import (
	"testing"

	"github.com/TheShield2594/vortexchat-sub001/internal/models"
)

func role(perms Permission, position int) models.Role {
	return models.Role{Permissions: int64(perms), Position: position}
}

func TestResolve_NoRoles(t *testing.T) {
	snap := Resolve(1, 2, nil)
	if snap.IsOwner {
		t.Error("expected IsOwner to be false")
	}
	if snap.Effective != 0 {
		t.Errorf("Effective = %v, want 0", snap.Effective)
	}
	if snap.IsAdmin {
		t.Error("expected IsAdmin to be false")
	}
}

func TestResolve_ORsAllRoles(t *testing.T) {
	roles := []models.Role{
		role(PermViewChannel|PermSendMessages, 1),
		role(PermKickMembers, 3),
		role(PermModerateMembers|PermManageMessages, 2),
	}
	snap := Resolve(1, 2, roles)

	want := PermViewChannel | PermSendMessages | PermKickMembers | PermModerateMembers | PermManageMessages
	if snap.Effective != want {
		t.Errorf("Effective = %v, want %v", snap.Effective, want)
	}
	if snap.IsAdmin {
		t.Error("expected IsAdmin to be false without ADMINISTRATOR")
	}
}

func TestResolve_OrderIndependent(t *testing.T) {
	a := []models.Role{role(PermKickMembers, 1), role(PermManageRoles, 2), role(PermSendMessages, 3)}
	b := []models.Role{role(PermSendMessages, 3), role(PermKickMembers, 1), role(PermManageRoles, 2)}

	if Resolve(1, 2, a).Effective != Resolve(1, 2, b).Effective {
		t.Error("expected Resolve to be independent of role order")
	}
}

func TestResolve_OwnerIsAdmin(t *testing.T) {
	snap := Resolve(7, 7, nil)
	if !snap.IsOwner {
		t.Error("expected IsOwner to be true")
	}
	if !snap.IsAdmin {
		t.Error("expected owner to be admin with zero roles")
	}
	if snap.Effective != 0 {
		t.Errorf("Effective = %v, want 0 (ownership does not set bits)", snap.Effective)
	}
}

func TestResolve_AdministratorRole(t *testing.T) {
	snap := Resolve(1, 2, []models.Role{role(PermAdministrator, 5)})
	if snap.IsOwner {
		t.Error("expected IsOwner to be false")
	}
	if !snap.IsAdmin {
		t.Error("expected ADMINISTRATOR role to grant admin")
	}
}

func TestSnapshot_Can(t *testing.T) {
	member := Resolve(1, 2, []models.Role{role(PermKickMembers, 1)})
	if !member.Can(PermKickMembers) {
		t.Error("expected granted permission to pass")
	}
	if member.Can(PermManageRoles) {
		t.Error("expected missing permission to fail")
	}

	owner := Resolve(7, 7, nil)
	if !owner.Can(PermManageRoles) {
		t.Error("expected owner to pass every check")
	}

	admin := Resolve(1, 2, []models.Role{role(PermAdministrator, 1)})
	if !admin.Can(PermManageWebhooks) {
		t.Error("expected admin to pass every check")
	}
}

func TestHighestPosition(t *testing.T) {
	if got := HighestPosition(nil); got != 0 {
		t.Errorf("HighestPosition(nil) = %d, want 0", got)
	}
	roles := []models.Role{role(0, 2), role(0, 9), role(0, 4)}
	if got := HighestPosition(roles); got != 9 {
		t.Errorf("HighestPosition = %d, want 9", got)
	}
}

func TestOutranks(t *testing.T) {
	for p := 0; p < 5; p++ {
		if Outranks(p, p) {
			t.Errorf("Outranks(%d, %d) = true, want false for ties", p, p)
		}
		if !Outranks(p+1, p) {
			t.Errorf("Outranks(%d, %d) = false, want true", p+1, p)
		}
	}
	if Outranks(1, 3) {
		t.Error("expected lower position not to outrank higher")
	}
}
