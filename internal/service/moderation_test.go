package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/TheShield2594/vortexchat-sub001/internal/models"
	"github.com/TheShield2594/vortexchat-sub001/internal/permissions"
)

func newModerationService(f *testFixture, timeouts *mockTimeoutRepo) *ModerationService {
	recorder, _ := newTestRecorder()
	return NewModerationService(f.members, timeouts, f.checker, recorder)
}

func TestKickMember_RequiresPermission(t *testing.T) {
	f := newTestFixture()
	svc := newModerationService(f, &mockTimeoutRepo{})

	// testMemberID has no roles at all.
	err := svc.KickMember(context.Background(), testGuildID, testMemberID, testModID, nil)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected Forbidden, got %v", err)
	}
	var serr *ServiceError
	if !errors.As(err, &serr) || serr.Code != "MISSING_PERMISSIONS" {
		t.Errorf("expected MISSING_PERMISSIONS, got %+v", serr)
	}
}

func TestKickMember_EqualRankFails(t *testing.T) {
	f := newTestFixture()
	f.grant(testModID, int64(permissions.PermKickMembers), 5)
	f.grant(testMemberID, 0, 5)
	svc := newModerationService(f, &mockTimeoutRepo{})

	err := svc.KickMember(context.Background(), testGuildID, testModID, testMemberID, nil)
	if !errors.Is(err, ErrRoleHierarchy) {
		t.Fatalf("expected RoleHierarchy, got %v", err)
	}
}

func TestKickMember_HigherRankSucceeds(t *testing.T) {
	f := newTestFixture()
	f.grant(testModID, int64(permissions.PermKickMembers), 5)
	f.grant(testMemberID, 0, 4)

	deleted := false
	f.members.DeleteFn = func(ctx context.Context, guildID, userID int64) error {
		if guildID != testGuildID || userID != testMemberID {
			t.Errorf("Delete(%d, %d)", guildID, userID)
		}
		deleted = true
		return nil
	}
	svc := newModerationService(f, &mockTimeoutRepo{})

	if err := svc.KickMember(context.Background(), testGuildID, testModID, testMemberID, nil); err != nil {
		t.Fatalf("KickMember: %v", err)
	}
	if !deleted {
		t.Error("member was not deleted")
	}
}

func TestKickMember_OwnerImmune(t *testing.T) {
	f := newTestFixture()
	f.grant(testModID, int64(permissions.PermAdministrator), 5)
	svc := newModerationService(f, &mockTimeoutRepo{})

	err := svc.KickMember(context.Background(), testGuildID, testModID, testOwnerID, nil)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected Forbidden, got %v", err)
	}
	var serr *ServiceError
	if !errors.As(err, &serr) || serr.Code != "OWNER_IMMUNE" {
		t.Errorf("expected OWNER_IMMUNE, got %+v", serr)
	}
}

func TestKickMember_SelfFails(t *testing.T) {
	f := newTestFixture()
	f.grant(testModID, int64(permissions.PermKickMembers), 5)
	svc := newModerationService(f, &mockTimeoutRepo{})

	err := svc.KickMember(context.Background(), testGuildID, testModID, testModID, nil)
	var serr *ServiceError
	if !errors.As(err, &serr) || serr.Code != "CANNOT_TARGET_SELF" {
		t.Errorf("expected CANNOT_TARGET_SELF, got %v", err)
	}
}

func TestKickMember_TargetNotMember(t *testing.T) {
	f := newTestFixture()
	f.grant(testModID, int64(permissions.PermKickMembers), 5)
	f.nonMembers[testMemberID] = true
	svc := newModerationService(f, &mockTimeoutRepo{})

	err := svc.KickMember(context.Background(), testGuildID, testModID, testMemberID, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestApplyTimeout_IgnoresHierarchy(t *testing.T) {
	f := newTestFixture()
	// Moderator is below the target but holds MODERATE_MEMBERS.
	f.grant(testModID, int64(permissions.PermModerateMembers), 2)
	f.grant(testMemberID, 0, 9)

	var stored *models.Timeout
	timeouts := &mockTimeoutRepo{
		UpsertFn: func(ctx context.Context, timeout *models.Timeout) error {
			stored = timeout
			return nil
		},
	}
	svc := newModerationService(f, timeouts)

	reason := "spamming"
	timeout, err := svc.ApplyTimeout(context.Background(), testGuildID, testModID, testMemberID, 600, &reason)
	if err != nil {
		t.Fatalf("ApplyTimeout: %v", err)
	}
	if stored == nil {
		t.Fatal("timeout was not stored")
	}
	if timeout.ModeratorID != testModID {
		t.Errorf("ModeratorID = %d, want %d", timeout.ModeratorID, testModID)
	}
	want := time.Now().Add(600 * time.Second)
	if diff := timeout.Until.Sub(want); diff < -time.Second || diff > time.Second {
		t.Errorf("Until = %v, want about %v", timeout.Until, want)
	}
}

func TestApplyTimeout_ReplacesExisting(t *testing.T) {
	f := newTestFixture()
	f.grant(testModID, int64(permissions.PermModerateMembers), 5)

	var upserts []*models.Timeout
	timeouts := &mockTimeoutRepo{
		UpsertFn: func(ctx context.Context, timeout *models.Timeout) error {
			upserts = append(upserts, timeout)
			return nil
		},
	}
	svc := newModerationService(f, timeouts)
	ctx := context.Background()

	if _, err := svc.ApplyTimeout(ctx, testGuildID, testModID, testMemberID, 3600, nil); err != nil {
		t.Fatalf("first ApplyTimeout: %v", err)
	}
	// Shortening the timeout is a replacement, not an error.
	second, err := svc.ApplyTimeout(ctx, testGuildID, testModID, testMemberID, 60, nil)
	if err != nil {
		t.Fatalf("second ApplyTimeout: %v", err)
	}
	if len(upserts) != 2 {
		t.Fatalf("expected 2 upserts, got %d", len(upserts))
	}
	if !second.Until.Before(upserts[0].Until) {
		t.Error("second timeout should expire before the first")
	}
}

func TestApplyTimeout_InvalidDuration(t *testing.T) {
	f := newTestFixture()
	f.grant(testModID, int64(permissions.PermModerateMembers), 5)
	svc := newModerationService(f, &mockTimeoutRepo{})
	ctx := context.Background()

	for _, seconds := range []int64{0, -5} {
		_, err := svc.ApplyTimeout(ctx, testGuildID, testModID, testMemberID, seconds, nil)
		if !errors.Is(err, ErrBadRequest) {
			t.Errorf("duration %d: expected BadRequest, got %v", seconds, err)
		}
	}

	over := int64(MaxTimeoutDuration/time.Second) + 1
	if _, err := svc.ApplyTimeout(ctx, testGuildID, testModID, testMemberID, over, nil); !errors.Is(err, ErrBadRequest) {
		t.Errorf("expected BadRequest for over-long duration, got %v", err)
	}
}

func TestApplyTimeout_OwnerImmune(t *testing.T) {
	f := newTestFixture()
	f.grant(testModID, int64(permissions.PermModerateMembers), 5)
	svc := newModerationService(f, &mockTimeoutRepo{})

	_, err := svc.ApplyTimeout(context.Background(), testGuildID, testModID, testOwnerID, 60, nil)
	var serr *ServiceError
	if !errors.As(err, &serr) || serr.Code != "OWNER_IMMUNE" {
		t.Errorf("expected OWNER_IMMUNE, got %v", err)
	}
}

func TestRemoveTimeout_ExpiredIsNotFound(t *testing.T) {
	f := newTestFixture()
	f.grant(testModID, int64(permissions.PermModerateMembers), 5)

	timeouts := &mockTimeoutRepo{
		GetFn: func(ctx context.Context, guildID, userID int64) (*models.Timeout, error) {
			return &models.Timeout{
				GuildID: guildID,
				UserID:  userID,
				Until:   time.Now().Add(-time.Minute),
			}, nil
		},
	}
	svc := newModerationService(f, timeouts)

	err := svc.RemoveTimeout(context.Background(), testGuildID, testModID, testMemberID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected NotFound for expired timeout, got %v", err)
	}
}

func TestRemoveTimeout_Active(t *testing.T) {
	f := newTestFixture()
	f.grant(testModID, int64(permissions.PermModerateMembers), 5)

	deleted := false
	timeouts := &mockTimeoutRepo{
		GetFn: func(ctx context.Context, guildID, userID int64) (*models.Timeout, error) {
			return &models.Timeout{GuildID: guildID, UserID: userID, Until: time.Now().Add(time.Hour)}, nil
		},
		DeleteFn: func(ctx context.Context, guildID, userID int64) error {
			deleted = true
			return nil
		},
	}
	svc := newModerationService(f, timeouts)

	if err := svc.RemoveTimeout(context.Background(), testGuildID, testModID, testMemberID); err != nil {
		t.Fatalf("RemoveTimeout: %v", err)
	}
	if !deleted {
		t.Error("timeout row was not deleted")
	}
}

func TestGetTimeout_ExpiredReportsNone(t *testing.T) {
	f := newTestFixture()

	timeouts := &mockTimeoutRepo{
		GetFn: func(ctx context.Context, guildID, userID int64) (*models.Timeout, error) {
			return &models.Timeout{GuildID: guildID, UserID: userID, Until: time.Now().Add(-time.Second)}, nil
		},
	}
	svc := newModerationService(f, timeouts)

	timeout, err := svc.GetTimeout(context.Background(), testGuildID, testMemberID, testMemberID)
	if err != nil {
		t.Fatalf("GetTimeout: %v", err)
	}
	if timeout != nil {
		t.Errorf("expected nil for expired timeout, got %+v", timeout)
	}
}

func TestListTimeouts_FiltersExpired(t *testing.T) {
	f := newTestFixture()
	f.grant(testModID, int64(permissions.PermModerateMembers), 5)

	timeouts := &mockTimeoutRepo{
		GetByGuildIDFn: func(ctx context.Context, guildID int64) ([]models.Timeout, error) {
			return []models.Timeout{
				{GuildID: guildID, UserID: 50, Until: time.Now().Add(time.Hour)},
				{GuildID: guildID, UserID: 51, Until: time.Now().Add(-time.Hour)},
				{GuildID: guildID, UserID: 52, Until: time.Now().Add(time.Minute)},
			}, nil
		},
	}
	svc := newModerationService(f, timeouts)

	active, err := svc.ListTimeouts(context.Background(), testGuildID, testModID)
	if err != nil {
		t.Fatalf("ListTimeouts: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active timeouts, got %d", len(active))
	}
	for _, timeout := range active {
		if timeout.UserID == 51 {
			t.Error("expired timeout leaked into the listing")
		}
	}
}

func TestListTimeouts_RequiresModerate(t *testing.T) {
	f := newTestFixture()
	svc := newModerationService(f, &mockTimeoutRepo{})

	_, err := svc.ListTimeouts(context.Background(), testGuildID, testMemberID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected Forbidden, got %v", err)
	}
}
