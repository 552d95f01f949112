package api

import (
	"context"
	"io"
	"net/http/httptest"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/TheShield2594/vortexchat-sub001/internal/models"
	"github.com/TheShield2594/vortexchat-sub001/internal/service"
	"github.com/TheShield2594/vortexchat-sub001/internal/snowflake"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

func newTestContext(method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

func setAuthUser(c echo.Context, userID int64) {
	c.Set("user_id", userID)
}

func testSnowflake() *snowflake.Generator {
	sf, _ := snowflake.NewGenerator(1, 1)
	return sf
}

// ---------------------------------------------------------------------------
// Mock gateway dispatcher
// ---------------------------------------------------------------------------

type dispatchedEvent struct {
	GuildID      int64
	UserID       int64
	ExceptUserID int64
	Event        string
	Data         any
}

type mockGateway struct {
	mu     sync.Mutex
	events []dispatchedEvent
}

func (m *mockGateway) DispatchToGuild(guildID int64, event string, data interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, dispatchedEvent{GuildID: guildID, Event: event, Data: data})
}

func (m *mockGateway) DispatchToUser(userID int64, event string, data interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, dispatchedEvent{UserID: userID, Event: event, Data: data})
}

func (m *mockGateway) DispatchToGuildExcept(guildID int64, exceptUserID int64, event string, data interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, dispatchedEvent{GuildID: guildID, ExceptUserID: exceptUserID, Event: event, Data: data})
}

func (m *mockGateway) SubscribeToGuild(userID, guildID int64) {}

func (m *mockGateway) UnsubscribeFromGuild(userID, guildID int64) {}

func (m *mockGateway) eventNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.events))
	for i, ev := range m.events {
		names[i] = ev.Event
	}
	return names
}

// ---------------------------------------------------------------------------
// Mock repositories
// ---------------------------------------------------------------------------

// mockUserRepo implements database.UserRepository.
type mockUserRepo struct {
	CreateFn        func(ctx context.Context, user *models.User) error
	GetByIDFn       func(ctx context.Context, id int64) (*models.User, error)
	GetByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	UpdateFn        func(ctx context.Context, user *models.User) error
	DeleteFn        func(ctx context.Context, id int64) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// mockGuildRepo implements database.GuildRepository.
type mockGuildRepo struct {
	CreateFn      func(ctx context.Context, guild *models.Guild) error
	GetByIDFn     func(ctx context.Context, id int64) (*models.Guild, error)
	UpdateFn      func(ctx context.Context, guild *models.Guild) error
	DeleteFn      func(ctx context.Context, id int64) error
	GetByUserIDFn func(ctx context.Context, userID int64) ([]models.Guild, error)
}

func (m *mockGuildRepo) Create(ctx context.Context, guild *models.Guild) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, guild)
	}
	return nil
}

func (m *mockGuildRepo) GetByID(ctx context.Context, id int64) (*models.Guild, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockGuildRepo) Update(ctx context.Context, guild *models.Guild) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, guild)
	}
	return nil
}

func (m *mockGuildRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *mockGuildRepo) GetByUserID(ctx context.Context, userID int64) ([]models.Guild, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, nil
}

// mockMemberRepo implements database.MemberRepository.
type mockMemberRepo struct {
	CreateFn            func(ctx context.Context, member *models.Member) error
	GetByGuildAndUserFn func(ctx context.Context, guildID, userID int64) (*models.Member, error)
	GetByGuildIDFn      func(ctx context.Context, guildID int64, limit, offset int) ([]models.Member, error)
	UpdateFn            func(ctx context.Context, member *models.Member) error
	DeleteFn            func(ctx context.Context, guildID, userID int64) error
	AddRoleFn           func(ctx context.Context, guildID, userID, roleID int64) error
	RemoveRoleFn        func(ctx context.Context, guildID, userID, roleID int64) error
}

func (m *mockMemberRepo) Create(ctx context.Context, member *models.Member) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, member)
	}
	return nil
}

func (m *mockMemberRepo) GetByGuildAndUser(ctx context.Context, guildID, userID int64) (*models.Member, error) {
	if m.GetByGuildAndUserFn != nil {
		return m.GetByGuildAndUserFn(ctx, guildID, userID)
	}
	return nil, nil
}

func (m *mockMemberRepo) GetByGuildID(ctx context.Context, guildID int64, limit, offset int) ([]models.Member, error) {
	if m.GetByGuildIDFn != nil {
		return m.GetByGuildIDFn(ctx, guildID, limit, offset)
	}
	return nil, nil
}

func (m *mockMemberRepo) Update(ctx context.Context, member *models.Member) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, member)
	}
	return nil
}

func (m *mockMemberRepo) Delete(ctx context.Context, guildID, userID int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, guildID, userID)
	}
	return nil
}

func (m *mockMemberRepo) AddRole(ctx context.Context, guildID, userID, roleID int64) error {
	if m.AddRoleFn != nil {
		return m.AddRoleFn(ctx, guildID, userID, roleID)
	}
	return nil
}

func (m *mockMemberRepo) RemoveRole(ctx context.Context, guildID, userID, roleID int64) error {
	if m.RemoveRoleFn != nil {
		return m.RemoveRoleFn(ctx, guildID, userID, roleID)
	}
	return nil
}

// mockRoleRepo implements database.RoleRepository.
type mockRoleRepo struct {
	CreateFn       func(ctx context.Context, role *models.Role) error
	GetByIDFn      func(ctx context.Context, id int64) (*models.Role, error)
	GetByGuildIDFn func(ctx context.Context, guildID int64) ([]models.Role, error)
	UpdateFn       func(ctx context.Context, role *models.Role) error
	DeleteFn       func(ctx context.Context, id int64) error
	GetByMemberFn  func(ctx context.Context, guildID, userID int64) ([]models.Role, error)
}

func (m *mockRoleRepo) Create(ctx context.Context, role *models.Role) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, role)
	}
	return nil
}

func (m *mockRoleRepo) GetByID(ctx context.Context, id int64) (*models.Role, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockRoleRepo) GetByGuildID(ctx context.Context, guildID int64) ([]models.Role, error) {
	if m.GetByGuildIDFn != nil {
		return m.GetByGuildIDFn(ctx, guildID)
	}
	return nil, nil
}

func (m *mockRoleRepo) Update(ctx context.Context, role *models.Role) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, role)
	}
	return nil
}

func (m *mockRoleRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *mockRoleRepo) GetByMember(ctx context.Context, guildID, userID int64) ([]models.Role, error) {
	if m.GetByMemberFn != nil {
		return m.GetByMemberFn(ctx, guildID, userID)
	}
	return nil, nil
}

// mockTimeoutRepo implements database.TimeoutRepository.
type mockTimeoutRepo struct {
	UpsertFn       func(ctx context.Context, timeout *models.Timeout) error
	GetFn          func(ctx context.Context, guildID, userID int64) (*models.Timeout, error)
	GetByGuildIDFn func(ctx context.Context, guildID int64) ([]models.Timeout, error)
	DeleteFn       func(ctx context.Context, guildID, userID int64) error
}

func (m *mockTimeoutRepo) Upsert(ctx context.Context, timeout *models.Timeout) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, timeout)
	}
	return nil
}

func (m *mockTimeoutRepo) Get(ctx context.Context, guildID, userID int64) (*models.Timeout, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, guildID, userID)
	}
	return nil, nil
}

func (m *mockTimeoutRepo) GetByGuildID(ctx context.Context, guildID int64) ([]models.Timeout, error) {
	if m.GetByGuildIDFn != nil {
		return m.GetByGuildIDFn(ctx, guildID)
	}
	return nil, nil
}

func (m *mockTimeoutRepo) Delete(ctx context.Context, guildID, userID int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, guildID, userID)
	}
	return nil
}

// mockAutomodRepo implements database.AutomodRuleRepository.
type mockAutomodRepo struct {
	CreateFn       func(ctx context.Context, rule *models.AutomodRule) error
	GetByIDFn      func(ctx context.Context, guildID, ruleID int64) (*models.AutomodRule, error)
	GetByGuildIDFn func(ctx context.Context, guildID int64) ([]models.AutomodRule, error)
	UpdateFn       func(ctx context.Context, rule *models.AutomodRule) error
	DeleteFn       func(ctx context.Context, guildID, ruleID int64) error
}

func (m *mockAutomodRepo) Create(ctx context.Context, rule *models.AutomodRule) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, rule)
	}
	return nil
}

func (m *mockAutomodRepo) GetByID(ctx context.Context, guildID, ruleID int64) (*models.AutomodRule, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, guildID, ruleID)
	}
	return nil, nil
}

func (m *mockAutomodRepo) GetByGuildID(ctx context.Context, guildID int64) ([]models.AutomodRule, error) {
	if m.GetByGuildIDFn != nil {
		return m.GetByGuildIDFn(ctx, guildID)
	}
	return nil, nil
}

func (m *mockAutomodRepo) Update(ctx context.Context, rule *models.AutomodRule) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, rule)
	}
	return nil
}

func (m *mockAutomodRepo) Delete(ctx context.Context, guildID, ruleID int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, guildID, ruleID)
	}
	return nil
}

// mockMessageRepo implements database.MessageRepository.
type mockMessageRepo struct {
	CreateFn         func(ctx context.Context, msg *models.Message) error
	GetByIDFn        func(ctx context.Context, id int64) (*models.Message, error)
	GetByChannelIDFn func(ctx context.Context, channelID int64, before *int64, limit int) ([]models.Message, error)
	SetPinnedFn      func(ctx context.Context, id int64, pinned bool) error
	DeleteFn         func(ctx context.Context, id int64) error
}

func (m *mockMessageRepo) Create(ctx context.Context, msg *models.Message) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, msg)
	}
	return nil
}

func (m *mockMessageRepo) GetByID(ctx context.Context, id int64) (*models.Message, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockMessageRepo) GetByChannelID(ctx context.Context, channelID int64, before *int64, limit int) ([]models.Message, error) {
	if m.GetByChannelIDFn != nil {
		return m.GetByChannelIDFn(ctx, channelID, before, limit)
	}
	return nil, nil
}

func (m *mockMessageRepo) SetPinned(ctx context.Context, id int64, pinned bool) error {
	if m.SetPinnedFn != nil {
		return m.SetPinnedFn(ctx, id, pinned)
	}
	return nil
}

func (m *mockMessageRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// mockWebhookRepo implements database.WebhookRepository.
type mockWebhookRepo struct {
	CreateFn       func(ctx context.Context, webhook *models.Webhook) error
	GetByIDFn      func(ctx context.Context, id int64) (*models.Webhook, error)
	GetByGuildIDFn func(ctx context.Context, guildID int64) ([]models.Webhook, error)
	UpdateFn       func(ctx context.Context, webhook *models.Webhook) error
	DeleteFn       func(ctx context.Context, id int64) error
}

func (m *mockWebhookRepo) Create(ctx context.Context, webhook *models.Webhook) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, webhook)
	}
	return nil
}

func (m *mockWebhookRepo) GetByID(ctx context.Context, id int64) (*models.Webhook, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockWebhookRepo) GetByGuildID(ctx context.Context, guildID int64) ([]models.Webhook, error) {
	if m.GetByGuildIDFn != nil {
		return m.GetByGuildIDFn(ctx, guildID)
	}
	return nil, nil
}

func (m *mockWebhookRepo) Update(ctx context.Context, webhook *models.Webhook) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, webhook)
	}
	return nil
}

func (m *mockWebhookRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// mockAuditRepo implements database.AuditRepository.
type mockAuditRepo struct {
	mu      sync.Mutex
	entries []models.AuditEntry

	AppendFn       func(ctx context.Context, entry *models.AuditEntry) error
	GetByGuildIDFn func(ctx context.Context, guildID int64, limit int) ([]models.AuditEntry, error)
}

func (m *mockAuditRepo) Append(ctx context.Context, entry *models.AuditEntry) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockAuditRepo) GetByGuildID(ctx context.Context, guildID int64, limit int) ([]models.AuditEntry, error) {
	if m.GetByGuildIDFn != nil {
		return m.GetByGuildIDFn(ctx, guildID, limit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.AuditEntry(nil), m.entries...), nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

const (
	testGuildID  int64 = 100
	testOwnerID  int64 = 1
	testModID    int64 = 2
	testMemberID int64 = 3
)

// handlerFixture wires the permission checker over an in-fixture guild:
// user 1 owns the guild, user 2 is a moderator with an adjustable role,
// user 3 is a plain member.
type handlerFixture struct {
	guilds  *mockGuildRepo
	members *mockMemberRepo
	roles   *mockRoleRepo
	checker *service.PermissionChecker

	memberRoles map[int64][]models.Role
	nonMembers  map[int64]bool
}

func newHandlerFixture() *handlerFixture {
	f := &handlerFixture{
		memberRoles: map[int64][]models.Role{
			testModID: {{ID: 10, GuildID: testGuildID, Name: "mod", Permissions: 0, Position: 5}},
		},
		nonMembers: map[int64]bool{},
	}

	f.guilds = &mockGuildRepo{
		GetByIDFn: func(ctx context.Context, id int64) (*models.Guild, error) {
			if id != testGuildID {
				return nil, nil
			}
			return &models.Guild{ID: testGuildID, Name: "test", OwnerID: testOwnerID}, nil
		},
	}
	f.members = &mockMemberRepo{
		GetByGuildAndUserFn: func(ctx context.Context, guildID, userID int64) (*models.Member, error) {
			if guildID != testGuildID || f.nonMembers[userID] {
				return nil, nil
			}
			return &models.Member{GuildID: guildID, UserID: userID}, nil
		},
	}
	f.roles = &mockRoleRepo{
		GetByMemberFn: func(ctx context.Context, guildID, userID int64) ([]models.Role, error) {
			return f.memberRoles[userID], nil
		},
	}

	f.checker = service.NewPermissionChecker(f.guilds, f.members, f.roles)
	return f
}

// grant gives a user a single role with the given permissions and position.
func (f *handlerFixture) grant(userID int64, perms int64, position int) {
	f.memberRoles[userID] = []models.Role{{
		ID:          userID * 100,
		GuildID:     testGuildID,
		Permissions: perms,
		Position:    position,
	}}
}

func newTestRecorder() *service.AuditRecorder {
	return service.NewAuditRecorder(&mockAuditRepo{}, testSnowflake())
}
