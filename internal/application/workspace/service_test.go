package workspace

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"notehive/internal/domain/auth"
	"notehive/internal/domain/message"
	"notehive/internal/domain/note"
	"notehive/internal/domain/workspace"
)

// mockWorkspaceRepository implements workspace.Repository for testing
type mockWorkspaceRepository struct {
	workspaces map[string]*workspace.Workspace
}

func newMockWorkspaceRepository() *mockWorkspaceRepository {
	return &mockWorkspaceRepository{workspaces: make(map[string]*workspace.Workspace)}
}

func (m *mockWorkspaceRepository) GetWorkspace(id string) (*workspace.Workspace, error) {
	if ws, exists := m.workspaces[id]; exists {
		return ws, nil
	}
	return nil, workspace.ErrWorkspaceNotFound
}

func (m *mockWorkspaceRepository) GetWorkspaceByName(name string) (*workspace.Workspace, error) {
	for _, ws := range m.workspaces {
		if ws.Name == name {
			return ws, nil
		}
	}
	return nil, workspace.ErrWorkspaceNotFound
}

func (m *mockWorkspaceRepository) CreateWorkspace(ws *workspace.Workspace) error {
	m.workspaces[ws.ID] = ws
	return nil
}

func (m *mockWorkspaceRepository) UpdateWorkspace(ws *workspace.Workspace) error {
	if _, exists := m.workspaces[ws.ID]; !exists {
		return workspace.ErrWorkspaceNotFound
	}
	m.workspaces[ws.ID] = ws
	return nil
}

func (m *mockWorkspaceRepository) DeleteWorkspace(id string) error {
	delete(m.workspaces, id)
	return nil
}

func (m *mockWorkspaceRepository) ListWorkspacesByMember(userID string) ([]*workspace.Workspace, error) {
	var out []*workspace.Workspace
	for _, ws := range m.workspaces {
		if ws.IsMember(userID) {
			out = append(out, ws)
		}
	}
	return out, nil
}

func (m *mockWorkspaceRepository) TouchLatestMessage(id string, at time.Time) error {
	ws, exists := m.workspaces[id]
	if !exists {
		return workspace.ErrWorkspaceNotFound
	}
	ws.LatestMessageAt = at
	return nil
}

// mockUserRepository implements auth.Repository for testing
type mockUserRepository struct {
	users map[string]*auth.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*auth.User)}
}

func (m *mockUserRepository) GetUser(id string) (*auth.User, error) {
	if u, exists := m.users[id]; exists {
		return u, nil
	}
	return nil, auth.ErrUserNotFound
}

func (m *mockUserRepository) GetUserByGoogleID(googleID string) (*auth.User, error) {
	for _, u := range m.users {
		if u.GoogleID == googleID {
			return u, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (m *mockUserRepository) GetUserByEmail(email string) (*auth.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (m *mockUserRepository) CreateUser(u *auth.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) UpdateUser(u *auth.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepository) DeleteUser(id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepository) ListUsersByIDs(ids []string) ([]*auth.User, error) {
	var out []*auth.User
	for _, id := range ids {
		if u, exists := m.users[id]; exists {
			out = append(out, u)
		}
	}
	return out, nil
}

// mockNoteRepository implements note.Repository for testing
type mockNoteRepository struct {
	deletedWorkspaces []string
	tags              map[string][]string
}

func newMockNoteRepository() *mockNoteRepository {
	return &mockNoteRepository{tags: make(map[string][]string)}
}

func (m *mockNoteRepository) GetNote(id string) (*note.Note, error) { return nil, note.ErrNoteNotFound }
func (m *mockNoteRepository) CreateNote(n *note.Note) error         { return nil }
func (m *mockNoteRepository) UpdateNote(n *note.Note) error         { return nil }
func (m *mockNoteRepository) DeleteNote(id string) error            { return nil }
func (m *mockNoteRepository) FindByWorkspace(workspaceID string, f note.Filter) ([]*note.Note, error) {
	return nil, nil
}
func (m *mockNoteRepository) DistinctTags(workspaceID string) ([]string, error) {
	return m.tags[workspaceID], nil
}
func (m *mockNoteRepository) DeleteByWorkspace(workspaceID string) error {
	m.deletedWorkspaces = append(m.deletedWorkspaces, workspaceID)
	return nil
}
func (m *mockNoteRepository) DeleteByUser(userID string) error { return nil }

// mockMessageRepository implements message.Repository for testing
type mockMessageRepository struct {
	deletedWorkspaces []string
}

func (m *mockMessageRepository) GetMessage(id string) (*message.Message, error) {
	return nil, message.ErrMessageNotFound
}
func (m *mockMessageRepository) CreateMessage(msg *message.Message) error { return nil }
func (m *mockMessageRepository) DeleteMessage(id string) error            { return nil }
func (m *mockMessageRepository) ListByWorkspace(workspaceID string, limit int, before time.Time) ([]*message.Message, error) {
	return nil, nil
}
func (m *mockMessageRepository) DeleteByWorkspace(workspaceID string) error {
	m.deletedWorkspaces = append(m.deletedWorkspaces, workspaceID)
	return nil
}

// recordingSender captures push notifications
type recordingSender struct {
	sent []string // device tokens
}

func (r *recordingSender) Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	r.sent = append(r.sent, deviceToken)
	return nil
}

type fixture struct {
	svc      *Service
	wsRepo   *mockWorkspaceRepository
	userRepo *mockUserRepository
	noteRepo *mockNoteRepository
	msgRepo  *mockMessageRepository
	sender   *recordingSender
}

func newFixture() *fixture {
	f := &fixture{
		wsRepo:   newMockWorkspaceRepository(),
		userRepo: newMockUserRepository(),
		noteRepo: newMockNoteRepository(),
		msgRepo:  &mockMessageRepository{},
		sender:   &recordingSender{},
	}
	f.svc = NewService(f.wsRepo, f.userRepo, f.noteRepo, f.msgRepo, f.sender, nil)
	return f
}

func (f *fixture) addUser(id, name, fcmToken string) *auth.User {
	u := &auth.User{
		ID:       id,
		GoogleID: "g-" + id,
		Email:    fmt.Sprintf("%s@example.com", id),
		Profile:  auth.Profile{Name: name},
		FCMToken: fcmToken,
	}
	_ = f.userRepo.CreateUser(u)
	return u
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	f := newFixture()
	f.addUser("u1", "Alice", "")

	if _, err := f.svc.Create(context.Background(), "u1", workspace.CreateWorkspaceRequest{Name: "Shared"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := f.svc.Create(context.Background(), "u1", workspace.CreateWorkspaceRequest{Name: "Shared"})
	if !errors.Is(err, workspace.ErrNameTaken) {
		t.Errorf("expected ErrNameTaken, got %v", err)
	}
}

func TestListForUserExcludesPersonalWorkspace(t *testing.T) {
	f := newFixture()
	owner := f.addUser("u1", "Alice", "")

	personalID, err := f.svc.CreatePersonal(context.Background(), owner)
	if err != nil {
		t.Fatalf("CreatePersonal failed: %v", err)
	}
	owner.PersonalWorkspaceID = personalID

	shared, err := f.svc.Create(context.Background(), "u1", workspace.CreateWorkspaceRequest{Name: "Shared"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	list, err := f.svc.ListForUser(context.Background(), owner)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != shared.ID {
		t.Errorf("expected only the shared workspace, got %d entries", len(list))
	}
}

func TestInviteAddsMemberAndNotifies(t *testing.T) {
	f := newFixture()
	f.addUser("u1", "Alice", "")
	f.addUser("u2", "Bob", "bob-device")

	ws, err := f.svc.Create(context.Background(), "u1", workspace.CreateWorkspaceRequest{Name: "Shared"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := f.svc.Invite(context.Background(), ws.ID, "u1", "u2")
	if err != nil {
		t.Fatalf("Invite failed: %v", err)
	}
	if !updated.IsMember("u2") {
		t.Error("invitee should be a member")
	}
	if len(f.sender.sent) != 1 || f.sender.sent[0] != "bob-device" {
		t.Errorf("expected one push to bob-device, got %v", f.sender.sent)
	}

	_, err = f.svc.Invite(context.Background(), ws.ID, "u1", "u2")
	if !errors.Is(err, ErrAlreadyMember) {
		t.Errorf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestBannedUserCannotBeReinvited(t *testing.T) {
	f := newFixture()
	f.addUser("u1", "Alice", "")
	f.addUser("u2", "Bob", "")

	ws, _ := f.svc.Create(context.Background(), "u1", workspace.CreateWorkspaceRequest{Name: "Shared"})
	if _, err := f.svc.Invite(context.Background(), ws.ID, "u1", "u2"); err != nil {
		t.Fatalf("Invite failed: %v", err)
	}

	banned, err := f.svc.Ban(context.Background(), ws.ID, "u1", "u2")
	if err != nil {
		t.Fatalf("Ban failed: %v", err)
	}
	if banned.IsMember("u2") {
		t.Error("banned user should no longer be a member")
	}
	if !banned.IsBanned("u2") {
		t.Error("banned user should be recorded as banned")
	}

	_, err = f.svc.Invite(context.Background(), ws.ID, "u1", "u2")
	if !errors.Is(err, ErrUserBanned) {
		t.Errorf("expected ErrUserBanned, got %v", err)
	}
}

func TestOwnerCannotLeave(t *testing.T) {
	f := newFixture()
	f.addUser("u1", "Alice", "")

	ws, _ := f.svc.Create(context.Background(), "u1", workspace.CreateWorkspaceRequest{Name: "Shared"})
	err := f.svc.Leave(context.Background(), ws.ID, "u1")
	if !errors.Is(err, ErrOwnerCannotLeave) {
		t.Errorf("expected ErrOwnerCannotLeave, got %v", err)
	}
}

func TestBanRequiresOwner(t *testing.T) {
	f := newFixture()
	f.addUser("u1", "Alice", "")
	f.addUser("u2", "Bob", "")
	f.addUser("u3", "Carol", "")

	ws, _ := f.svc.Create(context.Background(), "u1", workspace.CreateWorkspaceRequest{Name: "Shared"})
	_, _ = f.svc.Invite(context.Background(), ws.ID, "u1", "u2")
	_, _ = f.svc.Invite(context.Background(), ws.ID, "u1", "u3")

	if _, err := f.svc.Ban(context.Background(), ws.ID, "u2", "u3"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}
	if _, err := f.svc.Ban(context.Background(), ws.ID, "u1", "u1"); !errors.Is(err, ErrNotOwner) {
		t.Errorf("owner must not be bannable, got %v", err)
	}
}

func TestDeleteCascadesNotesAndMessages(t *testing.T) {
	f := newFixture()
	f.addUser("u1", "Alice", "")

	ws, _ := f.svc.Create(context.Background(), "u1", workspace.CreateWorkspaceRequest{Name: "Shared"})

	if err := f.svc.Delete(context.Background(), ws.ID, "u1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(f.noteRepo.deletedWorkspaces) != 1 || f.noteRepo.deletedWorkspaces[0] != ws.ID {
		t.Error("workspace notes were not deleted")
	}
	if len(f.msgRepo.deletedWorkspaces) != 1 || f.msgRepo.deletedWorkspaces[0] != ws.ID {
		t.Error("workspace messages were not deleted")
	}
	if _, err := f.wsRepo.GetWorkspace(ws.ID); !errors.Is(err, workspace.ErrWorkspaceNotFound) {
		t.Error("workspace should be gone")
	}
}

func TestMembershipStatus(t *testing.T) {
	f := newFixture()
	f.addUser("u1", "Alice", "")
	f.addUser("u2", "Bob", "")
	f.addUser("u3", "Carol", "")

	ws, _ := f.svc.Create(context.Background(), "u1", workspace.CreateWorkspaceRequest{Name: "Shared"})
	_, _ = f.svc.Invite(context.Background(), ws.ID, "u1", "u2")
	_, _ = f.svc.Ban(context.Background(), ws.ID, "u1", "u2")

	cases := map[string]workspace.MembershipStatus{
		"u1": workspace.StatusOwner,
		"u2": workspace.StatusBanned,
		"u3": workspace.StatusNone,
	}
	for userID, want := range cases {
		got, err := f.svc.MembershipStatus(context.Background(), ws.ID, userID)
		if err != nil {
			t.Fatalf("MembershipStatus(%s) failed: %v", userID, err)
		}
		if got != want {
			t.Errorf("MembershipStatus(%s) = %s, want %s", userID, got, want)
		}
	}
}

func TestGetDeniedForNonMember(t *testing.T) {
	f := newFixture()
	f.addUser("u1", "Alice", "")
	f.addUser("u2", "Bob", "")

	ws, _ := f.svc.Create(context.Background(), "u1", workspace.CreateWorkspaceRequest{Name: "Shared"})
	if _, err := f.svc.Get(context.Background(), ws.ID, "u2"); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied, got %v", err)
	}
}
