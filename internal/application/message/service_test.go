package message

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"notehive/internal/domain/auth"
	"notehive/internal/domain/message"
	"notehive/internal/domain/workspace"
)

// mockMessageRepository implements message.Repository for testing
type mockMessageRepository struct {
	messages map[string]*message.Message
}

func newMockMessageRepository() *mockMessageRepository {
	return &mockMessageRepository{messages: make(map[string]*message.Message)}
}

func (m *mockMessageRepository) GetMessage(id string) (*message.Message, error) {
	if msg, exists := m.messages[id]; exists {
		return msg, nil
	}
	return nil, message.ErrMessageNotFound
}

func (m *mockMessageRepository) CreateMessage(msg *message.Message) error {
	m.messages[msg.ID] = msg
	return nil
}

func (m *mockMessageRepository) DeleteMessage(id string) error {
	delete(m.messages, id)
	return nil
}

func (m *mockMessageRepository) ListByWorkspace(workspaceID string, limit int, before time.Time) ([]*message.Message, error) {
	if before.IsZero() {
		before = time.Now().Add(time.Second)
	}
	var out []*message.Message
	for _, msg := range m.messages {
		if msg.WorkspaceID == workspaceID && msg.CreatedAt.Before(before) {
			out = append(out, msg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockMessageRepository) DeleteByWorkspace(workspaceID string) error {
	for id, msg := range m.messages {
		if msg.WorkspaceID == workspaceID {
			delete(m.messages, id)
		}
	}
	return nil
}

// mockWorkspaceRepository implements workspace.Repository for testing
type mockWorkspaceRepository struct {
	workspaces map[string]*workspace.Workspace
	touched    []time.Time
}

func (m *mockWorkspaceRepository) GetWorkspace(id string) (*workspace.Workspace, error) {
	if ws, exists := m.workspaces[id]; exists {
		return ws, nil
	}
	return nil, workspace.ErrWorkspaceNotFound
}

func (m *mockWorkspaceRepository) GetWorkspaceByName(name string) (*workspace.Workspace, error) {
	return nil, workspace.ErrWorkspaceNotFound
}
func (m *mockWorkspaceRepository) CreateWorkspace(ws *workspace.Workspace) error { return nil }
func (m *mockWorkspaceRepository) UpdateWorkspace(ws *workspace.Workspace) error { return nil }
func (m *mockWorkspaceRepository) DeleteWorkspace(id string) error               { return nil }
func (m *mockWorkspaceRepository) ListWorkspacesByMember(userID string) ([]*workspace.Workspace, error) {
	return nil, nil
}
func (m *mockWorkspaceRepository) TouchLatestMessage(id string, at time.Time) error {
	m.touched = append(m.touched, at)
	return nil
}

// mockUserRepository implements auth.Repository for testing
type mockUserRepository struct {
	users map[string]*auth.User
}

func (m *mockUserRepository) GetUser(id string) (*auth.User, error) {
	if u, exists := m.users[id]; exists {
		return u, nil
	}
	return nil, auth.ErrUserNotFound
}
func (m *mockUserRepository) GetUserByGoogleID(googleID string) (*auth.User, error) {
	return nil, auth.ErrUserNotFound
}
func (m *mockUserRepository) GetUserByEmail(email string) (*auth.User, error) {
	return nil, auth.ErrUserNotFound
}
func (m *mockUserRepository) CreateUser(u *auth.User) error { return nil }
func (m *mockUserRepository) UpdateUser(u *auth.User) error { return nil }
func (m *mockUserRepository) DeleteUser(id string) error    { return nil }
func (m *mockUserRepository) ListUsersByIDs(ids []string) ([]*auth.User, error) {
	var out []*auth.User
	for _, id := range ids {
		if u, exists := m.users[id]; exists {
			out = append(out, u)
		}
	}
	return out, nil
}

// recordingSender captures push notifications
type recordingSender struct {
	sent []string
}

func (r *recordingSender) Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	r.sent = append(r.sent, deviceToken)
	return nil
}

func newTestService() (*Service, *mockMessageRepository, *mockWorkspaceRepository, *recordingSender) {
	msgRepo := newMockMessageRepository()
	wsRepo := &mockWorkspaceRepository{workspaces: map[string]*workspace.Workspace{
		"ws-1": {ID: "ws-1", Name: "Team", OwnerID: "u1", Members: []string{"u1", "u2", "u3"}},
	}}
	userRepo := &mockUserRepository{users: map[string]*auth.User{
		"u1": {ID: "u1", Profile: auth.Profile{Name: "Alice"}, FCMToken: "alice-device"},
		"u2": {ID: "u2", Profile: auth.Profile{Name: "Bob"}, FCMToken: "bob-device"},
		"u3": {ID: "u3", Profile: auth.Profile{Name: "Carol"}},
	}}
	sender := &recordingSender{}
	return NewService(msgRepo, wsRepo, userRepo, sender), msgRepo, wsRepo, sender
}

func TestCreateRequiresMembership(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), "outsider", "ws-1", "hello")
	if !errors.Is(err, ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied, got %v", err)
	}
}

func TestCreateBumpsWorkspaceAndNotifiesOthers(t *testing.T) {
	svc, _, wsRepo, sender := newTestService()

	msg, err := svc.Create(context.Background(), "u1", "ws-1", "hello")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if msg.AuthorID != "u1" || msg.Content != "hello" {
		t.Errorf("unexpected message %+v", msg)
	}
	if len(wsRepo.touched) != 1 {
		t.Error("latest message timestamp not bumped")
	}
	// u2 has a device token, u3 does not, u1 is the author
	if len(sender.sent) != 1 || sender.sent[0] != "bob-device" {
		t.Errorf("expected one push to bob-device, got %v", sender.sent)
	}
}

func TestListNewestFirstWithCursor(t *testing.T) {
	svc, msgRepo, _, _ := newTestService()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		_ = msgRepo.CreateMessage(&message.Message{
			ID:          string(rune('a' + i)),
			WorkspaceID: "ws-1",
			AuthorID:    "u1",
			Content:     "m",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		})
	}

	page, err := svc.List(context.Background(), "u2", "ws-1", 3, time.Time{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(page))
	}
	for i := 1; i < len(page); i++ {
		if page[i].CreatedAt.After(page[i-1].CreatedAt) {
			t.Error("messages not in newest-first order")
		}
	}

	older, err := svc.List(context.Background(), "u2", "ws-1", 10, page[len(page)-1].CreatedAt)
	if err != nil {
		t.Fatalf("List with cursor failed: %v", err)
	}
	if len(older) != 2 {
		t.Errorf("expected 2 older messages, got %d", len(older))
	}
}

func TestListRequiresMembership(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.List(context.Background(), "outsider", "ws-1", 10, time.Time{})
	if !errors.Is(err, ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied, got %v", err)
	}
}

func TestDeleteByAuthorAndOwnerOnly(t *testing.T) {
	svc, msgRepo, _, _ := newTestService()

	msg, err := svc.Create(context.Background(), "u2", "ws-1", "delete me")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), "u3", msg.ID); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("non-author non-owner delete: expected ErrAccessDenied, got %v", err)
	}
	if err := svc.Delete(context.Background(), "u1", msg.ID); err != nil {
		t.Errorf("workspace owner delete failed: %v", err)
	}

	msg2, _ := svc.Create(context.Background(), "u2", "ws-1", "mine")
	if err := svc.Delete(context.Background(), "u2", msg2.ID); err != nil {
		t.Errorf("author delete failed: %v", err)
	}
	if len(msgRepo.messages) != 0 {
		t.Errorf("expected no messages left, got %d", len(msgRepo.messages))
	}
}
