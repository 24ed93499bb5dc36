package account

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/hitoshi/timejoy/internal/model"
	"github.com/hitoshi/timejoy/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	return NewService(st, NewSessionStore(), ServiceConfig{SessionMaxAge: 3600}), st
}

func apiErrCode(t *testing.T, err error) string {
	t.Helper()
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is not *model.APIError: %v", err)
	}
	return apiErr.Code
}

func TestRegister(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	user, session, err := svc.Register(ctx, "hitoshi", "hitoshi@example.com")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == "" {
		t.Error("user ID should not be empty")
	}
	if user.Role != model.RoleUser {
		t.Errorf("Role = %v, want %v", user.Role, model.RoleUser)
	}
	if session == nil || session.ID == "" {
		t.Fatal("session should be created")
	}
	if len(session.ID) != 64 {
		t.Errorf("session ID length = %d, want 64", len(session.ID))
	}

	active := st.CurrentUser()
	if active == nil || active.ID != user.ID {
		t.Error("registered user should become the active profile")
	}
}

func TestRegisterAdminRole(t *testing.T) {
	svc, st := newTestService(t)

	// シードの管理者プロファイルとユーザー名が衝突しないよう空にしておく
	if err := st.Update(func(doc *store.Document) error {
		doc.Users = nil
		doc.User = nil
		return nil
	}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	tests := []struct {
		username string
		email    string
		want     model.Role
	}{
		{"hitoshi", "hitoshi@example.com", model.RoleUser},
		{"ADMIN", "boss@example.com", model.RoleAdmin},
	}
	for _, tt := range tests {
		user, _, err := svc.Register(context.Background(), tt.username, tt.email)
		if err != nil {
			t.Fatalf("Register(%q) error = %v", tt.username, err)
		}
		if user.Role != tt.want {
			t.Errorf("Register(%q) Role = %v, want %v", tt.username, user.Role, tt.want)
		}
	}
}

func TestRegisterDuplicates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "hitoshi", "hitoshi@example.com"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// メールアドレスは大文字小文字を無視して重複扱い
	_, _, err := svc.Register(ctx, "other", "HITOSHI@example.com")
	if code := apiErrCode(t, err); code != model.ErrCodeEmailTaken {
		t.Errorf("code = %v, want %v", code, model.ErrCodeEmailTaken)
	}

	_, _, err = svc.Register(ctx, "Hitoshi", "another@example.com")
	if code := apiErrCode(t, err); code != model.ErrCodeUsernameTaken {
		t.Errorf("code = %v, want %v", code, model.ErrCodeUsernameTaken)
	}
}

func TestLogin(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "hitoshi", "hitoshi@example.com"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := svc.Logout(ctx, "dummy"); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	user, session, err := svc.Login(ctx, "hitoshi", "hitoshi@example.com")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if user.Username != "hitoshi" {
		t.Errorf("Username = %v, want hitoshi", user.Username)
	}
	if session == nil {
		t.Fatal("session should be created")
	}
	if active := st.CurrentUser(); active == nil || active.ID != user.ID {
		t.Error("login should set the active profile")
	}
}

// TestLoginInvalidatesPreviousSession は再ログインで古いセッションが
// 破棄され、アクティブなセッションが常に1つに保たれることを検証する。
func TestLoginInvalidatesPreviousSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, first, err := svc.Register(ctx, "hitoshi", "hitoshi@example.com")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, second, err := svc.Login(ctx, "hitoshi", "hitoshi@example.com")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if _, err := svc.CurrentUser(ctx, first.ID); err == nil {
		t.Error("old session should be invalid after re-login")
	}
	if _, err := svc.CurrentUser(ctx, second.ID); err != nil {
		t.Errorf("new session should be valid: %v", err)
	}
}

func TestLoginErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "hitoshi", "hitoshi@example.com"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, _, err := svc.Login(ctx, "hitoshi", "nobody@example.com")
	if code := apiErrCode(t, err); code != model.ErrCodeUserNotFound {
		t.Errorf("code = %v, want %v", code, model.ErrCodeUserNotFound)
	}

	_, _, err = svc.Login(ctx, "wrongname", "hitoshi@example.com")
	if code := apiErrCode(t, err); code != model.ErrCodeCredentialMismatch {
		t.Errorf("code = %v, want %v", code, model.ErrCodeCredentialMismatch)
	}
}

func TestLogout(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	_, session, err := svc.Register(ctx, "hitoshi", "hitoshi@example.com")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := svc.Logout(ctx, session.ID); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if st.CurrentUser() != nil {
		t.Error("active profile should be cleared after logout")
	}
	if _, err := svc.CurrentUser(ctx, session.ID); err == nil {
		t.Error("session should be invalid after logout")
	}
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, session, err := svc.Register(ctx, "hitoshi", "hitoshi@example.com")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	got, err := svc.CurrentUser(ctx, session.ID)
	if err != nil {
		t.Fatalf("CurrentUser() error = %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("ID = %v, want %v", got.ID, user.ID)
	}

	if _, err := svc.CurrentUser(ctx, "unknown-session"); err == nil {
		t.Error("unknown session should return an error")
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "hitoshi", "hitoshi@example.com")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	updated, err := svc.UpdateProfile(ctx, user.ID, "ichikawa", "")
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if updated.Username != "ichikawa" {
		t.Errorf("Username = %v, want ichikawa", updated.Username)
	}
	if updated.Email != "hitoshi@example.com" {
		t.Errorf("Email = %v, want unchanged", updated.Email)
	}
	if active := st.CurrentUser(); active == nil || active.Username != "ichikawa" {
		t.Error("active profile should reflect the update")
	}

	// 自分自身の既存値は重複扱いにしない
	if _, err := svc.UpdateProfile(ctx, user.ID, "ichikawa", "hitoshi@example.com"); err != nil {
		t.Errorf("UpdateProfile() with own values error = %v", err)
	}
}

func TestUpdateProfileConflicts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "hitoshi", "hitoshi@example.com")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, _, err := svc.Register(ctx, "other", "other@example.com"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err = svc.UpdateProfile(ctx, user.ID, "", "Other@example.com")
	if code := apiErrCode(t, err); code != model.ErrCodeEmailTaken {
		t.Errorf("code = %v, want %v", code, model.ErrCodeEmailTaken)
	}

	_, err = svc.UpdateProfile(ctx, user.ID, "OTHER", "")
	if code := apiErrCode(t, err); code != model.ErrCodeUsernameTaken {
		t.Errorf("code = %v, want %v", code, model.ErrCodeUsernameTaken)
	}

	_, err = svc.UpdateProfile(ctx, "missing-id", "new", "")
	if code := apiErrCode(t, err); code != model.ErrCodeUserNotFound {
		t.Errorf("code = %v, want %v", code, model.ErrCodeUserNotFound)
	}
}
