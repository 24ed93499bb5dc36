// Package account はローカルプロファイルの切り替え（疑似ログイン）を提供する。
// username と email の組をローカルのユーザーカタログと照合するだけであり、
// パスワード・トークン・外部IdPは存在しない。玩具的な信頼モデルを
// 意図的に維持している。
package account

import (
	"context"
	"sync"
	"time"

	"github.com/hitoshi/timejoy/internal/model"
)

// SessionStore はプロセス内セッションの保管庫。
// ローカルアプリのため永続化せず、プロセス再起動で全セッションが消える。
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
}

// NewSessionStore はSessionStoreの新しいインスタンスを生成する。
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*model.Session),
	}
}

// Create はセッションを登録する。
func (st *SessionStore) Create(ctx context.Context, session *model.Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[session.ID] = session
	return nil
}

// FindByID は指定IDのセッションを返す。期限切れまたは未登録の場合はnilを返す。
// 期限切れのセッションはその場で破棄する。
func (st *SessionStore) FindByID(ctx context.Context, id string) (*model.Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	session, ok := st.sessions[id]
	if !ok {
		return nil, nil
	}
	if time.Now().After(session.ExpiresAt) {
		delete(st.sessions, id)
		return nil, nil
	}
	s := *session
	return &s, nil
}

// DeleteByID は指定IDのセッションを破棄する。
func (st *SessionStore) DeleteByID(ctx context.Context, id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
	return nil
}

// DeleteByUserID は指定ユーザーの全セッションを破棄する。
func (st *SessionStore) DeleteByUserID(ctx context.Context, userID string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	for id, session := range st.sessions {
		if session.UserID == userID {
			delete(st.sessions, id)
		}
	}
	return nil
}
