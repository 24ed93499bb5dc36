package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/hitoshi/timejoy/internal/model"
)

// Store は単一のJSONドキュメントを所有する状態ストア。
// 起動時にloadし、すべての変更はUpdateを通じて適用され、
// 成功するたびにドキュメント全体をアトミックに書き戻す。
// HTTPハンドラーから並行に呼ばれるためRWMutexで保護する。
type Store struct {
	mu   sync.RWMutex
	path string
	doc  *Document
}

// Open は指定パスのドキュメントを読み込んでStoreを生成する。
// ファイルが存在しない場合はシードデータで初期化して保存する。
// 読み込み時にDurationMinutesを再計算する。
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("状態ディレクトリの作成に失敗しました: %w", err)
	}

	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.doc = DefaultDocument()
		if err := s.persistLocked(s.doc); err != nil {
			return nil, err
		}
		slog.Info("状態ドキュメントを初期化しました", slog.String("path", path))
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("状態ドキュメントの読み込みに失敗しました: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("状態ドキュメントの解析に失敗しました: %w", err)
	}
	doc.NormalizeDurations()
	s.doc = &doc

	slog.Info("状態ドキュメントを読み込みました",
		slog.String("path", path),
		slog.Int("users", len(doc.Users)),
		slog.Int("entries", len(doc.Entries)),
	)
	return s, nil
}

// Snapshot は現在のドキュメントの深いコピーを返す。
// 読み取り側は返り値を自由に走査してよい。
func (s *Store) Snapshot() *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.clone()
}

// Update はreducer関数をロック下で適用し、成功時にディスクへ永続化する。
// fnがエラーを返した場合、ドキュメントの変更は捨てられ永続化されない。
// 永続化に失敗した場合も変更は反映されない。メモリとディスクを一致させる。
func (s *Store) Update(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.persistLocked(next); err != nil {
		return err
	}
	s.doc = next
	return nil
}

// Replace はドキュメント全体を置き換えて永続化する（インポート用）。
// DurationMinutesは再計算される。
func (s *Store) Replace(doc *Document) error {
	return s.Update(func(current *Document) error {
		replaced := doc.clone()
		replaced.NormalizeDurations()
		*current = *replaced
		return nil
	})
}

// CurrentUser は現在アクティブなプロファイルを返す。未ログイン時はnil。
func (s *Store) CurrentUser() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc.User == nil {
		return nil
	}
	u := *s.doc.User
	return &u
}

// FindUserByID は指定IDのユーザーを返す。見つからない場合はnil。
func (s *Store) FindUserByID(id string) *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.doc.Users {
		if u.ID == id {
			user := u
			return &user
		}
	}
	return nil
}

// FindUserByEmail は大文字小文字を無視してemailでユーザーを検索する。
// 見つからない場合はnil。
func (s *Store) FindUserByEmail(email string) *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.doc.Users {
		if u.EmailEquals(email) {
			user := u
			return &user
		}
	}
	return nil
}

// Users は全ユーザーカタログのコピーを返す。
func (s *Store) Users() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.User(nil), s.doc.Users...)
}

// WorkTypes は活動種別カタログのコピーを返す。
func (s *Store) WorkTypes() []model.WorkType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.WorkType(nil), s.doc.WorkTypes...)
}

// MoodOptions は気分カタログのコピーを返す。
func (s *Store) MoodOptions() []model.MoodOption {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.MoodOption(nil), s.doc.MoodOptions...)
}

// Entries は全ユーザーのエントリのコピーを返す。
func (s *Store) Entries() []model.TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.TimeEntry(nil), s.doc.Entries...)
}

// EntriesByUser は指定ユーザーが所有するエントリのコピーを返す。
func (s *Store) EntriesByUser(userID string) []model.TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var entries []model.TimeEntry
	for _, e := range s.doc.Entries {
		if e.UserID == userID {
			entries = append(entries, e)
		}
	}
	return entries
}

// persistLocked は指定ドキュメントを一時ファイルへ書き出してからrenameする。
// 書き込み途中のクラッシュで既存ドキュメントが壊れないようにする。
// 呼び出し側でロックを保持していること。
func (s *Store) persistLocked(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("状態ドキュメントのシリアライズに失敗しました: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("状態ドキュメントの書き込みに失敗しました: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("状態ドキュメントの置き換えに失敗しました: %w", err)
	}
	return nil
}
