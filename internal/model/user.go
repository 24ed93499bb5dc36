// Package model はドメインモデルを定義する。
package model

import (
	"strings"
	"time"
)

// Role はユーザーの権限ロールを表す。
type Role string

const (
	// RoleUser は一般ユーザー。自分の記録のみ閲覧できる。
	RoleUser Role = "USER"
	// RoleAdmin は管理者。カタログ編集とプライバシー集計モードでの閲覧ができる。
	RoleAdmin Role = "ADMIN"
)

// User はローカルプロファイルとしてのユーザーを表す。
// 認証は行わない。username と email の組をローカルカタログと照合するだけの
// プロファイル切り替えであり、パスワードもトークンも存在しない。
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAdmin は管理者ロールかどうかを返す。
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// EmailEquals は大文字小文字を無視してemailを比較する。
func (u *User) EmailEquals(email string) bool {
	return strings.EqualFold(u.Email, email)
}

// UsernameEquals は大文字小文字を無視してusernameを比較する。
func (u *User) UsernameEquals(username string) bool {
	return strings.EqualFold(u.Username, username)
}

// Session はプロセス内のログインセッションを表す。
// ローカルアプリの玩具的な信頼モデルに合わせ、永続化はしない。
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
