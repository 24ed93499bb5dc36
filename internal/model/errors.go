// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, timelog, catalog, backup, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidRange       = "INVALID_RANGE"
	ErrCodeMissingWorkType    = "MISSING_WORK_TYPE"
	ErrCodeOverlapConflict    = "OVERLAP_CONFLICT"
	ErrCodeInvalidTime        = "INVALID_TIME"
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeUsernameTaken      = "USERNAME_TAKEN"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeCredentialMismatch = "CREDENTIAL_MISMATCH"
	ErrCodeWorkTypeNotFound   = "WORK_TYPE_NOT_FOUND"
	ErrCodeMoodNotFound       = "MOOD_NOT_FOUND"
	ErrCodeInvalidBackup      = "INVALID_BACKUP"
)

// NewInvalidRangeError は終了時刻が開始時刻以前の場合のエラーを生成する。
func NewInvalidRangeError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRange,
		Message:  "終了時刻は開始時刻より後である必要があります。",
		Category: "validation",
		Action:   "開始時刻より後の終了時刻を選択してください。",
	}
}

// NewMissingWorkTypeError は活動種別が未選択の場合のエラーを生成する。
func NewMissingWorkTypeError() *APIError {
	return &APIError{
		Code:     ErrCodeMissingWorkType,
		Message:  "活動種別が選択されていません。",
		Category: "validation",
		Action:   "活動種別を選択してください。",
	}
}

// NewOverlapConflictError は既存エントリと時間帯が重なる場合のエラーを生成する。
func NewOverlapConflictError() *APIError {
	return &APIError{
		Code:     ErrCodeOverlapConflict,
		Message:  "この時間帯は既存の記録と重複しています。",
		Category: "validation",
		Action:   "別の時間帯を選択してください。隣接（端点の一致）は重複になりません。",
	}
}

// NewInvalidTimeError は時刻文字列が解釈できない場合のエラーを生成する。
func NewInvalidTimeError(value string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidTime,
		Message:  fmt.Sprintf("時刻の形式が不正です: %s", value),
		Category: "validation",
		Action:   "時刻は 00:00 から 24:00 までの HH:MM 形式で指定してください。",
	}
}

// NewEmailTakenError はemailが既に使用されている場合のエラーを生成する。
func NewEmailTakenError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailTaken,
		Message:  "このメールアドレスは既に登録されています。",
		Category: "auth",
		Action:   "別のメールアドレスを使用するか、ログインしてください。",
	}
}

// NewUsernameTakenError はusernameが既に使用されている場合のエラーを生成する。
func NewUsernameTakenError() *APIError {
	return &APIError{
		Code:     ErrCodeUsernameTaken,
		Message:  "このユーザー名は既に使用されています。",
		Category: "auth",
		Action:   "別のユーザー名を指定してください。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "このメールアドレスのアカウントが見つかりません。",
		Category: "auth",
		Action:   "メールアドレスを確認するか、新規登録してください。",
	}
}

// NewCredentialMismatchError はusernameとemailの組が一致しない場合のエラーを生成する。
func NewCredentialMismatchError() *APIError {
	return &APIError{
		Code:     ErrCodeCredentialMismatch,
		Message:  "ユーザー名とメールアドレスが一致しません。",
		Category: "auth",
		Action:   "登録時のユーザー名とメールアドレスの組を入力してください。",
	}
}

// NewWorkTypeNotFoundError は活動種別が見つからない場合のエラーを生成する。
func NewWorkTypeNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeWorkTypeNotFound,
		Message:  fmt.Sprintf("指定された活動種別が見つかりません: %s", id),
		Category: "catalog",
		Action:   "活動種別IDを確認してください。",
	}
}

// NewMoodNotFoundError は気分選択肢が見つからない場合のエラーを生成する。
func NewMoodNotFoundError(id string) *APIError {
	return &APIError{
		Code:     ErrCodeMoodNotFound,
		Message:  fmt.Sprintf("指定された気分選択肢が見つかりません: %s", id),
		Category: "catalog",
		Action:   "気分選択肢IDを確認してください。",
	}
}

// NewInvalidBackupError はバックアップファイルの形が不正な場合のエラーを生成する。
func NewInvalidBackupError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidBackup,
		Message:  "バックアップファイルの形式が不正です。",
		Category: "backup",
		Action:   "users、entries、workTypes を含むエクスポートファイルを指定してください。",
	}
}
