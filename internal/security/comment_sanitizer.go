// Package security はアプリケーションのセキュリティ機能を提供する。
//
// CommentSanitizerService はユーザー入力のコメントをサニタイズし、
// 後段のUIやレポートHTMLへ埋め込まれてもスクリプトが混入しないようにする。
// bluemondayライブラリの許可リストベースのポリシーを使用する。
package security

import "github.com/microcosm-cc/bluemonday"

// CommentSanitizerService はコメントサニタイズ機能のインターフェースを定義する。
// エントリ作成時の保存前に使用される。
type CommentSanitizerService interface {
	// Sanitize は入力からすべてのHTMLタグを除去したプレーンテキストを返す。
	// コメントは書式を持たないテキストであり、タグの通過は一切許可しない。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// ReportSanitizerService はレポートHTMLのサニタイズ機能のインターフェースを定義する。
// 週次レポートの送信前に使用される。
type ReportSanitizerService interface {
	// SanitizeHTML はレポート本文のHTMLをサニタイズして安全なHTMLを返す。
	// 見出し・段落など基本的な整形タグのみを通過させ、
	// scriptタグおよびon*イベント属性を除去する。
	SanitizeHTML(rawHTML string) string
}

// sanitizer はCommentSanitizerServiceとReportSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type sanitizer struct {
	comment *bluemonday.Policy
	report  *bluemonday.Policy
}

// NewSanitizer はサニタイザの新しいインスタンスを生成する。
// コメント用にはタグを一切許可しないStrictPolicyを、
// レポートHTML用には基本的な整形タグのみの許可リストを構築する。
func NewSanitizer() *sanitizer {
	report := bluemonday.NewPolicy()
	report.AllowElements(
		"h1", "h2", "h3", "p", "br", "ul", "ol", "li",
		"strong", "em", "table", "thead", "tbody", "tr", "th", "td",
	)

	return &sanitizer{
		comment: bluemonday.StrictPolicy(),
		report:  report,
	}
}

// Sanitize は入力からすべてのHTMLタグを除去したプレーンテキストを返す。
func (s *sanitizer) Sanitize(raw string) string {
	return s.comment.Sanitize(raw)
}

// SanitizeHTML はレポート本文のHTMLをサニタイズして安全なHTMLを返す。
func (s *sanitizer) SanitizeHTML(rawHTML string) string {
	return s.report.Sanitize(rawHTML)
}
