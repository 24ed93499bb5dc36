package app

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/hitoshi/timejoy/internal/store"
)

// TestRun_ExportCommand_WritesBackupJSON はexportコマンドがシードデータを含む
// バックアップJSONを書き出すことを検証する。ログは標準エラーに出るため、
// 出力はJSONドキュメントとしてそのまま解析できる。
func TestRun_ExportCommand_WritesBackupJSON(t *testing.T) {
	t.Setenv("STATE_PATH", filepath.Join(t.TempDir(), "timejoy.json"))

	var buf bytes.Buffer
	if err := Run(&buf, []string{"export"}); err != nil {
		t.Fatalf("Run(export) failed: %v", err)
	}

	var doc store.Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("export output is not valid JSON: %v\nraw: %s", err, buf.String())
	}

	// 初回起動時はシードデータが入る
	if len(doc.Users) == 0 {
		t.Error("exported document should contain seed users")
	}
	if len(doc.WorkTypes) == 0 {
		t.Error("exported document should contain seed work types")
	}
	if len(doc.MoodOptions) == 0 {
		t.Error("exported document should contain seed mood options")
	}
}

// TestRun_ExportCommand_InvalidStatePath は状態ファイルを開けない場合に
// エラーが返ることを検証する。
func TestRun_ExportCommand_InvalidStatePath(t *testing.T) {
	// ディレクトリを状態ファイルとして指定する
	t.Setenv("STATE_PATH", t.TempDir())

	var buf bytes.Buffer
	if err := Run(&buf, []string{"export"}); err == nil {
		t.Fatal("Run(export) with invalid state path should return error")
	}
}

// TestRun_HealthcheckCommand_FailsWithoutServer はサーバー未起動時に
// healthcheckがエラーを返すことを検証する。
func TestRun_HealthcheckCommand_FailsWithoutServer(t *testing.T) {
	// 到達できないポートを指定する
	t.Setenv("SERVER_PORT", "1")

	var buf bytes.Buffer
	if err := Run(&buf, []string{"healthcheck"}); err == nil {
		t.Fatal("Run(healthcheck) without server should return error")
	}
}
