package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hitoshi/timejoy/internal/store"
)

// maxBackupSize はインポートで受け付けるバックアップJSONの最大サイズ。
const maxBackupSize = 10 << 20 // 10MiB

// BackupServiceInterface はバックアップハンドラーが必要とするサービスインターフェース。
type BackupServiceInterface interface {
	Export(ctx context.Context) *store.Document
	ExportFileName() string
	Import(ctx context.Context, data []byte) error
}

// BackupHandler はバックアップのHTTPハンドラー。管理者専用。
type BackupHandler struct {
	service BackupServiceInterface
}

// NewBackupHandler はBackupHandlerを生成する。
func NewBackupHandler(service BackupServiceInterface) *BackupHandler {
	return &BackupHandler{service: service}
}

// Export は状態ドキュメント全体をJSONでダウンロードさせる。
// GET /api/admin/backup
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc := h.service.Export(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", h.service.ExportFileName()))
	json.NewEncoder(w).Encode(doc)
}

// Import はバックアップJSONで状態ドキュメント全体を置き換える。
// POST /api/admin/backup
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBackupSize))
	if err != nil {
		writeInvalidRequestBody(w)
		return
	}

	if err := h.service.Import(r.Context(), data); err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
