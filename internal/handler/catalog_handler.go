package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/timejoy/internal/model"
)

// CatalogServiceInterface はカタログハンドラーが必要とするサービスインターフェース。
type CatalogServiceInterface interface {
	AddWorkType(ctx context.Context) (*model.WorkType, error)
	RenameWorkType(ctx context.Context, id, label string) (*model.WorkType, error)
	CycleWorkTypeColor(ctx context.Context, id string) (*model.WorkType, error)
	DeleteWorkType(ctx context.Context, id string) error
	AddMoodOption(ctx context.Context) (*model.MoodOption, error)
	UpdateMoodOption(ctx context.Context, id, label string, value int, icon model.MoodIcon) (*model.MoodOption, error)
	CycleMoodColor(ctx context.Context, id string) (*model.MoodOption, error)
	DeleteMoodOption(ctx context.Context, id string) error
}

// CatalogReader はカタログの読み取りインターフェース。
// store.Storeの部分集合として定義する。
type CatalogReader interface {
	WorkTypes() []model.WorkType
	MoodOptions() []model.MoodOption
}

// CatalogHandler はカタログ編集のHTTPハンドラー。
// 変更系の操作は管理者専用（ルーター側でAdminMiddlewareを適用する）。
type CatalogHandler struct {
	service CatalogServiceInterface
	reader  CatalogReader
}

// NewCatalogHandler はCatalogHandlerを生成する。
func NewCatalogHandler(service CatalogServiceInterface, reader CatalogReader) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		reader:  reader,
	}
}

// catalogsResponse は活動種別とムード選択肢のカタログ一式。
type catalogsResponse struct {
	WorkTypes   []model.WorkType   `json:"workTypes"`
	MoodOptions []model.MoodOption `json:"moodOptions"`
}

// renameRequest はラベル変更リクエストのボディ。
type renameRequest struct {
	Label string `json:"label"`
}

// updateMoodRequest はムード選択肢更新リクエストのボディ。
type updateMoodRequest struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Icon  string `json:"icon"`
}

// List は記録フォーム用のカタログ一式を返す。
// GET /api/catalogs
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(catalogsResponse{
		WorkTypes:   h.reader.WorkTypes(),
		MoodOptions: h.reader.MoodOptions(),
	})
}

// AddWorkType は既定値の活動種別を追加する。
// POST /api/admin/work-types
func (h *CatalogHandler) AddWorkType(w http.ResponseWriter, r *http.Request) {
	wt, err := h.service.AddWorkType(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(wt)
}

// RenameWorkType は活動種別のラベルを変更する。
// PATCH /api/admin/work-types/{id}
func (h *CatalogHandler) RenameWorkType(w http.ResponseWriter, r *http.Request) {
	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	wt, err := h.service.RenameWorkType(r.Context(), chi.URLParam(r, "id"), req.Label)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(wt)
}

// CycleWorkTypeColor は活動種別の色をパレットの次の色へ進める。
// POST /api/admin/work-types/{id}/color
func (h *CatalogHandler) CycleWorkTypeColor(w http.ResponseWriter, r *http.Request) {
	wt, err := h.service.CycleWorkTypeColor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(wt)
}

// DeleteWorkType は活動種別を削除する。参照するエントリーは残る。
// DELETE /api/admin/work-types/{id}
func (h *CatalogHandler) DeleteWorkType(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteWorkType(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddMoodOption は既定値のムード選択肢を追加する。
// POST /api/admin/moods
func (h *CatalogHandler) AddMoodOption(w http.ResponseWriter, r *http.Request) {
	mood, err := h.service.AddMoodOption(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(mood)
}

// UpdateMoodOption はムード選択肢のラベル・値・アイコンを更新する。
// PATCH /api/admin/moods/{id}
func (h *CatalogHandler) UpdateMoodOption(w http.ResponseWriter, r *http.Request) {
	var req updateMoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	mood, err := h.service.UpdateMoodOption(r.Context(), chi.URLParam(r, "id"), req.Label, req.Value, model.MoodIcon(req.Icon))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(mood)
}

// CycleMoodColor はムード選択肢の色をパレットの次の色へ進める。
// POST /api/admin/moods/{id}/color
func (h *CatalogHandler) CycleMoodColor(w http.ResponseWriter, r *http.Request) {
	mood, err := h.service.CycleMoodColor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(mood)
}

// DeleteMoodOption はムード選択肢を削除する。参照するエントリーは残る。
// DELETE /api/admin/moods/{id}
func (h *CatalogHandler) DeleteMoodOption(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteMoodOption(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
