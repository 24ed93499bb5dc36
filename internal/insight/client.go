// Package insight は外部の生成AIエンドポイントを使った振り返りコメントの
// 生成を提供する。APIキー未設定・対象データなし・通信失敗はすべて
// ユーザー向けの定型文に退化させ、エラーとしては扱わない。
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hitoshi/timejoy/internal/model"
)

const (
	// defaultEndpoint はGemini互換のgenerateContentエンドポイント。
	defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"
	// defaultModelID は振り返り生成に使うモデル。
	defaultModelID = "gemini-2.5-flash"
)

// フォールバック定型文。エラーの代わりにそのまま画面へ返す。
const (
	msgMissingAPIKey = "API Key is missing. Please configure the environment variable to use AI features."
	msgNoEntries     = "No entries found for analysis. Log some time to get insights!"
	msgEmptyResponse = "Could not generate insights."
	msgUnavailable   = "Sorry, I couldn't connect to the reflection engine right now."
)

// Client は振り返り生成APIのクライアント。
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	apiKey     string
	modelID    string
	endpoint   string
}

// NewClient はClientの新しいインスタンスを生成する。
func NewClient(httpClient *http.Client, logger *slog.Logger, apiKey, modelID string) *Client {
	if modelID == "" {
		modelID = defaultModelID
	}
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		apiKey:     apiKey,
		modelID:    modelID,
		endpoint:   defaultEndpoint,
	}
}

// SetEndpoint はAPIエンドポイントを差し替える。
// プロキシ経由や検証環境での利用を想定している。空文字列は無視する。
func (c *Client) SetEndpoint(endpoint string) {
	if endpoint != "" {
		c.endpoint = endpoint
	}
}

// generateContentリクエストとレスポンスの最小限の形。
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateReflection はエントリー群から振り返りコメントを生成する。
// 失敗しても第2戻り値のエラーは返さず、定型文で埋める。
func (c *Client) GenerateReflection(ctx context.Context, entries []model.TimeEntry, workTypes []model.WorkType, moods []model.MoodOption) string {
	if c.apiKey == "" {
		return msgMissingAPIKey
	}
	if len(entries) == 0 {
		return msgNoEntries
	}

	prompt := buildPrompt(entries, workTypes, moods)

	reqBody, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		c.logger.Error("振り返りリクエストの生成に失敗しました", slog.String("error", err.Error()))
		return msgUnavailable
	}

	reqURL := fmt.Sprintf("%s/%s:generateContent", c.endpoint, c.modelID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(reqBody))
	if err != nil {
		c.logger.Error("HTTPリクエストの作成に失敗しました", slog.String("error", err.Error()))
		return msgUnavailable
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("振り返りAPIの呼び出しに失敗しました",
			slog.String("error", err.Error()),
			slog.Int("entry_count", len(entries)),
		)
		return msgUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("振り返りAPIがエラーステータスを返しました",
			slog.Int("http_status", resp.StatusCode),
		)
		return msgUnavailable
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("レスポンスボディの読み取りに失敗しました", slog.String("error", err.Error()))
		return msgUnavailable
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.Error("振り返りAPIのレスポンスのパースに失敗しました", slog.String("error", err.Error()))
		return msgUnavailable
	}

	text := extractText(result)
	if text == "" {
		return msgEmptyResponse
	}
	return text
}

// buildPrompt はエントリーごとの要約行とコーチング指示からプロンプトを組み立てる。
func buildPrompt(entries []model.TimeEntry, workTypes []model.WorkType, moods []model.MoodOption) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		typeLabel := "Unknown"
		for _, wt := range workTypes {
			if wt.ID == e.WorkTypeID {
				typeLabel = wt.Label
				break
			}
		}
		moodLabel := "Unknown"
		for _, m := range moods {
			if m.ID == e.MoodID {
				moodLabel = m.Label
				break
			}
		}
		comment := e.Comment
		if comment == "" {
			comment = "N/A"
		}
		lines = append(lines, fmt.Sprintf("- %s: %d mins on %q feeling %q. Comment: %s",
			e.Date, e.DurationMinutes, typeLabel, moodLabel, comment))
	}

	var b strings.Builder
	b.WriteString("You are a compassionate productivity coach named \"TimeJoy Coach\".\n")
	b.WriteString("Analyze the following time logs for the user.\n\n")
	b.WriteString("Data:\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nYour goal is to help the user align their time with their happiness.\n")
	b.WriteString("Provide a concise 3-bullet point reflection:\n")
	b.WriteString("1. Where they found the most joy.\n")
	b.WriteString("2. Where they might be overworking or feeling less positive.\n")
	b.WriteString("3. A gentle suggestion for next week.\n\n")
	b.WriteString("Keep the tone encouraging and simple.\n")
	return b.String()
}

// extractText は最初の候補の本文テキストを取り出す。
func extractText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	parts := resp.Candidates[0].Content.Parts
	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.TrimSpace(strings.Join(texts, ""))
}
