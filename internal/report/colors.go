package report

// カタログのカラートークンとチャート描画用16進カラーの対応表。
// 未知のトークンはgrayと同じ色に落とす。
var hexColors = map[string]string{
	"blue":   "#3b82f6",
	"green":  "#22c55e",
	"purple": "#a855f7",
	"orange": "#f97316",
	"red":    "#ef4444",
	"yellow": "#eab308",
	"pink":   "#ec4899",
	"indigo": "#6366f1",
	"gray":   "#94a3b8",
}

// HexColor はカラートークンをチャート描画用の16進カラーに変換する。
// 対応表にないトークンは #94a3b8（gray）を返す。
func HexColor(token string) string {
	if hex, ok := hexColors[token]; ok {
		return hex
	}
	return "#94a3b8"
}
