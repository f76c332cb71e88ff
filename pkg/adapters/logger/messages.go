package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Starting extraction run":                      "抽出処理を開始します",
		"Scanning %s for videos":                       "%s から動画を検索中",
		"Run completed: %d videos, %d frames in %d ms": "処理完了: 動画 %d 本, %d フレーム, %d ms",
		"Skipped %d unreadable videos":                 "読み取れない動画 %d 本をスキップしました",
		"Interrupted, shutting down...":                "中断されました。シャットダウン中...",

		// Scan stage
		"Scanning %s":              "%s をスキャン中",
		"Found %d video files":     "%d 件の動画ファイルが見つかりました",
		"Created output folder %s": "出力フォルダ %s を作成しました",

		// Extract stage
		"Extracting frames from %d videos with %d workers": "%d 本の動画から %d ワーカーでフレームを抽出中",
		"Extracting frames from %d videos sequentially":    "%d 本の動画から順次フレームを抽出中",
		"Extracting %s":                                    "%s を抽出中",
		"Probed %s: %dx%d, %.1f fps":                       "%s を解析しました: %dx%d, %.1f fps",
		"Extracted frames and metadata from %s":            "%s からフレームとメタデータを抽出しました",
		"Decoded only %d of %d reported frames from %s":    "%d / %d フレームのみデコードできました (%s)",

		// Sheet stage
		"Contact sheet saved to %s":         "コンタクトシートを %s に保存しました",
		"Skipping contact sheet for %s: %s": "%s のコンタクトシートをスキップします: %s",

		// Errors
		"Failed to extract from %s: %s":       "%s からの抽出に失敗しました: %s",
		"Failed to scan input: %s":            "入力の検索に失敗しました: %s",
		"Failed to extract frames: %s":        "フレームの抽出に失敗しました: %s",
		"Failed to render contact sheets: %s": "コンタクトシートの作成に失敗しました: %s",
	})
}
