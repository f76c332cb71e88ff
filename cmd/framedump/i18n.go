// Package main provides localization for the framedump CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Extract frames and metadata from video files": "動画ファイルからフレームとメタデータを抽出",

		// Extract command
		"Extract frames from every video in a directory": "ディレクトリ内の全動画からフレームを抽出",

		// Probe command
		"Print stream metadata for video files as JSON": "動画ファイルのストリーム情報をJSONで表示",

		// Output flags
		"Directory where extracted frames are written": "抽出フレームの出力先ディレクトリ",
		"Frame image format (png or jpg)":              "フレーム画像フォーマット（png または jpg）",
		"JPEG quality (1-100)":                         "JPEG品質（1-100）",

		// Concurrency flags
		"Extract videos concurrently with a worker pool": "ワーカープールで動画を並行抽出",
		"Worker pool size (0 = one per CPU)":             "ワーカープールのサイズ（0 = CPUごとに1つ）",

		// Decoder flags
		"Path to the ffmpeg binary (default: search PATH)": "ffmpegバイナリのパス（省略時はPATHを検索）",
		"Video extensions to pick up (repeatable)":         "対象とする動画拡張子（複数指定可）",

		// Contact sheet flags
		"Render a contact sheet per video":        "動画ごとにコンタクトシートを作成",
		"Contact sheet thumbnails per row":        "コンタクトシートの1行あたりのサムネイル数",
		"Contact sheet thumbnail width in pixels": "コンタクトシートのサムネイル幅（ピクセル）",

		// Summary flags
		"Write a run summary to this file":  "実行サマリーをこのファイルに出力",
		"Summary format (markdown or json)": "サマリー形式（markdown または json）",

		// Config flag
		"Load settings from a YAML file": "YAMLファイルから設定を読み込む",

		// Logging flags
		"Log level (debug, info, warn, error)":               "ログレベル（debug, info, warn, error）",
		"Log file path (empty string disables the log file)": "ログファイルパス（空文字列で無効化）",
		"Suppress console output":                            "コンソール出力を抑制",
		"Disable the progress bar":                           "プログレスバーを無効化",

		// Debug flags
		"Enable debug output":        "デバッグ出力を有効化",
		"Directory for debug output": "デバッグ出力のディレクトリ",

		// Runtime messages
		"Extracting":                    "抽出中",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",
		"Summary saved to %s":           "サマリーを %s に保存しました",
		"Failed to write summary: %s":   "サマリーの書き込みに失敗しました: %s",

		// Error messages
		"Input directory argument is required":         "入力ディレクトリ引数が必要です",
		"At least one video file argument is required": "動画ファイル引数が少なくとも1つ必要です",

		// Summary header
		"Extraction Summary":     "抽出サマリー",
		"Generated by framedump": "framedump により生成",
		"Generated at":           "生成日時",

		// Run section
		"Run":              "実行",
		"Input directory":  "入力フォルダ",
		"Output directory": "出力フォルダ",

		// Video table
		"Videos":                    "動画",
		"No videos were extracted.": "抽出された動画はありません。",
		"Source":                    "ファイル",
		"Frames":                    "フレーム数",
		"FPS":                       "FPS",
		"Duration":                  "再生時間",
		"Size":                      "サイズ",

		// Totals section
		"Failures":    "失敗",
		"Totals":      "合計",
		"Skipped":     "スキップ",
		"Output size": "出力サイズ",
		"Elapsed":     "経過時間",

		// Settings section
		"Settings":     "設定",
		"Frame format": "フレーム形式",
		"JPEG quality": "JPEG品質",
		"Extensions":   "拡張子",
		"Mode":         "モード",
		"sequential":   "逐次",
		"parallel":     "並行",
		"workers":      "ワーカー",
	})
}
