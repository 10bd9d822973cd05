// Package main provides localization for the restream CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Stream the reMarkable framebuffer over TCP or to a file": "reMarkableのフレームバッファをTCPまたはファイルへストリーミング",

		// Stream command
		"Capture the screen and stream it (default command)": "画面をキャプチャしてストリーミング（デフォルトコマンド）",

		// Probe command
		"Detect the device and print its framebuffer region": "デバイスを検出しフレームバッファ領域を表示",

		// Flags
		"Path to a YAML configuration file":                    "YAML設定ファイルのパス",
		"Output file path, or - for stdout":                    "出力ファイルパス（- で標準出力）",
		"Stream to host:port over TCP instead of a file":       "ファイルの代わりに host:port へTCPでストリーミング",
		"Target frame rate":                                    "目標フレームレート",
		"Send raw pixels instead of packed 1-bit monochrome":   "1ビットモノクロの代わりに生ピクセルを送信",
		"Delta encoding block size in bytes (0 = one frame)":   "差分エンコードのブロックサイズ（バイト、0 = 1フレーム）",
		"Compression codec (lz4, zstd or none)":                "圧縮コーデック（lz4, zstd, none）",
		"Directory for debug frame dumps":                      "デバッグ用フレームダンプのディレクトリ",
		"Dump every Nth frame":                                 "Nフレームごとにダンプ",
		"Log level (debug, info, warn, error)":                 "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                              "全てのログ出力を抑制",

		// Runtime messages
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",
	})
}
