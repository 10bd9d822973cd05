package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Pipeline level messages (info)
		"Starting stream":               "ストリームを開始します",
		"Streaming %s to %s at %g fps":  "%s を %s へ %g fps でストリーミング中",
		"Stream stopped":                "ストリームを停止しました",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",

		// Device probing
		"Detected %s": "%s を検出しました",
		"Framebuffer region: %s offset %d, %dx%d at %d bytes/pixel": "フレームバッファ領域: %s オフセット %d, %dx%d, %d バイト/ピクセル",
		"Locating xochitl process":  "xochitl プロセスを検索中",
		"Found xochitl with pid %d": "xochitl を検出しました (pid %d)",

		// Pipeline stages
		"Monochrome packing enabled: %d bytes per frame": "モノクロパッキング有効: フレームあたり %d バイト",
		"Delta encoding with block size %d":              "ブロックサイズ %d で差分エンコード中",
		"Compressing with %s":           "%s で圧縮中",
		"Dumping every %d frames to %s": "%d フレームごとに %s へダンプ中",

		// Warnings
		"Failed to dump frame %d: %s": "フレーム %d のダンプに失敗しました: %s",

		// Errors
		"Failed to open capture source: %s": "キャプチャソースのオープンに失敗しました: %s",
		"Failed to open sink: %s":           "シンクのオープンに失敗しました: %s",
		"Failed to write output: %s":        "出力の書き込みに失敗しました: %s",
	})
}
