package core

import "time"

// Redis キーと可視タイムアウトのデフォルト値をまとめた定数。
const (
	PendingQueueKey    = "pending_runs"
	ProcessingQueueKey = "processing_runs"
	// DefaultVisibilityTimeout はワーカーがジョブを保持する可視タイムアウト。
	DefaultVisibilityTimeout = 30 * time.Second
)
