package core

import (
	"os"
	"strconv"
)

// Config holds runtime settings for the server and worker processes. The two
// knobs the execution core itself recognizes are DeadlineMs and
// MemoryHintMB; everything else is ambient plumbing around it (log
// directory, queue connection, HTTP port, worker pool size).
type Config struct {
	DeadlineMs         int // per-test-case wall clock budget, bounded to [1, 60000]
	MemoryHintMB       int // advisory only, never enforced
	TerminationGraceMs int // grace window the supervisor waits after requesting termination

	LogDir   string // directory to write application logs
	RedisURL string // submission job queue connection (outside the core)

	Port              string // HTTP listen port for cmd/server
	WorkerConcurrency int    // number of suite-runner goroutines in cmd/worker
}

const (
	minDeadlineMs = 1
	maxDeadlineMs = 60000
)

// Load populates Config from environment variables with sane defaults.
func Load() Config {
	cfg := Config{
		DeadlineMs:         intFromEnv("DEADLINE_MS", 5000),
		MemoryHintMB:       intFromEnv("MEMORY_HINT_MB", 256),
		TerminationGraceMs: intFromEnv("TERMINATION_GRACE_MS", 150),
		LogDir:             firstNonEmpty(os.Getenv("LOG_DIR"), "/var/log/practiceraptor"),
		RedisURL:           firstNonEmpty(os.Getenv("REDIS_URL"), "redis://localhost:6379/0"),
		Port:               firstNonEmpty(os.Getenv("PORT"), "3000"),
		WorkerConcurrency:  intFromEnv("WORKER_CONCURRENCY", 4),
	}
	cfg.DeadlineMs = clampDeadline(cfg.DeadlineMs)
	return cfg
}

// clampDeadline enforces the [1, 60000] millisecond bound for deadline_ms.
func clampDeadline(ms int) int {
	if ms < minDeadlineMs {
		return minDeadlineMs
	}
	if ms > maxDeadlineMs {
		return maxDeadlineMs
	}
	return ms
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// intFromEnv reads an int from env var name, falling back to defaultVal when empty or invalid.
func intFromEnv(name string, defaultVal int) int {
	if v := os.Getenv(name); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
