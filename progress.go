// progress.go: Injectable progress observation for long-running operations.
//
// Copyright (c) 2025 Occultis
// SPDX-License-Identifier: MPL-2.0

package crypto

import (
	"time"

	"github.com/agilira/go-timecache"
)

// ProgressFunc observes progress of a long-running operation: done steps out
// of total. Implementations must not touch the Context — observers are
// presentation-only and run synchronously on the caller's goroutine.
type ProgressFunc func(done, total int)

// NewThrottledProgress wraps fn so it fires at most once per interval, using
// the cached clock to keep the per-step cost negligible. The completion call
// (done == total) always passes through so displays can settle at 100%.
//
// Throttling only drops observer invocations; it has no effect on the
// underlying operation or its determinism.
func NewThrottledProgress(interval time.Duration, fn ProgressFunc) ProgressFunc {
	var last time.Time
	return func(done, total int) {
		now := timecache.CachedTime()
		if done < total && now.Sub(last) < interval {
			return
		}
		last = now
		fn(done, total)
	}
}
