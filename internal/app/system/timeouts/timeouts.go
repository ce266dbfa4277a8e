// internal/app/system/timeouts/timeouts.go
package timeouts

import "time"

// Centralized per-operation deadlines so handlers don't hardcode durations.

// Short is for point reads and single-document writes.
func Short() time.Duration { return 5 * time.Second }

// Medium is for list queries and multi-document work.
func Medium() time.Duration { return 15 * time.Second }

// Ping is for health-check probes.
func Ping() time.Duration { return 2 * time.Second }
