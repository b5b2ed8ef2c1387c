package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// PeriodNs converts a timer period of (counts+1) ticks of a clockHz
// count clock into nanoseconds. clockHz==0 is coerced to 1.
func PeriodNs(counts, clockHz uint32) uint64 {
	if clockHz == 0 {
		clockHz = 1
	}
	return (uint64(counts) + 1) * 1_000_000_000 / uint64(clockHz)
}
