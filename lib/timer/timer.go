package timer

import (
	"fmt"
	"strings"
	"time"
)

// MarkPoint is one tagged point on the call timeline
type MarkPoint struct {
	tag   string
	delta float64
}

// XTimer records the span of one request and its marked points
type XTimer struct {
	bornTime   int64
	latestTime int64
	points     []MarkPoint
}

// NewXTimer create new XTimer instance
func NewXTimer() *XTimer {
	now := time.Now().UnixNano()
	return &XTimer{
		bornTime:   now,
		latestTime: now,
	}
}

// Mark record the tag of the point with time delta since the last mark
func (timer *XTimer) Mark(tag string) {
	now := time.Now().UnixNano()
	timer.points = append(timer.points, MarkPoint{
		tag:   tag,
		delta: float64(now - timer.latestTime),
	})
	timer.latestTime = now
}

// Elapsed total time since the timer was born
func (timer *XTimer) Elapsed() time.Duration {
	return time.Duration(time.Now().UnixNano() - timer.bornTime)
}

// Print all record points and timestamp information
func (timer *XTimer) Print() string {
	msg := make([]string, 0, len(timer.points)+1)
	for _, point := range timer.points {
		msg = append(msg, fmt.Sprintf("%s:%.2fms", point.tag, point.delta/float64(time.Millisecond)))
	}
	msg = append(msg, fmt.Sprintf("total:%.2fms", float64(timer.Elapsed())/float64(time.Millisecond)))
	return strings.Join(msg, ",")
}
