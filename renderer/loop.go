package renderer

import (
	"math"

	"github.com/richinsley/gotriangle/graphics"
)

// FrameQueue is a one-slot Scheduler for hosts without an animation-frame
// facility of their own. The host drains it with RunPending.
type FrameQueue struct {
	pending func(now float64)
}

// RequestFrame replaces any pending frame with fn.
func (q *FrameQueue) RequestFrame(fn func(now float64)) {
	q.pending = fn
}

// Pending reports whether a frame is waiting to run.
func (q *FrameQueue) Pending() bool {
	return q.pending != nil
}

// RunPending runs the pending frame at time now. It reports false when
// nothing was pending.
func (q *FrameQueue) RunPending(now float64) bool {
	fn := q.pending
	if fn == nil {
		return false
	}
	q.pending = nil
	fn(now)
	return true
}

// Pump drains q on ctx until no frame is pending, presenting after each
// one. When ctx asks to close, stop is called once; the frame already
// queued still renders. It returns the number of frames run.
func Pump(ctx graphics.Context, q *FrameQueue, stop func()) int {
	frames := 0
	stopped := false
	for q.Pending() {
		if !stopped && ctx.ShouldClose() {
			stop()
			stopped = true
		}
		q.RunPending(ctx.Time() * 1000)
		ctx.EndFrame()
		frames++
	}
	return frames
}

// FrameTimes returns the timestamps in milliseconds of a fixed-step run
// lasting duration seconds at fps frames per second. At least one frame
// is always returned.
func FrameTimes(duration float64, fps int) []float64 {
	if fps <= 0 {
		fps = 1
	}
	n := int(math.Round(duration * float64(fps)))
	if n < 1 {
		n = 1
	}
	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i) * 1000 / float64(fps)
	}
	return times
}
