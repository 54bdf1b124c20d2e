// Package capture drives a renderer at fixed time steps and collects
// the frames it draws.
package capture

import (
	"fmt"
	"log/slog"

	"github.com/richinsley/gotriangle/encoder"
	"github.com/richinsley/gotriangle/renderer"
)

// PixelSource reads back the frame just drawn as RGBA, top row first.
type PixelSource interface {
	ReadRGBA() ([]byte, error)
}

// VideoSink consumes frames in order.
type VideoSink interface {
	SendVideo(frame *encoder.Frame)
	Close() error
}

// Record renders one frame per timestamp in times (milliseconds), sending
// each to sink. The renderer stops itself after the last frame. The sink
// is closed before Record returns.
func Record(r *renderer.Renderer, q *renderer.FrameQueue, src PixelSource, sink VideoSink, times []float64) (int, error) {
	if len(times) == 0 {
		return 0, fmt.Errorf("no frames to record")
	}

	var readErr error
	start := r.Frames()
	r.SetFrameHook(func(frame int) {
		frame -= start
		if frame >= len(times)-1 {
			r.Stop()
		}
		pixels, err := src.ReadRGBA()
		if err != nil {
			readErr = fmt.Errorf("error reading pixels on frame %d: %w", frame, err)
			r.Stop()
			return
		}
		sink.SendVideo(&encoder.Frame{Pixels: pixels, PTS: int64(frame)})
	})
	defer r.SetFrameHook(nil)

	r.Run()
	for i := 0; q.Pending(); i++ {
		q.RunPending(times[min(i, len(times)-1)])
	}
	frames := r.Frames() - start

	closeErr := sink.Close()
	if readErr != nil {
		return frames, readErr
	}
	if closeErr != nil {
		return frames, closeErr
	}
	slog.Info("recording complete", "frames", frames)
	return frames, nil
}

// Snapshot renders the frame at elapsed milliseconds and returns its pixels.
func Snapshot(r *renderer.Renderer, q *renderer.FrameQueue, src PixelSource, elapsed float64) ([]byte, error) {
	times := []float64{0}
	if elapsed > 0 {
		times = append(times, elapsed)
	}
	sink := &lastFrame{}
	if _, err := Record(r, q, src, sink, times); err != nil {
		return nil, err
	}
	return sink.pixels, nil
}

type lastFrame struct {
	pixels []byte
}

func (l *lastFrame) SendVideo(frame *encoder.Frame) { l.pixels = frame.Pixels }

func (l *lastFrame) Close() error { return nil }
