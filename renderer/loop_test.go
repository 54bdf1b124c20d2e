package renderer

import (
	"testing"

	"github.com/richinsley/gotriangle/internal/gltest"
	"github.com/richinsley/gotriangle/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameQueue(t *testing.T) {
	var q FrameQueue
	assert.False(t, q.Pending())
	assert.False(t, q.RunPending(0))

	var got []float64
	q.RequestFrame(func(now float64) { got = append(got, now) })
	q.RequestFrame(func(now float64) { got = append(got, -now) })
	require.True(t, q.Pending())
	assert.True(t, q.RunPending(5))
	assert.Equal(t, []float64{-5}, got)
	assert.False(t, q.Pending())
}

func TestPumpStopsWhenContextCloses(t *testing.T) {
	dev := gltest.NewDevice()
	r, q := newTestRenderer(t, dev, shader.Variant3D)
	ctx := &gltest.Context{Width: 800, Height: 600, Step: 0.5, CloseAfter: 3}

	r.Run()
	n := Pump(ctx, q, r.Stop)

	// three frames before the close request, plus the one already queued
	assert.Equal(t, 4, n)
	assert.Equal(t, 4, r.Frames())
	assert.Equal(t, 4, ctx.Presented)
	assert.False(t, r.Running())
	<-r.Done()

	// the last frame ran at 1.5s, 1500ms after the first
	assert.Equal(t, [16]float32(WorldAt(1500)), dev.Uniforms[shader.WorldUniform])
}

func TestPumpWithoutPendingFrame(t *testing.T) {
	ctx := &gltest.Context{}
	stopped := false
	n := Pump(ctx, &FrameQueue{}, func() { stopped = true })
	assert.Zero(t, n)
	assert.False(t, stopped)
	assert.Zero(t, ctx.Presented)
}

func TestFrameTimes(t *testing.T) {
	times := FrameTimes(2, 30)
	require.Len(t, times, 60)
	assert.Equal(t, 0.0, times[0])
	assert.InDelta(t, 1000.0/30, times[1], 1e-9)
	assert.InDelta(t, 59*1000.0/30, times[59], 1e-9)

	assert.Equal(t, []float64{0}, FrameTimes(0, 30))
	assert.Equal(t, []float64{0, 1000}, FrameTimes(2, 0))
}
