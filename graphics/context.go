package graphics

// Context defines the interface for a host surface with a current GL context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
	GetFramebufferSize() (int, int)
	// Time returns seconds since the context was created.
	Time() float64
}
