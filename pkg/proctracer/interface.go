package proctracer

// Tracer is the interface that wraps the recorder lifecycle used by the
// start and finish commands.
type Tracer interface {
	// Start launches the detached recorder for this job.
	Start() bool
	// Finish stops the recorder started earlier in the same job.
	Finish() bool
	// Stopped reports whether Finish confirmed the recorder stopped.
	Stopped() bool
}
