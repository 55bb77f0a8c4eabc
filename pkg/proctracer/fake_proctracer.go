package proctracer

import "github.com/sirupsen/logrus"

type fakeTracer struct {
	logger  *logrus.Logger
	stopped bool
}

// NewFakeTracer returns a fake tracer for tests.
func NewFakeTracer(logger *logrus.Logger) Tracer {
	return &fakeTracer{logger: logger}
}

// Start implements Tracer.
func (f *fakeTracer) Start() bool {
	f.logger.Info("Start")
	return true
}

// Finish implements Tracer.
func (f *fakeTracer) Finish() bool {
	f.logger.Info("Finish")
	f.stopped = true
	return true
}

// Stopped implements Tracer.
func (f *fakeTracer) Stopped() bool {
	return f.stopped
}
