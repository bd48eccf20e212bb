package stack

import (
	"io"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// lineFormatter writes the bare message, one entry per line.
type lineFormatter struct{}

func (lineFormatter) Format(entry *log.Entry) ([]byte, error) {
	return append([]byte(entry.Message), '\n'), nil
}

// Tracer emits error reports and, in diagnostic mode, trace lines to the
// diagnostic stream. Diagnostic mode can be switched on but never off.
type Tracer struct {
	out     io.Writer
	logger  *log.Logger
	enabled atomic.Bool
}

func NewTracer(out io.Writer) *Tracer {
	logger := log.New()
	logger.SetOutput(out)
	logger.SetFormatter(lineFormatter{})
	logger.SetLevel(log.DebugLevel)
	return &Tracer{
		out:    out,
		logger: logger,
	}
}

func (t *Tracer) Enable() {
	t.enabled.Store(true)
}

func (t *Tracer) Enabled() bool {
	return t.enabled.Load()
}

// Writer returns the diagnostic stream.
func (t *Tracer) Writer() io.Writer {
	return t.out
}

func (t *Tracer) Tracef(format string, args ...interface{}) {
	if !t.Enabled() {
		return
	}
	t.logger.Debugf(format, args...)
}

func (t *Tracer) Report(err *OpError) {
	t.logger.Error(err.Message())
}
