// Package obslog is the ambient logging wrapper used by commitgraph:
// Errorf logs a failure with its call site so a caller-supplied logrus
// hook sees it. commitgraph calls it for a non-quiet WrongKind in
// LookupCommitReference and for an ignored duplicate graft in
// ReadGraftFile; its other failures are returned without logging.
package obslog

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Location returns the function name and line of the caller skip frames
// up the stack.
func Location(skip int) (string, int) {
	pc, _, line, ok := runtime.Caller(skip)
	if !ok {
		return "?", line
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "?", line
	}
	return fn.Name(), line
}

// Errorf logs msg at Error level with the caller's location and returns it
// as a plain error, the way the teacher's trace.Errorf does.
func Errorf(format string, a ...any) error {
	fn, line := Location(2)
	msg := fmt.Sprintf(format, a...)
	logrus.Error(fn, ":", line, " ", msg)
	return errors.New(msg)
}

// Tracker provides opt-in step timing, gated by debug mode, matching the
// teacher's trace.Tracker.
type Tracker struct {
	debug bool
	last  time.Time
}

func NewTracker(debugMode bool) *Tracker {
	return &Tracker{debug: debugMode, last: time.Now()}
}

func (t *Tracker) StepNext(format string, a ...any) {
	if !t.debug {
		return
	}
	s := fmt.Sprintf(format, a...)
	now := time.Now()
	logrus.Debugf("%s use time: %v", strings.Trim(s, "\n"), now.Sub(t.last))
	t.last = now
}
