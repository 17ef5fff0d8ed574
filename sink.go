package feedbus

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"runtime"
	"sync"
	"time"
)

// Fault describes one listener failure during dispatch: which listener
// panicked, for which message type, with what value, and the stack captured
// at the point of recovery. The receiver hands a Fault to its sink after the
// listener has already been dropped for that type.
type Fault struct {
	// Listener is a textual identity of the faulting listener: the function
	// name for function listeners, the pointer form for pointer listeners.
	Listener string

	// Type is the message type name being dispatched when the fault occurred.
	Type string

	// Value is the recovered panic value.
	Value any

	// Stack is the goroutine stack captured at recovery.
	Stack []byte

	// Time is when the fault was recovered.
	Time time.Time
}

// Sink receives fault reports. Implementations must tolerate concurrent
// calls when receivers dispatch from multiple goroutines. A sink that itself
// panics is silently contained; it can never break dispatch.
type Sink interface {
	Report(f Fault)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Fault)

// Report implements the Sink interface.
func (fn SinkFunc) Report(f Fault) { fn(f) }

// NewWriterSink returns a sink that prints a human-readable fault report to
// w. This is the receiver's default sink, over os.Stderr.
func NewWriterSink(w io.Writer) Sink {
	return &writerSink{w: w}
}

type writerSink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *writerSink) Report(f Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()

	const line = "----------------------------------------------------------------------------"
	fmt.Fprintln(s.w, line)
	fmt.Fprintf(s.w, "feedbus: listener panic during message dispatch.\n")
	fmt.Fprintf(s.w, "Listener %s unregistered for %q.\n", f.Listener, f.Type)
	fmt.Fprintln(s.w, line)
	fmt.Fprintf(s.w, "panic: %v\n\n", f.Value)
	s.w.Write(f.Stack)
	fmt.Fprintln(s.w)
}

// NewSlogSink returns a sink that reports faults through a structured
// logger at error level. A nil logger uses slog.Default().
func NewSlogSink(l *slog.Logger) Sink {
	if l == nil {
		l = slog.Default()
	}
	return SinkFunc(func(f Fault) {
		l.Error("listener panic during message dispatch",
			"listener", f.Listener,
			"type", f.Type,
			"panic", fmt.Sprintf("%v", f.Value),
			"stack", string(f.Stack),
		)
	})
}

// describeListener renders a stable identity for fault reports.
func describeListener(l Listener) string {
	if l == nil {
		return "<nil>"
	}
	rv := reflect.ValueOf(l)
	switch rv.Kind() {
	case reflect.Func:
		if fn := runtime.FuncForPC(rv.Pointer()); fn != nil {
			return fn.Name()
		}
		return fmt.Sprintf("%T", l)
	case reflect.Pointer:
		return fmt.Sprintf("%T(%p)", l, l)
	default:
		return fmt.Sprintf("%T", l)
	}
}
