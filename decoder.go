package feedbus

import (
	"errors"
	"log/slog"
	"sync/atomic"
)

// ErrNoSource is returned by Decode when no registered source's
// discriminator matches the frame.
var ErrNoSource = errors.New("no source matched frame")

// DecodeError wraps a source's decode failure with the source name.
type DecodeError struct {
	Source string
	err    error
}

func (e *DecodeError) Error() string { return "decode frame from " + e.Source + ": " + e.err.Error() }
func (e *DecodeError) Unwrap() error { return e.err }

// Decoder turns raw frames into receiver invocations. It matches each
// frame against its sources' discriminators, decodes with the first match,
// and hands the resulting call to the receiver.
//
// Usage:
//  1. Create a decoder with NewDecoder
//  2. Add sources with AddSource, most common format first
//  3. Feed raw frames through Decode
//
// Decoder is safe for concurrent use after configuration. Do not call
// AddSource after calling Decode.
type Decoder struct {
	recv    *Receiver
	sources []Source
	log     *slog.Logger

	// Adaptive ordering: try last successful source first
	lastMatch atomic.Value // stores string
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithLogger sets the decoder's logger. Decode logs at debug level only;
// the default is slog.Default().
func WithLogger(l *slog.Logger) DecoderOption {
	return func(d *Decoder) {
		d.log = l
	}
}

// NewDecoder creates a Decoder feeding the given receiver.
//
// Example:
//
//	d := feedbus.NewDecoder(r)
//	d.AddSource(feedbus.EnvelopeSource())
//	d.AddSource(feedbus.LegacyErrorSource())
func NewDecoder(r *Receiver, opts ...DecoderOption) *Decoder {
	d := &Decoder{recv: r}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = slog.Default()
	}
	return d
}

// AddSource registers a source. Sources are matched in registration order,
// except that the last successfully matched source is tried first.
func (d *Decoder) AddSource(s Source) {
	d.sources = append(d.sources, s)
}

// Decode parses one raw frame, decodes it with the first matching source,
// and invokes the receiver with the resulting call. Method names the
// receiver's registry does not know are swallowed by the receiver, so a
// nil return means the frame was well-formed, not that anything listened.
//
// Returns ErrInvalidFrame for bytes that are not valid JSON, ErrNoSource
// when no source matches, and a DecodeError when the matched source
// rejects the frame.
func (d *Decoder) Decode(raw []byte) error {
	f, err := ParseFrame(raw)
	if err != nil {
		return err
	}

	src := d.match(f)
	if src == nil {
		d.log.Debug("no source matched frame")
		return ErrNoSource
	}

	call, err := src.Decode(f)
	if err != nil {
		return &DecodeError{Source: src.Name(), err: err}
	}

	d.log.Debug("decoded frame", "source", src.Name(), "method", call.Method)
	d.recv.Invoke(call.Method, call.Args...)
	return nil
}

// match finds a source whose discriminator matches the frame. Uses
// adaptive ordering to try the last successful source first.
func (d *Decoder) match(f Frame) Source {
	if v := d.lastMatch.Load(); v != nil {
		if name, ok := v.(string); ok && name != "" {
			for _, s := range d.sources {
				if s.Name() == name && s.Discriminator().Match(f) {
					return s
				}
			}
		}
	}

	for _, s := range d.sources {
		if s.Discriminator().Match(f) {
			d.lastMatch.Store(s.Name())
			return s
		}
	}
	return nil
}
