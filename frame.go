package feedbus

import (
	"errors"
	"math"

	"github.com/tidwall/gjson"
)

// ErrInvalidFrame is returned when a raw frame is not valid JSON.
var ErrInvalidFrame = errors.New("invalid frame")

// Frame is a read-only view over one raw feed frame. Field access goes
// through gjson paths, so nested fields ("contract.symbol") and array
// indexes ("args.0") work without unmarshaling the whole frame.
type Frame struct {
	raw []byte
}

// ParseFrame validates raw as JSON and returns a Frame over it. The bytes
// are retained, not copied; callers reusing the buffer must copy first.
func ParseFrame(raw []byte) (Frame, error) {
	if !gjson.ValidBytes(raw) {
		return Frame{}, ErrInvalidFrame
	}
	return Frame{raw: raw}, nil
}

// Raw returns the underlying frame bytes.
func (f Frame) Raw() []byte { return f.raw }

// HasField returns true if the path exists in the frame.
func (f Frame) HasField(path string) bool {
	return gjson.GetBytes(f.raw, path).Exists()
}

// GetString returns the string value at path, or false if not found or not
// a string.
func (f Frame) GetString(path string) (string, bool) {
	r := gjson.GetBytes(f.raw, path)
	if !r.Exists() || r.Type != gjson.String {
		return "", false
	}
	return r.String(), true
}

// GetInt returns the integer value at path, or false if not found, not a
// number, or carrying a fractional part.
func (f Frame) GetInt(path string) (int64, bool) {
	r := gjson.GetBytes(f.raw, path)
	if !r.Exists() || r.Type != gjson.Number {
		return 0, false
	}
	if n := r.Float(); n != math.Trunc(n) {
		return 0, false
	}
	return r.Int(), true
}

// GetFloat returns the numeric value at path, or false if not found or not
// a number.
func (f Frame) GetFloat(path string) (float64, bool) {
	r := gjson.GetBytes(f.raw, path)
	if !r.Exists() || r.Type != gjson.Number {
		return 0, false
	}
	return r.Float(), true
}

// GetBytes returns the raw JSON bytes at path, or false if not found.
// String values keep their quotes.
func (f Frame) GetBytes(path string) ([]byte, bool) {
	r := gjson.GetBytes(f.raw, path)
	if !r.Exists() {
		return nil, false
	}
	return []byte(r.Raw), true
}

// GetArgs returns the array at path as a positional argument list, or
// false if the path is missing or not an array. Numbers decode as float64,
// which the receiver's integer accessors accept.
func (f Frame) GetArgs(path string) ([]any, bool) {
	r := gjson.GetBytes(f.raw, path)
	if !r.Exists() || !r.IsArray() {
		return nil, false
	}
	args, ok := r.Value().([]any)
	if !ok {
		return nil, false
	}
	return args, true
}
