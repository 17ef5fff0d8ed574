package feedbus

import "maps"

// Message is one decoded protocol event: a message type name plus the named
// field values supplied for it. Messages are immutable once constructed; the
// receiver builds one per dispatch, hands the same instance to every
// listener, and never touches it again. Listeners may retain messages freely.
type Message struct {
	name   string
	fields map[string]any
}

// NewMessage builds a message of the named type from the given fields. The
// field map is copied, so later mutation of the argument does not leak into
// the message.
func NewMessage(name string, fields map[string]any) *Message {
	return &Message{
		name:   name,
		fields: maps.Clone(fields),
	}
}

// Type returns the canonical message type name.
func (m *Message) Type() string {
	return m.name
}

// Fields returns a copy of the message's field values.
func (m *Message) Fields() map[string]any {
	return maps.Clone(m.fields)
}

// Len reports how many fields the message carries.
func (m *Message) Len() int {
	return len(m.fields)
}

// Get returns the raw value for a field, or false when the field is absent.
func (m *Message) Get(field string) (any, bool) {
	v, ok := m.fields[field]
	return v, ok
}

// GetString returns the field as a string, or "" when absent or not a
// string.
func (m *Message) GetString(field string) string {
	s, _ := m.fields[field].(string)
	return s
}

// GetInt returns the field as an int64. JSON-decoded numbers arrive as
// float64; integral floats are accepted so listeners don't care which
// numeric form the transport produced. Returns 0 when absent or not an
// integral number.
func (m *Message) GetInt(field string) int64 {
	n, _ := asInt(m.fields[field])
	return n
}

// GetFloat returns the field as a float64, accepting the same numeric
// kinds as GetInt plus fractional floats. Returns 0 when absent or
// non-numeric.
func (m *Message) GetFloat(field string) float64 {
	switch v := m.fields[field].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	}
	n, _ := asInt(m.fields[field])
	return float64(n)
}

// asInt normalizes the integer forms a transport can hand over: Go integer
// kinds and integral floats from JSON decoding.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float32:
		if n == float32(int64(n)) {
			return int64(n), true
		}
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}
