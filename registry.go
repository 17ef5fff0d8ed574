package feedbus

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// ErrDuplicateType is returned when a registry is built with two definitions
// sharing the same name.
var ErrDuplicateType = errors.New("duplicate message type")

// ErrEmptyTypeName is returned when a registry is built with an unnamed
// definition.
var ErrEmptyTypeName = errors.New("empty message type name")

// TypeDef describes one message type the feed can deliver: its canonical
// name, the positional order of its fields on the wire, and (optionally) a
// custom constructor.
//
// Fields is the positional shape: entry point invocations zip positional
// arguments against it in order. The default constructor records whatever
// fields it is handed; supplying fewer or extra fields is the constructor's
// concern, never the dispatcher's.
//
// Example:
//
//	feedbus.TypeDef{
//	    Name:   "tickPrice",
//	    Fields: []string{"tickerId", "field", "price", "canAutoExecute"},
//	}
type TypeDef struct {
	// Name is the canonical message type name, as it appears on the wire.
	Name string

	// Fields lists the field names in positional order.
	Fields []string

	// New overrides message construction for this type. When nil, the
	// registry builds a plain Message carrying the supplied fields.
	New func(fields map[string]any) *Message
}

// make builds a message for this definition from named fields.
func (d *TypeDef) make(fields map[string]any) *Message {
	if d.New != nil {
		return d.New(fields)
	}
	return NewMessage(d.Name, fields)
}

// Registry is an immutable catalog of message types, keyed by canonical name.
// It is built once, handed to every Receiver that should understand its
// types, and never modified afterward. Multiple receivers may share one
// registry; a registry never retains a reference to any receiver.
//
// Example:
//
//	reg := feedbus.MustRegistry(
//	    feedbus.TypeDef{Name: "tickPrice", Fields: []string{"tickerId", "field", "price", "canAutoExecute"}},
//	    feedbus.TypeDef{Name: "tickSize", Fields: []string{"tickerId", "field", "size"}},
//	)
//	recv := feedbus.New(feedbus.WithRegistry(reg))
type Registry struct {
	defs    map[string]*TypeDef
	ordered []*TypeDef
}

// NewRegistry builds a registry from the given definitions. Definition order
// is preserved for enumeration. Duplicate or empty names are rejected.
func NewRegistry(defs ...TypeDef) (*Registry, error) {
	g := &Registry{
		defs:    make(map[string]*TypeDef, len(defs)),
		ordered: make([]*TypeDef, 0, len(defs)),
	}
	for i := range defs {
		d := defs[i]
		if d.Name == "" {
			return nil, fmt.Errorf("registry definition %d: %w", i, ErrEmptyTypeName)
		}
		if _, exists := g.defs[d.Name]; exists {
			return nil, fmt.Errorf("registry definition %q: %w", d.Name, ErrDuplicateType)
		}
		d.Fields = append([]string(nil), d.Fields...)
		g.defs[d.Name] = &d
		g.ordered = append(g.ordered, &d)
	}
	return g, nil
}

// MustRegistry is like NewRegistry but panics on invalid definitions.
// Use for package-level catalogs where a bad definition is a programming
// error.
func MustRegistry(defs ...TypeDef) *Registry {
	g, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return g
}

// Lookup resolves a message type by identity: a name string, a *TypeDef, or
// anything else Key can normalize. The returned definition is shared and
// must be treated as read-only.
func (g *Registry) Lookup(mtype any) (*TypeDef, bool) {
	d, ok := g.defs[Key(mtype)]
	return d, ok
}

// Types enumerates every known definition in registration order.
func (g *Registry) Types() []*TypeDef {
	return append([]*TypeDef(nil), g.ordered...)
}

// Names enumerates every known type name in registration order.
func (g *Registry) Names() []string {
	return lo.Map(g.ordered, func(d *TypeDef, _ int) string { return d.Name })
}

// Len reports how many types the registry knows.
func (g *Registry) Len() int {
	return len(g.ordered)
}

// Key derives the canonical lookup key for a message type identity. A
// *TypeDef (or TypeDef) maps to its name, a string maps to itself, and
// anything else falls back to its string representation. Key is stable: the
// name string and the definition for that name always produce the same key.
func Key(obj any) string {
	switch v := obj.(type) {
	case string:
		return v
	case *TypeDef:
		return v.Name
	case TypeDef:
		return v.Name
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", obj)
	}
}
