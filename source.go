package feedbus

import "errors"

// Discriminator decides whether a source should claim a frame. The decoder
// evaluates discriminators against every incoming frame, so implementations
// should stick to cheap field checks and leave real extraction to Decode.
type Discriminator interface {
	Match(f Frame) bool
}

// DiscriminatorFunc adapts a plain predicate to the Discriminator interface.
type DiscriminatorFunc func(f Frame) bool

// Match implements the Discriminator interface.
func (fn DiscriminatorFunc) Match(f Frame) bool { return fn(f) }

// HasFields matches frames where every given path exists. With no paths it
// matches everything.
func HasFields(paths ...string) Discriminator {
	return DiscriminatorFunc(func(f Frame) bool {
		for _, path := range paths {
			if !f.HasField(path) {
				return false
			}
		}
		return true
	})
}

// FieldEquals matches frames whose string value at path equals value.
// Missing and non-string fields never match.
func FieldEquals(path, value string) Discriminator {
	return DiscriminatorFunc(func(f Frame) bool {
		s, ok := f.GetString(path)
		return ok && s == value
	})
}

// And matches when every discriminator matches. With none it matches
// everything.
func And(ds ...Discriminator) Discriminator {
	return DiscriminatorFunc(func(f Frame) bool {
		for _, d := range ds {
			if !d.Match(f) {
				return false
			}
		}
		return true
	})
}

// Or matches when at least one discriminator matches. With none it matches
// nothing.
func Or(ds ...Discriminator) Discriminator {
	return DiscriminatorFunc(func(f Frame) bool {
		for _, d := range ds {
			if d.Match(f) {
				return true
			}
		}
		return false
	})
}

// Not matches when the wrapped discriminator does not.
func Not(d Discriminator) Discriminator {
	return DiscriminatorFunc(func(f Frame) bool {
		return !d.Match(f)
	})
}

// Call is the decoded form of one frame: a method name plus positional
// arguments, ready for Receiver.Invoke.
type Call struct {
	Method string
	Args   []any
}

// Source decodes frames of one wire format into calls.
//
// Sources are registered with Decoder.AddSource and matched using their
// Discriminator before Decode is called. This allows cheap detection
// before the full decode.
//
// Example:
//
//	type compactSource struct{}
//
//	func (compactSource) Name() string { return "compact" }
//
//	func (compactSource) Discriminator() feedbus.Discriminator {
//	    return feedbus.HasFields("m")
//	}
//
//	func (compactSource) Decode(f feedbus.Frame) (feedbus.Call, error) {
//	    m, _ := f.GetString("m")
//	    args, _ := f.GetArgs("a")
//	    return feedbus.Call{Method: m, Args: args}, nil
//	}
type Source interface {
	// Name returns the source identifier for logging and error reports.
	Name() string

	// Discriminator returns a predicate for cheap frame detection. The
	// decoder calls this before Decode to avoid decoding frames of another
	// format.
	Discriminator() Discriminator

	// Decode extracts the method name and positional arguments from a
	// frame of this source's format.
	Decode(f Frame) (Call, error)
}

// SourceFunc creates a Source from a name, discriminator, and decode
// function. Use for simple sources that don't need a struct.
func SourceFunc(name string, disc Discriminator, decode func(Frame) (Call, error)) Source {
	return &sourceFunc{name: name, disc: disc, decode: decode}
}

type sourceFunc struct {
	name   string
	disc   Discriminator
	decode func(Frame) (Call, error)
}

func (s *sourceFunc) Name() string                 { return s.name }
func (s *sourceFunc) Discriminator() Discriminator { return s.disc }
func (s *sourceFunc) Decode(f Frame) (Call, error) { return s.decode(f) }

// EnvelopeSource returns a Source for the standard feed envelope:
//
//	{"method": "tickPrice", "args": [1, 4, 135.42, 0]}
//
// A missing or empty args field decodes as a call with no arguments.
func EnvelopeSource() Source {
	return SourceFunc("envelope", HasFields("method"), func(f Frame) (Call, error) {
		method, ok := f.GetString("method")
		if !ok {
			return Call{}, errors.New("envelope: method is not a string")
		}
		args, _ := f.GetArgs("args")
		return Call{Method: method, Args: args}, nil
	})
}

// LegacyErrorSource returns a Source for bare error frames produced by
// older feed versions, which carry no envelope:
//
//	{"id": 7, "errorCode": 504, "errorMsg": "timeout"}
//	{"errorMsg": "bad feed"}
//
// Decoded calls carry the method "error" and route through the error
// overload adapter. The id and errorCode fields are used only when both
// are present and integral; otherwise the call degrades to the bare
// message shape.
func LegacyErrorSource() Source {
	disc := And(HasFields("errorMsg"), Not(HasFields("method")))
	return SourceFunc("legacy-error", disc, func(f Frame) (Call, error) {
		msg, ok := f.GetString("errorMsg")
		if !ok {
			return Call{}, errors.New("legacy error: errorMsg is not a string")
		}
		id, idOK := f.GetInt("id")
		code, codeOK := f.GetInt("errorCode")
		if idOK && codeOK {
			return Call{Method: errorTypeName, Args: []any{id, code, msg}}, nil
		}
		return Call{Method: errorTypeName, Args: []any{msg}}, nil
	})
}
