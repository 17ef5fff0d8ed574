package feedbus

// EntryPoint adapts one message type's positional transport arguments: it
// zips them with the type's field shape and forwards the mapping to
// Dispatch. Entry points contain no logic beyond the zip-and-forward.
type EntryPoint func(args ...any)

// buildEntryPoints populates the receiver's entry point table, one closure
// per registry type. The "error" entry routes through the overload adapter
// instead of a positional zip.
func (r *Receiver) buildEntryPoints() {
	r.entries = make(map[string]EntryPoint, r.registry.Len())
	for _, def := range r.registry.Types() {
		def := def // per-iteration capture under pre-1.22 loop semantics
		if def.Name == errorTypeName {
			r.entries[def.Name] = func(args ...any) { r.Error(args...) }
			continue
		}
		r.entries[def.Name] = func(args ...any) {
			r.Dispatch(def.Name, zipFields(def.Fields, args))
		}
	}
}

// EntryPoint returns the entry point for a type name, or nil if the
// registry does not know the name.
func (r *Receiver) EntryPoint(name string) EntryPoint {
	return r.entries[name]
}

// Invoke calls the entry point for method with the given positional
// arguments. Methods the registry does not know are discarded, matching
// Dispatch's tolerance for unknown type names.
//
// Example:
//
//	r.Invoke("tickPrice", 1, 4, 135.42, 0)
func (r *Receiver) Invoke(method string, args ...any) {
	ep := r.entries[method]
	if ep == nil {
		r.noteUnknown(method)
		return
	}
	ep(args...)
}

// zipFields pairs field names with positional values. Arguments beyond the
// shape are dropped; a short argument list leaves the trailing fields
// absent.
func zipFields(fields []string, args []any) map[string]any {
	m := make(map[string]any, len(fields))
	for i, name := range fields {
		if i >= len(args) {
			break
		}
		m[name] = args[i]
	}
	return m
}
