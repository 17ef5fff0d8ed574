package feedbus

import (
	"os"
	"reflect"
	"runtime/debug"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
)

// Listener receives constructed messages. Implementations must not retain
// the ability to break dispatch: a panicking listener is dropped for the
// offending type and reported to the receiver's sink, and delivery to the
// remaining listeners continues.
//
// Listeners return nothing. A listener that wants to signal failure
// panics; anything softer is its own business.
type Listener interface {
	OnMessage(msg *Message)
}

// ListenerFunc adapts a function to the Listener interface.
//
// Function listeners are identified by code pointer, not by value: closures
// built from one function literal, and method values such as a.Handle and
// b.Handle taken from different instances, all count as the same listener
// and register once. Implement Listener on a pointer type when each
// instance must subscribe separately.
//
// Example:
//
//	r.Register(feedbus.ListenerFunc(func(m *feedbus.Message) {
//	    fmt.Println(m.Type())
//	}), "tickPrice", "tickSize")
type ListenerFunc func(msg *Message)

// OnMessage implements the Listener interface.
func (fn ListenerFunc) OnMessage(msg *Message) { fn(msg) }

// listenerKey derives the identity used to deduplicate and remove listeners.
// Comparable listener values are their own identity, so two equal pointers
// or equal comparable structs count as the same listener. Function values
// use their code pointer: closures from one function literal, and method
// values taken from different receivers of the same method, share one
// identity.
func listenerKey(l Listener) any {
	if l == nil {
		return nil
	}
	rv := reflect.ValueOf(l)
	switch rv.Kind() {
	case reflect.Func, reflect.Map, reflect.Slice:
		return rv.Pointer()
	}
	if rv.Type().Comparable() {
		return l
	}
	return describeListener(l)
}

// listenerEntry pairs a registered listener with its precomputed identity.
type listenerEntry struct {
	key any
	l   Listener
}

// Receiver owns the dispatch table for one inbound feed connection: it maps
// message type names to their registered listeners, builds one Message per
// protocol event, and fans it out with per-listener fault isolation.
//
// Usage:
//  1. Create a receiver with New
//  2. Register listeners with Register or RegisterAll
//  3. Feed events through Dispatch, Invoke, or a Decoder
//
// Receiver is safe for concurrent use after configuration. Options apply at
// construction only.
type Receiver struct {
	registry *Registry
	sink     Sink
	hooks    hooks
	entries  map[string]EntryPoint

	mu    sync.Mutex
	table map[string][]listenerEntry

	stats struct {
		dispatched atomic.Uint64
		delivered  atomic.Uint64
		faults     atomic.Uint64
		unknown    atomic.Uint64
	}
}

// New creates a Receiver with the given options.
//
// By default, the receiver uses DefaultRegistry for its type catalog and
// reports listener faults to os.Stderr. Use WithRegistry and WithSink to
// override.
//
// Example:
//
//	r := feedbus.New(
//	    feedbus.WithSink(feedbus.NewSlogSink(logger)),
//	    feedbus.WithOnFault(func(f feedbus.Fault) {
//	        metrics.Incr("feed.fault", "type:"+f.Type)
//	    }),
//	)
func New(opts ...Option) *Receiver {
	r := &Receiver{
		registry: DefaultRegistry(),
		sink:     NewWriterSink(os.Stderr),
		table:    make(map[string][]listenerEntry),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.buildEntryPoints()
	return r
}

// WithRegistry sets the type registry consulted by Dispatch and Invoke.
func WithRegistry(reg *Registry) Option {
	return func(r *Receiver) {
		r.registry = reg
	}
}

// WithSink sets the fault sink. A nil sink disables fault reporting but not
// the drop of the faulting listener.
func WithSink(s Sink) Option {
	return func(r *Receiver) {
		r.sink = s
	}
}

// Registry returns the type registry the receiver was built with.
func (r *Receiver) Registry() *Registry { return r.registry }

// Register adds the listener to each named type's listener list. Types may
// be given as name strings or TypeDef values; see Key. Registering the same
// listener twice for one type is a no-op, and registering for a name the
// registry does not know is allowed but never receives a dispatch.
//
// Sameness follows listener identity: pointer listeners compare by
// pointer, comparable values by equality, and function listeners by code
// pointer. The last rule means closures built from one function literal,
// and method values from different instances of the same type, collapse
// into a single registration; give each subscribing instance its own
// Listener implementation when instances must stay distinct.
func (r *Receiver) Register(l Listener, types ...any) {
	if l == nil {
		return
	}
	k := listenerKey(l)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range types {
		name := Key(t)
		if r.indexLocked(name, k) >= 0 {
			continue
		}
		r.table[name] = append(r.table[name], listenerEntry{key: k, l: l})
	}
}

// RegisterAll registers the listener for every type the registry knows.
func (r *Receiver) RegisterAll(l Listener) {
	r.Register(l, lo.ToAnySlice(r.registry.Names())...)
}

// Unregister removes the listener from each named type's listener list.
// Types with no listeners, or where the listener is not registered, are
// silently skipped. Other registrations of the same listener are untouched.
func (r *Receiver) Unregister(l Listener, types ...any) {
	if l == nil {
		return
	}
	k := listenerKey(l)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range types {
		r.removeLocked(Key(t), k)
	}
}

// UnregisterAll removes the listener from every type the registry knows.
func (r *Receiver) UnregisterAll(l Listener) {
	r.Unregister(l, lo.ToAnySlice(r.registry.Names())...)
}

// Listeners reports how many listeners are currently registered for a type.
func (r *Receiver) Listeners(mtype any) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.table[Key(mtype)])
}

// IsRegistered reports whether the listener is currently registered for a type.
func (r *Receiver) IsRegistered(l Listener, mtype any) bool {
	if l == nil {
		return false
	}
	k := listenerKey(l)
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.indexLocked(Key(mtype), k) >= 0
}

// Dispatch builds one message of the named type from the field mapping and
// delivers it to every listener registered for that type at the moment of
// the call, in registration order.
//
// Unknown type names are discarded. A type with no listeners still has its
// message constructed, so dispatch hooks observe it, but nothing is
// delivered. A listener that panics during delivery is dropped for this
// type only and reported to the sink; delivery to the remaining listeners
// continues. Dispatch never panics and has no return value.
func (r *Receiver) Dispatch(mtype any, fields map[string]any) {
	name := Key(mtype)
	def, ok := r.registry.Lookup(name)
	if !ok {
		r.noteUnknown(name)
		return
	}

	r.mu.Lock()
	snapshot := slices.Clone(r.table[def.Name])
	r.mu.Unlock()

	msg := def.make(fields)

	r.stats.dispatched.Add(1)
	for _, fn := range r.hooks.onDispatch {
		contain(func() { fn(def.Name, msg, len(snapshot)) })
	}

	for _, e := range snapshot {
		r.deliver(def.Name, e, msg)
	}
}

// deliver invokes one listener, containing any panic. A faulting listener
// is removed from this type's list before the fault is reported, so a sink
// observing the receiver sees the post-drop state.
func (r *Receiver) deliver(name string, e listenerEntry, msg *Message) {
	defer func() {
		rec := recover()
		if rec == nil {
			r.stats.delivered.Add(1)
			return
		}
		stack := debug.Stack()
		r.stats.faults.Add(1)

		r.mu.Lock()
		r.removeLocked(name, e.key)
		r.mu.Unlock()

		r.report(Fault{
			Listener: describeListener(e.l),
			Type:     name,
			Value:    rec,
			Stack:    stack,
			Time:     time.Now(),
		})
	}()
	e.l.OnMessage(msg)
}

// report feeds the fault to the sink and fault hooks. Both are contained:
// a panicking sink cannot take down dispatch.
func (r *Receiver) report(f Fault) {
	if r.sink != nil {
		contain(func() { r.sink.Report(f) })
	}
	for _, fn := range r.hooks.onFault {
		contain(func() { fn(f) })
	}
}

// noteUnknown counts a dispatch naming a type the registry cannot resolve
// and feeds the unknown-type hooks.
func (r *Receiver) noteUnknown(name string) {
	r.stats.unknown.Add(1)
	for _, fn := range r.hooks.onUnknownType {
		contain(func() { fn(name) })
	}
}

func contain(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

// indexLocked returns the position of key in the type's listener list, or -1.
// Callers must hold r.mu.
func (r *Receiver) indexLocked(name string, key any) int {
	for i, e := range r.table[name] {
		if e.key == key {
			return i
		}
	}
	return -1
}

// removeLocked drops the entry for key from the type's listener list, if
// present. Callers must hold r.mu.
func (r *Receiver) removeLocked(name string, key any) {
	if i := r.indexLocked(name, key); i >= 0 {
		r.table[name] = slices.Delete(r.table[name], i, i+1)
	}
}

// Stats is a point-in-time snapshot of receiver counters.
type Stats struct {
	// Dispatched counts dispatches of known types, including those with no
	// listeners.
	Dispatched uint64

	// Delivered counts listener invocations that returned normally.
	Delivered uint64

	// Faults counts listener panics contained during delivery.
	Faults uint64

	// Unknown counts dispatches naming a type the registry does not know.
	Unknown uint64
}

// Stats returns a snapshot of the receiver's counters.
func (r *Receiver) Stats() Stats {
	return Stats{
		Dispatched: r.stats.dispatched.Load(),
		Delivered:  r.stats.delivered.Load(),
		Faults:     r.stats.faults.Load(),
		Unknown:    r.stats.unknown.Load(),
	}
}
