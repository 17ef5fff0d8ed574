package feedbus

// OnDispatchFunc is called after a message is built, just before it is
// handed to the listeners registered for its type. The count is the number
// of listeners about to receive the message and may be zero.
type OnDispatchFunc func(mtype string, msg *Message, listeners int)

// OnFaultFunc is called after a listener panic has been contained and the
// listener dropped for that type. It runs after the sink.
type OnFaultFunc func(f Fault)

// OnUnknownTypeFunc is called when a dispatch names a type the receiver's
// registry does not know. The event is discarded either way.
type OnUnknownTypeFunc func(mtype string)

// hooks holds all configured hook functions.
type hooks struct {
	onDispatch    []OnDispatchFunc
	onFault       []OnFaultFunc
	onUnknownType []OnUnknownTypeFunc
}

// Option configures a Receiver.
type Option func(*Receiver)

// WithOnDispatch adds a hook called before each delivery round.
// Multiple hooks are called in order. Hooks are contained like the sink:
// one that panics cannot break dispatch.
//
// Example:
//
//	feedbus.WithOnDispatch(func(mtype string, m *feedbus.Message, n int) {
//	    metrics.Incr("feed.dispatch", "type:"+mtype)
//	})
func WithOnDispatch(fn OnDispatchFunc) Option {
	return func(r *Receiver) {
		r.hooks.onDispatch = append(r.hooks.onDispatch, fn)
	}
}

// WithOnFault adds a hook called after a listener fault has been reported
// and the listener dropped. Multiple hooks are called in order, each
// contained against its own panics.
//
// Example:
//
//	feedbus.WithOnFault(func(f feedbus.Fault) {
//	    metrics.Incr("feed.fault", "type:"+f.Type)
//	})
func WithOnFault(fn OnFaultFunc) Option {
	return func(r *Receiver) {
		r.hooks.onFault = append(r.hooks.onFault, fn)
	}
}

// WithOnUnknownType adds a hook called when a dispatch names an unregistered
// type. Multiple hooks are called in order, each contained against its own
// panics.
func WithOnUnknownType(fn OnUnknownTypeFunc) Option {
	return func(r *Receiver) {
		r.hooks.onUnknownType = append(r.hooks.onUnknownType, fn)
	}
}
