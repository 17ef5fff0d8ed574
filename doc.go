// Package feedbus delivers inbound trading-feed events to subscribers with
// per-listener fault isolation.
//
// The feed produces loosely typed events: a method name plus positional
// arguments. feedbus turns each event into an immutable Message and fans it
// out to every listener registered for that type, guaranteeing that one
// failing listener can neither break delivery to the others nor corrupt the
// subscription table.
//
// # Quick Start
//
// Create a receiver, register listeners, and feed it events:
//
//	r := feedbus.New()
//
//	r.Register(feedbus.ListenerFunc(func(m *feedbus.Message) {
//	    fmt.Println(m.GetFloat("price"))
//	}), "tickPrice")
//
//	r.Invoke("tickPrice", 1, 4, 135.42, 0)
//
// Or wire it to a transport through a Decoder:
//
//	d := feedbus.NewDecoder(r)
//	d.AddSource(feedbus.EnvelopeSource())
//	d.AddSource(feedbus.LegacyErrorSource())
//
//	for frame := range transport {
//	    if err := d.Decode(frame); err != nil {
//	        log.Warn("bad frame", "error", err)
//	    }
//	}
//
// # Design Philosophy
//
// The package separates concerns into three layers:
//
//   - Sources: Decode raw frames into (method, args) calls
//   - Receiver: Builds typed messages and fans them out to listeners
//   - Listeners: Pure subscriber logic over immutable messages
//
// The receiver is deliberately forgiving at its edges and strict in the
// middle. Unknown method names and types with no listeners are discarded
// without error, because the feed routinely carries events a client does
// not model. Listener behavior is where strictness lives: a listener that
// panics is dropped for the offending type, reported to the sink, and
// never retried.
//
// # Dispatch and Fault Isolation
//
// Dispatch builds exactly one Message per event and delivers it to the
// listeners registered for the type at the moment of the call, in
// registration order. The listener list is snapshotted before delivery, so
// listeners removed mid-round (including by their own fault) still receive
// that round if they were present at its start.
//
// A panic in a listener is contained inside the delivery of that one
// listener: the receiver removes it from that type's list only, reports a
// Fault carrying the panic value and stack to the sink, and continues with
// the remaining listeners. Dispatch itself never panics and never returns
// an error. This is the contract that keeps the transport's event loop
// alive regardless of subscriber quality.
//
// # Message Types
//
// A Registry maps each type name to its field shape (the positional order
// of its fields on the wire) and constructor. DefaultRegistry covers the
// standard feed catalog; pass WithRegistry to use a custom one:
//
//	reg := feedbus.MustRegistry(
//	    feedbus.TypeDef{Name: "heartbeat", Fields: []string{"time"}},
//	)
//	r := feedbus.New(feedbus.WithRegistry(reg))
//
// Key normalizes every way of naming a type (its name string, its TypeDef,
// anything with a String method) to one identity, so registration by name
// and registration by definition land in the same listener list.
//
// # The Error Event
//
// The feed's error event historically arrives in three shapes: an
// (id, errorCode, errorMsg) triple, a bare string, or a single opaque
// value. Receiver.Error resolves the shape by argument count and type and
// forwards one canonical field mapping to the regular dispatch path, so
// listeners registered for "error" see every shape as the same message
// type. Unrecognized combinations degrade to a single opaque errorMsg
// rather than failing.
//
// # Frames and Sources
//
// The decoding layer uses a two-phase matching strategy:
//
//  1. Discriminator: Cheap field presence/value checks on a Frame
//  2. Decode: Full extraction only after the discriminator matches
//
// Frames are gjson-backed views, so discriminators read fields without
// unmarshaling whole frames, and the last successfully matched source is
// tried first on subsequent frames.
//
// Composable discriminators are provided:
//   - HasFields: Check for field presence
//   - FieldEquals: Check field value
//   - And, Or, Not: Combine discriminators
//
// # Hooks and Observability
//
// Functional options attach observation points without coupling the
// receiver to a logging or metrics system:
//
//	r := feedbus.New(
//	    feedbus.WithSink(feedbus.NewSlogSink(logger)),
//	    feedbus.WithOnDispatch(func(mtype string, m *feedbus.Message, n int) {
//	        metrics.Incr("feed.dispatch", "type:"+mtype)
//	    }),
//	    feedbus.WithOnFault(func(f feedbus.Fault) {
//	        metrics.Incr("feed.fault", "type:"+f.Type)
//	    }),
//	)
//
// The sink is the primary fault channel; the default prints readable
// reports to os.Stderr. Sinks and fault hooks are themselves contained: a
// panicking sink cannot take down dispatch.
//
// # Thread Safety
//
// Receiver and Decoder are safe for concurrent use after configuration is
// complete. Apply options at construction and add decoder sources before
// the first Decode call.
package feedbus
