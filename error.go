package feedbus

// errorTypeName is the catalog name of the error event.
const errorTypeName = "error"

// Error normalizes the legacy error call shapes and forwards the result to
// Dispatch under the "error" type. The feed has historically produced error
// events in three incompatible shapes:
//
//  1. (id, errorCode, errorMsg) with integer id and code and a string
//     message, mapped to the fields of the same names
//  2. a single string, mapped to errorMsg
//  3. a single opaque value, mapped to errorMsg
//
// Shapes are tried in that order. Any other combination falls back to
// shape 3 with the whole argument list as the opaque value, so Error never
// rejects a call. Listeners registered for "error" receive every shape
// through the same dispatch path.
//
// Example:
//
//	r.Error(7, 504, "timeout")   // fields id, errorCode, errorMsg
//	r.Error("bad feed")          // field errorMsg
//	r.Error(someValue)           // field errorMsg
func (r *Receiver) Error(args ...any) {
	r.Dispatch(errorTypeName, normalizeError(args))
}

// normalizeError resolves the overloaded shapes by argument count and type.
// Matched values are kept as supplied; integer detection accepts the usual
// Go integer kinds plus integral floats, since JSON numbers decode as
// float64.
func normalizeError(args []any) map[string]any {
	if len(args) == 3 {
		_, idOK := asInt(args[0])
		_, codeOK := asInt(args[1])
		_, msgOK := args[2].(string)
		if idOK && codeOK && msgOK {
			return map[string]any{
				"id":        args[0],
				"errorCode": args[1],
				"errorMsg":  args[2],
			}
		}
	}
	if len(args) == 1 {
		return map[string]any{"errorMsg": args[0]}
	}
	return map[string]any{"errorMsg": args}
}
