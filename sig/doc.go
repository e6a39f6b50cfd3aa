// Package sig derives runtime type descriptors from Go argument values and
// marshals those values into the runtime's generic call-argument encoding.
//
// The runtime resolves methods by exact name and descriptor string, so the
// descriptor derived here must match the grammar precisely — a mismatch
// fails the constructor lookup (with the symbol in the error), never the
// invocation itself.
//
// # Default Mappings
//
//	bool    -> Z        int64   -> J
//	int8    -> B        float32 -> F
//	int16   -> S        float64 -> D
//	uint16  -> C        string  -> Ljava/lang/String;
//	int32   -> I
//
// # Extending
//
// The mapping table is open. Register new value types without modifying the
// handle layer:
//
//	sig.Register(reflect.TypeOf(MyPoint{}), "Lcom/example/Point;", encodePoint)
//
// The jni package registers its own Object and Class handle types this way.
package sig
