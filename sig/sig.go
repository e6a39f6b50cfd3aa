package sig

import (
	"reflect"
	"strings"
	"sync"

	jnibridge "github.com/wippyai/jni-bridge"
	"github.com/wippyai/jni-bridge/errors"
)

// Encoder turns a Go value into the runtime's call-argument encoding.
// Encoders that need runtime allocation (strings, arrays) go through env.
type Encoder func(env jnibridge.Env, v any) (jnibridge.Value, error)

type mapping struct {
	descriptor string
	encode     Encoder
}

var (
	mu       sync.RWMutex
	mappings = map[reflect.Type]mapping{}
)

// Register binds a Go type to its descriptor fragment and encoder. New value
// types can be added by callers without touching the handle layer; later
// registrations for the same type win.
func Register(t reflect.Type, descriptor string, enc Encoder) {
	mu.Lock()
	defer mu.Unlock()
	mappings[t] = mapping{descriptor: descriptor, encode: enc}
}

func lookup(v any) (mapping, error) {
	t := reflect.TypeOf(v)

	mu.RLock()
	m, ok := mappings[t]
	mu.RUnlock()

	if !ok {
		if t == nil {
			return mapping{}, errors.UnsupportedType("nil")
		}
		return mapping{}, errors.UnsupportedType(t.String())
	}
	return m, nil
}

// Descriptor returns the signature fragment contributed by v's type.
func Descriptor(v any) (string, error) {
	m, err := lookup(v)
	if err != nil {
		return "", err
	}
	return m.descriptor, nil
}

// Encode marshals v into a single argument slot.
func Encode(env jnibridge.Env, v any) (jnibridge.Value, error) {
	m, err := lookup(v)
	if err != nil {
		return jnibridge.Value{}, err
	}
	return m.encode(env, v)
}

// ConstructorDescriptor derives the descriptor of a constructor taking the
// given arguments, e.g. (int32, string) -> "(ILjava/lang/String;)V".
// Constructors are void-returning by the runtime's descriptor grammar.
func ConstructorDescriptor(args ...any) (string, error) {
	var b strings.Builder
	b.WriteByte('(')
	for _, a := range args {
		d, err := Descriptor(a)
		if err != nil {
			return "", err
		}
		b.WriteString(d)
	}
	b.WriteString(")V")
	return b.String(), nil
}

// EncodeArgs marshals an argument list into the runtime's generic
// argument-value encoding, in order.
func EncodeArgs(env jnibridge.Env, args ...any) ([]jnibridge.Value, error) {
	if len(args) == 0 {
		return nil, nil
	}
	values := make([]jnibridge.Value, len(args))
	for i, a := range args {
		v, err := Encode(env, a)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func init() {
	Register(reflect.TypeOf(false), "Z", func(_ jnibridge.Env, v any) (jnibridge.Value, error) {
		return jnibridge.BoolValue(v.(bool)), nil
	})
	Register(reflect.TypeOf(int8(0)), "B", func(_ jnibridge.Env, v any) (jnibridge.Value, error) {
		return jnibridge.ByteValue(v.(int8)), nil
	})
	Register(reflect.TypeOf(int16(0)), "S", func(_ jnibridge.Env, v any) (jnibridge.Value, error) {
		return jnibridge.ShortValue(v.(int16)), nil
	})
	Register(reflect.TypeOf(uint16(0)), "C", func(_ jnibridge.Env, v any) (jnibridge.Value, error) {
		return jnibridge.CharValue(v.(uint16)), nil
	})
	Register(reflect.TypeOf(int32(0)), "I", func(_ jnibridge.Env, v any) (jnibridge.Value, error) {
		return jnibridge.IntValue(v.(int32)), nil
	})
	Register(reflect.TypeOf(int64(0)), "J", func(_ jnibridge.Env, v any) (jnibridge.Value, error) {
		return jnibridge.LongValue(v.(int64)), nil
	})
	Register(reflect.TypeOf(float32(0)), "F", func(_ jnibridge.Env, v any) (jnibridge.Value, error) {
		return jnibridge.FloatValue(v.(float32)), nil
	})
	Register(reflect.TypeOf(float64(0)), "D", func(_ jnibridge.Env, v any) (jnibridge.Value, error) {
		return jnibridge.DoubleValue(v.(float64)), nil
	})
	Register(reflect.TypeOf(""), "Ljava/lang/String;", func(env jnibridge.Env, v any) (jnibridge.Value, error) {
		return jnibridge.RefValue(env.NewString(v.(string))), nil
	})
}
