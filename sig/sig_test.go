package sig

import (
	"reflect"
	"strings"
	"testing"

	jnibridge "github.com/wippyai/jni-bridge"
	"github.com/wippyai/jni-bridge/fakevm"
)

func TestConstructorDescriptor(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want string
	}{
		{"no args", nil, "()V"},
		{"single int", []any{int32(42)}, "(I)V"},
		{"mixed primitives", []any{true, int64(1), float64(2)}, "(ZJD)V"},
		{"string arg", []any{"s"}, "(Ljava/lang/String;)V"},
		{"narrow types", []any{int8(1), int16(2), uint16('c'), float32(3)}, "(BSCF)V"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConstructorDescriptor(tt.args...)
			if err != nil {
				t.Fatalf("ConstructorDescriptor: %v", err)
			}
			if got != tt.want {
				t.Errorf("descriptor = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnsupportedType(t *testing.T) {
	_, err := ConstructorDescriptor(uint(1))
	if err == nil {
		t.Fatal("expected error for unregistered type")
	}
	if !strings.Contains(err.Error(), "uint") {
		t.Fatalf("error %q should name the Go type", err)
	}

	_, err = ConstructorDescriptor(nil)
	if err == nil {
		t.Fatal("expected error for nil argument")
	}
}

func TestEncodeArgs(t *testing.T) {
	env := fakevm.New()

	values, err := EncodeArgs(env, int32(-7), true, float64(1.5))
	if err != nil {
		t.Fatalf("EncodeArgs: %v", err)
	}
	if len(values) != 3 {
		t.Fatalf("got %d values, want 3", len(values))
	}
	if values[0].Int() != -7 {
		t.Errorf("int lane = %d, want -7", values[0].Int())
	}
	if !values[1].Bool() {
		t.Error("bool lane should be true")
	}
	if values[2].Double() != 1.5 {
		t.Errorf("double lane = %v, want 1.5", values[2].Double())
	}
}

func TestEncodeStringAllocates(t *testing.T) {
	env := fakevm.New()

	values, err := EncodeArgs(env, "hello")
	if err != nil {
		t.Fatalf("EncodeArgs: %v", err)
	}
	if values[0].Kind != jnibridge.KindRef {
		t.Fatal("string should encode into the ref lane")
	}
	if s, ok := env.StringValue(values[0].Ref); !ok || s != "hello" {
		t.Fatalf("string value = %q (%v), want \"hello\"", s, ok)
	}
}

type celsius float32

func TestRegisterCustomType(t *testing.T) {
	Register(reflect.TypeOf(celsius(0)), "F", func(_ jnibridge.Env, v any) (jnibridge.Value, error) {
		return jnibridge.FloatValue(float32(v.(celsius))), nil
	})

	d, err := ConstructorDescriptor(celsius(21.5))
	if err != nil {
		t.Fatalf("ConstructorDescriptor: %v", err)
	}
	if d != "(F)V" {
		t.Fatalf("descriptor = %q, want (F)V", d)
	}

	values, err := EncodeArgs(fakevm.New(), celsius(21.5))
	if err != nil {
		t.Fatalf("EncodeArgs: %v", err)
	}
	if values[0].Float() != 21.5 {
		t.Fatalf("float lane = %v, want 21.5", values[0].Float())
	}
}
