package jni

import (
	"reflect"

	jnibridge "github.com/wippyai/jni-bridge"
	"github.com/wippyai/jni-bridge/errors"
	"github.com/wippyai/jni-bridge/sig"
)

// ctorName is the runtime's reserved constructor name.
const ctorName = "<init>"

// Class is a handle to a class object. It adds member lookup and instance
// construction on top of Object's ownership rules.
type Class struct {
	Object
}

// FindClass resolves a class by qualified name (e.g. "java/lang/String").
// The class reference is promoted to a global one and the lookup's local
// reference is deleted, so a Class can be kept across call frames.
func FindClass(name string) (*Class, error) {
	e, err := activeEnv()
	if err != nil {
		return nil, err
	}

	ref := e.FindClass(name)
	if ref == 0 {
		e.ClearPendingException()
		return nil, errors.ClassNotFound(name)
	}

	obj, err := NewObject(ref, DeleteLocalInput)
	if err != nil {
		return nil, err
	}
	return &Class{Object: *obj}, nil
}

// WrapClass wraps an already-resolved class reference, applying NewObject's
// scope-flag semantics.
func WrapClass(ref jnibridge.Ref, flags ScopeFlags) (*Class, error) {
	obj, err := NewObject(ref, flags)
	if err != nil {
		return nil, err
	}
	return &Class{Object: *obj}, nil
}

// Method resolves a method by exact name and signature. The returned token
// needs no release and stays valid while the class is loaded; callers store
// it to skip repeat lookups. No caching happens here.
func (c *Class) Method(name, signature string) (jnibridge.MethodID, error) {
	e, err := activeEnv()
	if err != nil {
		return 0, err
	}

	id := e.GetMethodID(c.handle, name, signature)
	if id == 0 {
		e.ClearPendingException()
		return 0, errors.MethodNotFound(name, signature)
	}
	return id, nil
}

// Field resolves a field by exact name and type signature, with the same
// token lifetime rules as Method.
func (c *Class) Field(name, signature string) (jnibridge.FieldID, error) {
	e, err := activeEnv()
	if err != nil {
		return 0, err
	}

	id := e.GetFieldID(c.handle, name, signature)
	if id == 0 {
		e.ClearPendingException()
		return 0, errors.FieldNotFound(name, signature)
	}
	return id, nil
}

// NewInstance constructs a new instance of the class. The constructor's
// descriptor is derived from the argument types, so a wrong argument type
// fails the lookup with the constructor's symbol — before anything runs on
// the managed side. With no arguments this resolves the ()V constructor.
func (c *Class) NewInstance(args ...any) (*Object, error) {
	e, err := activeEnv()
	if err != nil {
		return nil, err
	}

	descriptor, err := sig.ConstructorDescriptor(args...)
	if err != nil {
		return nil, err
	}
	ctor, err := c.Method(ctorName, descriptor)
	if err != nil {
		return nil, err
	}
	values, err := sig.EncodeArgs(e, args...)
	if err != nil {
		return nil, err
	}

	return c.newObject(e, ctor, values)
}

// newObject invokes the allocation call with a resolved constructor and
// pre-encoded arguments. The fresh instance has no other owner, so it is
// promoted to a global reference and the producer's local is deleted.
func (c *Class) newObject(e jnibridge.Env, ctor jnibridge.MethodID, args []jnibridge.Value) (*Object, error) {
	ref := e.NewObject(c.handle, ctor, args)
	if ref == 0 {
		desc, _ := e.ClearPendingException()
		return nil, errors.Invocation(desc)
	}
	return NewObject(ref, DeleteLocalInput)
}

func init() {
	// Handle types participate in signature derivation like any registered
	// value type; registering here keeps sig free of a dependency cycle.
	sig.Register(reflect.TypeOf((*Object)(nil)), "Ljava/lang/Object;",
		func(_ jnibridge.Env, v any) (jnibridge.Value, error) {
			return jnibridge.RefValue(v.(*Object).Handle()), nil
		})
	sig.Register(reflect.TypeOf((*Class)(nil)), "Ljava/lang/Class;",
		func(_ jnibridge.Env, v any) (jnibridge.Value, error) {
			return jnibridge.RefValue(v.(*Class).Handle()), nil
		})
}
