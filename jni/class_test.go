package jni

import (
	"strings"
	"testing"

	jnierrors "github.com/wippyai/jni-bridge/errors"
	"github.com/wippyai/jni-bridge/fakevm"
)

func registerPoint(vm *fakevm.FakeVM) {
	vm.RegisterClass(fakevm.ClassSpec{
		Name:         "java/awt/Point",
		Constructors: []string{"()V", "(II)V"},
		Methods: map[string][]string{
			"getX": {"()D"},
		},
		Fields: map[string]string{
			"x": "I",
			"y": "I",
		},
	})
}

func TestFindClass(t *testing.T) {
	vm := newTestVM(t)
	registerPoint(vm)

	cls, err := FindClass("java/awt/Point")
	if err != nil {
		t.Fatalf("FindClass: %v", err)
	}
	defer cls.Close()

	if cls.IsNull() {
		t.Fatal("expected non-null class handle")
	}
	if !cls.IsGlobal() {
		t.Fatal("class handle should be promoted to a global reference")
	}

	st := vm.Stats()
	if st.LocalsDeleted != 1 {
		t.Fatalf("LocalsDeleted = %d, want 1 (lookup local cleaned up)", st.LocalsDeleted)
	}
}

func TestFindClassUnknown(t *testing.T) {
	vm := newTestVM(t)

	_, err := FindClass("does/not/Exist")
	if err == nil {
		t.Fatal("expected error for unknown class")
	}
	if !jnierrors.IsNameResolution(err) {
		t.Fatalf("want name resolution error, got %v", err)
	}
	if !strings.Contains(err.Error(), "does/not/Exist") {
		t.Fatalf("error %q should carry the class name", err)
	}

	// The lookup's pending exception must not leak into later calls.
	if st := vm.Stats(); st.CallsWhilePending != 0 {
		t.Fatalf("CallsWhilePending = %d, want 0", st.CallsWhilePending)
	}
	registerPoint(vm)
	if _, err := FindClass("java/awt/Point"); err != nil {
		t.Fatalf("follow-up FindClass: %v", err)
	}
}

func TestNotInitialized(t *testing.T) {
	setEnv(nil)
	t.Cleanup(func() { setEnv(nil) })

	_, err := FindClass("java/awt/Point")
	if err == nil {
		t.Fatal("expected error before Init")
	}
	if !jnierrors.IsInitialization(err) {
		t.Fatalf("want initialization error, got %v", err)
	}
}

func TestMethodLookup(t *testing.T) {
	vm := newTestVM(t)
	registerPoint(vm)

	cls, err := FindClass("java/awt/Point")
	if err != nil {
		t.Fatalf("FindClass: %v", err)
	}
	defer cls.Close()

	if _, err := cls.Method("getX", "()D"); err != nil {
		t.Fatalf("Method: %v", err)
	}

	_, err = cls.Method("<init>", "(F)V")
	if !jnierrors.IsNameResolution(err) {
		t.Fatalf("want name resolution error, got %v", err)
	}
	if !strings.Contains(err.Error(), "<init>") || !strings.Contains(err.Error(), "(F)V") {
		t.Fatalf("error %q should carry symbol and signature", err)
	}
}

func TestFieldLookup(t *testing.T) {
	vm := newTestVM(t)
	registerPoint(vm)

	cls, err := FindClass("java/awt/Point")
	if err != nil {
		t.Fatalf("FindClass: %v", err)
	}
	defer cls.Close()

	if _, err := cls.Field("x", "I"); err != nil {
		t.Fatalf("Field: %v", err)
	}

	_, err = cls.Field("z", "I")
	if !jnierrors.IsNameResolution(err) {
		t.Fatalf("want name resolution error, got %v", err)
	}
	if !strings.Contains(err.Error(), "z") {
		t.Fatalf("error %q should carry the field name", err)
	}
}

func TestNewInstanceZeroArg(t *testing.T) {
	vm := newTestVM(t)
	registerPoint(vm)

	cls, err := FindClass("java/awt/Point")
	if err != nil {
		t.Fatalf("FindClass: %v", err)
	}
	defer cls.Close()

	obj, err := cls.NewInstance()
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	defer obj.Close()

	if obj.IsNull() {
		t.Fatal("expected non-null instance")
	}
	if !obj.IsGlobal() {
		t.Fatal("fresh instance should be promoted to a global reference")
	}
	if sig, _ := vm.ConstructorSignature(obj.Handle()); sig != "()V" {
		t.Fatalf("constructor signature = %q, want ()V", sig)
	}
}

func TestNewInstanceDerivesSignature(t *testing.T) {
	vm := newTestVM(t)
	registerPoint(vm)

	cls, err := FindClass("java/awt/Point")
	if err != nil {
		t.Fatalf("FindClass: %v", err)
	}
	defer cls.Close()

	obj, err := cls.NewInstance(int32(4), int32(2))
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	defer obj.Close()

	if sig, _ := vm.ConstructorSignature(obj.Handle()); sig != "(II)V" {
		t.Fatalf("constructor signature = %q, want (II)V", sig)
	}
	args, _ := vm.ConstructorArgs(obj.Handle())
	if len(args) != 2 || args[0].Int() != 4 || args[1].Int() != 2 {
		t.Fatalf("constructor args = %+v, want 4 and 2", args)
	}
}

func TestNewInstanceMissingConstructor(t *testing.T) {
	vm := newTestVM(t)
	registerPoint(vm)

	cls, err := FindClass("java/awt/Point")
	if err != nil {
		t.Fatalf("FindClass: %v", err)
	}
	defer cls.Close()

	// No (J)V constructor registered: the derived descriptor misses at
	// lookup time, before anything runs on the managed side.
	_, err = cls.NewInstance(int64(1))
	if !jnierrors.IsNameResolution(err) {
		t.Fatalf("want name resolution error, got %v", err)
	}
	if !strings.Contains(err.Error(), "(J)V") {
		t.Fatalf("error %q should carry the derived descriptor", err)
	}
}

func TestNewInstanceStringArg(t *testing.T) {
	vm := newTestVM(t)
	vm.RegisterClass(fakevm.ClassSpec{
		Name:         "java/lang/StringBuilder",
		Constructors: []string{"(Ljava/lang/String;)V"},
	})

	cls, err := FindClass("java/lang/StringBuilder")
	if err != nil {
		t.Fatalf("FindClass: %v", err)
	}
	defer cls.Close()

	obj, err := cls.NewInstance("seed")
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	defer obj.Close()

	args, _ := vm.ConstructorArgs(obj.Handle())
	if len(args) != 1 {
		t.Fatalf("got %d constructor args, want 1", len(args))
	}
	if s, ok := vm.StringValue(args[0].Ref); !ok || s != "seed" {
		t.Fatalf("string arg = %q (%v), want \"seed\"", s, ok)
	}
}

func TestNewInstanceObjectArg(t *testing.T) {
	vm := newTestVM(t)
	vm.RegisterClass(fakevm.ClassSpec{
		Name:         "java/util/Optional",
		Constructors: []string{"(Ljava/lang/Object;)V"},
	})

	cls, err := FindClass("java/util/Optional")
	if err != nil {
		t.Fatalf("FindClass: %v", err)
	}
	defer cls.Close()

	payload, err := NewObject(vm.NewString("inner"), DeleteLocalInput)
	if err != nil {
		t.Fatalf("NewObject: %v", err)
	}
	defer payload.Close()

	obj, err := cls.NewInstance(payload)
	if err != nil {
		t.Fatalf("NewInstance: %v", err)
	}
	defer obj.Close()

	args, _ := vm.ConstructorArgs(obj.Handle())
	if len(args) != 1 || !vm.SameObject(args[0].Ref, payload.Handle()) {
		t.Fatal("object argument should reference the payload")
	}
}

func TestNewInstanceUnsupportedArgType(t *testing.T) {
	vm := newTestVM(t)
	registerPoint(vm)

	cls, err := FindClass("java/awt/Point")
	if err != nil {
		t.Fatalf("FindClass: %v", err)
	}
	defer cls.Close()

	_, err = cls.NewInstance(uint(7))
	if err == nil {
		t.Fatal("expected marshalling error")
	}
	if !strings.Contains(err.Error(), "uint") {
		t.Fatalf("error %q should name the unsupported Go type", err)
	}
}

func TestConstructorThrows(t *testing.T) {
	vm := newTestVM(t)
	registerPoint(vm)
	vm.FailConstructor("java/awt/Point", "()V", "java.lang.OutOfMemoryError: heap")

	cls, err := FindClass("java/awt/Point")
	if err != nil {
		t.Fatalf("FindClass: %v", err)
	}
	defer cls.Close()

	_, err = cls.NewInstance()
	if !jnierrors.IsInvocation(err) {
		t.Fatalf("want invocation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "OutOfMemoryError") {
		t.Fatalf("error %q should carry the managed exception", err)
	}

	// The exception was consumed; the next operation proceeds cleanly.
	if _, err := cls.Method("getX", "()D"); err != nil {
		t.Fatalf("follow-up Method: %v", err)
	}
	if st := vm.Stats(); st.CallsWhilePending != 0 {
		t.Fatalf("CallsWhilePending = %d, want 0", st.CallsWhilePending)
	}
}

func TestPendingExceptionSurfacesFirst(t *testing.T) {
	vm := newTestVM(t)
	registerPoint(vm)

	cls, err := FindClass("java/awt/Point")
	if err != nil {
		t.Fatalf("FindClass: %v", err)
	}
	defer cls.Close()

	// A managed call left an exception pending. The next bridge operation
	// must surface it instead of silently issuing new runtime calls.
	vm.ThrowNew("java.lang.IllegalStateException: boom")

	_, err = cls.NewInstance()
	if !jnierrors.IsInvocation(err) {
		t.Fatalf("want invocation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "IllegalStateException") {
		t.Fatalf("error %q should carry the pending exception", err)
	}

	obj, err := cls.NewInstance()
	if err != nil {
		t.Fatalf("retry after surfacing: %v", err)
	}
	obj.Close()

	if st := vm.Stats(); st.CallsWhilePending != 0 {
		t.Fatalf("CallsWhilePending = %d, want 0", st.CallsWhilePending)
	}
}

func TestWrapClass(t *testing.T) {
	vm := newTestVM(t)
	registerPoint(vm)

	raw := vm.FindClass("java/awt/Point")
	cls, err := WrapClass(raw, Temporary)
	if err != nil {
		t.Fatalf("WrapClass: %v", err)
	}
	if cls.IsGlobal() {
		t.Fatal("Temporary wrap must not promote")
	}
	if cls.Handle() != raw {
		t.Fatal("Temporary wrap must keep the raw reference")
	}

	obj, err := cls.NewInstance()
	if err != nil {
		t.Fatalf("NewInstance through wrapped class: %v", err)
	}
	obj.Close()
}
