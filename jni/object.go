package jni

import (
	"go.uber.org/zap"

	jnibridge "github.com/wippyai/jni-bridge"
)

// ScopeFlags control how NewObject treats the raw reference it is given.
type ScopeFlags int

const (
	// Temporary keeps the raw local reference as-is instead of promoting it
	// to a global one. The caller accepts that the handle dies with the
	// current call frame.
	Temporary ScopeFlags = 1 << iota

	// DeleteLocalInput deletes the supplied local reference right after the
	// global promotion. Use it when the producer's local would otherwise sit
	// in the frame's reference table, e.g. when wrapping in a loop.
	DeleteLocalInput
)

// Object is a handle to a managed object. It owns at most one runtime
// reference: a global reference it must release exactly once, or a borrowed
// local reference it must leave alone. The zero Object is a null handle.
//
// Objects are not safe for concurrent mutation; concurrent reads (IsNull,
// Handle, Clone) of the same Object are fine.
type Object struct {
	handle jnibridge.Ref
	class  jnibridge.Ref // lazy GetObjectClass cache, not an owned reference
	global bool
}

// NewObject wraps a freshly obtained runtime reference. Without flags the
// reference is promoted: a new global reference is created and owned by the
// returned Object. A null ref yields a null handle.
func NewObject(ref jnibridge.Ref, flags ScopeFlags) (*Object, error) {
	if ref == 0 {
		return &Object{}, nil
	}
	if flags&Temporary != 0 {
		return &Object{handle: ref}, nil
	}

	e, err := activeEnv()
	if err != nil {
		return nil, err
	}

	global := e.NewGlobalRef(ref)
	if flags&DeleteLocalInput != 0 {
		e.DeleteLocalRef(ref)
	}
	Logger().Debug("promoted ref",
		zap.Uint64("local", uint64(ref)),
		zap.Uint64("global", uint64(global)))

	// A stale or dead input yields ref 0: the result is a plain null handle,
	// never a null handle claiming ownership.
	return &Object{handle: global, global: global != 0}, nil
}

// Clone duplicates the handle. For a global handle this creates a new,
// independently owned global reference to the same managed object; both
// handles must then be closed, each releasing its own reference. For a
// borrowed local handle the raw reference is aliased cheaply — the copy is
// only valid inside the call frame that produced the original.
func (o *Object) Clone() (*Object, error) {
	if o.IsNull() {
		return &Object{}, nil
	}
	if !o.global {
		return &Object{handle: o.handle}, nil
	}

	e, err := activeEnv()
	if err != nil {
		return nil, err
	}
	g := e.NewGlobalRef(o.handle)
	return &Object{handle: g, global: g != 0}, nil
}

// Move transfers the reference and its release obligation to a new Object
// and leaves the receiver null. Never touches the runtime.
func (o *Object) Move() *Object {
	moved := &Object{handle: o.handle, class: o.class, global: o.global}
	o.handle, o.class, o.global = 0, 0, false
	return moved
}

// Set is copy-assignment: the receiver releases its current reference and
// takes a fresh copy of other's, following Clone's rules. Assigning a
// handle to itself is a no-op.
func (o *Object) Set(other *Object) error {
	if o == other {
		return nil
	}

	// Copy first so a shared underlying object survives the release.
	cloned, err := other.Clone()
	if err != nil {
		return err
	}
	if err := o.Close(); err != nil {
		return err
	}
	*o = *cloned
	return nil
}

// Take is move-assignment: the receiver releases its current reference and
// adopts other's, leaving other null. Taking from itself is a no-op.
func (o *Object) Take(other *Object) error {
	if o == other {
		return nil
	}
	if err := o.Close(); err != nil {
		return err
	}
	*o = *other.Move()
	return nil
}

// Close releases the owned global reference, if any, and nulls the handle.
// Borrowed local references are left to the runtime's frame bookkeeping.
// Close is idempotent.
func (o *Object) Close() error {
	if o.global && o.handle != 0 {
		// Releasing references is permitted even with an exception pending,
		// so this bypasses the pending-exception gate.
		e, err := CurrentEnv()
		if err != nil {
			return err
		}
		e.DeleteGlobalRef(o.handle)
		Logger().Debug("released global ref", zap.Uint64("ref", uint64(o.handle)))
	}
	o.handle, o.class, o.global = 0, 0, false
	return nil
}

// IsNull reports whether the handle references no object.
func (o *Object) IsNull() bool {
	return o.handle == 0
}

// IsGlobal reports whether the handle owns a global reference.
func (o *Object) IsGlobal() bool {
	return o.global
}

// Handle returns the raw runtime reference for use in lower-level calls.
// Ownership does not transfer.
func (o *Object) Handle() jnibridge.Ref {
	return o.handle
}

// ClassRef returns a reference to the object's class, resolving it on first
// use and caching the result for the handle's lifetime. The cached reference
// is frame-scoped; it is a lookup cache, not an owned reference.
func (o *Object) ClassRef() (jnibridge.Ref, error) {
	if o.class != 0 {
		return o.class, nil
	}
	if o.IsNull() {
		return 0, nil
	}

	e, err := activeEnv()
	if err != nil {
		return 0, err
	}
	o.class = e.GetObjectClass(o.handle)
	return o.class, nil
}
