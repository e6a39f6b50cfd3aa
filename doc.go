// Package jnibridge provides reference-lifetime and reflection-handle
// management for native Go code embedding a JVM-style managed runtime.
//
// The runtime owns and garbage-collects its objects; native code only ever
// holds opaque references to them, scoped either to the current call frame
// (local) or to the process (global, manually released). This library's job
// is to let Go code hold, share, and release such references without
// leaking them, without using them past collection, and without repeating
// name/signature lookups on every call.
//
// # Architecture Overview
//
// The library is organized into focused packages:
//
//	jnibridge/          Root package with the Env boundary interface and
//	                    the Ref/MethodID/FieldID/Value boundary types
//	├── jni/            High-level API: process init, Object and Class
//	                    handles, embedded VM lifecycle
//	├── sig/            Descriptor derivation and argument marshalling
//	│                   for constructor dispatch
//	├── fakevm/         Instrumented in-memory runtime for tests and tools
//	└── errors/         Structured error types for debugging
//
// # Quick Start
//
// Initialize once with the Env obtained from the runtime binding, then
// resolve classes and construct instances:
//
//	jni.Init(env)
//
//	cls, err := jni.FindClass("java/lang/Integer")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cls.Close()
//
//	obj, err := cls.NewInstance(int32(42)) // derives and resolves (I)V
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer obj.Close()
//
// # Reference Ownership
//
// An Object owns at most one runtime reference. Global references are
// released exactly once when the owning Object is closed; local references
// are borrowed and left to the runtime's frame bookkeeping. Clone duplicates
// ownership (a fresh global reference to the same managed object); Move
// transfers it and nulls the source.
package jnibridge
