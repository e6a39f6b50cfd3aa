// Package jni is the high-level API of the bridge: process initialization,
// the Object and Class handle types, and the embedded VM lifecycle.
//
// # Initialization
//
// When managed code calls into native code, pass the environment handle to
// Init once; further calls are no-ops:
//
//	jni.Init(env)
//
// When native code is the process entry point, launch an embedded runtime
// instead; Launch installs the environment itself:
//
//	vm, err := jni.Launch(binding, "/usr/lib/jvm/libjvm.so")
//	defer vm.Close()
//
// Every public operation fails with an initialization error until one of
// the two has happened.
//
// # Handles
//
// Object wraps a single runtime reference with explicit ownership: global
// references are owned and released exactly once on Close, local references
// are borrowed. Clone duplicates ownership, Move/Take transfer it, Set is
// copy-assignment. Class specializes Object with member lookup and instance
// construction:
//
//	cls, err := jni.FindClass("java/awt/Point")
//	obj, err := cls.NewInstance(int32(4), int32(2)) // resolves <init>(II)V
//
// # Errors
//
// Failures split three ways: initialization errors (bridge not set up),
// name-resolution errors (a class, method, or field name or signature did
// not resolve; the symbol is in the error), and invocation errors (the
// managed code itself raised). See the errors package predicates.
package jni
