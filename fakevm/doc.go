// Package fakevm provides an instrumented in-memory managed runtime
// implementing jnibridge.Env.
//
// It exists for two consumers: the package tests of the handle layer, which
// assert exactly-once release and no-leak properties against its
// reference-table counters, and the jniexplore tool, which uses it as a
// self-contained runtime to demonstrate the construction path.
//
// # Reference Tables
//
// Local and global references live in separate slot tables with free lists.
// Every create and delete is counted, stale or wrong-scope deletes are
// recorded as BadReleases, and PushFrame/PopFrame model the runtime
// reclaiming a call frame's local references on exit:
//
//	vm := fakevm.New()
//	vm.PushFrame()
//	ref := vm.FindClass("java/lang/String") // local, scoped to the frame
//	vm.PopFrame()                           // ref is now invalid
//
// # Classes and Exceptions
//
// Classes are registered by qualified name with their constructor, method,
// and field signatures. Lookups that miss leave a pending exception, exactly
// as the real runtime does, and ClearPendingException has check-and-clear
// semantics. FailConstructor and ThrowNew inject managed-side failures.
package fakevm
