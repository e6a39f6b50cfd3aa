// Package errors provides structured error types for the jni-bridge library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries the unresolved symbol name and signature
// for lookup failures, the Go type for marshalling failures, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindMethodNotFound).
//		Symbol("<init>").
//		Signature("(I)V").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ClassNotFound("java/lang/String")
//	err := errors.Invocation("java.lang.OutOfMemoryError")
//
// The three failure classes callers care about map onto phases:
// initialization (PhaseInit), name resolution (PhaseResolve), and
// managed-side invocation (PhaseInvoke). The IsInitialization,
// IsNameResolution, and IsInvocation predicates give that three-way
// distinction directly. All errors implement the standard error interface
// and support errors.Is/As.
package errors
