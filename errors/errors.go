package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the bridge the error occurred
type Phase string

const (
	PhaseInit    Phase = "init"    // process-wide initialization
	PhaseResolve Phase = "resolve" // class/method/field lookup
	PhaseInvoke  Phase = "invoke"  // managed-side invocation
	PhaseMarshal Phase = "marshal" // argument encoding
)

// Kind categorizes the error
type Kind string

const (
	KindNotInitialized   Kind = "not_initialized"
	KindAlreadyRunning   Kind = "already_running"
	KindStartFailed      Kind = "start_failed"
	KindClassNotFound    Kind = "class_not_found"
	KindMethodNotFound   Kind = "method_not_found"
	KindFieldNotFound    Kind = "field_not_found"
	KindPendingException Kind = "pending_exception"
	KindUnsupportedType  Kind = "unsupported_type"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Cause     error
	Phase     Phase
	Kind      Kind
	Symbol    string // unresolved class/method/field name
	Signature string // descriptor involved in the lookup, if any
	GoType    string // offending Go type for marshalling failures
	Detail    string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Symbol != "" {
		b.WriteString(": ")
		b.WriteString(e.Symbol)
		if e.Signature != "" {
			b.WriteByte(' ')
			b.WriteString(e.Signature)
		}
	} else if e.GoType != "" {
		b.WriteString(": Go type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.Symbol != "" || e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Symbol sets the unresolved symbol name
func (b *Builder) Symbol(name string) *Builder {
	b.err.Symbol = name
	return b
}

// Signature sets the descriptor involved in the lookup
func (b *Builder) Signature(sig string) *Builder {
	b.err.Signature = sig
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NotInitialized reports use of the bridge before Init completed
func NotInitialized() *Error {
	return &Error{
		Phase:  PhaseInit,
		Kind:   KindNotInitialized,
		Detail: "bridge not initialized; call Init first",
	}
}

// AlreadyRunning reports an attempt to start a second embedded runtime
func AlreadyRunning() *Error {
	return &Error{
		Phase:  PhaseInit,
		Kind:   KindAlreadyRunning,
		Detail: "an embedded runtime instance is already running",
	}
}

// StartFailed reports an embedded runtime that could not be started
func StartFailed(cause error) *Error {
	return &Error{
		Phase:  PhaseInit,
		Kind:   KindStartFailed,
		Detail: "start embedded runtime",
		Cause:  cause,
	}
}

// ClassNotFound reports an unresolvable class name
func ClassNotFound(name string) *Error {
	return &Error{
		Phase:  PhaseResolve,
		Kind:   KindClassNotFound,
		Symbol: name,
	}
}

// MethodNotFound reports an unresolvable method name/signature pair
func MethodNotFound(name, signature string) *Error {
	return &Error{
		Phase:     PhaseResolve,
		Kind:      KindMethodNotFound,
		Symbol:    name,
		Signature: signature,
	}
}

// FieldNotFound reports an unresolvable field name/signature pair
func FieldNotFound(name, signature string) *Error {
	return &Error{
		Phase:     PhaseResolve,
		Kind:      KindFieldNotFound,
		Symbol:    name,
		Signature: signature,
	}
}

// Invocation reports a managed-side exception raised during a call
func Invocation(description string) *Error {
	return &Error{
		Phase:  PhaseInvoke,
		Kind:   KindPendingException,
		Detail: description,
	}
}

// UnsupportedType reports an argument type with no registered encoding
func UnsupportedType(goType string) *Error {
	return &Error{
		Phase:  PhaseMarshal,
		Kind:   KindUnsupportedType,
		GoType: goType,
		Detail: "no signature mapping registered",
	}
}

// Taxonomy predicates. Callers distinguish the three failure classes of the
// bridge without matching on individual kinds.

// IsInitialization reports whether err is an initialization failure:
// the bridge was used before Init, a second embedded runtime was attempted,
// or the runtime could not be started.
func IsInitialization(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Phase == PhaseInit
}

// IsNameResolution reports whether err is a failed class/method/field lookup.
func IsNameResolution(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Phase == PhaseResolve
}

// IsInvocation reports whether err is a managed-side exception surfaced by
// the bridge.
func IsInvocation(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Phase == PhaseInvoke
}
