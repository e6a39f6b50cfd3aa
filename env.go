package jnibridge

// Ref is an opaque reference token issued by the managed runtime.
// Ref 0 is the null reference.
type Ref uint64

// MethodID is a resolved method token. The runtime owns it; native code
// never releases it and it stays valid while the declaring class is loaded.
type MethodID uint64

// FieldID is a resolved field token with the same lifetime rules as MethodID.
type FieldID uint64

// Env is the per-context handle through which all calls into the managed
// runtime are made. Lookup methods return the zero token on failure and
// leave a pending runtime exception behind; callers are expected to check
// and clear it via ClearPendingException before issuing further calls.
//
// An Env is bound to the execution context that obtained it. Sharing one
// Env across contexts is undefined behavior in the underlying runtime and
// is not guarded against here.
type Env interface {
	// FindClass resolves a class object by qualified name
	// (e.g. "java/lang/String"). Returns 0 if the class does not exist.
	FindClass(name string) Ref

	// NewGlobalRef creates a new global reference to the object behind ref.
	// The result stays valid until DeleteGlobalRef and must be released
	// exactly once.
	NewGlobalRef(ref Ref) Ref

	// DeleteGlobalRef releases a global reference.
	DeleteGlobalRef(ref Ref)

	// DeleteLocalRef releases a local reference before its frame exits.
	DeleteLocalRef(ref Ref)

	// GetObjectClass returns a local reference to the class of ref.
	GetObjectClass(ref Ref) Ref

	// GetMethodID resolves a method by exact name and signature on class.
	// Returns 0 if absent.
	GetMethodID(class Ref, name, signature string) MethodID

	// GetFieldID resolves a field by exact name and type signature on class.
	// Returns 0 if absent.
	GetFieldID(class Ref, name, signature string) FieldID

	// NewObject allocates a new instance of class using the given
	// constructor and pre-encoded arguments. Returns a local reference,
	// or 0 if the constructor raised.
	NewObject(class Ref, ctor MethodID, args []Value) Ref

	// NewString creates a managed string from s and returns a local
	// reference to it.
	NewString(s string) Ref

	// ClearPendingException checks for a pending managed-side exception.
	// If one is pending it is cleared and its description returned with
	// true. The runtime forbids most calls while an exception is pending,
	// so this must run before any follow-up Env call.
	ClearPendingException() (string, bool)
}
