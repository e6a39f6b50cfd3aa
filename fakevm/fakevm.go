package fakevm

import (
	"sync"

	jnibridge "github.com/wippyai/jni-bridge"
)

// globalBit distinguishes global from local reference tokens. Real runtimes
// hand out pointers into separate tables; a tag bit models the same split.
const globalBit = jnibridge.Ref(1) << 63

type objectKind uint8

const (
	objInstance objectKind = iota
	objClass
	objString
)

type object struct {
	class    *classDef // class the object is an instance of
	str      string
	ctorArgs []jnibridge.Value
	ctorSig  string
	kind     objectKind
}

type classDef struct {
	name     string
	objectID uint64 // the class object itself
	methods  map[string]jnibridge.MethodID // "name sig" keys, ctors under <init>
	fields   map[string]jnibridge.FieldID
	ctorFail map[string]string // ctor descriptor -> exception description
}

type member struct {
	class *classDef
	name  string
	sig   string
}

// ClassSpec describes a class registered with the fake runtime.
type ClassSpec struct {
	Name         string
	Constructors []string            // constructor descriptors, e.g. "()V", "(I)V"
	Methods      map[string][]string // method name -> descriptors
	Fields       map[string]string   // field name -> type descriptor
}

// Stats exposes the reference-table counters the lifetime tests assert on.
type Stats struct {
	LocalsCreated     int
	LocalsDeleted     int // explicit DeleteLocalRef only
	LocalsLive        int
	GlobalsCreated    int
	GlobalsDeleted    int
	GlobalsLive       int
	FrameReclaimed    int // locals freed by PopFrame
	BadReleases       int // deletes of null, stale, or wrong-scope refs
	CallsWhilePending int // Env calls issued with an exception still pending
}

// FakeVM is an in-memory managed runtime implementing jnibridge.Env. It
// tracks every reference-table operation so tests can verify exactly-once
// release and no-leak properties, and it models frame scoping of local
// references.
type FakeVM struct {
	mu                sync.Mutex
	locals            *refTable
	globals           *refTable
	objects           map[uint64]*object
	classes           map[string]*classDef
	members           map[uint64]member // MethodID/FieldID share the id space
	nextObject        uint64
	nextMember        uint64
	frame             int
	pending           string
	frameReclaimed    int
	badReleases       int
	callsWhilePending int
}

// New creates an empty fake runtime.
func New() *FakeVM {
	return &FakeVM{
		locals:  newRefTable(),
		globals: newRefTable(),
		objects: make(map[uint64]*object),
		classes: make(map[string]*classDef),
		members: make(map[uint64]member),
	}
}

// RegisterClass makes a class resolvable by name with the given members.
func (vm *FakeVM) RegisterClass(spec ClassSpec) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	def := vm.ensureClass(spec.Name)
	for _, sig := range spec.Constructors {
		vm.addMethod(def, "<init>", sig)
	}
	for name, sigs := range spec.Methods {
		for _, sig := range sigs {
			vm.addMethod(def, name, sig)
		}
	}
	for name, sig := range spec.Fields {
		vm.nextMember++
		id := vm.nextMember
		def.fields[name+" "+sig] = jnibridge.FieldID(id)
		vm.members[id] = member{class: def, name: name, sig: sig}
	}
}

// FailConstructor makes the given constructor raise a managed exception
// with the given description when invoked.
func (vm *FakeVM) FailConstructor(class, descriptor, description string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if def, ok := vm.classes[class]; ok {
		def.ctorFail[descriptor] = description
	}
}

// ThrowNew sets a pending exception, as a managed-side call would.
func (vm *FakeVM) ThrowNew(description string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.pending = description
}

// PushFrame opens a new local-reference frame.
func (vm *FakeVM) PushFrame() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.frame++
}

// PopFrame closes the current frame and reclaims its local references.
func (vm *FakeVM) PopFrame() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.frameReclaimed += vm.locals.reclaimFrame(vm.frame)
	if vm.frame > 0 {
		vm.frame--
	}
}

// Stats returns a snapshot of the reference-table counters.
func (vm *FakeVM) Stats() Stats {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return Stats{
		LocalsCreated:     vm.locals.created,
		LocalsDeleted:     vm.locals.deleted,
		LocalsLive:        vm.locals.live(),
		GlobalsCreated:    vm.globals.created,
		GlobalsDeleted:    vm.globals.deleted,
		GlobalsLive:       vm.globals.live(),
		FrameReclaimed:    vm.frameReclaimed,
		BadReleases:       vm.badReleases,
		CallsWhilePending: vm.callsWhilePending,
	}
}

// ensureClass returns the classDef for name, creating an empty one (and its
// class object) if needed. Callers hold vm.mu.
func (vm *FakeVM) ensureClass(name string) *classDef {
	if def, ok := vm.classes[name]; ok {
		return def
	}
	vm.nextObject++
	def := &classDef{
		name:     name,
		objectID: vm.nextObject,
		methods:  make(map[string]jnibridge.MethodID),
		fields:   make(map[string]jnibridge.FieldID),
		ctorFail: make(map[string]string),
	}
	vm.objects[def.objectID] = &object{kind: objClass, class: def}
	vm.classes[name] = def
	return def
}

func (vm *FakeVM) addMethod(def *classDef, name, sig string) {
	vm.nextMember++
	id := vm.nextMember
	def.methods[name+" "+sig] = jnibridge.MethodID(id)
	vm.members[id] = member{class: def, name: name, sig: sig}
}

// resolve maps a reference token to its object. Callers hold vm.mu.
func (vm *FakeVM) resolve(ref jnibridge.Ref) (*object, bool) {
	var id uint64
	var ok bool
	if ref&globalBit != 0 {
		id, ok = vm.globals.get(uint32(ref &^ globalBit))
	} else {
		id, ok = vm.locals.get(uint32(ref))
	}
	if !ok {
		return nil, false
	}
	o, ok := vm.objects[id]
	return o, ok
}

func (vm *FakeVM) newLocal(id uint64) jnibridge.Ref {
	return jnibridge.Ref(vm.locals.add(id, vm.frame))
}

func (vm *FakeVM) noteIfPending() {
	if vm.pending != "" {
		vm.callsWhilePending++
	}
}

// Env implementation

func (vm *FakeVM) FindClass(name string) jnibridge.Ref {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.noteIfPending()

	def, ok := vm.classes[name]
	if !ok {
		vm.pending = "java.lang.NoClassDefFoundError: " + name
		return 0
	}
	return vm.newLocal(def.objectID)
}

func (vm *FakeVM) NewGlobalRef(ref jnibridge.Ref) jnibridge.Ref {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.noteIfPending()

	var id uint64
	var ok bool
	if ref&globalBit != 0 {
		id, ok = vm.globals.get(uint32(ref &^ globalBit))
	} else {
		id, ok = vm.locals.get(uint32(ref))
	}
	if !ok {
		return 0
	}
	return globalBit | jnibridge.Ref(vm.globals.add(id, 0))
}

func (vm *FakeVM) DeleteGlobalRef(ref jnibridge.Ref) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if ref&globalBit == 0 || !vm.globals.remove(uint32(ref&^globalBit)) {
		vm.badReleases++
	}
}

func (vm *FakeVM) DeleteLocalRef(ref jnibridge.Ref) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if ref&globalBit != 0 || !vm.locals.remove(uint32(ref)) {
		vm.badReleases++
	}
}

func (vm *FakeVM) GetObjectClass(ref jnibridge.Ref) jnibridge.Ref {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.noteIfPending()

	o, ok := vm.resolve(ref)
	if !ok {
		return 0
	}
	switch o.kind {
	case objClass:
		return vm.newLocal(vm.ensureClass("java/lang/Class").objectID)
	default:
		return vm.newLocal(o.class.objectID)
	}
}

func (vm *FakeVM) GetMethodID(class jnibridge.Ref, name, signature string) jnibridge.MethodID {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.noteIfPending()

	def, ok := vm.resolveClass(class)
	if !ok {
		return 0
	}
	id, ok := def.methods[name+" "+signature]
	if !ok {
		vm.pending = "java.lang.NoSuchMethodError: " + name
		return 0
	}
	return id
}

func (vm *FakeVM) GetFieldID(class jnibridge.Ref, name, signature string) jnibridge.FieldID {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.noteIfPending()

	def, ok := vm.resolveClass(class)
	if !ok {
		return 0
	}
	id, ok := def.fields[name+" "+signature]
	if !ok {
		vm.pending = "java.lang.NoSuchFieldError: " + name
		return 0
	}
	return id
}

func (vm *FakeVM) NewObject(class jnibridge.Ref, ctor jnibridge.MethodID, args []jnibridge.Value) jnibridge.Ref {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.noteIfPending()

	def, ok := vm.resolveClass(class)
	if !ok {
		return 0
	}
	m, ok := vm.members[uint64(ctor)]
	if !ok || m.class != def || m.name != "<init>" {
		vm.pending = "java.lang.InstantiationError: " + def.name
		return 0
	}
	if desc, failed := def.ctorFail[m.sig]; failed {
		vm.pending = desc
		return 0
	}

	vm.nextObject++
	vm.objects[vm.nextObject] = &object{
		kind:     objInstance,
		class:    def,
		ctorArgs: append([]jnibridge.Value(nil), args...),
		ctorSig:  m.sig,
	}
	return vm.newLocal(vm.nextObject)
}

func (vm *FakeVM) NewString(s string) jnibridge.Ref {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.noteIfPending()

	vm.nextObject++
	vm.objects[vm.nextObject] = &object{
		kind:  objString,
		class: vm.ensureClass("java/lang/String"),
		str:   s,
	}
	return vm.newLocal(vm.nextObject)
}

func (vm *FakeVM) ClearPendingException() (string, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.pending == "" {
		return "", false
	}
	desc := vm.pending
	vm.pending = ""
	return desc, true
}

func (vm *FakeVM) resolveClass(ref jnibridge.Ref) (*classDef, bool) {
	o, ok := vm.resolve(ref)
	if !ok || o.kind != objClass {
		return nil, false
	}
	return o.class, true
}

// Inspection helpers for tests and tooling.

// IsGlobal reports whether ref is a global-scope token.
func (vm *FakeVM) IsGlobal(ref jnibridge.Ref) bool {
	return ref&globalBit != 0
}

// IsValid reports whether ref currently resolves to a live object.
func (vm *FakeVM) IsValid(ref jnibridge.Ref) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	_, ok := vm.resolve(ref)
	return ok
}

// SameObject reports whether two references point at the same managed object.
func (vm *FakeVM) SameObject(a, b jnibridge.Ref) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	oa, oka := vm.resolve(a)
	ob, okb := vm.resolve(b)
	return oka && okb && oa == ob
}

// ObjectClassName returns the qualified class name of the object behind ref.
func (vm *FakeVM) ObjectClassName(ref jnibridge.Ref) (string, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	o, ok := vm.resolve(ref)
	if !ok {
		return "", false
	}
	// class objects carry the classDef they represent
	return o.class.name, true
}

// StringValue returns the contents of a managed string.
func (vm *FakeVM) StringValue(ref jnibridge.Ref) (string, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	o, ok := vm.resolve(ref)
	if !ok || o.kind != objString {
		return "", false
	}
	return o.str, true
}

// ConstructorSignature returns the descriptor an instance was built with.
func (vm *FakeVM) ConstructorSignature(ref jnibridge.Ref) (string, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	o, ok := vm.resolve(ref)
	if !ok || o.kind != objInstance {
		return "", false
	}
	return o.ctorSig, true
}

// ConstructorArgs returns the encoded arguments an instance was built with.
func (vm *FakeVM) ConstructorArgs(ref jnibridge.Ref) ([]jnibridge.Value, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	o, ok := vm.resolve(ref)
	if !ok || o.kind != objInstance {
		return nil, false
	}
	return o.ctorArgs, true
}

// ClassNames lists the registered classes, for tooling.
func (vm *FakeVM) ClassNames() []string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	names := make([]string, 0, len(vm.classes))
	for name := range vm.classes {
		names = append(names, name)
	}
	return names
}

// ClassConstructors lists the constructor descriptors registered on a class.
func (vm *FakeVM) ClassConstructors(name string) []string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	def, ok := vm.classes[name]
	if !ok {
		return nil
	}
	var sigs []string
	for key := range def.methods {
		if len(key) > 7 && key[:7] == "<init> " {
			sigs = append(sigs, key[7:])
		}
	}
	return sigs
}

var _ jnibridge.Env = (*FakeVM)(nil)
