package jni

import (
	"errors"
	"testing"

	jnibridge "github.com/wippyai/jni-bridge"
	jnierrors "github.com/wippyai/jni-bridge/errors"
	"github.com/wippyai/jni-bridge/fakevm"
)

type stubLauncher struct {
	startErr  error
	shutdowns int
	starts    int
}

func (l *stubLauncher) Start(path string, options ...string) (jnibridge.Env, func() error, error) {
	l.starts++
	if l.startErr != nil {
		return nil, nil, l.startErr
	}
	return fakevm.New(), func() error {
		l.shutdowns++
		return nil
	}, nil
}

func resetVMState(t *testing.T) {
	t.Helper()
	vmMu.Lock()
	vmRunning = false
	vmMu.Unlock()
	setEnv(nil)
	t.Cleanup(func() {
		vmMu.Lock()
		vmRunning = false
		vmMu.Unlock()
		setEnv(nil)
	})
}

func TestLaunchInstallsEnv(t *testing.T) {
	resetVMState(t)

	l := &stubLauncher{}
	vm, err := Launch(l, "/usr/lib/jvm/libjvm.so")
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	defer vm.Close()

	if _, err := CurrentEnv(); err != nil {
		t.Fatalf("environment should be installed after Launch: %v", err)
	}
}

func TestSecondLaunchFails(t *testing.T) {
	resetVMState(t)

	l := &stubLauncher{}
	vm, err := Launch(l, "/usr/lib/jvm/libjvm.so")
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	defer vm.Close()

	_, err = Launch(l, "/usr/lib/jvm/libjvm.so")
	if !jnierrors.IsInitialization(err) {
		t.Fatalf("want initialization error for second launch, got %v", err)
	}
	if l.starts != 1 {
		t.Fatalf("launcher started %d times, want 1", l.starts)
	}
}

func TestRelaunchAfterClose(t *testing.T) {
	resetVMState(t)

	l := &stubLauncher{}
	vm, err := Launch(l, "/usr/lib/jvm/libjvm.so")
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if err := vm.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if l.shutdowns != 1 {
		t.Fatalf("shutdowns = %d, want 1", l.shutdowns)
	}

	vm2, err := Launch(l, "/usr/lib/jvm/libjvm.so")
	if err != nil {
		t.Fatalf("relaunch after Close: %v", err)
	}
	vm2.Close()
}

func TestCloseUninstallsEnv(t *testing.T) {
	resetVMState(t)

	l := &stubLauncher{}
	vm, err := Launch(l, "/usr/lib/jvm/libjvm.so")
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if err := vm.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := CurrentEnv(); !jnierrors.IsInitialization(err) {
		t.Fatalf("want initialization error after Close, got %v", err)
	}
	if _, err := FindClass("java/lang/Object"); !jnierrors.IsInitialization(err) {
		t.Fatalf("bridge call after Close must not reach the dead runtime, got %v", err)
	}
}

func TestCloseIdempotentVM(t *testing.T) {
	resetVMState(t)

	l := &stubLauncher{}
	vm, err := Launch(l, "/usr/lib/jvm/libjvm.so")
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if err := vm.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := vm.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if l.shutdowns != 1 {
		t.Fatalf("shutdowns = %d, want exactly 1", l.shutdowns)
	}
}

func TestLaunchStartFailure(t *testing.T) {
	resetVMState(t)

	cause := errors.New("libjvm not found")
	l := &stubLauncher{startErr: cause}

	_, err := Launch(l, "/bad/path")
	if !jnierrors.IsInitialization(err) {
		t.Fatalf("want initialization error, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatal("launch failure should wrap the launcher's error")
	}

	// A failed start must not block a later attempt.
	l.startErr = nil
	vm, err := Launch(l, "/usr/lib/jvm/libjvm.so")
	if err != nil {
		t.Fatalf("launch after failure: %v", err)
	}
	vm.Close()
}
