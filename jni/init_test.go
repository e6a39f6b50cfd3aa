package jni

import (
	"testing"

	jnierrors "github.com/wippyai/jni-bridge/errors"
	"github.com/wippyai/jni-bridge/fakevm"
)

func TestInitIsIdempotent(t *testing.T) {
	setEnv(nil)
	t.Cleanup(func() { setEnv(nil) })

	first := fakevm.New()
	second := fakevm.New()

	Init(first)
	Init(second) // no-op: first call wins

	e, err := CurrentEnv()
	if err != nil {
		t.Fatalf("CurrentEnv: %v", err)
	}
	if e != first {
		t.Fatal("repeated Init must not replace the environment")
	}
}

func TestInitNilIgnored(t *testing.T) {
	setEnv(nil)
	t.Cleanup(func() { setEnv(nil) })

	Init(nil)
	if _, err := CurrentEnv(); !jnierrors.IsInitialization(err) {
		t.Fatalf("want initialization error, got %v", err)
	}
}

func TestCurrentEnvBeforeInit(t *testing.T) {
	setEnv(nil)
	t.Cleanup(func() { setEnv(nil) })

	_, err := CurrentEnv()
	if err == nil {
		t.Fatal("expected error before Init")
	}
	if !jnierrors.IsInitialization(err) {
		t.Fatalf("want initialization error, got %v", err)
	}
}
