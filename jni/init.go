package jni

import (
	"sync"

	jnibridge "github.com/wippyai/jni-bridge"
	"github.com/wippyai/jni-bridge/errors"
)

var (
	initMu     sync.RWMutex
	currentEnv jnibridge.Env
)

// Init installs the environment handle through which all runtime calls are
// made. It is called once per process, typically from the first native entry
// point invoked by managed code; further calls are no-ops.
func Init(env jnibridge.Env) {
	initMu.Lock()
	defer initMu.Unlock()
	if currentEnv == nil && env != nil {
		currentEnv = env
	}
}

// setEnv overwrites the installed environment. Used by Launch, which owns
// the runtime it started; Init stays first-call-wins for everyone else.
func setEnv(env jnibridge.Env) {
	initMu.Lock()
	defer initMu.Unlock()
	currentEnv = env
}

// CurrentEnv returns the installed environment handle.
func CurrentEnv() (jnibridge.Env, error) {
	initMu.RLock()
	defer initMu.RUnlock()
	if currentEnv == nil {
		return nil, errors.NotInitialized()
	}
	return currentEnv, nil
}

// activeEnv is the entry gate for every public operation: it requires Init
// to have run and surfaces any pending managed-side exception before new
// runtime calls are issued (the runtime forbids most calls while one is
// pending).
func activeEnv() (jnibridge.Env, error) {
	e, err := CurrentEnv()
	if err != nil {
		return nil, err
	}
	if desc, pending := e.ClearPendingException(); pending {
		return nil, errors.Invocation(desc)
	}
	return e, nil
}
