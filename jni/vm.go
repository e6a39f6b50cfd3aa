package jni

import (
	"sync"

	"go.uber.org/zap"

	jnibridge "github.com/wippyai/jni-bridge"
	"github.com/wippyai/jni-bridge/errors"
)

// Launcher starts an embedded managed runtime. The platform binding that
// actually loads the runtime library implements it; this package only owns
// the lifecycle rules.
type Launcher interface {
	// Start boots the runtime from the library at path and returns the
	// environment handle plus a shutdown function.
	Start(path string, options ...string) (jnibridge.Env, func() error, error)
}

// VM is a running embedded runtime instance. Only one instance per process
// is supported.
type VM struct {
	mu       sync.Mutex
	shutdown func() error
}

var (
	vmMu      sync.Mutex
	vmRunning bool
)

// Launch starts an embedded runtime when native code is the process entry
// point, and installs its environment handle for the rest of the bridge.
// A second Launch while an instance is running fails with an initialization
// error; a failed start does too.
func Launch(l Launcher, path string, options ...string) (*VM, error) {
	vmMu.Lock()
	defer vmMu.Unlock()

	if vmRunning {
		return nil, errors.AlreadyRunning()
	}

	env, shutdown, err := l.Start(path, options...)
	if err != nil {
		return nil, errors.StartFailed(err)
	}

	setEnv(env)
	vmRunning = true
	Logger().Info("embedded runtime started", zap.String("path", path))
	return &VM{shutdown: shutdown}, nil
}

// Close shuts the runtime down and uninstalls its environment handle, so
// later bridge calls fail with an initialization error instead of reaching
// a dead runtime. Idempotent. After Close a new instance may be launched.
func (v *VM) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.shutdown == nil {
		return nil
	}
	err := v.shutdown()
	v.shutdown = nil

	setEnv(nil)
	vmMu.Lock()
	vmRunning = false
	vmMu.Unlock()

	Logger().Info("embedded runtime stopped")
	return err
}
