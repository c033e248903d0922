package openvino

import (
	"fmt"
	goruntime "runtime"
	"time"

	"go.uber.org/zap"

	"github.com/benedoc-inc/ovbridge/internal/cstrings"
	"github.com/benedoc-inc/ovbridge/openvino/internal/api"
	"github.com/benedoc-inc/ovbridge/openvino/internal/api/capi"
)

// RuntimeOptions configures a Runtime.
type RuntimeOptions struct {
	// Hooks are called around every bridged operation.
	Hooks []Hook

	// Logger receives lifecycle events. nil means zap.NewNop().
	Logger *zap.Logger
}

// Runtime is a loaded OpenVINO C library. It is safe for concurrent use.
type Runtime struct {
	apiFuncs api.APIFuncs
	hooks    []Hook
	logger   *zap.Logger
	life     *lifetime
}

// Version describes the loaded OpenVINO build.
type Version struct {
	BuildNumber string
	Description string
}

// NewRuntime loads the OpenVINO C library from libraryPath and resolves its
// symbols. An empty path uses the platform's default library name.
func NewRuntime(libraryPath string, options *RuntimeOptions) (*Runtime, error) {
	if libraryPath == "" {
		libraryPath = defaultLibraryName
	}

	handle, err := openLibrary(libraryPath)
	if err != nil {
		return nil, newError(OpLoadLibrary, StatusNotFound, fmt.Sprintf("failed to load %s: %v", libraryPath, err))
	}

	funcs, err := capi.InitializeFuncs(handle)
	if err != nil {
		_ = closeLibrary(handle)
		return nil, newError(OpLoadLibrary, StatusNotImplementCMethod, err.Error())
	}

	r := newRuntime(funcs, options, func() error { return closeLibrary(handle) })
	r.logger.Debug("loaded OpenVINO library", zap.String("path", libraryPath))
	return r, nil
}

// newRuntime wires a function table into a Runtime. closeLib may be nil.
func newRuntime(funcs api.APIFuncs, options *RuntimeOptions, closeLib func() error) *Runtime {
	r := &Runtime{
		apiFuncs: funcs,
		logger:   zap.NewNop(),
	}
	if options != nil {
		r.hooks = options.Hooks
		if options.Logger != nil {
			r.logger = options.Logger
		}
	}

	logger := r.logger
	r.life = newLifetime(func() {
		if closeLib == nil {
			return
		}
		if err := closeLib(); err != nil {
			logger.Warn("failed to unload OpenVINO library", zap.Error(err))
		}
	})
	return r
}

// Version returns the build number and description of the loaded library.
func (r *Runtime) Version() (Version, error) {
	if err := r.life.retain(); err != nil {
		return Version{}, err
	}
	defer r.life.release()

	var v api.OvVersion
	if err := r.invoke(OpQuery, func() api.OvStatus { return r.apiFuncs.GetOpenvinoVersion(&v) }); err != nil {
		return Version{}, fmt.Errorf("failed to get version: %w", err)
	}
	defer r.apiFuncs.VersionFree(&v)

	return Version{
		BuildNumber: cstrings.CStringToString(v.BuildNumber),
		Description: cstrings.CStringToString(v.Description),
	}, nil
}

// Close unloads the library once every Core created from it is closed.
// It is safe to call Close multiple times.
func (r *Runtime) Close() {
	r.life.close()
}

// invoke runs one native call and translates a non-OK status.
//
// The goroutine is pinned to its OS thread for the duration because the
// native error message is thread-local.
func (r *Runtime) invoke(op Op, fn func() api.OvStatus) error {
	goruntime.LockOSThread()
	defer goruntime.UnlockOSThread()

	status := fn()
	if status == StatusOK {
		return nil
	}
	return newError(op, status, r.lastErrorMessage())
}

// lastErrorMessage copies and frees the calling thread's native error message.
func (r *Runtime) lastErrorMessage() string {
	p := r.apiFuncs.GetLastErrMsg()
	if p == nil {
		return ""
	}
	defer r.apiFuncs.Free(p)
	return cstrings.PointerToString(p)
}

// cString converts an argument for native code. A string C would truncate
// fails as an invalid parameter of op, so it keeps op's error kind.
func cString(op Op, what, s string) ([]byte, error) {
	b, err := cstrings.CString(s)
	if err != nil {
		return nil, newError(op, StatusInvalidCParam, fmt.Sprintf("%s: %v", what, err))
	}
	return b, nil
}

// observe runs fn between the hooks and logs failures.
func (r *Runtime) observe(op Op, device string, fn func() error) error {
	info := &CallInfo{Op: op, Device: device}
	for _, h := range r.hooks {
		h.BeforeCall(info)
	}

	start := time.Now()
	err := fn()
	info.Duration = time.Since(start)
	info.Error = err

	if err != nil {
		r.logger.Debug("openvino call failed",
			zap.String("op", string(op)),
			zap.String("device", device),
			zap.Error(err),
		)
	}
	for _, h := range r.hooks {
		h.AfterCall(info)
	}
	return err
}

// call is observe around a single invoke.
func (r *Runtime) call(op Op, device string, fn func() api.OvStatus) error {
	return r.observe(op, device, func() error { return r.invoke(op, fn) })
}

// cleanupWarning is attached to wrappers as a safety net; it only logs and
// closes, the actual release still goes through the lifetime.
func (r *Runtime) cleanupWarning(what string) func(*lifetime) {
	logger := r.logger
	return func(l *lifetime) {
		if !l.isClosed() {
			logger.Warn("releasing unreachable object that was never closed", zap.String("object", what))
		}
		l.close()
	}
}
