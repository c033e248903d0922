package openvino

import (
	"fmt"
	"os"
	goruntime "runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/benedoc-inc/ovbridge/internal/cstrings"
	"github.com/benedoc-inc/ovbridge/openvino/internal/api"
)

// CoreOptions configures a Core.
type CoreOptions struct {
	// ConfigPath is an optional plugin configuration (plugins.xml) file.
	// Empty selects the runtime's built-in defaults.
	ConfigPath string
}

// Core is the OpenVINO device manager. It reads and compiles models.
//
// A Core is safe for concurrent use. The bridge does not rely on the native
// core being thread-safe: ReadModel, CompileModel and AvailableDevices on one
// Core are serialized. Use separate Cores to read or compile in parallel.
//
// ReadModel and CompileModel block until the native call returns and cannot
// be interrupted.
type Core struct {
	ptr     api.OvCore
	runtime *Runtime
	life    *lifetime

	// mu serializes native calls on ptr.
	mu sync.Mutex
}

// NewCore creates a Core. A nil options value is the same as &CoreOptions{}.
//
// A non-empty ConfigPath must name a readable file; otherwise, or when the
// runtime rejects its contents, an ErrInitialization error is returned.
func (r *Runtime) NewCore(options *CoreOptions) (*Core, error) {
	var configPath string
	if options != nil {
		configPath = options.ConfigPath
	}

	if err := r.life.retain(); err != nil {
		return nil, err
	}

	var ptr api.OvCore
	err := r.observe(OpCreateCore, "", func() error {
		if configPath == "" {
			return r.invoke(OpCreateCore, func() api.OvStatus { return r.apiFuncs.CoreCreate(&ptr) })
		}

		path, err := cString(OpCreateCore, "config path", configPath)
		if err != nil {
			return err
		}
		f, err := os.Open(configPath)
		if err != nil {
			return newError(OpCreateCore, StatusNotFound, err.Error())
		}
		_ = f.Close()

		return r.invoke(OpCreateCore, func() api.OvStatus { return r.apiFuncs.CoreCreateWithConfig(&path[0], &ptr) })
	})
	if err == nil && ptr == 0 {
		err = nullHandleError(OpCreateCore)
	}
	if err != nil {
		r.life.release()
		return nil, fmt.Errorf("failed to create core: %w", err)
	}

	core := &Core{
		ptr:     ptr,
		runtime: r,
	}
	logger := r.logger
	core.life = newLifetime(func() {
		r.apiFuncs.CoreFree(ptr)
		logger.Debug("released core")
		r.life.release()
	})
	goruntime.AddCleanup(core, r.cleanupWarning("core"), core.life)

	r.logger.Debug("created core", zap.String("config", configPath))
	return core, nil
}

// ReadModel parses a model topology file and its weights file.
//
// An empty weightsPath lets the runtime look for the weights next to the
// topology file. Missing, unreadable or malformed files produce an
// ErrModelLoad error. Nothing is retried.
func (c *Core) ReadModel(modelPath, weightsPath string) (*Model, error) {
	if err := c.life.retain(); err != nil {
		return nil, err
	}

	var ptr api.OvModel
	c.mu.Lock()
	err := c.runtime.observe(OpReadModel, "", func() error {
		if modelPath == "" {
			return newError(OpReadModel, StatusInvalidCParam, "model path is empty")
		}
		model, err := cString(OpReadModel, "model path", modelPath)
		if err != nil {
			return err
		}
		weights, err := cString(OpReadModel, "weights path", weightsPath)
		if err != nil {
			return err
		}
		return c.runtime.invoke(OpReadModel, func() api.OvStatus {
			return c.runtime.apiFuncs.CoreReadModel(c.ptr, &model[0], &weights[0], &ptr)
		})
	})
	c.mu.Unlock()
	if err == nil && ptr == 0 {
		err = nullHandleError(OpReadModel)
	}
	if err != nil {
		c.life.release()
		return nil, fmt.Errorf("failed to read model %q: %w", modelPath, err)
	}

	// The reference taken above now belongs to the model.
	return c.newModel(ptr), nil
}

// CompileModel compiles model for device and consumes model.
//
// model is unusable after this call whether or not compilation succeeded;
// its native graph is released before CompileModel returns. An empty or
// unknown device, or a graph the device cannot run, produces an
// ErrCompilation error.
func (c *Core) CompileModel(model *Model, device string) (*CompiledModel, error) {
	if model == nil {
		return nil, fmt.Errorf("failed to compile model: %w", ErrClosed)
	}
	if err := model.life.consume(); err != nil {
		return nil, fmt.Errorf("failed to compile model: %w", err)
	}
	defer model.life.release()

	if err := c.life.retain(); err != nil {
		return nil, fmt.Errorf("failed to compile model for %q: %w", device, err)
	}

	var ptr api.OvCompiledModel
	c.mu.Lock()
	err := c.runtime.observe(OpCompileModel, device, func() error {
		if device == "" {
			return newError(OpCompileModel, StatusInvalidCParam, "device identifier is empty")
		}
		dev, err := cString(OpCompileModel, "device identifier", device)
		if err != nil {
			return err
		}
		return c.runtime.invoke(OpCompileModel, func() api.OvStatus {
			return c.runtime.apiFuncs.CoreCompileModel(c.ptr, model.ptr, &dev[0], 0, &ptr)
		})
	})
	c.mu.Unlock()
	if err == nil && ptr == 0 {
		err = nullHandleError(OpCompileModel)
	}
	if err != nil {
		c.life.release()
		return nil, fmt.Errorf("failed to compile model for %q: %w", device, err)
	}

	compiled, err := c.newCompiledModel(ptr, device)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize compiled model: %w", err)
	}
	return compiled, nil
}

// AvailableDevices returns the device identifiers the runtime can compile for,
// e.g. "CPU" or "GPU.0".
func (c *Core) AvailableDevices() ([]string, error) {
	if err := c.life.retain(); err != nil {
		return nil, err
	}
	defer c.life.release()

	var devices api.OvAvailableDevices
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.runtime.invoke(OpQuery, func() api.OvStatus {
		return c.runtime.apiFuncs.CoreGetAvailableDevices(c.ptr, &devices)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get available devices: %w", err)
	}
	defer c.runtime.apiFuncs.AvailableDevicesFree(&devices)

	return cstrings.StringArray(devices.Devices, int(devices.Size)), nil
}

// Close releases the core. Models and compiled models created from it stay
// valid; the native core is freed after the last of them is closed.
// It is safe to call Close multiple times.
func (c *Core) Close() {
	c.life.close()
}
