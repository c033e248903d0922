package openvino

import (
	"fmt"
	goruntime "runtime"

	"github.com/benedoc-inc/ovbridge/openvino/internal/api"
)

// Model is a parsed, uncompiled model graph returned by Core.ReadModel.
//
// A Model is owned by the caller until it is passed to Core.CompileModel,
// which consumes it. After that every method returns ErrConsumed.
type Model struct {
	ptr     api.OvModel
	core    *Core
	runtime *Runtime
	life    *lifetime
}

// newModel wraps ptr. The caller hands over one reference on c.
func (c *Core) newModel(ptr api.OvModel) *Model {
	r := c.runtime
	m := &Model{
		ptr:     ptr,
		core:    c,
		runtime: r,
	}
	m.life = newLifetime(func() {
		r.apiFuncs.ModelFree(ptr)
		c.life.release()
	})
	goruntime.AddCleanup(m, r.cleanupWarning("model"), m.life)
	return m
}

// Inputs describes the model's inputs. Dimensions may be dynamic.
func (m *Model) Inputs() ([]PortInfo, error) {
	if err := m.life.retain(); err != nil {
		return nil, err
	}
	defer m.life.release()

	ports, err := m.runtime.readPorts(
		func(n *uintptr) api.OvStatus { return m.runtime.apiFuncs.ModelInputsSize(m.ptr, n) },
		func(i uintptr, p *api.OvOutputConstPort) api.OvStatus {
			return m.runtime.apiFuncs.ModelConstInputByIndex(m.ptr, i, p)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get model inputs: %w", err)
	}
	return ports, nil
}

// Outputs describes the model's outputs. Dimensions may be dynamic.
func (m *Model) Outputs() ([]PortInfo, error) {
	if err := m.life.retain(); err != nil {
		return nil, err
	}
	defer m.life.release()

	ports, err := m.runtime.readPorts(
		func(n *uintptr) api.OvStatus { return m.runtime.apiFuncs.ModelOutputsSize(m.ptr, n) },
		func(i uintptr, p *api.OvOutputConstPort) api.OvStatus {
			return m.runtime.apiFuncs.ModelConstOutputByIndex(m.ptr, i, p)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get model outputs: %w", err)
	}
	return ports, nil
}

// InputNames returns the names of the model's inputs.
func (m *Model) InputNames() ([]string, error) {
	ports, err := m.Inputs()
	if err != nil {
		return nil, err
	}
	return portNames(ports), nil
}

// OutputNames returns the names of the model's outputs.
func (m *Model) OutputNames() ([]string, error) {
	ports, err := m.Outputs()
	if err != nil {
		return nil, err
	}
	return portNames(ports), nil
}

// Close releases a model that will not be compiled.
// It is a no-op after CompileModel and safe to call multiple times.
func (m *Model) Close() {
	m.life.close()
}
