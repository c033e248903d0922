package openvino

import (
	"fmt"
	goruntime "runtime"

	"go.uber.org/zap"

	"github.com/benedoc-inc/ovbridge/openvino/internal/api"
)

// CompiledModel is a model compiled for one device. It is independent of the
// Model it was compiled from.
//
// A CompiledModel is safe for concurrent use; CreateInferRequest may be called
// from many goroutines at once.
type CompiledModel struct {
	ptr     api.OvCompiledModel
	runtime *Runtime
	life    *lifetime
	device  string

	// I/O schema, cached at creation.
	inputs  []PortInfo
	outputs []PortInfo
}

// newCompiledModel wraps ptr and caches its I/O schema. The caller hands over
// one reference on c; on error ptr is freed and the reference released.
func (c *Core) newCompiledModel(ptr api.OvCompiledModel, device string) (*CompiledModel, error) {
	r := c.runtime
	logger := r.logger
	m := &CompiledModel{
		ptr:     ptr,
		runtime: r,
		device:  device,
	}
	m.life = newLifetime(func() {
		r.apiFuncs.CompiledModelFree(ptr)
		logger.Debug("released compiled model", zap.String("device", device))
		c.life.release()
	})

	if err := m.initializeSchema(); err != nil {
		m.life.close()
		return nil, err
	}

	goruntime.AddCleanup(m, r.cleanupWarning("compiled model"), m.life)
	logger.Debug("compiled model",
		zap.String("device", device),
		zap.Strings("inputs", portNames(m.inputs)),
		zap.Strings("outputs", portNames(m.outputs)),
	)
	return m, nil
}

func (m *CompiledModel) initializeSchema() error {
	var err error
	m.inputs, err = m.runtime.readPorts(
		func(n *uintptr) api.OvStatus { return m.runtime.apiFuncs.CompiledModelInputsSize(m.ptr, n) },
		func(i uintptr, p *api.OvOutputConstPort) api.OvStatus {
			return m.runtime.apiFuncs.CompiledModelInputByIndex(m.ptr, i, p)
		},
	)
	if err != nil {
		return fmt.Errorf("failed to get inputs: %w", err)
	}

	m.outputs, err = m.runtime.readPorts(
		func(n *uintptr) api.OvStatus { return m.runtime.apiFuncs.CompiledModelOutputsSize(m.ptr, n) },
		func(i uintptr, p *api.OvOutputConstPort) api.OvStatus {
			return m.runtime.apiFuncs.CompiledModelOutputByIndex(m.ptr, i, p)
		},
	)
	if err != nil {
		return fmt.Errorf("failed to get outputs: %w", err)
	}
	return nil
}

// Device returns the device identifier the model was compiled for.
func (m *CompiledModel) Device() string {
	return m.device
}

// Inputs describes the compiled model's inputs.
func (m *CompiledModel) Inputs() []PortInfo {
	return m.inputs
}

// Outputs describes the compiled model's outputs.
func (m *CompiledModel) Outputs() []PortInfo {
	return m.outputs
}

// InputNames returns the names of the compiled model's inputs.
func (m *CompiledModel) InputNames() []string {
	return portNames(m.inputs)
}

// OutputNames returns the names of the compiled model's outputs.
func (m *CompiledModel) OutputNames() []string {
	return portNames(m.outputs)
}

// CreateInferRequest allocates a new, independent request with its own
// input and output buffers. It is safe to call concurrently.
//
// A native allocation failure produces an ErrResourceExhaustion error.
func (m *CompiledModel) CreateInferRequest() (*InferRequest, error) {
	if err := m.life.retain(); err != nil {
		return nil, err
	}

	var ptr api.OvInferRequest
	err := m.runtime.call(OpCreateInferRequest, m.device, func() api.OvStatus {
		return m.runtime.apiFuncs.CompiledModelCreateInferRequest(m.ptr, &ptr)
	})
	if err == nil && ptr == 0 {
		err = nullHandleError(OpCreateInferRequest)
	}
	if err != nil {
		m.life.release()
		return nil, fmt.Errorf("failed to create infer request: %w", err)
	}

	// The reference taken above now belongs to the request.
	return m.newInferRequest(ptr), nil
}

// Close releases the compiled model once every InferRequest created from it
// is closed. It is safe to call Close multiple times.
func (m *CompiledModel) Close() {
	m.life.close()
}
