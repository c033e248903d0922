package openvino

import (
	"context"
	"fmt"
	goruntime "runtime"
	"sync"

	"github.com/benedoc-inc/ovbridge/openvino/internal/api"
)

// InferRequest holds the buffers and state of one inference.
//
// An InferRequest is NOT safe for concurrent use. A call made while another
// goroutine is inside Infer or a tensor accessor returns ErrRequestBusy.
// Create one request per goroutine, or use a RequestPool.
type InferRequest struct {
	ptr      api.OvInferRequest
	runtime  *Runtime
	compiled *CompiledModel
	life     *lifetime

	busy sync.Mutex
}

// newInferRequest wraps ptr. The caller hands over one reference on m.
func (m *CompiledModel) newInferRequest(ptr api.OvInferRequest) *InferRequest {
	r := m.runtime
	req := &InferRequest{
		ptr:      ptr,
		runtime:  r,
		compiled: m,
	}
	req.life = newLifetime(func() {
		r.apiFuncs.InferRequestFree(ptr)
		m.life.release()
	})
	goruntime.AddCleanup(req, r.cleanupWarning("infer request"), req.life)
	return req
}

// CompiledModel returns the compiled model the request was created from.
func (r *InferRequest) CompiledModel() *CompiledModel {
	return r.compiled
}

// enter claims the request for one operation.
func (r *InferRequest) enter() error {
	if !r.busy.TryLock() {
		return ErrRequestBusy
	}
	if err := r.life.retain(); err != nil {
		r.busy.Unlock()
		return err
	}
	return nil
}

func (r *InferRequest) leave() {
	r.life.release()
	r.busy.Unlock()
}

// Tensor returns the request's tensor bound to the named input or output.
func (r *InferRequest) Tensor(name string) (*Tensor, error) {
	if err := r.enter(); err != nil {
		return nil, err
	}
	defer r.leave()

	cname, err := cString(OpQuery, "tensor name", name)
	if err != nil {
		return nil, fmt.Errorf("failed to get tensor %q: %w", name, err)
	}
	return r.tensor(fmt.Sprintf("tensor %q", name), func(t *api.OvTensor) api.OvStatus {
		return r.runtime.apiFuncs.InferRequestGetTensor(r.ptr, &cname[0], t)
	})
}

// InputTensor returns the tensor of the input at index.
func (r *InferRequest) InputTensor(index int) (*Tensor, error) {
	if err := r.enter(); err != nil {
		return nil, err
	}
	defer r.leave()

	return r.tensor(fmt.Sprintf("input tensor %d", index), func(t *api.OvTensor) api.OvStatus {
		return r.runtime.apiFuncs.InferRequestGetInputTensorByIndex(r.ptr, uintptr(index), t)
	})
}

// OutputTensor returns the tensor of the output at index.
func (r *InferRequest) OutputTensor(index int) (*Tensor, error) {
	if err := r.enter(); err != nil {
		return nil, err
	}
	defer r.leave()

	return r.tensor(fmt.Sprintf("output tensor %d", index), func(t *api.OvTensor) api.OvStatus {
		return r.runtime.apiFuncs.InferRequestGetOutputTensorByIndex(r.ptr, uintptr(index), t)
	})
}

func (r *InferRequest) tensor(what string, get func(*api.OvTensor) api.OvStatus) (*Tensor, error) {
	var ptr api.OvTensor
	err := r.runtime.invoke(OpQuery, func() api.OvStatus { return get(&ptr) })
	if err == nil && ptr == 0 {
		err = nullHandleError(OpQuery)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", what, err)
	}

	// Tensors hold a reference so the request buffers outlive them.
	if err := r.life.retain(); err != nil {
		r.runtime.apiFuncs.TensorFree(ptr)
		return nil, err
	}
	return r.newTensor(ptr), nil
}

// Infer runs one synchronous inference with the tensors currently bound.
//
// If ctx is cancelled first, the native request is cancelled, Infer waits for
// it to stop and returns ctx.Err().
func (r *InferRequest) Infer(ctx context.Context) error {
	if err := r.enter(); err != nil {
		return err
	}
	defer r.leave()

	device := r.compiled.device
	if ctx.Done() == nil {
		return r.runtime.call(OpInfer, device, func() api.OvStatus {
			return r.runtime.apiFuncs.InferRequestInfer(r.ptr)
		})
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.runtime.observe(OpInfer, device, func() error {
		done := make(chan error, 1)
		go func() {
			done <- r.runtime.invoke(OpInfer, func() api.OvStatus {
				return r.runtime.apiFuncs.InferRequestInfer(r.ptr)
			})
		}()

		select {
		case err := <-done:
			return err
		case <-ctx.Done():
			_ = r.runtime.invoke(OpInfer, func() api.OvStatus {
				return r.runtime.apiFuncs.InferRequestCancel(r.ptr)
			})
			<-done
			return ctx.Err()
		}
	})
}

// Cancel asks a running Infer to stop. It may be called from any goroutine.
func (r *InferRequest) Cancel() error {
	if err := r.life.retain(); err != nil {
		return err
	}
	defer r.life.release()

	return r.runtime.invoke(OpInfer, func() api.OvStatus {
		return r.runtime.apiFuncs.InferRequestCancel(r.ptr)
	})
}

// Close releases the request once every Tensor obtained from it is closed.
// It is safe to call Close multiple times.
func (r *InferRequest) Close() {
	r.life.close()
}
