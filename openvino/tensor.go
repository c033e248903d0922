package openvino

import (
	"fmt"
	"reflect"
	goruntime "runtime"
	"unsafe"

	"github.com/benedoc-inc/ovbridge/openvino/internal/api"
)

// TensorData is a type constraint for element types that can be read and
// written through a Tensor.
type TensorData interface {
	~float32 | ~float64 |
		~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~bool
}

// Tensor is a view of a buffer owned by an InferRequest.
//
// A Tensor keeps its request's buffers alive until it is closed. Its memory
// must not be touched while the request is running Infer.
type Tensor struct {
	ptr     api.OvTensor
	runtime *Runtime
	life    *lifetime
}

// newTensor wraps ptr. The caller hands over one reference on r.
func (r *InferRequest) newTensor(ptr api.OvTensor) *Tensor {
	rt := r.runtime
	t := &Tensor{
		ptr:     ptr,
		runtime: rt,
	}
	t.life = newLifetime(func() {
		rt.apiFuncs.TensorFree(ptr)
		r.life.release()
	})
	goruntime.AddCleanup(t, rt.cleanupWarning("tensor"), t.life)
	return t
}

// ElementType returns the tensor's element type.
func (t *Tensor) ElementType() (ElementType, error) {
	if err := t.life.retain(); err != nil {
		return ElementTypeUndefined, err
	}
	defer t.life.release()

	var et ElementType
	if err := t.runtime.invoke(OpQuery, func() api.OvStatus { return t.runtime.apiFuncs.TensorGetElementType(t.ptr, &et) }); err != nil {
		return ElementTypeUndefined, fmt.Errorf("failed to get tensor element type: %w", err)
	}
	return et, nil
}

// Shape returns the tensor's dimensions.
func (t *Tensor) Shape() ([]int64, error) {
	if err := t.life.retain(); err != nil {
		return nil, err
	}
	defer t.life.release()

	var shape api.OvShape
	if err := t.runtime.invoke(OpQuery, func() api.OvStatus { return t.runtime.apiFuncs.TensorGetShape(t.ptr, &shape) }); err != nil {
		return nil, fmt.Errorf("failed to get tensor shape: %w", err)
	}
	defer t.runtime.apiFuncs.ShapeFree(&shape)

	dims := make([]int64, shape.Rank)
	if shape.Rank > 0 {
		copy(dims, unsafe.Slice(shape.Dims, shape.Rank))
	}
	return dims, nil
}

// Bytes returns the tensor's memory without copying. The slice is valid until
// the Tensor is closed.
func (t *Tensor) Bytes() ([]byte, error) {
	if err := t.life.retain(); err != nil {
		return nil, err
	}
	defer t.life.release()

	return t.bytes()
}

func (t *Tensor) bytes() ([]byte, error) {
	var size uintptr
	if err := t.runtime.invoke(OpQuery, func() api.OvStatus { return t.runtime.apiFuncs.TensorGetByteSize(t.ptr, &size) }); err != nil {
		return nil, fmt.Errorf("failed to get tensor size: %w", err)
	}
	if size == 0 {
		return nil, nil
	}

	var data unsafe.Pointer
	if err := t.runtime.invoke(OpQuery, func() api.OvStatus { return t.runtime.apiFuncs.TensorData(t.ptr, &data) }); err != nil {
		return nil, fmt.Errorf("failed to get tensor data: %w", err)
	}
	if data == nil {
		return nil, nullHandleError(OpQuery)
	}
	return unsafe.Slice((*byte)(data), size), nil
}

// CopyFrom overwrites the tensor's memory with src, which must have exactly
// the tensor's byte size.
func (t *Tensor) CopyFrom(src []byte) error {
	if err := t.life.retain(); err != nil {
		return err
	}
	defer t.life.release()

	dst, err := t.bytes()
	if err != nil {
		return err
	}
	if len(src) != len(dst) {
		return fmt.Errorf("tensor holds %d bytes, got %d", len(dst), len(src))
	}
	copy(dst, src)
	return nil
}

// Close releases the tensor. It is safe to call Close multiple times.
func (t *Tensor) Close() {
	t.life.close()
}

// elementTypeOf returns the element type matching T. Named types such as
// "type score float32" map by their underlying kind.
func elementTypeOf[T TensorData]() ElementType {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Float32:
		return ElementTypeF32
	case reflect.Float64:
		return ElementTypeF64
	case reflect.Int8:
		return ElementTypeI8
	case reflect.Int16:
		return ElementTypeI16
	case reflect.Int32:
		return ElementTypeI32
	case reflect.Int64:
		return ElementTypeI64
	case reflect.Uint8:
		return ElementTypeU8
	case reflect.Uint16:
		return ElementTypeU16
	case reflect.Uint32:
		return ElementTypeU32
	case reflect.Uint64:
		return ElementTypeU64
	case reflect.Bool:
		return ElementTypeBoolean
	default:
		return ElementTypeUndefined
	}
}

// TensorValues returns a copy of the tensor's elements as T.
// The tensor's element type must match T.
func TensorValues[T TensorData](t *Tensor) ([]T, error) {
	if err := checkElementType[T](t); err != nil {
		return nil, err
	}
	if err := t.life.retain(); err != nil {
		return nil, err
	}
	defer t.life.release()

	raw, err := t.bytes()
	if err != nil {
		return nil, err
	}
	var zero T
	n := len(raw) / int(unsafe.Sizeof(zero))
	out := make([]T, n)
	if n > 0 {
		copy(out, unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), n))
	}
	return out, nil
}

// SetTensorValues copies values into the tensor. The element type must match
// T and len(values) must equal the tensor's element count.
func SetTensorValues[T TensorData](t *Tensor, values []T) error {
	if err := checkElementType[T](t); err != nil {
		return err
	}
	var src []byte
	if len(values) > 0 {
		var zero T
		src = unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*int(unsafe.Sizeof(zero)))
	}
	return t.CopyFrom(src)
}

func checkElementType[T TensorData](t *Tensor) error {
	actual, err := t.ElementType()
	if err != nil {
		return err
	}
	want := elementTypeOf[T]()
	if actual != want {
		return fmt.Errorf("tensor element type is %s, not %s", ElementTypeName(actual), ElementTypeName(want))
	}
	return nil
}
