// Package tests holds the end-to-end suite that runs against a real
// OpenVINO installation.
package tests

import (
	"fmt"

	"github.com/benedoc-inc/ovbridge/openvino"
)

// fillInput writes a deterministic pattern derived from seed into t.
// Only the numeric element types the suite's models use are supported.
func fillInput(t *openvino.Tensor, seed int) error {
	et, err := t.ElementType()
	if err != nil {
		return err
	}
	shape, err := t.Shape()
	if err != nil {
		return err
	}
	n := 1
	for _, d := range shape {
		n *= int(d)
	}

	switch et {
	case openvino.ElementTypeF32:
		return openvino.SetTensorValues(t, pattern[float32](n, seed))
	case openvino.ElementTypeF64:
		return openvino.SetTensorValues(t, pattern[float64](n, seed))
	case openvino.ElementTypeI32:
		return openvino.SetTensorValues(t, pattern[int32](n, seed))
	case openvino.ElementTypeI64:
		return openvino.SetTensorValues(t, pattern[int64](n, seed))
	case openvino.ElementTypeU8:
		return openvino.SetTensorValues(t, pattern[uint8](n, seed))
	default:
		return fmt.Errorf("unsupported data type %s", openvino.ElementTypeName(et))
	}
}

func pattern[T int32 | int64 | uint8 | float32 | float64](n, seed int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = T((i*7 + seed*13) % 97)
	}
	return out
}
