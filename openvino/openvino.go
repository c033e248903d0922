package openvino

import (
	"fmt"

	"github.com/benedoc-inc/ovbridge/openvino/internal/api"
)

// StatusCode is an ov_status_e value returned by the OpenVINO C API.
type StatusCode = api.OvStatus

// Status codes returned by the OpenVINO C API.
const (
	StatusOK                  StatusCode = 0
	StatusGeneralError        StatusCode = -1
	StatusNotImplemented      StatusCode = -2
	StatusNetworkNotLoaded    StatusCode = -3
	StatusParameterMismatch   StatusCode = -4
	StatusNotFound            StatusCode = -5
	StatusOutOfBounds         StatusCode = -6
	StatusUnexpected          StatusCode = -7
	StatusRequestBusy         StatusCode = -8
	StatusResultNotReady      StatusCode = -9
	StatusNotAllocated        StatusCode = -10
	StatusInferNotStarted     StatusCode = -11
	StatusNetworkNotRead      StatusCode = -12
	StatusInferCancelled      StatusCode = -13
	StatusInvalidCParam       StatusCode = -14
	StatusUnknownCError       StatusCode = -15
	StatusNotImplementCMethod StatusCode = -16
	StatusUnknownException    StatusCode = -17
)

// statusName returns a human-readable name for a status code.
func statusName(code StatusCode) string {
	switch code {
	case StatusOK:
		return "OK"
	case StatusGeneralError:
		return "GeneralError"
	case StatusNotImplemented:
		return "NotImplemented"
	case StatusNetworkNotLoaded:
		return "NetworkNotLoaded"
	case StatusParameterMismatch:
		return "ParameterMismatch"
	case StatusNotFound:
		return "NotFound"
	case StatusOutOfBounds:
		return "OutOfBounds"
	case StatusUnexpected:
		return "Unexpected"
	case StatusRequestBusy:
		return "RequestBusy"
	case StatusResultNotReady:
		return "ResultNotReady"
	case StatusNotAllocated:
		return "NotAllocated"
	case StatusInferNotStarted:
		return "InferNotStarted"
	case StatusNetworkNotRead:
		return "NetworkNotRead"
	case StatusInferCancelled:
		return "InferCancelled"
	case StatusInvalidCParam:
		return "InvalidCParam"
	case StatusUnknownCError:
		return "UnknownCError"
	case StatusNotImplementCMethod:
		return "NotImplementCMethod"
	case StatusUnknownException:
		return "UnknownException"
	default:
		return fmt.Sprintf("Status(%d)", code)
	}
}

// ElementType is the element type of a port or tensor (ov_element_type_e).
// The numbering follows the OpenVINO 2024.0 C API headers.
type ElementType = api.OvElementType

// Element types.
const (
	ElementTypeUndefined ElementType = iota
	ElementTypeDynamic
	ElementTypeBoolean
	ElementTypeBF16
	ElementTypeF16
	ElementTypeF32
	ElementTypeF64
	ElementTypeI4
	ElementTypeI8
	ElementTypeI16
	ElementTypeI32
	ElementTypeI64
	ElementTypeU1
	ElementTypeU4
	ElementTypeU8
	ElementTypeU16
	ElementTypeU32
	ElementTypeU64
	ElementTypeNF4
	ElementTypeF8E4M3
	ElementTypeF8E5M2
	ElementTypeString
)

var elementTypeNames = map[ElementType]string{
	ElementTypeUndefined: "undefined",
	ElementTypeDynamic:   "dynamic",
	ElementTypeBoolean:   "boolean",
	ElementTypeBF16:      "bf16",
	ElementTypeF16:       "f16",
	ElementTypeF32:       "f32",
	ElementTypeF64:       "f64",
	ElementTypeI4:        "i4",
	ElementTypeI8:        "i8",
	ElementTypeI16:       "i16",
	ElementTypeI32:       "i32",
	ElementTypeI64:       "i64",
	ElementTypeU1:        "u1",
	ElementTypeU4:        "u4",
	ElementTypeU8:        "u8",
	ElementTypeU16:       "u16",
	ElementTypeU32:       "u32",
	ElementTypeU64:       "u64",
	ElementTypeNF4:       "nf4",
	ElementTypeF8E4M3:    "f8e4m3",
	ElementTypeF8E5M2:    "f8e5m2",
	ElementTypeString:    "string",
}

// ElementTypeName returns the OpenVINO spelling of an element type, e.g. "f32".
func ElementTypeName(t ElementType) string {
	if name, ok := elementTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("element(%d)", t)
}

// Common device identifiers. Any name reported by Core.AvailableDevices is valid.
const (
	DeviceCPU  = "CPU"
	DeviceGPU  = "GPU"
	DeviceNPU  = "NPU"
	DeviceAuto = "AUTO"
)
