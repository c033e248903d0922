package api

import "unsafe"

// OvStatus is the status code returned by every fallible OpenVINO C API call.
type OvStatus int32

// OvCore is an opaque pointer to an ov_core_t.
type OvCore uintptr

// OvModel is an opaque pointer to an ov_model_t.
type OvModel uintptr

// OvCompiledModel is an opaque pointer to an ov_compiled_model_t.
type OvCompiledModel uintptr

// OvInferRequest is an opaque pointer to an ov_infer_request_t.
type OvInferRequest uintptr

// OvOutputConstPort is an opaque pointer to an ov_output_const_port_t.
type OvOutputConstPort uintptr

// OvTensor is an opaque pointer to an ov_tensor_t.
type OvTensor uintptr

// OvElementType is the ov_element_type_e enumeration.
type OvElementType uint32

// OvShape mirrors ov_shape_t.
type OvShape struct {
	Rank int64
	Dims *int64
}

// OvDimension mirrors ov_dimension_t. A dynamic bound is -1.
type OvDimension struct {
	Min int64
	Max int64
}

// OvPartialShape mirrors ov_partial_shape_t.
type OvPartialShape struct {
	Rank OvDimension
	Dims *OvDimension
}

// OvAvailableDevices mirrors ov_available_devices_t.
type OvAvailableDevices struct {
	Devices **byte
	Size    uintptr
}

// OvVersion mirrors ov_version_t.
type OvVersion struct {
	BuildNumber *byte
	Description *byte
}

// APIFuncs is the subset of the OpenVINO C API used by the bindings.
type APIFuncs interface {
	// Errors and memory

	// GetLastErrMsg returns a fresh copy of the calling thread's last error
	// message, or nil. The caller owns the copy and releases it with Free.
	GetLastErrMsg() unsafe.Pointer
	// Free releases strings allocated by the runtime (ov_free).
	Free(unsafe.Pointer)

	// Version
	GetOpenvinoVersion(*OvVersion) OvStatus
	VersionFree(*OvVersion)

	// Core
	CoreCreate(*OvCore) OvStatus
	CoreCreateWithConfig(*byte, *OvCore) OvStatus
	CoreReadModel(OvCore, *byte, *byte, *OvModel) OvStatus
	CoreCompileModel(OvCore, OvModel, *byte, uintptr, *OvCompiledModel) OvStatus
	CoreGetAvailableDevices(OvCore, *OvAvailableDevices) OvStatus
	AvailableDevicesFree(*OvAvailableDevices)
	CoreFree(OvCore)

	// Model
	ModelInputsSize(OvModel, *uintptr) OvStatus
	ModelOutputsSize(OvModel, *uintptr) OvStatus
	ModelConstInputByIndex(OvModel, uintptr, *OvOutputConstPort) OvStatus
	ModelConstOutputByIndex(OvModel, uintptr, *OvOutputConstPort) OvStatus
	ModelFree(OvModel)

	// Compiled model
	CompiledModelInputsSize(OvCompiledModel, *uintptr) OvStatus
	CompiledModelOutputsSize(OvCompiledModel, *uintptr) OvStatus
	CompiledModelInputByIndex(OvCompiledModel, uintptr, *OvOutputConstPort) OvStatus
	CompiledModelOutputByIndex(OvCompiledModel, uintptr, *OvOutputConstPort) OvStatus
	CompiledModelCreateInferRequest(OvCompiledModel, *OvInferRequest) OvStatus
	CompiledModelFree(OvCompiledModel)

	// Ports
	PortGetAnyName(OvOutputConstPort, **byte) OvStatus
	PortGetElementType(OvOutputConstPort, *OvElementType) OvStatus
	PortGetPartialShape(OvOutputConstPort, *OvPartialShape) OvStatus
	OutputConstPortFree(OvOutputConstPort)
	PartialShapeFree(*OvPartialShape)
	ShapeFree(*OvShape) OvStatus

	// Infer request
	InferRequestGetTensor(OvInferRequest, *byte, *OvTensor) OvStatus
	InferRequestGetInputTensorByIndex(OvInferRequest, uintptr, *OvTensor) OvStatus
	InferRequestGetOutputTensorByIndex(OvInferRequest, uintptr, *OvTensor) OvStatus
	InferRequestInfer(OvInferRequest) OvStatus
	InferRequestCancel(OvInferRequest) OvStatus
	InferRequestFree(OvInferRequest)

	// Tensor
	TensorData(OvTensor, *unsafe.Pointer) OvStatus
	TensorGetByteSize(OvTensor, *uintptr) OvStatus
	TensorGetShape(OvTensor, *OvShape) OvStatus
	TensorGetElementType(OvTensor, *OvElementType) OvStatus
	TensorFree(OvTensor)
}
