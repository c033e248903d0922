// Package capi binds the exported symbols of the OpenVINO C library
// (libopenvino_c) to Go function values with purego.
package capi

import (
	"fmt"
	"unsafe"

	"github.com/benedoc-inc/ovbridge/openvino/internal/api"
	"github.com/ebitengine/purego"
)

// Funcs contains cached function pointers to OpenVINO C API functions.
type Funcs struct {
	// Errors and memory
	getLastErrMsg func() unsafe.Pointer
	free          func(unsafe.Pointer)

	// Version
	getOpenvinoVersion func(*api.OvVersion) api.OvStatus
	versionFree        func(*api.OvVersion)

	// Core
	coreCreate              func(*api.OvCore) api.OvStatus
	coreCreateWithConfig    func(*byte, *api.OvCore) api.OvStatus
	coreReadModel           func(api.OvCore, *byte, *byte, *api.OvModel) api.OvStatus
	coreCompileModel        func(api.OvCore, api.OvModel, *byte, uintptr, *api.OvCompiledModel) api.OvStatus
	coreGetAvailableDevices func(api.OvCore, *api.OvAvailableDevices) api.OvStatus
	availableDevicesFree    func(*api.OvAvailableDevices)
	coreFree                func(api.OvCore)

	// Model
	modelInputsSize         func(api.OvModel, *uintptr) api.OvStatus
	modelOutputsSize        func(api.OvModel, *uintptr) api.OvStatus
	modelConstInputByIndex  func(api.OvModel, uintptr, *api.OvOutputConstPort) api.OvStatus
	modelConstOutputByIndex func(api.OvModel, uintptr, *api.OvOutputConstPort) api.OvStatus
	modelFree               func(api.OvModel)

	// Compiled model
	compiledModelInputsSize         func(api.OvCompiledModel, *uintptr) api.OvStatus
	compiledModelOutputsSize        func(api.OvCompiledModel, *uintptr) api.OvStatus
	compiledModelInputByIndex       func(api.OvCompiledModel, uintptr, *api.OvOutputConstPort) api.OvStatus
	compiledModelOutputByIndex      func(api.OvCompiledModel, uintptr, *api.OvOutputConstPort) api.OvStatus
	compiledModelCreateInferRequest func(api.OvCompiledModel, *api.OvInferRequest) api.OvStatus
	compiledModelFree               func(api.OvCompiledModel)

	// Ports
	portGetAnyName      func(api.OvOutputConstPort, **byte) api.OvStatus
	portGetElementType  func(api.OvOutputConstPort, *api.OvElementType) api.OvStatus
	portGetPartialShape func(api.OvOutputConstPort, *api.OvPartialShape) api.OvStatus
	outputConstPortFree func(api.OvOutputConstPort)
	partialShapeFree    func(*api.OvPartialShape)
	shapeFree           func(*api.OvShape) api.OvStatus

	// Infer request
	inferRequestGetTensor              func(api.OvInferRequest, *byte, *api.OvTensor) api.OvStatus
	inferRequestGetInputTensorByIndex  func(api.OvInferRequest, uintptr, *api.OvTensor) api.OvStatus
	inferRequestGetOutputTensorByIndex func(api.OvInferRequest, uintptr, *api.OvTensor) api.OvStatus
	inferRequestInfer                  func(api.OvInferRequest) api.OvStatus
	inferRequestCancel                 func(api.OvInferRequest) api.OvStatus
	inferRequestFree                   func(api.OvInferRequest)

	// Tensor
	tensorData           func(api.OvTensor, *unsafe.Pointer) api.OvStatus
	tensorGetByteSize    func(api.OvTensor, *uintptr) api.OvStatus
	tensorGetShape       func(api.OvTensor, *api.OvShape) api.OvStatus
	tensorGetElementType func(api.OvTensor, *api.OvElementType) api.OvStatus
	tensorFree           func(api.OvTensor)
}

// InitializeFuncs resolves every symbol from the library handle.
// This is called once per Runtime to avoid repeated symbol lookups.
func InitializeFuncs(libraryHandle uintptr) (funcs *Funcs, err error) {
	// RegisterLibFunc panics on a missing symbol; an old or foreign library
	// must surface as an error instead.
	defer func() {
		if r := recover(); r != nil {
			funcs = nil
			err = fmt.Errorf("failed to resolve OpenVINO C API symbols: %v", r)
		}
	}()

	funcs = &Funcs{}
	register := func(fptr any, name string) {
		purego.RegisterLibFunc(fptr, libraryHandle, name)
	}

	register(&funcs.getLastErrMsg, "ov_get_last_err_msg")
	register(&funcs.free, "ov_free")

	register(&funcs.getOpenvinoVersion, "ov_get_openvino_version")
	register(&funcs.versionFree, "ov_version_free")

	register(&funcs.coreCreate, "ov_core_create")
	register(&funcs.coreCreateWithConfig, "ov_core_create_with_config")
	register(&funcs.coreReadModel, "ov_core_read_model")
	// ov_core_compile_model is variadic; it is always called with zero
	// property arguments so the fixed prefix is the whole call.
	register(&funcs.coreCompileModel, "ov_core_compile_model")
	register(&funcs.coreGetAvailableDevices, "ov_core_get_available_devices")
	register(&funcs.availableDevicesFree, "ov_available_devices_free")
	register(&funcs.coreFree, "ov_core_free")

	register(&funcs.modelInputsSize, "ov_model_inputs_size")
	register(&funcs.modelOutputsSize, "ov_model_outputs_size")
	register(&funcs.modelConstInputByIndex, "ov_model_const_input_by_index")
	register(&funcs.modelConstOutputByIndex, "ov_model_const_output_by_index")
	register(&funcs.modelFree, "ov_model_free")

	register(&funcs.compiledModelInputsSize, "ov_compiled_model_inputs_size")
	register(&funcs.compiledModelOutputsSize, "ov_compiled_model_outputs_size")
	register(&funcs.compiledModelInputByIndex, "ov_compiled_model_input_by_index")
	register(&funcs.compiledModelOutputByIndex, "ov_compiled_model_output_by_index")
	register(&funcs.compiledModelCreateInferRequest, "ov_compiled_model_create_infer_request")
	register(&funcs.compiledModelFree, "ov_compiled_model_free")

	register(&funcs.portGetAnyName, "ov_port_get_any_name")
	register(&funcs.portGetElementType, "ov_port_get_element_type")
	register(&funcs.portGetPartialShape, "ov_port_get_partial_shape")
	register(&funcs.outputConstPortFree, "ov_output_const_port_free")
	register(&funcs.partialShapeFree, "ov_partial_shape_free")
	register(&funcs.shapeFree, "ov_shape_free")

	register(&funcs.inferRequestGetTensor, "ov_infer_request_get_tensor")
	register(&funcs.inferRequestGetInputTensorByIndex, "ov_infer_request_get_input_tensor_by_index")
	register(&funcs.inferRequestGetOutputTensorByIndex, "ov_infer_request_get_output_tensor_by_index")
	register(&funcs.inferRequestInfer, "ov_infer_request_infer")
	register(&funcs.inferRequestCancel, "ov_infer_request_cancel")
	register(&funcs.inferRequestFree, "ov_infer_request_free")

	register(&funcs.tensorData, "ov_tensor_data")
	register(&funcs.tensorGetByteSize, "ov_tensor_get_byte_size")
	register(&funcs.tensorGetShape, "ov_tensor_get_shape")
	register(&funcs.tensorGetElementType, "ov_tensor_get_element_type")
	register(&funcs.tensorFree, "ov_tensor_free")

	return funcs, nil
}

// Errors and memory

func (f *Funcs) GetLastErrMsg() unsafe.Pointer {
	return f.getLastErrMsg()
}

func (f *Funcs) Free(ptr unsafe.Pointer) {
	f.free(ptr)
}

// Version

func (f *Funcs) GetOpenvinoVersion(version *api.OvVersion) api.OvStatus {
	return f.getOpenvinoVersion(version)
}

func (f *Funcs) VersionFree(version *api.OvVersion) {
	f.versionFree(version)
}

// Core

func (f *Funcs) CoreCreate(core *api.OvCore) api.OvStatus {
	return f.coreCreate(core)
}

func (f *Funcs) CoreCreateWithConfig(xmlConfigFile *byte, core *api.OvCore) api.OvStatus {
	return f.coreCreateWithConfig(xmlConfigFile, core)
}

func (f *Funcs) CoreReadModel(core api.OvCore, modelPath *byte, binPath *byte, model *api.OvModel) api.OvStatus {
	return f.coreReadModel(core, modelPath, binPath, model)
}

func (f *Funcs) CoreCompileModel(core api.OvCore, model api.OvModel, deviceName *byte, propertyArgsSize uintptr, compiled *api.OvCompiledModel) api.OvStatus {
	return f.coreCompileModel(core, model, deviceName, propertyArgsSize, compiled)
}

func (f *Funcs) CoreGetAvailableDevices(core api.OvCore, devices *api.OvAvailableDevices) api.OvStatus {
	return f.coreGetAvailableDevices(core, devices)
}

func (f *Funcs) AvailableDevicesFree(devices *api.OvAvailableDevices) {
	f.availableDevicesFree(devices)
}

func (f *Funcs) CoreFree(core api.OvCore) {
	f.coreFree(core)
}

// Model

func (f *Funcs) ModelInputsSize(model api.OvModel, size *uintptr) api.OvStatus {
	return f.modelInputsSize(model, size)
}

func (f *Funcs) ModelOutputsSize(model api.OvModel, size *uintptr) api.OvStatus {
	return f.modelOutputsSize(model, size)
}

func (f *Funcs) ModelConstInputByIndex(model api.OvModel, index uintptr, port *api.OvOutputConstPort) api.OvStatus {
	return f.modelConstInputByIndex(model, index, port)
}

func (f *Funcs) ModelConstOutputByIndex(model api.OvModel, index uintptr, port *api.OvOutputConstPort) api.OvStatus {
	return f.modelConstOutputByIndex(model, index, port)
}

func (f *Funcs) ModelFree(model api.OvModel) {
	f.modelFree(model)
}

// Compiled model

func (f *Funcs) CompiledModelInputsSize(compiled api.OvCompiledModel, size *uintptr) api.OvStatus {
	return f.compiledModelInputsSize(compiled, size)
}

func (f *Funcs) CompiledModelOutputsSize(compiled api.OvCompiledModel, size *uintptr) api.OvStatus {
	return f.compiledModelOutputsSize(compiled, size)
}

func (f *Funcs) CompiledModelInputByIndex(compiled api.OvCompiledModel, index uintptr, port *api.OvOutputConstPort) api.OvStatus {
	return f.compiledModelInputByIndex(compiled, index, port)
}

func (f *Funcs) CompiledModelOutputByIndex(compiled api.OvCompiledModel, index uintptr, port *api.OvOutputConstPort) api.OvStatus {
	return f.compiledModelOutputByIndex(compiled, index, port)
}

func (f *Funcs) CompiledModelCreateInferRequest(compiled api.OvCompiledModel, request *api.OvInferRequest) api.OvStatus {
	return f.compiledModelCreateInferRequest(compiled, request)
}

func (f *Funcs) CompiledModelFree(compiled api.OvCompiledModel) {
	f.compiledModelFree(compiled)
}

// Ports

func (f *Funcs) PortGetAnyName(port api.OvOutputConstPort, name **byte) api.OvStatus {
	return f.portGetAnyName(port, name)
}

func (f *Funcs) PortGetElementType(port api.OvOutputConstPort, elemType *api.OvElementType) api.OvStatus {
	return f.portGetElementType(port, elemType)
}

func (f *Funcs) PortGetPartialShape(port api.OvOutputConstPort, shape *api.OvPartialShape) api.OvStatus {
	return f.portGetPartialShape(port, shape)
}

func (f *Funcs) OutputConstPortFree(port api.OvOutputConstPort) {
	f.outputConstPortFree(port)
}

func (f *Funcs) PartialShapeFree(shape *api.OvPartialShape) {
	f.partialShapeFree(shape)
}

func (f *Funcs) ShapeFree(shape *api.OvShape) api.OvStatus {
	return f.shapeFree(shape)
}

// Infer request

func (f *Funcs) InferRequestGetTensor(request api.OvInferRequest, name *byte, tensor *api.OvTensor) api.OvStatus {
	return f.inferRequestGetTensor(request, name, tensor)
}

func (f *Funcs) InferRequestGetInputTensorByIndex(request api.OvInferRequest, index uintptr, tensor *api.OvTensor) api.OvStatus {
	return f.inferRequestGetInputTensorByIndex(request, index, tensor)
}

func (f *Funcs) InferRequestGetOutputTensorByIndex(request api.OvInferRequest, index uintptr, tensor *api.OvTensor) api.OvStatus {
	return f.inferRequestGetOutputTensorByIndex(request, index, tensor)
}

func (f *Funcs) InferRequestInfer(request api.OvInferRequest) api.OvStatus {
	return f.inferRequestInfer(request)
}

func (f *Funcs) InferRequestCancel(request api.OvInferRequest) api.OvStatus {
	return f.inferRequestCancel(request)
}

func (f *Funcs) InferRequestFree(request api.OvInferRequest) {
	f.inferRequestFree(request)
}

// Tensor

func (f *Funcs) TensorData(tensor api.OvTensor, data *unsafe.Pointer) api.OvStatus {
	return f.tensorData(tensor, data)
}

func (f *Funcs) TensorGetByteSize(tensor api.OvTensor, size *uintptr) api.OvStatus {
	return f.tensorGetByteSize(tensor, size)
}

func (f *Funcs) TensorGetShape(tensor api.OvTensor, shape *api.OvShape) api.OvStatus {
	return f.tensorGetShape(tensor, shape)
}

func (f *Funcs) TensorGetElementType(tensor api.OvTensor, elemType *api.OvElementType) api.OvStatus {
	return f.tensorGetElementType(tensor, elemType)
}

func (f *Funcs) TensorFree(tensor api.OvTensor) {
	f.tensorFree(tensor)
}

var _ api.APIFuncs = (*Funcs)(nil)
