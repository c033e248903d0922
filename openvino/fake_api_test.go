package openvino

import (
	"os"
	"strings"
	"sync"
	"testing"
	"unsafe"

	"github.com/benedoc-inc/ovbridge/openvino/internal/api"
)

// fakePort describes a port of a fake graph. A -1 dimension is dynamic and a
// nil shape has dynamic rank.
type fakePort struct {
	name     string
	elemType api.OvElementType
	shape    []int64
}

type fakeGraph struct {
	weights     string
	inputs      []fakePort
	outputs     []fakePort
	unsupported map[string]bool
}

type fakeCompiled struct {
	graph  *fakeGraph
	device string
}

type fakeRequest struct {
	compiled   *fakeCompiled
	inputs     [][]byte
	outputs    [][]byte
	cancel     chan struct{}
	cancelOnce sync.Once
}

type fakeTensor struct {
	buf  []byte
	port fakePort
}

// fakeAPI is an in-memory OpenVINO C API. It models native ownership: every
// object it hands out must be freed exactly once.
type fakeAPI struct {
	mu   sync.Mutex
	next uintptr

	devices []string
	graphs  map[string]*fakeGraph

	cores    map[api.OvCore]bool
	models   map[api.OvModel]*fakeGraph
	compiled map[api.OvCompiledModel]*fakeCompiled
	requests map[api.OvInferRequest]*fakeRequest
	tensors  map[api.OvTensor]*fakeTensor
	ports    map[api.OvOutputConstPort]fakePort

	// Go memory handed to the caller as native memory, keyed by address.
	allocs map[uintptr]any

	lastErr []byte
	freed   []string

	// failure injection
	failCreateRequest api.OvStatus
	failRequestMsg    string
	blockInfer        bool
	inferStarted      chan struct{}
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		next:         0x1000,
		devices:      []string{"CPU", "GPU"},
		graphs:       map[string]*fakeGraph{},
		cores:        map[api.OvCore]bool{},
		models:       map[api.OvModel]*fakeGraph{},
		compiled:     map[api.OvCompiledModel]*fakeCompiled{},
		requests:     map[api.OvInferRequest]*fakeRequest{},
		tensors:      map[api.OvTensor]*fakeTensor{},
		ports:        map[api.OvOutputConstPort]fakePort{},
		allocs:       map[uintptr]any{},
		inferStarted: make(chan struct{}, 16),
	}
}

// addModel registers a model file pair the fake can read.
func (f *fakeAPI) addModel(modelPath, weightsPath string, g *fakeGraph) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g.weights = weightsPath
	f.graphs[modelPath] = g
}

// live counts native objects and allocations that have not been freed.
func (f *fakeAPI) live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cores) + len(f.models) + len(f.compiled) + len(f.requests) +
		len(f.tensors) + len(f.ports) + len(f.allocs)
}

func (f *fakeAPI) freedOrder() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.freed...)
}

func (f *fakeAPI) handleLocked() uintptr {
	f.next += 0x10
	return f.next
}

func (f *fakeAPI) failLocked(status api.OvStatus, msg string) api.OvStatus {
	f.lastErr = append([]byte(msg), 0)
	return status
}

func (f *fakeAPI) cstringLocked(s string) *byte {
	b := append([]byte(s), 0)
	f.allocs[uintptr(unsafe.Pointer(&b[0]))] = b
	return &b[0]
}

func elemSize(t api.OvElementType) int {
	switch t {
	case ElementTypeBoolean, ElementTypeI8, ElementTypeU8:
		return 1
	case ElementTypeF16, ElementTypeBF16, ElementTypeI16, ElementTypeU16:
		return 2
	case ElementTypeF64, ElementTypeI64, ElementTypeU64:
		return 8
	default:
		return 4
	}
}

func byteSize(p fakePort) int {
	n := elemSize(p.elemType)
	for _, d := range p.shape {
		if d < 0 {
			d = 1
		}
		n *= int(d)
	}
	return n
}

// Errors and memory

func (f *fakeAPI) GetLastErrMsg() unsafe.Pointer {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.lastErr) == 0 {
		return nil
	}
	// Like ov_get_last_err_msg, hand out a copy the caller must Free.
	return unsafe.Pointer(f.cstringLocked(string(f.lastErr[:len(f.lastErr)-1])))
}

func (f *fakeAPI) Free(ptr unsafe.Pointer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.allocs[uintptr(ptr)]; !ok {
		panic("fake: free of unknown pointer")
	}
	delete(f.allocs, uintptr(ptr))
}

// allocCount reports strings and arrays handed out and not yet freed.
func (f *fakeAPI) allocCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.allocs)
}

// Version

func (f *fakeAPI) GetOpenvinoVersion(v *api.OvVersion) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	v.BuildNumber = f.cstringLocked("2024.0.0-fake")
	v.Description = f.cstringLocked("OpenVINO Runtime")
	return StatusOK
}

func (f *fakeAPI) VersionFree(v *api.OvVersion) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.allocs, uintptr(unsafe.Pointer(v.BuildNumber)))
	delete(f.allocs, uintptr(unsafe.Pointer(v.Description)))
}

// Core

func (f *fakeAPI) CoreCreate(core *api.OvCore) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := api.OvCore(f.handleLocked())
	f.cores[h] = true
	*core = h
	return StatusOK
}

func (f *fakeAPI) CoreCreateWithConfig(path *byte, core *api.OvCore) api.OvStatus {
	data, err := os.ReadFile(cstringOf(path))
	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		return f.failLocked(StatusGeneralError, "Cannot open plugins config: "+err.Error())
	}
	if !strings.Contains(string(data), "<ie>") {
		return f.failLocked(StatusGeneralError, "Failed to parse plugins config: no <ie> root")
	}
	h := api.OvCore(f.handleLocked())
	f.cores[h] = true
	*core = h
	return StatusOK
}

func (f *fakeAPI) CoreReadModel(core api.OvCore, modelPath *byte, binPath *byte, model *api.OvModel) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.cores[core] {
		return f.failLocked(StatusInvalidCParam, "invalid core")
	}
	path := cstringOf(modelPath)
	g, ok := f.graphs[path]
	if !ok {
		return f.failLocked(StatusGeneralError, "Model file "+path+" cannot be opened!")
	}
	if bin := cstringOf(binPath); bin != g.weights {
		return f.failLocked(StatusGeneralError, "Weights file "+bin+" cannot be opened!")
	}
	h := api.OvModel(f.handleLocked())
	f.models[h] = g
	*model = h
	return StatusOK
}

func (f *fakeAPI) CoreCompileModel(core api.OvCore, model api.OvModel, device *byte, _ uintptr, compiled *api.OvCompiledModel) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.cores[core] {
		return f.failLocked(StatusInvalidCParam, "invalid core")
	}
	g, ok := f.models[model]
	if !ok {
		return f.failLocked(StatusInvalidCParam, "invalid model")
	}
	dev := cstringOf(device)
	known := false
	for _, d := range f.devices {
		if d == dev {
			known = true
		}
	}
	if !known {
		return f.failLocked(StatusGeneralError, `Device with "`+dev+`" name is not registered in the OpenVINO Runtime`)
	}
	if g.unsupported[dev] {
		return f.failLocked(StatusGeneralError, "Operation Foo is not supported by "+dev)
	}
	h := api.OvCompiledModel(f.handleLocked())
	f.compiled[h] = &fakeCompiled{graph: g, device: dev}
	*compiled = h
	return StatusOK
}

func (f *fakeAPI) CoreGetAvailableDevices(core api.OvCore, out *api.OvAvailableDevices) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.cores[core] {
		return f.failLocked(StatusInvalidCParam, "invalid core")
	}
	arr := make([]*byte, len(f.devices))
	for i, d := range f.devices {
		arr[i] = f.cstringLocked(d)
	}
	if len(arr) > 0 {
		f.allocs[uintptr(unsafe.Pointer(&arr[0]))] = arr
		out.Devices = &arr[0]
	}
	out.Size = uintptr(len(arr))
	return StatusOK
}

func (f *fakeAPI) AvailableDevicesFree(devices *api.OvAvailableDevices) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if devices.Devices == nil {
		return
	}
	for _, p := range unsafe.Slice(devices.Devices, devices.Size) {
		delete(f.allocs, uintptr(unsafe.Pointer(p)))
	}
	delete(f.allocs, uintptr(unsafe.Pointer(devices.Devices)))
	devices.Devices = nil
	devices.Size = 0
}

func (f *fakeAPI) CoreFree(core api.OvCore) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.cores[core] {
		panic("double free of core")
	}
	delete(f.cores, core)
	f.freed = append(f.freed, "core")
}

// Model

func (f *fakeAPI) ModelInputsSize(model api.OvModel, n *uintptr) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.models[model]
	if !ok {
		return f.failLocked(StatusInvalidCParam, "invalid model")
	}
	*n = uintptr(len(g.inputs))
	return StatusOK
}

func (f *fakeAPI) ModelOutputsSize(model api.OvModel, n *uintptr) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.models[model]
	if !ok {
		return f.failLocked(StatusInvalidCParam, "invalid model")
	}
	*n = uintptr(len(g.outputs))
	return StatusOK
}

func (f *fakeAPI) portLocked(ports []fakePort, i uintptr, out *api.OvOutputConstPort) api.OvStatus {
	if int(i) >= len(ports) {
		return f.failLocked(StatusOutOfBounds, "port index out of range")
	}
	h := api.OvOutputConstPort(f.handleLocked())
	f.ports[h] = ports[i]
	*out = h
	return StatusOK
}

func (f *fakeAPI) ModelConstInputByIndex(model api.OvModel, i uintptr, out *api.OvOutputConstPort) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.models[model]
	if !ok {
		return f.failLocked(StatusInvalidCParam, "invalid model")
	}
	return f.portLocked(g.inputs, i, out)
}

func (f *fakeAPI) ModelConstOutputByIndex(model api.OvModel, i uintptr, out *api.OvOutputConstPort) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.models[model]
	if !ok {
		return f.failLocked(StatusInvalidCParam, "invalid model")
	}
	return f.portLocked(g.outputs, i, out)
}

func (f *fakeAPI) ModelFree(model api.OvModel) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.models[model]; !ok {
		panic("double free of model")
	}
	delete(f.models, model)
	f.freed = append(f.freed, "model")
}

// Compiled model

func (f *fakeAPI) CompiledModelInputsSize(m api.OvCompiledModel, n *uintptr) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.compiled[m]
	if !ok {
		return f.failLocked(StatusInvalidCParam, "invalid compiled model")
	}
	*n = uintptr(len(c.graph.inputs))
	return StatusOK
}

func (f *fakeAPI) CompiledModelOutputsSize(m api.OvCompiledModel, n *uintptr) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.compiled[m]
	if !ok {
		return f.failLocked(StatusInvalidCParam, "invalid compiled model")
	}
	*n = uintptr(len(c.graph.outputs))
	return StatusOK
}

func (f *fakeAPI) CompiledModelInputByIndex(m api.OvCompiledModel, i uintptr, out *api.OvOutputConstPort) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.compiled[m]
	if !ok {
		return f.failLocked(StatusInvalidCParam, "invalid compiled model")
	}
	return f.portLocked(c.graph.inputs, i, out)
}

func (f *fakeAPI) CompiledModelOutputByIndex(m api.OvCompiledModel, i uintptr, out *api.OvOutputConstPort) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.compiled[m]
	if !ok {
		return f.failLocked(StatusInvalidCParam, "invalid compiled model")
	}
	return f.portLocked(c.graph.outputs, i, out)
}

func (f *fakeAPI) CompiledModelCreateInferRequest(m api.OvCompiledModel, out *api.OvInferRequest) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.compiled[m]
	if !ok {
		return f.failLocked(StatusInvalidCParam, "invalid compiled model")
	}
	if f.failCreateRequest != StatusOK {
		return f.failLocked(f.failCreateRequest, f.failRequestMsg)
	}
	req := &fakeRequest{compiled: c, cancel: make(chan struct{})}
	for _, p := range c.graph.inputs {
		req.inputs = append(req.inputs, make([]byte, byteSize(p)))
	}
	for _, p := range c.graph.outputs {
		req.outputs = append(req.outputs, make([]byte, byteSize(p)))
	}
	h := api.OvInferRequest(f.handleLocked())
	f.requests[h] = req
	*out = h
	return StatusOK
}

func (f *fakeAPI) CompiledModelFree(m api.OvCompiledModel) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.compiled[m]; !ok {
		panic("double free of compiled model")
	}
	delete(f.compiled, m)
	f.freed = append(f.freed, "compiled")
}

// Ports

func (f *fakeAPI) PortGetAnyName(port api.OvOutputConstPort, name **byte) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.ports[port]
	if !ok {
		return f.failLocked(StatusInvalidCParam, "invalid port")
	}
	*name = f.cstringLocked(p.name)
	return StatusOK
}

func (f *fakeAPI) PortGetElementType(port api.OvOutputConstPort, t *api.OvElementType) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.ports[port]
	if !ok {
		return f.failLocked(StatusInvalidCParam, "invalid port")
	}
	*t = p.elemType
	return StatusOK
}

func (f *fakeAPI) PortGetPartialShape(port api.OvOutputConstPort, out *api.OvPartialShape) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.ports[port]
	if !ok {
		return f.failLocked(StatusInvalidCParam, "invalid port")
	}
	if p.shape == nil {
		out.Rank = api.OvDimension{Min: 0, Max: -1}
		return StatusOK
	}
	n := int64(len(p.shape))
	out.Rank = api.OvDimension{Min: n, Max: n}
	if n == 0 {
		return StatusOK
	}
	dims := make([]api.OvDimension, n)
	for i, d := range p.shape {
		if d < 0 {
			dims[i] = api.OvDimension{Min: 0, Max: -1}
		} else {
			dims[i] = api.OvDimension{Min: d, Max: d}
		}
	}
	f.allocs[uintptr(unsafe.Pointer(&dims[0]))] = dims
	out.Dims = &dims[0]
	return StatusOK
}

func (f *fakeAPI) OutputConstPortFree(port api.OvOutputConstPort) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.ports[port]; !ok {
		panic("double free of port")
	}
	delete(f.ports, port)
}

func (f *fakeAPI) PartialShapeFree(shape *api.OvPartialShape) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if shape.Dims != nil {
		delete(f.allocs, uintptr(unsafe.Pointer(shape.Dims)))
		shape.Dims = nil
	}
}

func (f *fakeAPI) ShapeFree(shape *api.OvShape) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	if shape.Dims != nil {
		delete(f.allocs, uintptr(unsafe.Pointer(shape.Dims)))
		shape.Dims = nil
	}
	return StatusOK
}

// Infer request

func (f *fakeAPI) tensorLocked(buf []byte, p fakePort, out *api.OvTensor) api.OvStatus {
	h := api.OvTensor(f.handleLocked())
	f.tensors[h] = &fakeTensor{buf: buf, port: p}
	*out = h
	return StatusOK
}

func (f *fakeAPI) InferRequestGetTensor(r api.OvInferRequest, name *byte, out *api.OvTensor) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[r]
	if !ok {
		return f.failLocked(StatusInvalidCParam, "invalid infer request")
	}
	n := cstringOf(name)
	for i, p := range req.compiled.graph.inputs {
		if p.name == n {
			return f.tensorLocked(req.inputs[i], p, out)
		}
	}
	for i, p := range req.compiled.graph.outputs {
		if p.name == n {
			return f.tensorLocked(req.outputs[i], p, out)
		}
	}
	return f.failLocked(StatusGeneralError, "Port for tensor name "+n+" was not found.")
}

func (f *fakeAPI) InferRequestGetInputTensorByIndex(r api.OvInferRequest, i uintptr, out *api.OvTensor) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[r]
	if !ok {
		return f.failLocked(StatusInvalidCParam, "invalid infer request")
	}
	if int(i) >= len(req.inputs) {
		return f.failLocked(StatusOutOfBounds, "input index out of range")
	}
	return f.tensorLocked(req.inputs[i], req.compiled.graph.inputs[i], out)
}

func (f *fakeAPI) InferRequestGetOutputTensorByIndex(r api.OvInferRequest, i uintptr, out *api.OvTensor) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[r]
	if !ok {
		return f.failLocked(StatusInvalidCParam, "invalid infer request")
	}
	if int(i) >= len(req.outputs) {
		return f.failLocked(StatusOutOfBounds, "output index out of range")
	}
	return f.tensorLocked(req.outputs[i], req.compiled.graph.outputs[i], out)
}

// InferRequestInfer doubles every f32 of input 0 into output 0.
func (f *fakeAPI) InferRequestInfer(r api.OvInferRequest) api.OvStatus {
	f.mu.Lock()
	req, ok := f.requests[r]
	block := f.blockInfer
	f.mu.Unlock()
	if !ok {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.failLocked(StatusInvalidCParam, "invalid infer request")
	}

	if block {
		f.inferStarted <- struct{}{}
		<-req.cancel
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.failLocked(StatusInferCancelled, "Infer Request was canceled")
	}

	if len(req.inputs) > 0 && len(req.outputs) > 0 && len(req.inputs[0]) == len(req.outputs[0]) {
		in := unsafe.Slice((*float32)(unsafe.Pointer(&req.inputs[0][0])), len(req.inputs[0])/4)
		out := unsafe.Slice((*float32)(unsafe.Pointer(&req.outputs[0][0])), len(req.outputs[0])/4)
		for i, v := range in {
			out[i] = 2 * v
		}
	}
	return StatusOK
}

func (f *fakeAPI) InferRequestCancel(r api.OvInferRequest) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[r]
	if !ok {
		return f.failLocked(StatusInvalidCParam, "invalid infer request")
	}
	req.cancelOnce.Do(func() { close(req.cancel) })
	return StatusOK
}

func (f *fakeAPI) InferRequestFree(r api.OvInferRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.requests[r]; !ok {
		panic("double free of infer request")
	}
	delete(f.requests, r)
	f.freed = append(f.freed, "request")
}

// Tensor

func (f *fakeAPI) TensorData(t api.OvTensor, data *unsafe.Pointer) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	ft, ok := f.tensors[t]
	if !ok {
		return f.failLocked(StatusInvalidCParam, "invalid tensor")
	}
	if len(ft.buf) > 0 {
		*data = unsafe.Pointer(&ft.buf[0])
	}
	return StatusOK
}

func (f *fakeAPI) TensorGetByteSize(t api.OvTensor, size *uintptr) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	ft, ok := f.tensors[t]
	if !ok {
		return f.failLocked(StatusInvalidCParam, "invalid tensor")
	}
	*size = uintptr(len(ft.buf))
	return StatusOK
}

func (f *fakeAPI) TensorGetShape(t api.OvTensor, out *api.OvShape) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	ft, ok := f.tensors[t]
	if !ok {
		return f.failLocked(StatusInvalidCParam, "invalid tensor")
	}
	dims := append([]int64(nil), ft.port.shape...)
	out.Rank = int64(len(dims))
	if len(dims) > 0 {
		f.allocs[uintptr(unsafe.Pointer(&dims[0]))] = dims
		out.Dims = &dims[0]
	}
	return StatusOK
}

func (f *fakeAPI) TensorGetElementType(t api.OvTensor, et *api.OvElementType) api.OvStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	ft, ok := f.tensors[t]
	if !ok {
		return f.failLocked(StatusInvalidCParam, "invalid tensor")
	}
	*et = ft.port.elemType
	return StatusOK
}

func (f *fakeAPI) TensorFree(t api.OvTensor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tensors[t]; !ok {
		panic("double free of tensor")
	}
	delete(f.tensors, t)
	f.freed = append(f.freed, "tensor")
}

var _ api.APIFuncs = (*fakeAPI)(nil)

func cstringOf(p *byte) string {
	if p == nil {
		return ""
	}
	var n int
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}
	return string(unsafe.Slice(p, n))
}

// Test fixtures

const (
	testModelPath   = "model.xml"
	testWeightsPath = "model.bin"
)

func testGraph() *fakeGraph {
	return &fakeGraph{
		inputs:      []fakePort{{name: "input", elemType: ElementTypeF32, shape: []int64{1, 4}}},
		outputs:     []fakePort{{name: "output", elemType: ElementTypeF32, shape: []int64{1, 4}}},
		unsupported: map[string]bool{"GPU": true},
	}
}

// newTestRuntime returns a Runtime backed by a fake with the test model
// registered, and checks on cleanup that nothing native leaked.
func newTestRuntime(t *testing.T, options ...*RuntimeOptions) (*Runtime, *fakeAPI) {
	t.Helper()
	fake := newFakeAPI()
	fake.addModel(testModelPath, testWeightsPath, testGraph())

	var opts *RuntimeOptions
	if len(options) > 0 {
		opts = options[0]
	}
	r := newRuntime(fake, opts, nil)
	t.Cleanup(func() {
		r.Close()
		if n := fake.live(); n != 0 {
			t.Errorf("%d native objects leaked", n)
		}
	})
	return r, fake
}

func newTestCore(t *testing.T, r *Runtime) *Core {
	t.Helper()
	core, err := r.NewCore(nil)
	if err != nil {
		t.Fatalf("Failed to create core: %v", err)
	}
	t.Cleanup(core.Close)
	return core
}

func newTestCompiledModel(t *testing.T, core *Core) *CompiledModel {
	t.Helper()
	model, err := core.ReadModel(testModelPath, testWeightsPath)
	if err != nil {
		t.Fatalf("Failed to read model: %v", err)
	}
	compiled, err := core.CompileModel(model, DeviceCPU)
	if err != nil {
		t.Fatalf("Failed to compile model: %v", err)
	}
	t.Cleanup(compiled.Close)
	return compiled
}
