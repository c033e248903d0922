// Package openvino provides Go bindings for the OpenVINO runtime C API using purego.
//
// The package exposes four native objects and decides who owns each of them:
//
//	runtime, _ := openvino.NewRuntime(os.Getenv("OPENVINO_LIB_PATH"), nil)
//	core, _ := runtime.NewCore(nil)                        // default configuration
//	model, _ := core.ReadModel("model.xml", "model.bin")   // owned by the caller
//	compiled, _ := core.CompileModel(model, "CPU")         // consumes model
//	request, _ := compiled.CreateInferRequest()            // one per goroutine
//
// Every native failure is returned as an *Error whose Kind can be matched with
// errors.Is against ErrInitialization, ErrModelLoad, ErrCompilation,
// ErrResourceExhaustion and ErrNativeFault.
//
// Objects keep their parents alive: a CompiledModel holds its Core and an
// InferRequest holds its CompiledModel. Close marks an object unusable at once,
// but the native release of a parent waits until its last dependent is closed.
package openvino
