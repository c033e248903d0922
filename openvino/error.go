package openvino

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrClosed is returned when an operation is attempted on a closed object.
	ErrClosed = errors.New("object is closed")

	// ErrConsumed is returned when a Model is used after CompileModel took it.
	ErrConsumed = errors.New("model has been consumed by CompileModel")

	// ErrRequestBusy is returned when an InferRequest is used from two goroutines at once.
	ErrRequestBusy = errors.New("infer request is in use by another goroutine")
)

// Op names a bridged operation.
type Op string

// Bridged operations.
const (
	OpLoadLibrary        Op = "load_library"
	OpCreateCore         Op = "create_core"
	OpReadModel          Op = "read_model"
	OpCompileModel       Op = "compile_model"
	OpCreateInferRequest Op = "create_infer_request"
	OpInfer              Op = "infer"
	OpQuery              Op = "query"
)

// Kind categorizes a native failure.
type Kind string

// Failure kinds.
const (
	KindInitialization     Kind = "initialization"
	KindModelLoad          Kind = "model_load"
	KindCompilation        Kind = "compilation"
	KindResourceExhaustion Kind = "resource_exhaustion"
	KindNativeFault        Kind = "native_fault"
)

// kindError is the sentinel type behind ErrInitialization and friends.
type kindError Kind

func (k kindError) Error() string { return string(k) + " error" }

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrInitialization     error = kindError(KindInitialization)
	ErrModelLoad          error = kindError(KindModelLoad)
	ErrCompilation        error = kindError(KindCompilation)
	ErrResourceExhaustion error = kindError(KindResourceExhaustion)
	ErrNativeFault        error = kindError(KindNativeFault)
)

// Error is a native failure translated at the bridge boundary.
// Message is the native message, unchanged.
type Error struct {
	Kind    Kind
	Op      Op
	Code    StatusCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("openvino %s failed (%s, %s): %s", e.Op, e.Kind, statusName(e.Code), e.Message)
}

// Is reports whether target is the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(kindError)
	return ok && Kind(k) == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// newError classifies a non-OK status returned by op.
func newError(op Op, code StatusCode, message string) *Error {
	if message == "" {
		message = statusName(code)
	}
	return &Error{
		Kind:    classify(op, code, message),
		Op:      op,
		Code:    code,
		Message: message,
	}
}

// nullHandleError reports a call that claimed success but produced no object.
func nullHandleError(op Op) *Error {
	return &Error{
		Kind:    KindNativeFault,
		Op:      op,
		Code:    StatusUnexpected,
		Message: "native call returned OK with a null handle",
	}
}

// classify maps a status to a Kind. Allocation failures win over the
// operation's own kind; the three graph-building operations own every other
// failure; anything else is a native fault.
func classify(op Op, code StatusCode, message string) Kind {
	if code == StatusNotAllocated || isOutOfMemory(message) {
		return KindResourceExhaustion
	}
	switch op {
	case OpLoadLibrary, OpCreateCore:
		return KindInitialization
	case OpReadModel:
		return KindModelLoad
	case OpCompileModel:
		return KindCompilation
	default:
		return KindNativeFault
	}
}

var outOfMemoryMarkers = []string{
	"bad_alloc",
	"out of memory",
	"failed to allocate",
	"cannot allocate",
}

func isOutOfMemory(message string) bool {
	lower := strings.ToLower(message)
	for _, m := range outOfMemoryMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
