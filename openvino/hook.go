package openvino

import "time"

// Hook provides callbacks around every bridged operation for observability.
// Implement this interface to add metrics, logging, or tracing.
//
// Hooks run on the calling goroutine and must be safe for concurrent use when
// the Runtime is shared.
type Hook interface {
	// BeforeCall is called before the native call starts.
	BeforeCall(info *CallInfo)

	// AfterCall is called after the native call completes (or fails).
	// Duration and Error are populated.
	AfterCall(info *CallInfo)
}

// CallInfo describes one bridged operation.
// Op and Device are set before the call, Duration and Error after.
type CallInfo struct {
	Op       Op
	Device   string
	Duration time.Duration
	Error    error
}

type hookFunc struct {
	fn func(*CallInfo)
}

func (h *hookFunc) BeforeCall(_ *CallInfo)   {}
func (h *hookFunc) AfterCall(info *CallInfo) { h.fn(info) }

// AfterCallHook creates a Hook that calls fn after every operation.
//
// Example:
//
//	runtime, _ := openvino.NewRuntime(path, &openvino.RuntimeOptions{
//	    Hooks: []openvino.Hook{
//	        openvino.AfterCallHook(func(info *openvino.CallInfo) {
//	            log.Printf("%s took %v", info.Op, info.Duration)
//	        }),
//	    },
//	})
func AfterCallHook(fn func(*CallInfo)) Hook {
	return &hookFunc{fn: fn}
}
