package openvino

import (
	"log/slog"
)

// SlogHook is a Hook that logs bridged operations via log/slog.
// It logs at Debug level on success and Error level on failure.
type SlogHook struct {
	logger *slog.Logger
}

// NewSlogHook creates a Hook that logs to the given slog.Logger.
// If logger is nil, slog.Default() is used.
func NewSlogHook(logger *slog.Logger) *SlogHook {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogHook{logger: logger}
}

func (h *SlogHook) BeforeCall(_ *CallInfo) {}

func (h *SlogHook) AfterCall(info *CallInfo) {
	if info.Error != nil {
		h.logger.Error("openvino call failed",
			slog.String("op", string(info.Op)),
			slog.String("device", info.Device),
			slog.Duration("duration", info.Duration),
			slog.String("kind", string(KindOf(info.Error))),
			slog.String("error", info.Error.Error()),
		)
		return
	}
	h.logger.Debug("openvino call completed",
		slog.String("op", string(info.Op)),
		slog.String("device", info.Device),
		slog.Duration("duration", info.Duration),
	)
}
