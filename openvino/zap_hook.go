package openvino

import "go.uber.org/zap"

// ZapHook is a Hook that logs bridged operations to a zap.Logger.
type ZapHook struct {
	logger *zap.Logger
}

// NewZapHook creates a Hook that logs to logger. A nil logger logs nothing.
func NewZapHook(logger *zap.Logger) *ZapHook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapHook{logger: logger}
}

func (h *ZapHook) BeforeCall(_ *CallInfo) {}

func (h *ZapHook) AfterCall(info *CallInfo) {
	fields := []zap.Field{
		zap.String("op", string(info.Op)),
		zap.Duration("duration", info.Duration),
	}
	if info.Device != "" {
		fields = append(fields, zap.String("device", info.Device))
	}
	if info.Error != nil {
		fields = append(fields, zap.String("kind", string(KindOf(info.Error))), zap.Error(info.Error))
		h.logger.Error("openvino call failed", fields...)
		return
	}
	h.logger.Debug("openvino call completed", fields...)
}
