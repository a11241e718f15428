package audit

import "go.uber.org/zap"

// ConsoleShipper logs a one-line human summary of each event via zap,
// mirroring the teacher's LogWriter.Write.
type ConsoleShipper struct {
	logger *zap.Logger
}

// NewConsoleShipper wraps logger.
func NewConsoleShipper(logger *zap.Logger) *ConsoleShipper {
	return &ConsoleShipper{logger: logger}
}

func (s *ConsoleShipper) Ship(e Event) error {
	s.logger.Info("audit_event",
		zap.String("event_id", e.EventID),
		zap.String("session_id", e.SessionID),
		zap.String("channel", e.Channel),
		zap.String("tool_name", e.ToolName),
		zap.String("outcome", string(e.Outcome)),
		zap.String("severity", string(e.Severity)),
		zap.String("user_id", e.UserID),
		zap.Int64("duration_ms", e.DurationMs),
	)
	return nil
}

func (s *ConsoleShipper) Flush() error { return nil }
func (s *ConsoleShipper) Close() error { return nil }
