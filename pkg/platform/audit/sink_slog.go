package audit

import (
	"context"
	"log/slog"
)

// SlogSink writes audit events to structured logs. The default sink: log
// shipping carries them to the audit pipeline.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink constructs a sink over the given logger.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Publish(ctx context.Context, event Event) error {
	s.logger.InfoContext(ctx, "audit",
		"category", string(event.Category),
		"action", string(event.Action),
		"journey_id", event.JourneyID,
		"request_id", event.RequestID,
		"caller_id", event.CallerID,
		"client_ip", event.ClientIP,
		"device", event.Device,
		"detail", event.Detail,
	)
	return nil
}
