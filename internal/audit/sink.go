package audit

import (
	"context"
	"encoding/json"
	"errors"
	"log"
)

// LogSink writes audit entries as JSON lines to a logger.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink constructs a log-backed Logger. A nil logger yields a nil Logger,
// which callers treat as auditing disabled.
func NewLogSink(logger *log.Logger) Logger {
	if logger == nil {
		return nil
	}
	return &LogSink{logger: logger}
}

// Log writes an audit entry.
func (s *LogSink) Log(ctx context.Context, entry Entry) error {
	if s == nil || s.logger == nil {
		return errors.New("audit sink: nil logger")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	line, err := json.Marshal(complete(entry))
	if err != nil {
		return err
	}
	s.logger.Printf("audit %s", line)
	return nil
}
