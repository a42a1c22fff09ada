// Package notify is the activity side channel: every store operation and
// every connectivity check is reported to an append-only remote sink.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Level is the severity of an activity record.
type Level string

const (
	Info    Level = "INFO"
	Warning Level = "WARNING"
	Error   Level = "ERROR"
)

// Notifier is a write-only sink for activity records.
type Notifier interface {
	Notify(ctx context.Context, level Level, message string) error

	// Ping checks connectivity to the sink.
	Ping(ctx context.Context) error
}

// Type selects a sink implementation.
type Type string

const (
	CloudWatchSink Type = "cloudwatch"
	AMQPSink       Type = "amqp"
	StderrSink     Type = "stderr"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case CloudWatchSink, AMQPSink, StderrSink:
		return true
	default:
		return false
	}
}

// BestEffort wraps a sink so that notification failures never abort the
// operation being reported: errors are logged locally and swallowed.
type BestEffort struct {
	sink   Notifier
	logger *slog.Logger
}

func NewBestEffort(sink Notifier, logger *slog.Logger) *BestEffort {
	if logger == nil {
		logger = slog.Default()
	}
	return &BestEffort{sink: sink, logger: logger}
}

// Notify forwards to the underlying sink, reporting failures only to the
// local diagnostic log.
func (b *BestEffort) Notify(ctx context.Context, level Level, message string) {
	if b.sink == nil {
		return
	}
	if err := b.sink.Notify(ctx, level, message); err != nil {
		b.logger.Warn("Activity notification failed",
			"level", string(level), "message", message, "error", err)
	}
}

// Recorder is an in-memory sink for tests.
type Recorder struct {
	mu      sync.Mutex
	Records []Record

	// Err, when set, is returned from every Notify to simulate sink failure.
	Err error
}

type Record struct {
	Level   Level
	Message string
}

func (r *Recorder) Notify(_ context.Context, level Level, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Records = append(r.Records, Record{Level: level, Message: message})
	return r.Err
}

func (r *Recorder) Ping(_ context.Context) error {
	return r.Err
}

// Stderr is a local sink for offline runs: records go to the diagnostic
// log instead of a remote service.
type Stderr struct {
	logger *slog.Logger
}

func NewStderr(logger *slog.Logger) *Stderr {
	if logger == nil {
		logger = slog.Default()
	}
	return &Stderr{logger: logger}
}

func (s *Stderr) Notify(_ context.Context, level Level, message string) error {
	switch level {
	case Error:
		s.logger.Error(message, "activity", true)
	case Warning:
		s.logger.Warn(message, "activity", true)
	default:
		s.logger.Info(message, "activity", true)
	}
	return nil
}

func (s *Stderr) Ping(_ context.Context) error {
	return nil
}

var _ Notifier = (*Recorder)(nil)
var _ Notifier = (*Stderr)(nil)

// FormatRecord renders an activity line the way the remote stream stores
// it: "[LEVEL] <timestamp> - <message>".
func FormatRecord(level Level, timestamp, message string) string {
	return fmt.Sprintf("[%s] %s - %s", level, timestamp, message)
}
