package notify

import (
	"context"
	"errors"
	"log"
)

var ErrDeliveryFailed = errors.New("notification delivery failed")

// Sink delivers one message. An empty to means the operations channel.
type Sink interface {
	Notify(ctx context.Context, to string, subject string, text string) error
}

// LogSink writes messages to a logger. It stands in for SMTP when no relay is configured.
type LogSink struct {
	logger *log.Logger
}

func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSink{logger: logger}
}

func (sink *LogSink) Notify(_ context.Context, to string, subject string, text string) error {
	sink.logger.Printf("notify: to=%q subject=%q text=%q", to, subject, text)
	return nil
}
