package audit

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Sink receives registration events. Implementations must not block the
// registration request for longer than a local write.
type Sink interface {
	Write(ctx context.Context, event Event) error
}

// Publisher fans registration events out to every configured sink. Auditing is
// observational: a failing sink never changes a registration outcome.
type Publisher struct {
	sinks  []Sink
	logger *slog.Logger
}

type Option func(*Publisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func WithSink(sink Sink) Option {
	return func(p *Publisher) {
		p.sinks = append(p.sinks, sink)
	}
}

func NewPublisher(opts ...Option) *Publisher {
	p := &Publisher{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit writes event to all sinks and returns the joined sink errors.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	var errs []error
	for _, sink := range p.sinks {
		if err := sink.Write(ctx, event); err != nil {
			p.logger.WarnContext(ctx, "audit sink write failed",
				"event_id", event.ID,
				"request_id", event.RequestID,
				"error", err,
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
