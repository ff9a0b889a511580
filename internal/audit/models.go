package audit

import (
	"context"
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"

	"regguard/pkg/requestcontext"
)

// EventType names the kind of registration event.
type EventType string

const (
	EventRegister      EventType = "register"
	EventRegisterError EventType = "register_error"
)

// Detail keys attached to registration events.
const (
	DetailRegisterMethod = "register_method"
	DetailEmail          = "email"
	DetailUsername       = "username"
	DetailClientBrowser  = "client_browser"
)

// Event is emitted once per registration attempt. Keep it transport-agnostic
// so sinks can fan out.
type Event struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	RequestID string            `json:"request_id,omitempty"`
	ClientIP  string            `json:"client_ip,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// Recorder accumulates detail annotations and the terminal error code for a
// single attempt. It is not shared between attempts.
type Recorder struct {
	event Event
}

// NewRecorder starts an event enriched from the request context.
func NewRecorder(ctx context.Context) *Recorder {
	r := &Recorder{event: Event{
		ID:        uuid.NewString(),
		Type:      EventRegister,
		Timestamp: requestcontext.Now(ctx),
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
		Details:   make(map[string]string),
	}}
	if ua := requestcontext.UserAgent(ctx); ua != "" {
		if name, _ := useragent.New(ua).Browser(); name != "" {
			r.Detail(DetailClientBrowser, name)
		}
	}
	return r
}

// Detail sets one annotation, overwriting a previous value for key.
func (r *Recorder) Detail(key, value string) {
	r.event.Details[key] = value
}

// Error marks the attempt as failed with code.
func (r *Recorder) Error(code string) {
	r.event.Type = EventRegisterError
	r.event.Error = code
}

// Event returns a snapshot of the recorded event.
func (r *Recorder) Event() Event {
	e := r.event
	e.Details = maps.Clone(r.event.Details)
	return e
}
