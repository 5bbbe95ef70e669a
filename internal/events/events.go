// Package events publishes plan notifications over NATS so other clients
// can refresh when a plan changes.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/abushaidislam/study-guide/internal/service"
	"github.com/nats-io/nats.go"
)

const DefaultSubject = "studyflow.plan.rebuilt"

// PlanRebuilt is the JSON payload of a plan notification.
type PlanRebuilt struct {
	Day         string    `json:"day"`
	DidUpdate   bool      `json:"didUpdate"`
	HadMatches  bool      `json:"hadMatches"`
	FocusLabel  string    `json:"focusLabel,omitempty"`
	BlockCount  int       `json:"blockCount"`
	WindowStart time.Time `json:"windowStart"`
	WindowEnd   time.Time `json:"windowEnd"`
	OccurredAt  time.Time `json:"occurredAt"`
}

type Publisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// NATSPublisher publishes on a core NATS connection.
type NATSPublisher struct {
	nc *nats.Conn
}

// Connect dials url. The connection retries in the background after the
// first successful connect.
func Connect(url string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("studyflow"),
		nats.Timeout(2*time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats %s: %w", url, err)
	}
	return &NATSPublisher{nc: nc}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context cancelled before publish: %w", err)
	}
	return p.nc.Publish(subject, data)
}

// Close flushes pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	_ = p.nc.FlushTimeout(time.Second)
	p.nc.Close()
}

// PlanObserver turns successful rebuild-plan events into PlanRebuilt
// messages. Publish errors are logged and never reach the caller.
type PlanObserver struct {
	pub     Publisher
	subject string
	logger  *slog.Logger
	now     func() time.Time
}

func NewPlanObserver(pub Publisher, subject string, logger *slog.Logger) *PlanObserver {
	if subject == "" {
		subject = DefaultSubject
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanObserver{pub: pub, subject: subject, logger: logger, now: time.Now}
}

func (o *PlanObserver) ObserveUseCase(ctx context.Context, ev service.UseCaseEvent) {
	if ev.Name != service.UseCaseRebuildPlan || !ev.Success {
		return
	}
	data, err := json.Marshal(planRebuiltFrom(ev, o.now().UTC()))
	if err != nil {
		o.logger.WarnContext(ctx, "encoding plan event", "error", err)
		return
	}
	if err := o.pub.Publish(ctx, o.subject, data); err != nil {
		o.logger.WarnContext(ctx, "publishing plan event", "subject", o.subject, "error", err)
	}
}

func planRebuiltFrom(ev service.UseCaseEvent, at time.Time) PlanRebuilt {
	msg := PlanRebuilt{OccurredAt: at}
	msg.Day, _ = ev.Fields[service.FieldDay].(string)
	msg.DidUpdate, _ = ev.Fields[service.FieldDidUpdate].(bool)
	msg.HadMatches, _ = ev.Fields[service.FieldHadMatches].(bool)
	msg.FocusLabel, _ = ev.Fields[service.FieldFocusLabel].(string)
	msg.BlockCount, _ = ev.Fields[service.FieldBlockCount].(int)
	msg.WindowStart, _ = ev.Fields[service.FieldWindowStart].(time.Time)
	msg.WindowEnd, _ = ev.Fields[service.FieldWindowEnd].(time.Time)
	return msg
}
