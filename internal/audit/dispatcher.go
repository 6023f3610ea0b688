package audit

import (
	"go.uber.org/zap"

	"github.com/google/uuid"
)

type Event struct {
	UserID   *uuid.UUID
	Action   string
	Entity   string
	EntityID *uuid.UUID
	Metadata any
}

// Sink receives the events the dispatcher drains off its queue.
type Sink interface {
	Log(userID *uuid.UUID, action, entity string, entityID *uuid.UUID, metadata any) error
}

type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event
}

func NewDispatcher(sink Sink, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.sink.Log(
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Warn("audit write failed", zap.Error(err))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// full queue never blocks the request path; the event is dropped
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}
