package action

import (
	"context"
	"errors"

	"github.com/klokku/planner/internal/event_bus"
	"github.com/klokku/planner/pkg/calendar"
	log "github.com/sirupsen/logrus"
)

type EventStore interface {
	Apply(ctx context.Context, req calendar.Request) (calendar.Result, error)
}

// Interceptor takes over persistence for every mutating widget action: the widget's
// own handling is always cancelled and the request is applied to the event store instead.
type Interceptor struct {
	store EventStore
}

func NewInterceptor(store EventStore) *Interceptor {
	return &Interceptor{store: store}
}

func (i *Interceptor) Handle(ctx context.Context, req *Request) Outcome {
	if !req.RequestType.Mutating() {
		log.Tracef("Ignoring widget action %q", req.RequestType)
		req.Outcome = Ignored
		return req.Outcome
	}

	req.Cancel = true
	res, err := i.store.Apply(ctx, calendar.Request{
		Kind:  req.RequestType.storeKind(),
		Event: req.Data,
		Id:    req.Data.Id,
	})
	if err != nil {
		if errors.Is(err, calendar.ErrMissingEventType) {
			log.Debugf("Rejected %s: %v", req.RequestType, err)
			req.Alert = MissingEventTypeAlert
		} else {
			log.Errorf("failed to apply %s: %v", req.RequestType, err)
			req.Alert = err.Error()
		}
		req.Outcome = Rejected
		return req.Outcome
	}

	req.Outcome = Applied
	req.Matched = res.Matched
	if res.Matched {
		result := res.Event
		req.Result = &result
	}
	return req.Outcome
}

// Subscribe attaches the interceptor to action-begin notifications on bus.
func (i *Interceptor) Subscribe(bus *event_bus.EventBus) (unsubscribe func()) {
	return event_bus.SubscribeTyped[*Request](bus, event_bus.ActionBegin, func(e event_bus.EventT[*Request]) error {
		i.Handle(e.Context(), e.Data)
		return nil
	})
}
