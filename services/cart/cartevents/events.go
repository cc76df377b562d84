package cartevents

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ViniciusLisboa07/shopping-cart/lib/myerrors"
	"github.com/ViniciusLisboa07/shopping-cart/lib/myevents"
)

const (
	TopicName         = "cart"
	cartCreatedName   = TopicName + ".created"
	cartAbandonedName = TopicName + ".abandoned"
	cartRemovedName   = TopicName + ".removed"
)

type CartEventService interface {
	Subscribe(c context.Context) error
	OnCartCreated(c context.Context, topic string, event CartCreated) error
	OnCartAbandoned(c context.Context, topic string, event CartAbandoned) error
	OnCartRemoved(c context.Context, topic string, event CartRemoved) error
}

func DispatchEvent(c context.Context, reader io.Reader, service CartEventService) error {
	envelope, err := myevents.ParseEventEnvelope(reader)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	switch envelope.EventTypeName {
	case cartCreatedName:
		{
			event := CartCreated{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnCartCreated(c, envelope.Topic, event)
		}
	case cartAbandonedName:
		{
			event := CartAbandoned{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnCartAbandoned(c, envelope.Topic, event)
		}
	case cartRemovedName:
		{
			event := CartRemoved{}
			err := json.Unmarshal([]byte(envelope.EventPayload), &event)
			if err != nil {
				return myerrors.NewInvalidInputError(err)
			}
			return service.OnCartRemoved(c, envelope.Topic, event)
		}
	default:
		return myerrors.NewNotImplementedError(fmt.Errorf("unknown event type %s", envelope.EventTypeName))
	}
}

type CartCreated struct {
	CartUID string
}

func (e CartCreated) GetEventTypeName() string {
	return cartCreatedName
}

func (e CartCreated) GetAggregateName() string {
	return e.CartUID
}

type CartAbandoned struct {
	CartUID string
}

func (e CartAbandoned) GetEventTypeName() string {
	return cartAbandonedName
}

func (e CartAbandoned) GetAggregateName() string {
	return e.CartUID
}

type CartRemoved struct {
	CartUID string
}

func (e CartRemoved) GetEventTypeName() string {
	return cartRemovedName
}

func (e CartRemoved) GetAggregateName() string {
	return e.CartUID
}
