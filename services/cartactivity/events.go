package cartactivity

import (
	"context"
	"fmt"

	"github.com/ViniciusLisboa07/shopping-cart/lib/myerrors"
	"github.com/ViniciusLisboa07/shopping-cart/lib/myhttp"
	"github.com/ViniciusLisboa07/shopping-cart/lib/mylog"
	"github.com/ViniciusLisboa07/shopping-cart/services/cart/cartevents"
)

func (s *service) Subscribe(c context.Context) error {
	err := s.pubsub.Subscribe(c, cartevents.TopicName, myhttp.GuessHostnameWithScheme()+"/api/cart/event")
	if err != nil {
		return fmt.Errorf("error subscribing to topic %s: %s", cartevents.TopicName, err)
	}

	return nil
}

func (s *service) OnCartCreated(c context.Context, topic string, event cartevents.CartCreated) error {
	return s.applyStatus(c, event.CartUID, StatusActive)
}

func (s *service) OnCartAbandoned(c context.Context, topic string, event cartevents.CartAbandoned) error {
	return s.applyStatus(c, event.CartUID, StatusAbandoned)
}

func (s *service) OnCartRemoved(c context.Context, topic string, event cartevents.CartRemoved) error {
	return s.applyStatus(c, event.CartUID, StatusRemoved)
}

func (s *service) applyStatus(c context.Context, cartUID string, status string) error {
	err := s.activityStore.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent: the push subscription delivers at least once
		activity, found, err := s.activityStore.Get(c, cartUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if found && activity.Status == status {
			return nil
		}

		err = s.activityStore.Put(c, cartUID, CartActivity{
			CartUID:     cartUID,
			Status:      status,
			LastEventAt: s.nower.Now(),
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Log(c, cartUID, mylog.SeverityInfo, "Cart %s is now %s", cartUID, status)

	return nil
}
