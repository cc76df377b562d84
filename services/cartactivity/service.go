package cartactivity

import (
	"github.com/ViniciusLisboa07/shopping-cart/lib/mylog"
	"github.com/ViniciusLisboa07/shopping-cart/lib/mypubsub"
	"github.com/ViniciusLisboa07/shopping-cart/lib/mystore"
	"github.com/ViniciusLisboa07/shopping-cart/lib/mytime"
)

type service struct {
	activityStore mystore.Store[CartActivity]
	pubsub        mypubsub.PubSub
	nower         mytime.Nower
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(activityStore mystore.Store[CartActivity], pubsub mypubsub.PubSub, nower mytime.Nower) *service {
	return &service{
		activityStore: activityStore,
		pubsub:        pubsub,
		nower:         nower,
		logger:        mylog.New("cartactivity"),
	}
}
