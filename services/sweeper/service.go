package sweeper

import (
	"time"

	"github.com/ViniciusLisboa07/shopping-cart/lib/mylog"
	"github.com/ViniciusLisboa07/shopping-cart/lib/mypublisher"
	"github.com/ViniciusLisboa07/shopping-cart/lib/myqueue"
	"github.com/ViniciusLisboa07/shopping-cart/lib/mystore"
	"github.com/ViniciusLisboa07/shopping-cart/lib/mytime"
	"github.com/ViniciusLisboa07/shopping-cart/services/cart"
)

const (
	// A cart untouched for this long gets marked abandoned.
	InactivityThreshold = 3 * time.Hour
	// A cart abandoned for this long gets destroyed.
	RemovalThreshold = 7 * 24 * time.Hour
)

type service struct {
	cartStore           mystore.Store[cart.Cart]
	sessionStore        mystore.Store[cart.SessionBinding]
	queue               myqueue.TaskQueuer
	publisher           mypublisher.Publisher
	nower               mytime.Nower
	logger              mylog.Logger
	inactivityThreshold time.Duration
	removalThreshold    time.Duration
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(cartStore mystore.Store[cart.Cart], sessionStore mystore.Store[cart.SessionBinding], queue myqueue.TaskQueuer, publisher mypublisher.Publisher, nower mytime.Nower) *service {
	return &service{
		cartStore:           cartStore,
		sessionStore:        sessionStore,
		queue:               queue,
		publisher:           publisher,
		nower:               nower,
		logger:              mylog.New("sweeper"),
		inactivityThreshold: InactivityThreshold,
		removalThreshold:    RemovalThreshold,
	}
}
