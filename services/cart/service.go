package cart

import (
	"context"

	"github.com/ViniciusLisboa07/shopping-cart/lib/mylog"
	"github.com/ViniciusLisboa07/shopping-cart/lib/mypublisher"
	"github.com/ViniciusLisboa07/shopping-cart/lib/mystore"
	"github.com/ViniciusLisboa07/shopping-cart/lib/mytime"
	"github.com/ViniciusLisboa07/shopping-cart/lib/myuuid"
	"github.com/ViniciusLisboa07/shopping-cart/services/cart/cartevents"
	"github.com/ViniciusLisboa07/shopping-cart/services/catalog"
)

// ProductCatalog is the read-only collaborator that prices cart items.
//
//go:generate mockgen -source=service.go -package cart -destination catalog_mock.go ProductCatalog
type ProductCatalog interface {
	FindProduct(c context.Context, productUID string) (catalog.Product, bool, error)
}

type service struct {
	cartStore    mystore.Store[Cart]
	sessionStore mystore.Store[SessionBinding]
	catalog      ProductCatalog
	publisher    mypublisher.Publisher
	nower        mytime.Nower
	uuider       myuuid.UUIDer
	logger       mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(cartStore mystore.Store[Cart], sessionStore mystore.Store[SessionBinding], productCatalog ProductCatalog, publisher mypublisher.Publisher, nower mytime.Nower, uuider myuuid.UUIDer) *service {
	return &service{
		cartStore:    cartStore,
		sessionStore: sessionStore,
		catalog:      productCatalog,
		publisher:    publisher,
		nower:        nower,
		uuider:       uuider,
		logger:       mylog.New("cart"),
	}
}

func (s *service) CreateTopics(c context.Context) error {
	return s.publisher.CreateTopic(c, cartevents.TopicName)
}
