package catalog

import (
	"context"
	"fmt"

	"github.com/ViniciusLisboa07/shopping-cart/lib/mylog"
	"github.com/ViniciusLisboa07/shopping-cart/lib/mystore"
)

type service struct {
	productStore mystore.Store[Product]
	logger       mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(productStore mystore.Store[Product]) *service {
	return &service{
		productStore: productStore,
		logger:       mylog.New("catalog"),
	}
}

// Seed makes sure the default assortment exists. Idempotent.
func (s *service) Seed(c context.Context) error {
	for _, p := range defaultProducts {
		_, exists, err := s.productStore.Get(c, p.UID)
		if err != nil {
			return fmt.Errorf("error checking product %s: %s", p.UID, err)
		}
		if exists {
			continue
		}
		err = s.productStore.Put(c, p.UID, p)
		if err != nil {
			return fmt.Errorf("error seeding product %s: %s", p.UID, err)
		}
	}
	return nil
}

func (s *service) FindProduct(c context.Context, productUID string) (Product, bool, error) {
	return s.productStore.Get(c, productUID)
}
