package cart

import (
	"context"

	"github.com/ViniciusLisboa07/shopping-cart/lib/myerrors"
	"github.com/ViniciusLisboa07/shopping-cart/lib/mylog"
	"github.com/ViniciusLisboa07/shopping-cart/lib/myresult"
	"github.com/ViniciusLisboa07/shopping-cart/services/cart/cartevents"
)

const minimumQuantity = 1

// addItem increments the quantity of the product's item, creating the item
// (and the cart) when missing. Pure increment: quantity must be >= 1.
func (s *service) addItem(c context.Context, sessionUID string, productUID string, quantity int) myresult.Result[Cart] {
	// Validate before touching the store
	if quantity < minimumQuantity {
		return myresult.Failure[Cart](newInvalidQuantityError(quantity))
	}

	_, found, err := s.catalog.FindProduct(c, productUID)
	if err != nil {
		return myresult.Failure[Cart](myerrors.NewInternalError(err))
	}
	if !found {
		return myresult.Failure[Cart](newProductNotFoundError(productUID))
	}

	var crt Cart
	err = s.cartStore.RunInTransaction(c, func(c context.Context) error {
		crt, err = s.resolveOrCreateCart(c, sessionUID)
		if err != nil {
			return err
		}

		idx := crt.itemIndex(productUID)
		if idx >= 0 {
			crt.Items[idx].Quantity += quantity
		} else {
			crt.Items = append(crt.Items, CartItem{ProductUID: productUID, Quantity: quantity})
		}

		return s.storeRecomputed(c, &crt)
	})
	if err != nil {
		return myresult.Failure[Cart](err)
	}

	s.logger.Log(c, crt.UID, mylog.SeverityInfo, "Added %d x product %s to cart %s", quantity, productUID, crt.UID)

	return myresult.Success(crt)
}

// setItemQuantity adds delta (possibly negative) to the item's current
// quantity. A result of zero or below removes the item instead of
// persisting a non-positive quantity.
func (s *service) setItemQuantity(c context.Context, sessionUID string, productUID string, delta int) myresult.Result[Cart] {
	if delta == 0 {
		return myresult.Failure[Cart](newInvalidDeltaError())
	}

	_, found, err := s.catalog.FindProduct(c, productUID)
	if err != nil {
		return myresult.Failure[Cart](myerrors.NewInternalError(err))
	}
	if !found {
		return myresult.Failure[Cart](newProductNotFoundError(productUID))
	}

	var crt Cart
	err = s.cartStore.RunInTransaction(c, func(c context.Context) error {
		var exists bool
		crt, exists, err = s.resolveCart(c, sessionUID)
		if err != nil {
			return err
		}
		if !exists {
			// a negative delta has nothing to decrement: do not create a
			// cart whose only content would be a no-op
			if delta < 0 {
				return newCartNotFoundError()
			}
			crt, err = s.createCart(c, sessionUID)
			if err != nil {
				return err
			}
		}

		idx := crt.itemIndex(productUID)
		currentQuantity := 0
		if idx >= 0 {
			currentQuantity = crt.Items[idx].Quantity
		}

		newQuantity := currentQuantity + delta
		switch {
		case newQuantity <= 0:
			if idx >= 0 {
				crt.removeItemAt(idx)
			}
		case idx >= 0:
			crt.Items[idx].Quantity = newQuantity
		default:
			crt.Items = append(crt.Items, CartItem{ProductUID: productUID, Quantity: newQuantity})
		}

		return s.storeRecomputed(c, &crt)
	})
	if err != nil {
		return myresult.Failure[Cart](err)
	}

	s.logger.Log(c, crt.UID, mylog.SeverityInfo, "Adjusted product %s by %d in cart %s", productUID, delta, crt.UID)

	return myresult.Success(crt)
}

// removeItem deletes the product's item from the cart. Error precedence:
// unknown product, then missing cart, then empty cart, then product not in
// cart.
func (s *service) removeItem(c context.Context, sessionUID string, productUID string) myresult.Result[Cart] {
	_, found, err := s.catalog.FindProduct(c, productUID)
	if err != nil {
		return myresult.Failure[Cart](myerrors.NewInternalError(err))
	}
	if !found {
		return myresult.Failure[Cart](newProductNotFoundError(productUID))
	}

	var crt Cart
	err = s.cartStore.RunInTransaction(c, func(c context.Context) error {
		var exists bool
		crt, exists, err = s.resolveCart(c, sessionUID)
		if err != nil {
			return err
		}
		if !exists {
			return newCartNotFoundError()
		}
		if crt.IsEmpty() {
			return newEmptyCartError()
		}

		idx := crt.itemIndex(productUID)
		if idx < 0 {
			return newProductNotInCartError(productUID)
		}
		crt.removeItemAt(idx)

		return s.storeRecomputed(c, &crt)
	})
	if err != nil {
		return myresult.Failure[Cart](err)
	}

	s.logger.Log(c, crt.UID, mylog.SeverityInfo, "Removed product %s from cart %s", productUID, crt.UID)

	return myresult.Success(crt)
}

// getCurrentCart is a pure read: a nil cart means the session has none.
func (s *service) getCurrentCart(c context.Context, sessionUID string) myresult.Result[*Cart] {
	crt, found, err := s.resolveCart(c, sessionUID)
	if err != nil {
		return myresult.Failure[*Cart](err)
	}
	if !found {
		return myresult.Success[*Cart](nil)
	}
	return myresult.Success(&crt)
}

// resolveCart follows the session binding to the live cart. A dangling
// binding (cart swept away) reports not-found rather than an error.
func (s *service) resolveCart(c context.Context, sessionUID string) (Cart, bool, error) {
	binding, found, err := s.sessionStore.Get(c, sessionUID)
	if err != nil {
		return Cart{}, false, myerrors.NewInternalError(err)
	}
	if !found {
		return Cart{}, false, nil
	}

	crt, found, err := s.cartStore.Get(c, binding.CartUID)
	if err != nil {
		return Cart{}, false, myerrors.NewInternalError(err)
	}

	return crt, found, nil
}

func (s *service) resolveOrCreateCart(c context.Context, sessionUID string) (Cart, error) {
	crt, found, err := s.resolveCart(c, sessionUID)
	if err != nil {
		return Cart{}, err
	}
	if found {
		return crt, nil
	}

	return s.createCart(c, sessionUID)
}

func (s *service) createCart(c context.Context, sessionUID string) (Cart, error) {
	now := s.nower.Now()
	crt := Cart{
		UID:               s.uuider.Create(),
		TotalPrice:        0,
		CreatedAt:         now,
		LastInteractionAt: now,
		Items:             []CartItem{},
	}

	err := s.cartStore.Put(c, crt.UID, crt)
	if err != nil {
		return Cart{}, myerrors.NewInternalError(err)
	}

	err = s.sessionStore.Put(c, sessionUID, SessionBinding{
		SessionUID: sessionUID,
		CartUID:    crt.UID,
		CreatedAt:  now,
	})
	if err != nil {
		return Cart{}, myerrors.NewInternalError(err)
	}

	err = s.publisher.Publish(c, cartevents.TopicName, cartevents.CartCreated{CartUID: crt.UID})
	if err != nil {
		return Cart{}, myerrors.NewInternalError(err)
	}

	s.logger.Log(c, crt.UID, mylog.SeverityInfo, "Created new cart %s for session %s", crt.UID, sessionUID)

	return crt, nil
}

// unbindSession detaches the session from its cart. The cart itself stays
// behind for the sweeper.
func (s *service) unbindSession(c context.Context, sessionUID string) error {
	err := s.sessionStore.Delete(c, sessionUID)
	if err != nil {
		return myerrors.NewInternalError(err)
	}
	return nil
}

// storeRecomputed re-prices every item against the catalog, derives the cart
// total, stamps the interaction time and persists the cart. Runs inside the
// mutation's transaction so a reader never sees a half-applied total.
func (s *service) storeRecomputed(c context.Context, crt *Cart) error {
	var total int64
	for i := range crt.Items {
		item := &crt.Items[i]

		product, found, err := s.catalog.FindProduct(c, item.ProductUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return newProductNotFoundError(item.ProductUID)
		}

		item.Name = product.Name
		item.UnitPrice = product.Price
		item.TotalPrice = product.Price * int64(item.Quantity)
		total += item.TotalPrice
	}
	crt.TotalPrice = total
	crt.LastInteractionAt = s.nower.Now()

	err := s.cartStore.Put(c, crt.UID, *crt)
	if err != nil {
		return myerrors.NewInternalError(err)
	}

	return nil
}
