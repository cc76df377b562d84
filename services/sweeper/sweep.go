package sweeper

import (
	"context"
	"time"

	"github.com/ViniciusLisboa07/shopping-cart/lib/mylog"
	"github.com/ViniciusLisboa07/shopping-cart/lib/mystore"
	"github.com/ViniciusLisboa07/shopping-cart/services/cart/cartevents"
)

// sweep runs the two lifecycle phases in order. A cart only becomes eligible
// for purging through a mark done by an earlier pass, so a cart being
// interacted with right now is never destroyed in the same pass.
func (s *service) sweep(c context.Context, asOf time.Time) (int, int) {
	marked := s.markAbandoned(c, asOf)
	removed := s.purge(c, asOf)
	return marked, removed
}

// markAbandoned stamps AbandonedAt on every cart that has been inactive for
// at least the inactivity threshold. Best effort: a failing cart is logged
// and skipped, never aborting the batch.
func (s *service) markAbandoned(c context.Context, asOf time.Time) int {
	cutoff := asOf.Add(-s.inactivityThreshold)

	carts, err := s.cartStore.Query(c, []mystore.Filter{
		{Field: "AbandonedAt", Compare: "=", Value: nil},
		{Field: "LastInteractionAt", Compare: "<=", Value: cutoff},
	}, "LastInteractionAt")
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityError, "Error scanning for inactive carts: %s", err)
		return 0
	}

	marked := 0
	for _, crt := range carts {
		didMark, err := s.markOne(c, crt.UID, asOf, cutoff)
		if err != nil {
			s.logger.Log(c, crt.UID, mylog.SeverityError, "Error marking cart %s as abandoned: %s", crt.UID, err)
			continue
		}
		if didMark {
			s.logger.Log(c, crt.UID, mylog.SeverityInfo, "Cart %s marked as abandoned", crt.UID)
			marked++
		}
	}

	s.logger.Log(c, "", mylog.SeverityInfo, "Marked %d carts as abandoned", marked)

	return marked
}

func (s *service) markOne(c context.Context, cartUID string, asOf time.Time, cutoff time.Time) (bool, error) {
	didMark := false
	err := s.cartStore.RunInTransaction(c, func(c context.Context) error {
		crt, found, err := s.cartStore.Get(c, cartUID)
		if err != nil {
			return err
		}
		// re-check inside the transaction: the cart may have been touched
		// or marked since the scan
		if !found || crt.IsAbandoned() || crt.LastInteractionAt.After(cutoff) {
			return nil
		}

		abandonedAt := asOf
		crt.AbandonedAt = &abandonedAt
		err = s.cartStore.Put(c, crt.UID, crt)
		if err != nil {
			return err
		}

		err = s.publisher.Publish(c, cartevents.TopicName, cartevents.CartAbandoned{CartUID: crt.UID})
		if err != nil {
			return err
		}

		didMark = true
		return nil
	})
	return didMark, err
}

// purge destroys carts whose abandonment is older than the removal
// threshold. Items live inside the cart document, so deleting the cart
// cascades to them.
func (s *service) purge(c context.Context, asOf time.Time) int {
	cutoff := asOf.Add(-s.removalThreshold)

	carts, err := s.cartStore.Query(c, []mystore.Filter{
		{Field: "AbandonedAt", Compare: "<=", Value: cutoff},
	}, "AbandonedAt")
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityError, "Error scanning for old abandoned carts: %s", err)
		return 0
	}

	removed := 0
	for _, crt := range carts {
		didRemove, err := s.purgeOne(c, crt.UID, cutoff)
		if err != nil {
			s.logger.Log(c, crt.UID, mylog.SeverityError, "Error removing abandoned cart %s: %s", crt.UID, err)
			continue
		}
		if didRemove {
			s.logger.Log(c, crt.UID, mylog.SeverityInfo, "Removed abandoned cart %s", crt.UID)
			removed++
		}
	}

	s.logger.Log(c, "", mylog.SeverityInfo, "Removed %d old abandoned carts", removed)

	return removed
}

func (s *service) purgeOne(c context.Context, cartUID string, cutoff time.Time) (bool, error) {
	didRemove := false
	err := s.cartStore.RunInTransaction(c, func(c context.Context) error {
		crt, found, err := s.cartStore.Get(c, cartUID)
		if err != nil {
			return err
		}
		if !found || !crt.IsAbandoned() || crt.AbandonedAt.After(cutoff) {
			return nil
		}

		err = s.cartStore.Delete(c, crt.UID)
		if err != nil {
			return err
		}

		err = s.unbindSessions(c, crt.UID)
		if err != nil {
			return err
		}

		err = s.publisher.Publish(c, cartevents.TopicName, cartevents.CartRemoved{CartUID: crt.UID})
		if err != nil {
			return err
		}

		didRemove = true
		return nil
	})
	return didRemove, err
}

// unbindSessions removes the bindings that still point at the destroyed
// cart, so the binding store does not accumulate dangling entries.
func (s *service) unbindSessions(c context.Context, cartUID string) error {
	bindings, err := s.sessionStore.Query(c, []mystore.Filter{
		{Field: "CartUID", Compare: "=", Value: cartUID},
	}, "")
	if err != nil {
		return err
	}

	for _, binding := range bindings {
		err = s.sessionStore.Delete(c, binding.SessionUID)
		if err != nil {
			return err
		}
	}

	return nil
}
