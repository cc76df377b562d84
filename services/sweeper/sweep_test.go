package sweeper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/ViniciusLisboa07/shopping-cart/lib/mypublisher"
	"github.com/ViniciusLisboa07/shopping-cart/lib/myqueue"
	"github.com/ViniciusLisboa07/shopping-cart/lib/mystore"
	"github.com/ViniciusLisboa07/shopping-cart/lib/mytime"
	"github.com/ViniciusLisboa07/shopping-cart/services/cart"
	"github.com/ViniciusLisboa07/shopping-cart/services/cart/cartevents"
)

func TestSweeper(t *testing.T) {

	t.Run("Mark carts inactive for the threshold or longer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, cartStore, _, _, publisher, _, sweeperService := setup(t, ctrl)
		asOf := mytime.ExampleTime

		// given: one cart exactly at the threshold, one far beyond, one just inside
		givenCart(t, ctx, cartStore, "cart-at-threshold", asOf.Add(-InactivityThreshold), nil)
		givenCart(t, ctx, cartStore, "cart-long-idle", asOf.Add(-5*time.Hour), nil)
		givenCart(t, ctx, cartStore, "cart-still-active", asOf.Add(-InactivityThreshold+time.Second), nil)

		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, cartevents.CartAbandoned{CartUID: "cart-at-threshold"}).Return(nil)
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, cartevents.CartAbandoned{CartUID: "cart-long-idle"}).Return(nil)

		// when
		marked, removed := sweeperService.sweep(ctx, asOf)

		// then
		assert.Equal(t, 2, marked)
		assert.Equal(t, 0, removed)

		crt, _, _ := cartStore.Get(ctx, "cart-at-threshold")
		assert.True(t, crt.IsAbandoned())
		assert.Equal(t, asOf, *crt.AbandonedAt)

		crt, _, _ = cartStore.Get(ctx, "cart-still-active")
		assert.False(t, crt.IsAbandoned())
	})

	t.Run("Marking is idempotent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, cartStore, _, _, publisher, _, sweeperService := setup(t, ctrl)
		asOf := mytime.ExampleTime

		// given
		givenCart(t, ctx, cartStore, "cart-long-idle", asOf.Add(-5*time.Hour), nil)

		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, cartevents.CartAbandoned{CartUID: "cart-long-idle"}).Return(nil).Times(1)

		// when: the same pass runs twice
		marked, _ := sweeperService.sweep(ctx, asOf)
		assert.Equal(t, 1, marked)
		marked, _ = sweeperService.sweep(ctx, asOf)

		// then: the second pass finds nothing to do
		assert.Equal(t, 0, marked)
	})

	t.Run("Purge carts abandoned for the threshold or longer", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, cartStore, _, _, publisher, _, sweeperService := setup(t, ctrl)
		asOf := mytime.ExampleTime

		oldAbandonment := asOf.Add(-RemovalThreshold)
		recentAbandonment := asOf.Add(-RemovalThreshold + time.Second)

		// given
		givenCart(t, ctx, cartStore, "cart-to-purge", asOf.Add(-30*24*time.Hour), &oldAbandonment)
		givenCart(t, ctx, cartStore, "cart-recently-abandoned", asOf.Add(-8*24*time.Hour), &recentAbandonment)

		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, cartevents.CartRemoved{CartUID: "cart-to-purge"}).Return(nil)

		// when
		marked, removed := sweeperService.sweep(ctx, asOf)

		// then
		assert.Equal(t, 0, marked)
		assert.Equal(t, 1, removed)

		_, exists, err := cartStore.Get(ctx, "cart-to-purge")
		assert.NoError(t, err)
		assert.False(t, exists)

		_, exists, _ = cartStore.Get(ctx, "cart-recently-abandoned")
		assert.True(t, exists)
	})

	t.Run("Purging a cart removes its session binding", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, cartStore, sessionStore, _, publisher, _, sweeperService := setup(t, ctrl)
		asOf := mytime.ExampleTime

		oldAbandonment := asOf.Add(-8 * 24 * time.Hour)
		recentAbandonment := asOf.Add(-time.Hour)

		// given: one doomed cart and one that stays, each bound to a session
		givenCart(t, ctx, cartStore, "cart-to-purge", oldAbandonment, &oldAbandonment)
		givenCart(t, ctx, cartStore, "cart-that-stays", recentAbandonment, &recentAbandonment)
		givenBinding(t, ctx, sessionStore, "session-1", "cart-to-purge")
		givenBinding(t, ctx, sessionStore, "session-2", "cart-that-stays")

		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, cartevents.CartRemoved{CartUID: "cart-to-purge"}).Return(nil)

		// when
		_, removed := sweeperService.sweep(ctx, asOf)

		// then
		assert.Equal(t, 1, removed)

		_, exists, err := sessionStore.Get(ctx, "session-1")
		assert.NoError(t, err)
		assert.False(t, exists)

		_, exists, _ = sessionStore.Get(ctx, "session-2")
		assert.True(t, exists)
	})

	t.Run("Cart marked in this pass is not purged in the same pass", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, cartStore, _, _, publisher, _, sweeperService := setup(t, ctrl)
		asOf := mytime.ExampleTime

		// given: untouched for ages but never marked before
		givenCart(t, ctx, cartStore, "cart-ancient", asOf.Add(-365*24*time.Hour), nil)

		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, cartevents.CartAbandoned{CartUID: "cart-ancient"}).Return(nil)

		// when
		marked, removed := sweeperService.sweep(ctx, asOf)

		// then: marked now, destruction starts its own clock
		assert.Equal(t, 1, marked)
		assert.Equal(t, 0, removed)

		crt, exists, _ := cartStore.Get(ctx, "cart-ancient")
		assert.True(t, exists)
		assert.Equal(t, asOf, *crt.AbandonedAt)
	})

	t.Run("A failing cart does not abort the batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, cartStore, _, _, publisher, _, sweeperService := setup(t, ctrl)
		asOf := mytime.ExampleTime

		// given
		givenCart(t, ctx, cartStore, "cart-a", asOf.Add(-4*time.Hour), nil)
		givenCart(t, ctx, cartStore, "cart-b", asOf.Add(-5*time.Hour), nil)

		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, cartevents.CartAbandoned{CartUID: "cart-a"}).Return(assert.AnError)
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, cartevents.CartAbandoned{CartUID: "cart-b"}).Return(nil)

		// when
		marked, _ := sweeperService.sweep(ctx, asOf)

		// then: the failed cart is not counted, the other one still went through
		assert.Equal(t, 1, marked)

		crt, _, _ := cartStore.Get(ctx, "cart-b")
		assert.True(t, crt.IsAbandoned())
	})

	t.Run("Trigger enqueues the sweep task", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, _, _, queue, _, nower, sweeperService := setup(t, ctrl)
		router := mux.NewRouter()
		sweeperService.RegisterEndpoints(context.TODO(), router)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		queue.EXPECT().Enqueue(gomock.Any(), myqueue.Task{
			UID:            "sweep-1677542339",
			WebhookURLPath: "/api/sweep/run",
			Payload:        []byte{},
		}).Return(nil)

		// when
		request, err := http.NewRequest(http.MethodGet, "/api/sweep", strings.NewReader(""))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
	})

	t.Run("Queued task runs the sweep", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, cartStore, _, _, publisher, nower, sweeperService := setup(t, ctrl)
		router := mux.NewRouter()
		sweeperService.RegisterEndpoints(ctx, router)
		asOf := mytime.ExampleTime

		// given
		givenCart(t, ctx, cartStore, "cart-long-idle", asOf.Add(-5*time.Hour), nil)

		nower.EXPECT().Now().Return(asOf)
		publisher.EXPECT().Publish(gomock.Any(), cartevents.TopicName, cartevents.CartAbandoned{CartUID: "cart-long-idle"}).Return(nil)

		// when
		request, err := http.NewRequest(http.MethodPut, "/api/sweep/run", strings.NewReader(""))
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.JSONEq(t, `{"MarkedAbandoned":1,"Removed":0}`, response.Body.String())
	})
}

func givenBinding(t *testing.T, ctx context.Context, sessionStore mystore.Store[cart.SessionBinding], sessionUID string, cartUID string) {
	err := sessionStore.Put(ctx, sessionUID, cart.SessionBinding{
		SessionUID: sessionUID,
		CartUID:    cartUID,
		CreatedAt:  mytime.ExampleTime,
	})
	assert.NoError(t, err)
}

func givenCart(t *testing.T, ctx context.Context, cartStore mystore.Store[cart.Cart], uid string, lastInteractionAt time.Time, abandonedAt *time.Time) {
	err := cartStore.Put(ctx, uid, cart.Cart{
		UID:               uid,
		CreatedAt:         lastInteractionAt,
		LastInteractionAt: lastInteractionAt,
		AbandonedAt:       abandonedAt,
		Items:             []cart.CartItem{},
	})
	assert.NoError(t, err)
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, mystore.Store[cart.Cart], mystore.Store[cart.SessionBinding], *myqueue.MockTaskQueuer, *mypublisher.MockPublisher, *mytime.MockNower, *service) {
	c := context.TODO()

	cartStore, _, err := mystore.NewInMemoryStore[cart.Cart](c)
	assert.NoError(t, err)
	sessionStore, _, err := mystore.NewInMemoryStore[cart.SessionBinding](c)
	assert.NoError(t, err)

	queue := myqueue.NewMockTaskQueuer(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)
	nower := mytime.NewMockNower(ctrl)

	sweeperService := NewService(cartStore, sessionStore, queue, publisher, nower)

	return c, cartStore, sessionStore, queue, publisher, nower, sweeperService
}
