package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/ViniciusLisboa07/shopping-cart/lib/mystore"
)

func TestCatalogService(t *testing.T) {

	t.Run("List products", func(t *testing.T) {
		// setup
		_, router := setup(t)

		// when
		request, err := http.NewRequest(http.MethodGet, "/products", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Contains(t, response.Body.String(), `"id": "product_iphone_15"`)
		assert.Contains(t, response.Body.String(), `"unit_price": 999.99`)
	})

	t.Run("Get product details", func(t *testing.T) {
		// setup
		_, router := setup(t)

		// when
		request, err := http.NewRequest(http.MethodGet, "/products/product_samsung_galaxy", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 200, response.Code)
		assert.JSONEq(t, `{"id":"product_samsung_galaxy","name":"Samsung Galaxy","unit_price":799.99}`, response.Body.String())
	})

	t.Run("Get unknown product", func(t *testing.T) {
		// setup
		_, router := setup(t)

		// when
		request, err := http.NewRequest(http.MethodGet, "/products/product_does_not_exist", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 404, response.Code)
	})

	t.Run("Seed is idempotent", func(t *testing.T) {
		// setup
		c := context.TODO()
		productStore, _, err := mystore.NewInMemoryStore[Product](c)
		assert.NoError(t, err)
		catalogService := NewService(productStore)

		// when
		err = catalogService.Seed(c)
		assert.NoError(t, err)
		err = catalogService.Seed(c)
		assert.NoError(t, err)

		// then
		products, err := productStore.List(c)
		assert.NoError(t, err)
		assert.Len(t, products, len(defaultProducts))
	})
}

func setup(t *testing.T) (context.Context, *mux.Router) {
	c := context.TODO()

	productStore, _, err := mystore.NewInMemoryStore[Product](c)
	assert.NoError(t, err)

	catalogService := NewService(productStore)
	err = catalogService.Seed(c)
	assert.NoError(t, err)

	router := mux.NewRouter()
	catalogService.RegisterEndpoints(c, router)

	return c, router
}
