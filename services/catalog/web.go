package catalog

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/gorilla/mux"

	"github.com/ViniciusLisboa07/shopping-cart/lib/mycontext"
	"github.com/ViniciusLisboa07/shopping-cart/lib/myerrors"
	"github.com/ViniciusLisboa07/shopping-cart/lib/myhttp"
	"github.com/ViniciusLisboa07/shopping-cart/lib/mylog"
)

type ProductResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
}

func (s *service) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/products", s.productListPage()).Methods("GET")
	router.HandleFunc("/products/{productUID}", s.productDetailsPage()).Methods("GET")
}

func (s *service) productListPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		s.logger.Log(c, "", mylog.SeverityInfo, "Fetch all products")

		products, err := s.productStore.List(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInternalError(err))
			return
		}

		sort.Slice(products, func(i, j int) bool {
			return products[i].UID < products[j].UID
		})

		resp := make([]ProductResponse, 0, len(products))
		for _, p := range products {
			resp = append(resp, toProductResponse(p))
		}

		errorWriter.Write(c, w, http.StatusOK, resp)
	}
}

func (s *service) productDetailsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		productUID := mux.Vars(r)["productUID"]

		product, found, err := s.productStore.Get(c, productUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInternalError(err))
			return
		}
		if !found {
			errorWriter.WriteError(c, w, 2, myerrors.NewNotFoundError(fmt.Errorf("product with uid %s not found", productUID)))
			return
		}

		errorWriter.Write(c, w, http.StatusOK, toProductResponse(product))
	}
}

func toProductResponse(p Product) ProductResponse {
	return ProductResponse{
		ID:        p.UID,
		Name:      p.Name,
		UnitPrice: p.PriceInUnits(),
	}
}
