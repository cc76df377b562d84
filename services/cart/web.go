package cart

import (
	"context"
	"net/http"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/ViniciusLisboa07/shopping-cart/lib/mycontext"
	"github.com/ViniciusLisboa07/shopping-cart/lib/myerrors"
	"github.com/ViniciusLisboa07/shopping-cart/lib/myhttp"
	"github.com/ViniciusLisboa07/shopping-cart/lib/myresult"
)

const sessionCookieName = "shoppingSessionUID"

type addItemRequest struct {
	ProductUID string `form:"productUid"`
	Quantity   int    `form:"quantity"`
}

type adjustQuantityRequest struct {
	Delta int `form:"delta"`
}

func (s *service) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/cart", s.getCartPage()).Methods("GET")
	router.HandleFunc("/cart", s.clearCartPage()).Methods("DELETE")
	router.HandleFunc("/cart/items", s.addItemPage()).Methods("POST")
	router.HandleFunc("/cart/items/{productUID}/quantity", s.adjustItemQuantityPage()).Methods("PUT")
	router.HandleFunc("/cart/items/{productUID}", s.removeItemPage()).Methods("DELETE")
}

func (s *service) getCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		sessionUID := s.obtainSessionUID(w, r)

		result := s.getCurrentCart(c, sessionUID)
		if result.Failed() {
			errorWriter.WriteError(c, w, 1, result.MustError())
			return
		}

		errorWriter.Write(c, w, http.StatusOK, toCartResponse(result.MustValue()))
	}
}

func (s *service) addItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		sessionUID := s.obtainSessionUID(w, r)

		req := addItemRequest{}
		err := parseForm(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		s.writeResult(c, w, errorWriter, s.addItem(c, sessionUID, req.ProductUID, req.Quantity))
	}
}

func (s *service) adjustItemQuantityPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		sessionUID := s.obtainSessionUID(w, r)
		productUID := mux.Vars(r)["productUID"]

		req := adjustQuantityRequest{}
		err := parseForm(r, &req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(err))
			return
		}

		s.writeResult(c, w, errorWriter, s.setItemQuantity(c, sessionUID, productUID, req.Delta))
	}
}

func (s *service) removeItemPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		sessionUID := s.obtainSessionUID(w, r)
		productUID := mux.Vars(r)["productUID"]

		s.writeResult(c, w, errorWriter, s.removeItem(c, sessionUID, productUID))
	}
}

func (s *service) clearCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		sessionUID := s.obtainSessionUID(w, r)

		err := s.unbindSession(c, sessionUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, toCartResponse(nil))
	}
}

func (s *service) writeResult(c context.Context, w http.ResponseWriter, errorWriter myhttp.ResponseWriter, result myresult.Result[Cart]) {
	if result.Failed() {
		errorWriter.WriteError(c, w, 1, result.MustError())
		return
	}

	crt := result.MustValue()
	errorWriter.Write(c, w, http.StatusOK, toCartResponse(&crt))
}

func (s *service) obtainSessionUID(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	sessionUID := s.uuider.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionUID,
		Path:     "/",
		HttpOnly: true,
	})
	return sessionUID
}

func parseForm(r *http.Request, target any) error {
	err := r.ParseForm()
	if err != nil {
		return err
	}
	return formcodec.NewDecoder().Decode(target, r.Form)
}
