package cartactivity

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ViniciusLisboa07/shopping-cart/lib/mycontext"
	"github.com/ViniciusLisboa07/shopping-cart/lib/myerrors"
	"github.com/ViniciusLisboa07/shopping-cart/lib/myhttp"
	"github.com/ViniciusLisboa07/shopping-cart/services/cart/cartevents"
)

func (s *service) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/cart/event", s.eventPage()).Methods("POST")
	router.HandleFunc("/api/cart/activity/{cartUID}", s.activityPage()).Methods("GET")

	return s.Subscribe(c)
}

func (s *service) eventPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		err := cartevents.DispatchEvent(c, r.Body, s)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed event",
		})
	}
}

func (s *service) activityPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		cartUID := mux.Vars(r)["cartUID"]

		activity, found, err := s.activityStore.Get(c, cartUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInternalError(err))
			return
		}
		if !found {
			errorWriter.WriteError(c, w, 2, myerrors.NewNotFoundError(fmt.Errorf("no activity for cart with uid %s", cartUID)))
			return
		}

		errorWriter.Write(c, w, http.StatusOK, activity)
	}
}
