package sweeper

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ViniciusLisboa07/shopping-cart/lib/mycontext"
	"github.com/ViniciusLisboa07/shopping-cart/lib/myerrors"
	"github.com/ViniciusLisboa07/shopping-cart/lib/myhttp"
	"github.com/ViniciusLisboa07/shopping-cart/lib/mylog"
	"github.com/ViniciusLisboa07/shopping-cart/lib/myqueue"
)

type SweepResponse struct {
	MarkedAbandoned int
	Removed         int
}

func (s *service) RegisterEndpoints(c context.Context, router *mux.Router) {
	// The cron scheduler calls the trigger; the actual work runs as a queued
	// task so the task queue's retry policy covers transient failures.
	router.HandleFunc("/api/sweep", s.sweepTriggerPage()).Methods("GET")
	router.HandleFunc("/api/sweep/run", s.sweepRunPage()).Methods("PUT")
}

func (s *service) sweepTriggerPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		taskUID := fmt.Sprintf("sweep-%d", s.nower.Now().Unix())
		err := s.queue.Enqueue(c, myqueue.Task{
			UID:            taskUID,
			WebhookURLPath: "/api/sweep/run",
			Payload:        []byte{},
		})
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInternalError(err))
			return
		}

		s.logger.Log(c, taskUID, mylog.SeverityInfo, "Enqueued sweep task %s", taskUID)

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully enqueued sweep",
		})
	}
}

func (s *service) sweepRunPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		asOf := s.nower.Now()
		marked, removed := s.sweep(c, asOf)

		errorWriter.Write(c, w, http.StatusOK, SweepResponse{
			MarkedAbandoned: marked,
			Removed:         removed,
		})
	}
}
