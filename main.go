package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/ViniciusLisboa07/shopping-cart/lib/mypublisher"
	"github.com/ViniciusLisboa07/shopping-cart/lib/mypubsub"
	"github.com/ViniciusLisboa07/shopping-cart/lib/myqueue"
	"github.com/ViniciusLisboa07/shopping-cart/lib/mystore"
	"github.com/ViniciusLisboa07/shopping-cart/lib/mytime"
	"github.com/ViniciusLisboa07/shopping-cart/lib/myuuid"
	"github.com/ViniciusLisboa07/shopping-cart/services/cart"
	"github.com/ViniciusLisboa07/shopping-cart/services/cartactivity"
	"github.com/ViniciusLisboa07/shopping-cart/services/catalog"
	"github.com/ViniciusLisboa07/shopping-cart/services/sweeper"
	"github.com/ViniciusLisboa07/shopping-cart/services/warmup"
)

func main() {
	c := context.Background()

	router := mux.NewRouter()

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating task queue: %s", err)
	}
	defer queueCleanup()

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}
	defer pubsubCleanup()

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower)
	if err != nil {
		log.Fatalf("Error creating event publisher: %s", err)
	}
	defer publisherCleanup()
	publisher.RegisterEndpoints(c, router)

	productStore, productStoreCleanup, err := mystore.New[catalog.Product](c)
	if err != nil {
		log.Fatalf("Error creating product store: %s", err)
	}
	defer productStoreCleanup()

	catalogService := catalog.NewService(productStore)
	err = catalogService.Seed(c)
	if err != nil {
		log.Fatalf("Error seeding product catalog: %s", err)
	}
	catalogService.RegisterEndpoints(c, router)

	cartStore, cartStoreCleanup, err := mystore.New[cart.Cart](c)
	if err != nil {
		log.Fatalf("Error creating cart store: %s", err)
	}
	defer cartStoreCleanup()

	sessionStore, sessionStoreCleanup, err := mystore.New[cart.SessionBinding](c)
	if err != nil {
		log.Fatalf("Error creating session store: %s", err)
	}
	defer sessionStoreCleanup()

	cartService := cart.NewService(cartStore, sessionStore, catalogService, publisher, nower, uuider)
	err = cartService.CreateTopics(c)
	if err != nil {
		log.Fatalf("Error creating cart topics: %s", err)
	}
	cartService.RegisterEndpoints(c, router)

	sweeperService := sweeper.NewService(cartStore, sessionStore, queue, publisher, nower)
	sweeperService.RegisterEndpoints(c, router)

	activityStore, activityStoreCleanup, err := mystore.New[cartactivity.CartActivity](c)
	if err != nil {
		log.Fatalf("Error creating cart-activity store: %s", err)
	}
	defer activityStoreCleanup()

	activityService := cartactivity.NewService(activityStore, pubsub, nower)
	err = activityService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error subscribing cart-activity service: %s", err)
	}

	warmupService := warmup.NewService(productStore)
	warmupService.RegisterEndpoints(c, router)

	startWebServerBlocking(router)
}

func startWebServerBlocking(router *mux.Router) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), router)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
