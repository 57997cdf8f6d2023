package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/prodavnica/storefront/internal/cart"
	"github.com/prodavnica/storefront/internal/catalog"
	"github.com/prodavnica/storefront/internal/config"
	"github.com/prodavnica/storefront/internal/events"
	httpserver "github.com/prodavnica/storefront/internal/http"
	"github.com/prodavnica/storefront/internal/order"
)

func main() {
	cfg := config.Load()

	logger := log.New(os.Stdout, "[storefront] ", log.LstdFlags|log.Lshortfile)

	ctx := context.Background()

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID})
	if err != nil {
		logger.Fatalf("init firebase app: %v", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		logger.Fatalf("init firestore: %v", err)
	}
	defer fsClient.Close()

	authClient, err := app.Auth(ctx)
	if err != nil {
		logger.Fatalf("init firebase auth: %v", err)
	}

	// Events are optional; without a broker the storefront runs on the
	// store alone.
	var publisher order.EventPublisher
	if cfg.RabbitURL != "" {
		conn, err := amqp.Dial(cfg.RabbitURL)
		if err != nil {
			logger.Fatalf("dial rabbitmq: %v", err)
		}
		defer conn.Close()

		p, err := events.NewPublisher(conn)
		if err != nil {
			logger.Fatalf("init publisher: %v", err)
		}
		defer p.Close()
		publisher = p
	}

	orderSvc := order.NewService(order.NewRepository(fsClient), publisher, logger)

	router := httpserver.NewRouter(httpserver.Deps{
		Catalog:  catalog.NewRepository(fsClient),
		Carts:    cart.NewStore(),
		Orders:   orderSvc,
		Verifier: authClient,
		Logger:   logger,
	}, cfg.CORSAllowOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Printf("storefront listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
