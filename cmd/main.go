package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/auth"
	"storefront/cart"
	"storefront/catalog"
	"storefront/config"
	"storefront/controllers"
	"storefront/database"
	"storefront/events"
	"storefront/orders"
	"storefront/routes"
	"storefront/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type backend interface {
	store.ProductStore
	store.UserStore
	store.OrderStore
}

func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	var st backend
	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Println("Using in-memory store")
		st = store.NewMemory()
	default:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.DBName)
		if err != nil {
			cancel()
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		if err := database.EnsureIndexes(ctx, db); err != nil {
			cancel()
			log.Fatalf("Failed to create indexes: %v", err)
		}
		cancel()
		defer client.Disconnect(context.Background())
		log.Println("Connected to MongoDB")
		st = store.NewMongo(db)
	}

	hub := events.NewHub(cfg.CORSOrigins)
	defer hub.Close()
	publishers := events.Fanout{hub}
	if len(cfg.KafkaBrokers) > 0 {
		kafka := events.NewKafkaPublisher(cfg.KafkaBrokers)
		defer kafka.Close()
		publishers = append(publishers, kafka)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	authService, err := auth.NewService(st, tokens, auth.Hasher{Cost: bcrypt.DefaultCost}, cfg.AdminEmails)
	if err != nil {
		log.Fatalf("Failed to start auth: %v", err)
	}

	shipping := cart.Policy(cfg.ShippingFee, cfg.FreeShipping)
	sessions := cart.NewSessions(shipping)

	handler := &controllers.Handler{
		Auth:    authService,
		Catalog: catalog.NewService(st),
		Orders:  orders.NewService(st, shipping, publishers),
		Carts:   sessions,
		Cookie:  controllers.CookieConfig{Name: cfg.CookieName, Secure: cfg.Production()},
		Timeout: cfg.RequestTimeout,
	}

	r := gin.Default()
	r.SetTrustedProxies(nil)
	routes.Register(r, routes.Deps{
		Handler:     handler,
		Tokens:      tokens,
		Hub:         hub,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go sweepCarts(ctx, sessions, cfg.CartIdleTTL)

	go func() {
		log.Printf("Starting storefront on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Server stopped: %v", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down storefront...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("Storefront stopped")
}

func sweepCarts(ctx context.Context, sessions *cart.Sessions, idle time.Duration) {
	ticker := time.NewTicker(max(idle/4, time.Second))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Sweep(idle); n > 0 {
				log.Printf("Swept %d idle carts", n)
			}
		}
	}
}
