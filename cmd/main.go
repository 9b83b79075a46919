// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campverse/camp-booking/internal/config"
	"github.com/campverse/camp-booking/internal/database"
	"github.com/campverse/camp-booking/internal/handler"
	"github.com/campverse/camp-booking/internal/registration"
	"github.com/campverse/camp-booking/internal/store"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// ── 1. Pick the catalog/ledger backend ───────────────────────────────
	var (
		catalog store.Catalog
		ledger  store.Ledger
	)
	switch cfg.Store {
	case config.StorePostgres:
		pool, err := database.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer pool.Close()
		if err := database.EnsureSchema(ctx, pool); err != nil {
			log.Fatalf("database: %v", err)
		}
		pg := store.NewPostgresStore(pool)
		catalog, ledger = pg, pg
		log.Println("✓ Connected to PostgreSQL")
	default:
		mem := store.NewMemoryStore()
		mem.SetLockWait(cfg.LockWait)
		store.Seed(mem)
		catalog, ledger = mem, mem
		log.Println("✓ Using in-memory store with demo catalog")
	}

	// ── 2. Wire up layers ────────────────────────────────────────────────
	regSvc := registration.NewService(catalog, ledger)
	bookingHandler := handler.NewBookingHandler(catalog, regSvc)

	// ── 3. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(chimiddleware.Logger)    // access log
	r.Use(handler.CORS)            // permissive CORS for the frontend

	// Health
	r.Get("/health", handler.HealthCheck)

	// API routes
	bookingHandler.Routes(r)

	// ── 4. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		log.Printf("✓ Server listening on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server…")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
	log.Println("server stopped")
}
