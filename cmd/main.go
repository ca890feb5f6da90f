// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/room-booking/internal/config"
	"github.com/Shivanand-hulikatti/room-booking/internal/handler"
	"github.com/Shivanand-hulikatti/room-booking/internal/logger"
	"github.com/Shivanand-hulikatti/room-booking/internal/repository"
	"github.com/Shivanand-hulikatti/room-booking/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("could not load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat, "room-booking")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// ── Wire up layers ───────────────────────────────────────────────────
	clock := repository.RealClock{}
	roomRepo := repository.NewRoomRepository(clock)
	bookingRepo := repository.NewBookingRepository(clock)
	svc := service.NewBookingService(roomRepo, bookingRepo, zlog)
	h := handler.NewBookingHandler(svc)

	// ── Build the router ─────────────────────────────────────────────────
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer)  // recover from panics, return 500
	r.Use(chimiddleware.RequestID)  // attach request IDs
	r.Use(chimiddleware.RealIP)     // trust X-Forwarded-For
	r.Use(handler.AccessLog(zlog))  // structured access log
	r.Use(handler.CORS)             // permissive CORS for the admin UI

	// Health
	r.Get("/health", handler.HealthCheck)

	// API routes
	r.Route("/rooms", func(r chi.Router) {
		r.Post("/", h.CreateRoom)
		r.Get("/", h.ListRooms)
		r.Get("/{id}", h.GetRoom)
	})
	r.Post("/bookings", h.CreateBooking)
	r.Route("/customers", func(r chi.Router) {
		r.Get("/", h.ListCustomers)
		r.Get("/{customerName}/bookings", h.GetCustomerHistory)
	})

	// ── Start server with graceful shutdown ──────────────────────────────
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeoutSec) * time.Second,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		zlog.Info("server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("graceful shutdown failed", zap.Error(err))
	}
	zlog.Info("server stopped")
}
