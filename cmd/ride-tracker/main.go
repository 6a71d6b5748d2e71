package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	authApi "ride-tracker/internal/auth/api"
	authApp "ride-tracker/internal/auth/app"
	authRepo "ride-tracker/internal/auth/repo"
	ridesApi "ride-tracker/internal/rides/api"
	ridesApp "ride-tracker/internal/rides/app"
	ridesRepo "ride-tracker/internal/rides/repo"
	"ride-tracker/internal/rides/notify"
	"ride-tracker/internal/shared/config"
	"ride-tracker/internal/shared/db"
	"ride-tracker/internal/shared/health"
	"ride-tracker/internal/shared/jwt"
	"ride-tracker/internal/shared/middleware"
	"ride-tracker/internal/shared/util"

	"github.com/rabbitmq/amqp091-go"
)

func main() {
	log := util.New()

	log.Info("RideTracker", "Starting service initialization...")

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatal("Config", err)
	}
	log.OK("Config", "Configuration loaded successfully")

	ctx := context.Background()

	dbConn, err := db.ConnectToDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("Database", err)
	}
	defer dbConn.Close()
	log.OK("Database", "Connected successfully")

	tokens := jwt.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	var rmqConn *amqp091.Connection
	var publisher *notify.Publisher
	if cfg.RabbitMQ.Enabled {
		conn, ch, err := notify.ConnectToRMQ(&cfg.RabbitMQ)
		if err != nil {
			log.Fatal("RabbitMQ", err)
		}
		defer conn.Close()
		defer ch.Close()

		publisher, err = notify.NewPublisher(ch)
		if err != nil {
			log.Fatal("RabbitMQ", err)
		}
		rmqConn = conn
		log.OK("RabbitMQ", "Connected successfully")
	} else {
		log.Warn("RabbitMQ", "Disabled, ride events will not be published")
	}

	hub := notify.NewHub(log)
	fanout := notify.NewFanout(publisher, hub, log)

	rideRepository := ridesRepo.NewRideRepo(dbConn)
	rideService := ridesApp.NewRideService(rideRepository, fanout, log)
	rideHandler := ridesApi.NewHandler(rideService, log)

	authRepository := authRepo.NewAuthRepo(dbConn)
	authService := authApp.NewAuthService(authRepository, tokens, log)
	authHandler := authApi.NewHandler(authService, log)

	mux := http.NewServeMux()
	authHandler.RegisterRoutes(mux)
	rideHandler.RegisterRoutes(mux, ridesApi.AdminAuthMiddleware(tokens), hub)
	mux.Handle("GET /health", health.Handler("ride-tracker", dbConn, rmqConn))

	server := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: middleware.RequestID(mux),
	}

	go func() {
		log.OK("HTTP", "ride-tracker running on :"+cfg.HTTP.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Warn("RideTracker", "Shutting down ride-tracker...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP", err)
	} else {
		log.OK("HTTP", "Server stopped gracefully")
	}

	log.Info("RideTracker", "Shutdown complete")
}
