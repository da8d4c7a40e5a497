package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/truledger/loanboard/internal/config"
	"github.com/truledger/loanboard/internal/feed"
	"github.com/truledger/loanboard/internal/handler"
	"github.com/truledger/loanboard/internal/metrics"
	"github.com/truledger/loanboard/internal/middleware"
	"github.com/truledger/loanboard/internal/reminder"
	"github.com/truledger/loanboard/internal/repository"
	"github.com/truledger/loanboard/internal/service"
	"github.com/truledger/loanboard/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	if err := repo.Migrate("migrations/schema.sql"); err != nil {
		logger.Fatalf("Failed to migrate schema: %v", err)
	}
	svc := service.NewService(repo, logger, cfg)
	hub := feed.NewHub()
	h := handler.NewHandler(svc, hub)
	metrics.Register()

	// Change feed: forward store notifications to connected clients
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	listener, err := repository.NewChangeListener(cfg.DBConn, logger)
	if err != nil {
		logger.Fatalf("Failed to start change listener: %v", err)
	}
	defer listener.Close()
	go listener.Run(ctx, hub.Publish)

	// Reminder job
	if cfg.ReminderOn {
		sender := email.NewSender(cfg, logger)
		job := reminder.NewJob(repo, sender, logger)
		if err := job.Start(cfg.ReminderSpec); err != nil {
			logger.Fatalf("Failed to start reminder job: %v", err)
		}
		defer job.Stop()
	}

	// Setup router
	r := mux.NewRouter()
	r.Use(metrics.Middleware)
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/loans", h.Loans).Methods("GET")
	authRouter.HandleFunc("/loans", h.CreateLoan).Methods("POST")
	authRouter.HandleFunc("/loans/{id:[0-9]+}", h.GetLoan).Methods("GET")
	authRouter.HandleFunc("/loans/{id:[0-9]+}", h.UpdateLoan).Methods("PUT")
	authRouter.HandleFunc("/loans/{id:[0-9]+}", h.DeleteLoan).Methods("DELETE")
	authRouter.HandleFunc("/loans/{id:[0-9]+}/payments", h.RecordLoanPayment).Methods("POST")
	authRouter.HandleFunc("/loans/{id:[0-9]+}/payments/last", h.ReverseLoanPayment).Methods("DELETE")
	authRouter.HandleFunc("/loans/{id:[0-9]+}/close", h.CloseLoan).Methods("POST")
	authRouter.HandleFunc("/loans/{id:[0-9]+}/notes/{index:[0-9]+}", h.SetLoanPaymentNote).Methods("PUT")
	authRouter.HandleFunc("/reserves", h.Reserves).Methods("GET")
	authRouter.HandleFunc("/reserves", h.CreateReserve).Methods("POST")
	authRouter.HandleFunc("/reserves/{id:[0-9]+}", h.GetReserve).Methods("GET")
	authRouter.HandleFunc("/reserves/{id:[0-9]+}", h.UpdateReserve).Methods("PUT")
	authRouter.HandleFunc("/reserves/{id:[0-9]+}", h.DeleteReserve).Methods("DELETE")
	authRouter.HandleFunc("/reserves/{id:[0-9]+}/deductions", h.RecordReserveDeduction).Methods("POST")
	authRouter.HandleFunc("/reserves/{id:[0-9]+}/deductions/last", h.ReverseReserveDeduction).Methods("DELETE")
	authRouter.HandleFunc("/reserves/{id:[0-9]+}/close", h.CloseReserve).Methods("POST")
	authRouter.HandleFunc("/reserves/{id:[0-9]+}/notes/{index:[0-9]+}", h.SetReserveDeductionNote).Methods("PUT")
	authRouter.HandleFunc("/overview", h.Overview).Methods("GET")
	authRouter.HandleFunc("/export", h.Export).Methods("GET")
	authRouter.HandleFunc("/events", h.Events).Methods("GET")
	authRouter.HandleFunc("/team", h.TeamMembers).Methods("GET")
	authRouter.HandleFunc("/team", h.InviteTeamMember).Methods("POST")
	authRouter.HandleFunc("/team", h.RemoveTeamMember).Methods("DELETE")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:        addr,
		Handler:     r,
		ReadTimeout: 10 * time.Second,
		// SSE clients hold /events open; no write deadline.
		WriteTimeout: 0,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
