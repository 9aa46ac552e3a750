package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brunovl/leadbridge/internal/config"
	"github.com/brunovl/leadbridge/internal/infra/database"
	"github.com/brunovl/leadbridge/internal/infra/http/handlers"
	"github.com/brunovl/leadbridge/internal/infra/http/middleware"
	"github.com/brunovl/leadbridge/internal/infra/integration/justcall"
	"github.com/brunovl/leadbridge/internal/infra/integration/meta"
	"github.com/brunovl/leadbridge/internal/infra/integration/slack"
	"github.com/brunovl/leadbridge/internal/infra/mail"
	"github.com/brunovl/leadbridge/internal/infra/queue"
	"github.com/brunovl/leadbridge/internal/infra/sheets"
	"github.com/brunovl/leadbridge/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Require(
		"META_PAGE_ACCESS_TOKEN", "META_VERIFY_TOKEN",
		"SLACK_BOT_TOKEN", "JUSTCALL_API_KEY", "JUSTCALL_API_SECRET",
		"AMQP_URL",
	); err != nil {
		log.Fatal(err)
	}

	// Optional Postgres: run log plus the sheet mirror backend.
	var db *sql.DB
	if cfg.DatabaseURL != "" {
		db, err = database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
	}

	store, err := newRowStore(cfg, db)
	if err != nil {
		log.Fatal(err)
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPURL)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// Integrations
	metaClient := meta.NewClient(cfg.MetaAccessToken, "")
	slackClient := slack.NewClient(cfg.SlackBotToken, cfg.SlackChannel, "")
	justcallClient := justcall.NewClient(cfg.JustCallAPIKey, cfg.JustCallAPISecret, "")
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

	processLead := &usecase.ProcessLeadUseCase{
		Notifier:   slackClient,
		Store:      store,
		Enroller:   justcallClient,
		CampaignID: cfg.JustCallCampaignID,
	}
	if cfg.SMTPHost != "" && cfg.NotifyEmail != "" {
		processLead.Mailer = mail.NewEmailSender(
			cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.NotifyEmail,
		)
	}

	// Worker consumes queued leads and fans out the side effects.
	worker := queue.NewWorker(rabbitMQ.Ch, processLead)
	go worker.Start(queue.QueueName)

	webhookHandler := handlers.NewWebhookHandler(cfg.MetaAppSecret, cfg.MetaVerifyToken, metaClient, producer)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)
	testLeadHandler := handlers.NewTestLeadHandler(processLead)

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Get("/webhook", webhookHandler.HandleVerify)
	r.Post("/webhook", webhookHandler.Handle)
	r.Post("/test-lead", testLeadHandler.Handle)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	addr := ":" + cfg.Port
	log.Printf("LeadBridge server listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}

var errNoDatabase = errors.New("ROWSTORE_BACKEND=postgres requires DATABASE_URL")

func newRowStore(cfg *config.Config, db *sql.DB) (usecase.RowStore, error) {
	if cfg.RowStoreBackend == "postgres" {
		if db == nil {
			return nil, errNoDatabase
		}
		store := database.NewRowStore(db)
		if err := store.EnsureSchema(context.Background()); err != nil {
			return nil, err
		}
		return store, nil
	}
	if err := cfg.Require("GOOGLE_SHEETS_ID", "GOOGLE_SHEETS_ACCESS_TOKEN"); err != nil {
		return nil, err
	}
	return sheets.NewClient(cfg.SheetsAccessToken, cfg.SpreadsheetID, ""), nil
}
