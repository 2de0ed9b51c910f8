package main

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tuitionnetwork/tuition-api/internal/config"
	"github.com/tuitionnetwork/tuition-api/internal/platform/email"
	"github.com/tuitionnetwork/tuition-api/internal/platform/mongodb"
	"github.com/tuitionnetwork/tuition-api/internal/platform/sslcommerz"
	"github.com/tuitionnetwork/tuition-api/internal/service"
	"github.com/tuitionnetwork/tuition-api/internal/service/auth"
	"github.com/tuitionnetwork/tuition-api/internal/store"
)

// application holds the shared dependencies for the server: configuration,
// logging, the database client, stores, and services.
type application struct {
	config *config.Config
	logger *slog.Logger

	mongoClient *mongo.Client

	requestStore store.TutorRequestStore
	userStore    store.UserStore
	tutorStore   store.UserStore
	paymentStore store.PaymentStore

	jwtService          auth.JWTService
	tutorRequestService *service.TutorRequestService
	userService         *service.UserService
	paymentService      *service.PaymentService
}

// newApplication wires the full dependency graph: MongoDB connection, stores,
// the email sender, the payment gateway, and the services on top of them.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	client, err := mongodb.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	db := client.Database(cfg.Database.Name)

	requestStore := mongodb.NewTutorRequestStore(db, logger)
	userStore := mongodb.NewUserStore(db, mongodb.CollectionUsers, logger)
	tutorStore := mongodb.NewUserStore(db, mongodb.CollectionTutors, logger)
	paymentStore := mongodb.NewPaymentStore(db, logger)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	var sender email.Sender
	if cfg.Email.APIKey != "" {
		sender = email.NewResendSender(cfg.Email.APIKey, cfg.Email.From, logger)
	} else {
		logger.Warn("no email API key configured, using no-op sender")
		sender = email.NewNoopSender(logger)
	}
	notifier := service.NewEmailApprovalNotifier(userStore, sender, logger)

	gateway := sslcommerz.NewClient(cfg.Payment, logger)

	return &application{
		config:       cfg,
		logger:       logger,
		mongoClient:  client,
		requestStore: requestStore,
		userStore:    userStore,
		tutorStore:   tutorStore,
		paymentStore: paymentStore,
		jwtService:   jwtService,
		tutorRequestService: service.NewTutorRequestService(
			requestStore, notifier, logger),
		userService: service.NewUserService(userStore, tutorStore, logger),
		paymentService: service.NewPaymentService(
			paymentStore, requestStore, gateway, cfg.Payment, logger),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.mongoClient.Disconnect(ctx); err != nil {
			app.logger.Error("failed to disconnect from database", "error", err)
		}
	}
}
