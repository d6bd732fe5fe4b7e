package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/elysian-softech/account-service/internal/api"
	"github.com/elysian-softech/account-service/internal/config"
	"github.com/elysian-softech/account-service/internal/events"
	"github.com/elysian-softech/account-service/internal/greeter"
	"github.com/elysian-softech/account-service/internal/oauth"
	"github.com/elysian-softech/account-service/internal/repository"
	"github.com/elysian-softech/account-service/internal/service"
	"github.com/elysian-softech/account-service/internal/tracing"
)

func main() {
	if err := godotenv.Load(".env.dev"); err != nil {
		fmt.Println("No .env.dev file found, reading from environment variables provided by Docker")
	}

	api.SetupGlobalHandler("account-service")

	shutdownTracer, err := tracing.InitTracerProvider("account-service")
	if err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db := connectMongo(cfg)
	defer db.Client().Disconnect(context.Background())

	publisher := connectPublisher(cfg.NatsURL)

	userRepo := repository.NewMongoUserRepository(db)
	messages := greeter.NewClient(cfg.MessageServiceURL, cfg.MessageTimeout)
	accounts := service.NewAccountService(userRepo, messages, publisher)

	google := oauth.NewGoogle(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.RedirectURI+"/google/callback")
	facebook := oauth.NewFacebook(cfg.Facebook.AppID, cfg.Facebook.AppSecret, cfg.RedirectURI+"/facebook/callback")

	googleFlow := oauth.NewFlow(google, accounts, messages, cfg.FrontendURL)
	facebookFlow := oauth.NewFlow(facebook, accounts, messages, cfg.FrontendURL)

	app := api.NewApp(
		api.NewAccountHandler(accounts),
		api.NewOAuthHandler(googleFlow),
		api.NewOAuthHandler(facebookFlow),
		cfg.CORSOrigins,
	)

	log.Printf("Listening account-service on port %s", cfg.AppPort)
	log.Fatal(app.Listen(":" + cfg.AppPort))
}

// connectMongo fails fast: an unreachable store at startup stops the process.
func connectMongo(cfg *config.Config) *mongo.Database {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	db := client.Database(cfg.MongoDBName)

	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create users indexes: %v", err)
	}

	log.Println("Successfully connected to MongoDB.")
	return db
}

// connectPublisher degrades to a no-op publisher when NATS is down; events
// are supplemental and must not block startup.
func connectPublisher(natsURL string) events.EventPublisher {
	publisher, err := events.NewNatsPublisher(natsURL)
	if err != nil {
		log.Printf("WARNING: Failed to connect to NATS, events disabled: %v", err)
		return events.NoopPublisher{}
	}

	log.Println("Successfully connected to NATS.")
	return publisher
}
