package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/unclebandit/phishsim-backend/internal/db"
	"github.com/unclebandit/phishsim-backend/internal/queue"
	"github.com/unclebandit/phishsim-backend/internal/repository"
	"github.com/unclebandit/phishsim-backend/internal/service"
)

// The worker is the out-of-process interaction recorder: it consumes open
// and click events from RabbitMQ and persists them, so the tracking server
// never waits on a database write. Run it when AMQP_URL is set on the server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	db.Init()

	trackingService := &service.TrackingService{
		SentEmailRepo:   &repository.SentEmailRepository{DB: db.DB},
		InteractionRepo: &repository.InteractionRepository{DB: db.DB},
	}

	amqpURL := os.Getenv("AMQP_URL")
	if amqpURL == "" {
		log.Fatal("AMQP_URL must be set for the worker")
	}

	q, err := queue.NewAMQPQueue(amqpURL)
	if err != nil {
		log.Fatal("failed to connect to RabbitMQ:", err)
	}
	defer q.Close()

	queue.StartTrackingSubscribers(q, trackingService)

	log.Println("Worker running, waiting for tracking events...")
	select {}
}
