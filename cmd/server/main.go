// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/unclebandit/phishsim-backend/internal/controller"
	"github.com/unclebandit/phishsim-backend/internal/db"
	"github.com/unclebandit/phishsim-backend/internal/handler"
	"github.com/unclebandit/phishsim-backend/internal/mailer"
	"github.com/unclebandit/phishsim-backend/internal/queue"
	"github.com/unclebandit/phishsim-backend/internal/repository"
	"github.com/unclebandit/phishsim-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	// Init DB
	db.Init()

	companyRepo := &repository.CompanyRepository{DB: db.DB}
	employeeRepo := &repository.EmployeeRepository{DB: db.DB}
	templateRepo := &repository.TemplateRepository{DB: db.DB}
	campaignRepo := &repository.CampaignRepository{DB: db.DB}
	sentEmailRepo := &repository.SentEmailRepository{DB: db.DB}
	interactionRepo := &repository.InteractionRepository{DB: db.DB}
	analyticsRepo := &repository.AnalyticsRepository{DB: db.DB}

	baseURL := os.Getenv("TRACKING_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	trackingService := &service.TrackingService{
		SentEmailRepo:   sentEmailRepo,
		InteractionRepo: interactionRepo,
		FallbackURL:     os.Getenv("FALLBACK_REDIRECT_URL"),
	}

	// With an AMQP URL the interaction writes go through RabbitMQ and
	// cmd/worker consumes them; without one everything stays in-process.
	var q queue.Queue
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		amqpQueue, err := queue.NewAMQPQueue(amqpURL)
		if err != nil {
			log.Fatal("failed to connect to RabbitMQ:", err)
		}
		defer amqpQueue.Close()
		q = amqpQueue
		log.Println("📨 Publishing tracking events to RabbitMQ")
	} else {
		q = queue.NewInMemoryQueue()
		queue.StartTrackingSubscribers(q, trackingService)
	}

	var m mailer.Mailer
	if os.Getenv("MAILER") == "ses" {
		sesMailer, err := mailer.NewSESMailerFromEnv(context.Background())
		if err != nil {
			log.Fatal("failed to init SES mailer:", err)
		}
		m = sesMailer
	} else {
		m = mailer.NewMockMailer(0)
	}

	dispatchService := &service.DispatchService{
		CampaignRepo:  campaignRepo,
		CompanyRepo:   companyRepo,
		EmployeeRepo:  employeeRepo,
		TemplateRepo:  templateRepo,
		SentEmailRepo: sentEmailRepo,
		Mailer:        m,
		BaseURL:       baseURL,
	}

	analyticsService := &service.AnalyticsService{
		CampaignRepo:  campaignRepo,
		AnalyticsRepo: analyticsRepo,
	}

	campaignController := &controller.CampaignController{
		Dispatch:  dispatchService,
		Analytics: analyticsService,
	}
	trackingController := &controller.TrackingController{
		Tracking: trackingService,
		Queue:    q,
	}

	companyHandler := &handler.CompanyHandler{Repo: companyRepo}
	employeeHandler := &handler.EmployeeHandler{Repo: employeeRepo}
	templateHandler := &handler.TemplateHandler{Repo: templateRepo}
	campaignHandler := &handler.CampaignHandler{Repo: campaignRepo}

	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	// Tracking endpoints live at the root so the URLs embedded in emails
	// stay short.
	r.Get("/track/{token}", trackingController.TrackPixel)
	r.Get("/click/{token}/{index}", trackingController.TrackClick)

	r.Route("/api", func(r chi.Router) {
		r.Post("/companies", companyHandler.Create)
		r.Get("/companies", companyHandler.List)
		r.Get("/companies/{id}", companyHandler.Get)
		r.Patch("/companies/{id}", companyHandler.Update)
		r.Delete("/companies/{id}", companyHandler.Delete)

		r.Post("/employees", employeeHandler.Create)
		r.Get("/employees", employeeHandler.List)
		r.Get("/employees/{id}", employeeHandler.Get)
		r.Patch("/employees/{id}", employeeHandler.Update)
		r.Delete("/employees/{id}", employeeHandler.Delete)

		r.Post("/templates", templateHandler.Create)
		r.Get("/templates", templateHandler.List)
		r.Get("/templates/{id}", templateHandler.Get)
		r.Patch("/templates/{id}", templateHandler.Update)
		r.Delete("/templates/{id}", templateHandler.Delete)

		r.Post("/campaigns", campaignHandler.Create)
		r.Get("/campaigns", campaignHandler.List)
		r.Get("/campaigns/{id}", campaignHandler.Get)
		r.Patch("/campaigns/{id}", campaignHandler.Update)
		r.Delete("/campaigns/{id}", campaignHandler.Delete)

		r.Post("/campaigns/{id}/send", campaignController.SendCampaign)
		r.Get("/campaigns/{id}/analytics", campaignController.GetCampaignAnalytics)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("🚀 Server running on :" + port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
