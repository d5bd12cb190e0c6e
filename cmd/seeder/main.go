//cmd/seeder/main.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/unclebandit/phishsim-backend/internal/db"
	"github.com/unclebandit/phishsim-backend/internal/model"
	"github.com/unclebandit/phishsim-backend/internal/repository"
)

// Applies the schema and loads a demo company with a roster and a template,
// enough to dispatch a campaign locally against the mock mailer.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	db.Init()

	schema, err := os.ReadFile("migrations/001_init.sql")
	if err != nil {
		log.Fatalf("failed to read schema: %v", err)
	}
	if _, err := db.DB.Exec(string(schema)); err != nil {
		log.Fatalf("failed to apply schema: %v", err)
	}
	fmt.Println("Applied: migrations/001_init.sql")

	companyRepo := &repository.CompanyRepository{DB: db.DB}
	employeeRepo := &repository.EmployeeRepository{DB: db.DB}
	templateRepo := &repository.TemplateRepository{DB: db.DB}
	campaignRepo := &repository.CampaignRepository{DB: db.DB}

	company := &model.Company{Name: "Acme Corp", Domain: "acme.example"}
	if err := companyRepo.Create(company); err != nil {
		log.Fatalf("failed to seed company: %v", err)
	}

	employees := []model.Employee{
		{CompanyID: company.ID, Email: "alice@acme.example", FirstName: "Alice", LastName: "Mwangi", Department: "Engineering"},
		{CompanyID: company.ID, Email: "bob@acme.example", FirstName: "Bob", LastName: "Otieno", Department: "Engineering"},
		{CompanyID: company.ID, Email: "carol@acme.example", FirstName: "Carol", LastName: "Njeri", Department: "Finance"},
		{CompanyID: company.ID, Email: "dan@acme.example", FirstName: "Dan", LastName: "Kip", Department: ""},
	}
	for i := range employees {
		if err := employeeRepo.Create(&employees[i]); err != nil {
			log.Fatalf("failed to seed employee: %v", err)
		}
	}

	template := &model.Template{
		Name:    "Password reset notice",
		Subject: "Action required: reset your {company} password",
		Body: `<p>Hi {first_name},</p>
<p>Your {company} password expires today. Please <a href="https://portal.acme.example/reset">reset it now</a>
or review our <a href='https://intranet.acme.example/security'>security policy</a>.</p>`,
		IsPublic: true,
	}
	if err := templateRepo.Create(template); err != nil {
		log.Fatalf("failed to seed template: %v", err)
	}

	campaign := &model.Campaign{
		CompanyID:   company.ID,
		Name:        "Q3 awareness test",
		Description: "Baseline phishing susceptibility run",
	}
	if err := campaignRepo.Create(campaign); err != nil {
		log.Fatalf("failed to seed campaign: %v", err)
	}

	fmt.Printf("Seeded company %d, campaign %d, template %d, %d employees\n",
		company.ID, campaign.ID, template.ID, len(employees))
	fmt.Println("Database seeding completed successfully!")
}
