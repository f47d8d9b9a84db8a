package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"loanportal/internal/config"
	"loanportal/internal/database"
	"loanportal/internal/domain"
	"loanportal/internal/repository"
)

// Seeds a development database with one account per role, a couple of
// products and a few loans in different review states.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	profiles := repository.NewProfileRepository(db)
	loans := repository.NewLoanRepository(db)
	products := repository.NewProductRepository(db)

	seedUser := func(email, password, username string, role domain.Role) int64 {
		if exists, _ := users.ExistsByEmail(ctx, email); exists {
			u, err := users.GetByEmail(ctx, email)
			if err != nil {
				log.Fatal(err)
			}
			log.Printf("skip existing user %s", email)
			return u.ID
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal(err)
		}
		u := &domain.User{Email: email, PasswordHash: string(hash)}
		if err := users.Create(ctx, u); err != nil {
			log.Fatal(err)
		}
		if err := profiles.Create(ctx, &domain.Profile{
			UserID:   u.ID,
			Email:    email,
			Username: username,
			Role:     role,
		}); err != nil {
			log.Fatal(err)
		}
		log.Printf("created %s user %s (id=%d)", role, email, u.ID)
		return u.ID
	}

	borrowerID := seedUser("borrower@example.com", "borrower123", "ravi", domain.RoleBorrower)
	merchantID := seedUser("merchant@example.com", "merchant123", "sita", domain.RoleMerchant)
	seedUser("admin@example.com", "admin123", "admin", domain.RoleAdmin)

	merchantProfile, err := profiles.GetByUserID(ctx, merchantID)
	if err != nil {
		log.Fatal(err)
	}
	if merchantProfile.ShopName == "" {
		merchantProfile.ShopName = "Sita Electronics"
		merchantProfile.ShopAddress = "4 Market Street, Pune"
		merchantProfile.GSTIN = "27AAPFU0939F1ZV"
		if err := profiles.Update(ctx, merchantProfile); err != nil {
			log.Fatal(err)
		}
	}

	existing, err := loans.ListAll(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if len(existing) == 0 {
		fixtures := []domain.Loan{
			{
				UserID:        &borrowerID,
				FirstName:     "Ravi",
				LastName:      "Kumar",
				DOB:           "1990-04-12",
				Phone:         "9876543210",
				Address:       "12 MG Road, Bengaluru",
				Occupation:    "salaried",
				Age:           35,
				MonthlyIncome: 45000,
				LoanAmount:    200000,
				LoanPurpose:   "Home Renovation",
				AadhaarNumber: "123412341234",
				PANNumber:     "ABCDE1234F",
				ReviewStatus:  domain.LoanPending,
			},
			{
				ReferredBy:    &merchantID,
				FirstName:     "Meena",
				LastName:      "Sharma",
				DOB:           "1985-09-30",
				Phone:         "9123456780",
				Address:       "7 Nehru Nagar, Pune",
				Occupation:    "self-employed",
				Age:           40,
				MonthlyIncome: 60000,
				LoanAmount:    350000,
				LoanPurpose:   "Business Expansion",
				AadhaarNumber: "432143214321",
				PANNumber:     "FGHIJ5678K",
				ReviewStatus:  domain.LoanApproved,
			},
			{
				ReferredBy:    &merchantID,
				FirstName:     "Arun",
				LastName:      "Patel",
				DOB:           "1993-02-14",
				Phone:         "9988776655",
				Address:       "22 Gandhi Road, Surat",
				Age:           33,
				MonthlyIncome: 25000,
				LoanAmount:    50000,
				AadhaarNumber: "567856785678",
				PANNumber:     "LMNOP9012Q",
				ReviewStatus:  domain.LoanRejected,
			},
		}
		for i := range fixtures {
			if err := loans.Create(ctx, &fixtures[i]); err != nil {
				log.Fatal(err)
			}
		}
		log.Printf("created %d loans", len(fixtures))
	}

	catalog, err := products.ListAll(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if len(catalog) == 0 {
		fixtures := []domain.Product{
			{UserID: merchantID, Name: "LED TV 43\"", Description: "Smart TV, EMI available", Price: 32999},
			{UserID: merchantID, Name: "Refrigerator 260L", Description: "Double door, frost free", Price: 24999},
		}
		for i := range fixtures {
			if err := products.Create(ctx, &fixtures[i]); err != nil {
				log.Fatal(err)
			}
		}
		log.Printf("created %d products", len(fixtures))
	}

	log.Println("seed complete")
}
