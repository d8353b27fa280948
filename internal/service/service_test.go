package service

import (
	"testing"
	"time"

	"heartchain/config"
	"heartchain/internal/models"
	"heartchain/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// One in-memory database per connection; keep a single one.
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&models.User{},
		&models.Orphanage{},
		&models.Campaign{},
		&models.Donation{},
		&models.Report{},
		&models.Transaction{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret: "test-secret",
			Expiry: time.Hour,
			Issuer: "heartchain-test",
		},
		Razorpay: config.RazorpayConfig{KeySecret: "test-gateway-secret"},
	}
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	u := &models.User{
		Email:        email,
		PasswordHash: "x",
		FullName:     "Test User",
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedOrphanage(t *testing.T, db *gorm.DB, owner *models.User, status string) *models.Orphanage {
	t.Helper()
	o := &models.Orphanage{
		UserID:             owner.ID,
		Name:               "Sunrise Home",
		RegistrationNumber: "REG-" + owner.Email,
		Email:              owner.Email,
		Phone:              "9999999999",
		Address:            "12 Lake Road",
		City:               "Pune",
		State:              "Maharashtra",
		Pincode:            "411001",
		Capacity:           40,
		Status:             status,
	}
	if err := db.Create(o).Error; err != nil {
		t.Fatalf("seed orphanage: %v", err)
	}
	return o
}

func seedCampaign(t *testing.T, db *gorm.DB, o *models.Orphanage, status string, target float64) *models.Campaign {
	t.Helper()
	c := &models.Campaign{
		OrphanageID:  o.ID,
		Title:        "Winter Blankets",
		Category:     "education",
		TargetAmount: target,
		StartDate:    time.Now(),
		Status:       status,
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed campaign: %v", err)
	}
	return c
}

func campaignByID(t *testing.T, db *gorm.DB, id uint) *models.Campaign {
	t.Helper()
	var c models.Campaign
	if err := db.First(&c, id).Error; err != nil {
		t.Fatalf("load campaign: %v", err)
	}
	return &c
}

func newRepos(db *gorm.DB) (
	*repository.UserRepository,
	*repository.OrphanageRepository,
	*repository.CampaignRepository,
	*repository.DonationRepository,
	*repository.ReportRepository,
	*repository.TransactionRepository,
) {
	return repository.NewUserRepository(db),
		repository.NewOrphanageRepository(db),
		repository.NewCampaignRepository(db),
		repository.NewDonationRepository(db),
		repository.NewReportRepository(db),
		repository.NewTransactionRepository(db)
}
