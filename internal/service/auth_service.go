package service

import (
	"errors"
	"strings"
	"time"

	"heartchain/config"
	"heartchain/internal/auth"
	"heartchain/internal/domain"
	"heartchain/internal/models"
	"heartchain/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists     = errors.New("email already registered")
	ErrRegNumberExists = errors.New("registration number already exists")
	ErrInvalidCreds    = errors.New("invalid email or password")
	ErrAccountInactive = errors.New("account is inactive")
	ErrInvalidRole     = errors.New("invalid role")
	ErrValidation      = errors.New("validation failed")
)

// ValidationError carries field-level detail so the client can aggregate a
// single human-readable message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

type AuthService struct {
	cfg      *config.Config
	db       *gorm.DB
	userRepo *repository.UserRepository
	orphRepo *repository.OrphanageRepository
}

func NewAuthService(cfg *config.Config, db *gorm.DB, userRepo *repository.UserRepository, orphRepo *repository.OrphanageRepository) *AuthService {
	return &AuthService{cfg: cfg, db: db, userRepo: userRepo, orphRepo: orphRepo}
}

// Register creates a donor account. Orphanage accounts go through
// RegisterOrphanage and admin accounts exist only via the startup seed, so
// any other requested role is refused.
func (s *AuthService) Register(email, password, fullName, phone, role string) (*models.User, string, error) {
	if role != "" && role != domain.RoleDonor {
		return nil, "", ErrInvalidRole
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.checkEmailFree(email); err != nil {
		return nil, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	u := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Phone:        phone,
		Role:         domain.RoleDonor,
		IsActive:     true,
	}
	if err := s.userRepo.Create(u); err != nil {
		return nil, "", err
	}
	token, err := auth.GenerateToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return u, "", err
	}
	return u, token, nil
}

// OrphanagePayload is the organization half of an orphanage registration.
type OrphanagePayload struct {
	Name               string
	RegistrationNumber string
	Description        string
	Email              string
	Phone              string
	Website            string
	Address            string
	City               string
	State              string
	Pincode            string
	Country            string
	Capacity           int
	CurrentOccupancy   int
	EstablishedYear    *int
}

func (p *OrphanagePayload) validate() error {
	required := map[string]string{
		"name":                p.Name,
		"registration_number": p.RegistrationNumber,
		"email":               p.Email,
		"phone":               p.Phone,
		"address":             p.Address,
		"city":                p.City,
		"state":               p.State,
		"pincode":             p.Pincode,
	}
	for field, v := range required {
		if strings.TrimSpace(v) == "" {
			return &ValidationError{Field: field, Message: "required"}
		}
	}
	if p.Capacity <= 0 {
		return &ValidationError{Field: "capacity", Message: "must be greater than zero"}
	}
	if p.CurrentOccupancy < 0 {
		return &ValidationError{Field: "current_occupancy", Message: "must not be negative"}
	}
	if p.EstablishedYear != nil && *p.EstablishedYear < 1800 {
		return &ValidationError{Field: "established_year", Message: "must be 1800 or later"}
	}
	return nil
}

// RegisterOrphanage creates the owning user and the orphanage record in one
// transaction. All validation runs before any row is written; a failure on
// either insert rolls back both, so a user without an org (or vice versa) is
// never observable.
func (s *AuthService) RegisterOrphanage(email, password, fullName, phone string, org OrphanagePayload) (*models.User, *models.Orphanage, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := org.validate(); err != nil {
		return nil, nil, "", err
	}
	if err := s.checkEmailFree(email); err != nil {
		return nil, nil, "", err
	}
	if _, err := s.orphRepo.GetByRegistrationNumber(org.RegistrationNumber); err == nil {
		return nil, nil, "", ErrRegNumberExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, "", err
	}
	country := org.Country
	if country == "" {
		country = "India"
	}
	u := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Phone:        phone,
		Role:         domain.RoleOrphanage,
		IsActive:     true,
	}
	o := &models.Orphanage{
		Name:               org.Name,
		RegistrationNumber: org.RegistrationNumber,
		Description:        org.Description,
		Email:              org.Email,
		Phone:              org.Phone,
		Website:            org.Website,
		Address:            org.Address,
		City:               org.City,
		State:              org.State,
		Pincode:            org.Pincode,
		Country:            country,
		Capacity:           org.Capacity,
		CurrentOccupancy:   org.CurrentOccupancy,
		EstablishedYear:    org.EstablishedYear,
		Status:             domain.OrphanagePending,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		o.UserID = u.ID
		return tx.Create(o).Error
	})
	if err != nil {
		return nil, nil, "", err
	}
	token, err := auth.GenerateToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return u, o, "", err
	}
	return u, o, token, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCreds
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCreds
	}
	if !u.IsActive {
		return nil, "", ErrAccountInactive
	}
	now := time.Now()
	u.LastLogin = &now
	_ = s.userRepo.Update(u)
	token, err := auth.GenerateToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthService) CurrentUser(userID uint) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return ErrInvalidCreds
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCreds
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.userRepo.Update(u)
}

// RefreshToken re-mints a token for a still-active user. Role is re-read from
// the stored record, not echoed from the old claims.
func (s *AuthService) RefreshToken(userID uint) (string, error) {
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", err
	}
	if !u.IsActive {
		return "", ErrAccountInactive
	}
	return auth.GenerateToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
}

func (s *AuthService) checkEmailFree(email string) error {
	_, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}
