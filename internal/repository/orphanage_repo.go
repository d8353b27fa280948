package repository

import (
	"heartchain/internal/models"

	"gorm.io/gorm"
)

type OrphanageRepository struct {
	db *gorm.DB
}

func NewOrphanageRepository(db *gorm.DB) *OrphanageRepository {
	return &OrphanageRepository{db: db}
}

func (r *OrphanageRepository) Create(o *models.Orphanage) error {
	return r.db.Create(o).Error
}

func (r *OrphanageRepository) GetByID(id uint) (*models.Orphanage, error) {
	var o models.Orphanage
	if err := r.db.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrphanageRepository) GetByUserID(userID uint) (*models.Orphanage, error) {
	var o models.Orphanage
	if err := r.db.Where("user_id = ?", userID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrphanageRepository) GetByRegistrationNumber(reg string) (*models.Orphanage, error) {
	var o models.Orphanage
	if err := r.db.Where("registration_number = ?", reg).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// OrphanageFilter narrows public listings.
type OrphanageFilter struct {
	Status string
	City   string
	State  string
	Limit  int
	Offset int
}

// List returns orphanages, newest first, so fresh registrations surface for review.
func (r *OrphanageRepository) List(f OrphanageFilter) ([]models.Orphanage, error) {
	q := r.db.Model(&models.Orphanage{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.State != "" {
		q = q.Where("state = ?", f.State)
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	var out []models.Orphanage
	err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&out).Error
	return out, err
}

func (r *OrphanageRepository) Update(o *models.Orphanage) error {
	return r.db.Save(o).Error
}

func (r *OrphanageRepository) CountByStatus(status string) (int64, error) {
	var n int64
	q := r.db.Model(&models.Orphanage{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&n).Error
	return n, err
}
