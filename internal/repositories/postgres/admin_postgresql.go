package postgres

import (
	"context"

	"github.com/campus-hq/portal-service/internal/models"
	"github.com/campus-hq/portal-service/internal/repositories"
	"gorm.io/gorm"
)

type AdminPostgreSQL struct {
	db *gorm.DB
}

func NewAdminPostgreSQL(db *gorm.DB) repositories.AdminRepository {
	return &AdminPostgreSQL{db: db}
}

func (a *AdminPostgreSQL) Create(ctx context.Context, admin *models.Admin) error {
	return a.db.WithContext(ctx).Create(admin).Error
}

func (a *AdminPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Admin, error) {
	var admin models.Admin
	err := a.db.WithContext(ctx).
		Preload("Faculty").
		Preload("Department").
		First(&admin, id).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (a *AdminPostgreSQL) GetByMatric(ctx context.Context, matric string) (*models.Admin, error) {
	var admin models.Admin
	err := a.db.WithContext(ctx).Where("matric_number = ?", matric).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (a *AdminPostgreSQL) Update(ctx context.Context, admin *models.Admin) error {
	return a.db.WithContext(ctx).Save(admin).Error
}

func (a *AdminPostgreSQL) List(ctx context.Context, limit, offset int) ([]*models.Admin, error) {
	var admins []*models.Admin
	query := applyLimit(a.db.WithContext(ctx).Order("created_at desc"), limit, offset)
	if err := query.Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}
