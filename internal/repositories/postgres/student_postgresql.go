package postgres

import (
	"context"
	"time"

	"github.com/campus-hq/portal-service/internal/models"
	"github.com/campus-hq/portal-service/internal/repositories"
	"gorm.io/gorm"
)

type StudentPostgreSQL struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &StudentPostgreSQL{db: db}
}

func (s *StudentPostgreSQL) Create(ctx context.Context, student *models.Student) error {
	return s.db.WithContext(ctx).Create(student).Error
}

func (s *StudentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	err := s.db.WithContext(ctx).
		Preload("Faculty").
		Preload("Department").
		Preload("Level").
		First(&student, id).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentPostgreSQL) GetByMatric(ctx context.Context, matric string) (*models.Student, error) {
	var student models.Student
	err := s.db.WithContext(ctx).Where("matric_number = ?", matric).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentPostgreSQL) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	var student models.Student
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentPostgreSQL) Update(ctx context.Context, student *models.Student) error {
	return s.db.WithContext(ctx).Save(student).Error
}

func (s *StudentPostgreSQL) SetLoggedIn(ctx context.Context, id uint, loggedIn bool) error {
	res := s.db.WithContext(ctx).Model(&models.Student{}).
		Where("id = ?", id).
		Update("logged_in", loggedIn)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *StudentPostgreSQL) RecordLogin(ctx context.Context, id uint, at time.Time) error {
	res := s.db.WithContext(ctx).Model(&models.Student{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"logged_in":     true,
			"last_login_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *StudentPostgreSQL) SetEmailVerified(ctx context.Context, email string) error {
	return s.db.WithContext(ctx).Model(&models.Student{}).
		Where("email = ?", email).
		Update("email_verified", true).Error
}

func (s *StudentPostgreSQL) ExistsByMatric(ctx context.Context, matric string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Student{}).
		Where("matric_number = ?", matric).
		Count(&count).Error
	return count > 0, err
}

func (s *StudentPostgreSQL) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Student{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (s *StudentPostgreSQL) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Student{})

	if filters.FacultyID != nil {
		query = query.Where("faculty_id = ?", *filters.FacultyID)
	}
	if filters.DepartmentID != nil {
		query = query.Where("department_id = ?", *filters.DepartmentID)
	}
	if filters.LevelID != nil {
		query = query.Where("level_id = ?", *filters.LevelID)
	}
	if filters.LoggedIn != nil {
		query = query.Where("logged_in = ?", *filters.LoggedIn)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applySort(query, filters.SortBy, filters.SortOrder, map[string]bool{
		"created_at":    true,
		"matric_number": true,
	})
	query = applyLimit(query, filters.Limit, filters.Offset)

	var students []*models.Student
	if err := query.Find(&students).Error; err != nil {
		return nil, 0, err
	}
	return students, total, nil
}
