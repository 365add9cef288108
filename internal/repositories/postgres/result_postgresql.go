package postgres

import (
	"context"

	"github.com/campus-hq/portal-service/internal/models"
	"github.com/campus-hq/portal-service/internal/repositories"
	"gorm.io/gorm"
)

type ResultPostgreSQL struct {
	db *gorm.DB
}

func NewResultPostgreSQL(db *gorm.DB) repositories.ResultRepository {
	return &ResultPostgreSQL{db: db}
}

func (r *ResultPostgreSQL) Create(ctx context.Context, result *models.Result) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *ResultPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Result, error) {
	var result models.Result
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Exam").
		First(&result, id).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultPostgreSQL) GetByStudentAndExam(ctx context.Context, studentID, examID uint) (*models.Result, error) {
	var result models.Result
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND exam_id = ?", studentID, examID).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultPostgreSQL) ExistsForAttempt(ctx context.Context, studentID, examID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Result{}).
		Where("student_id = ? AND exam_id = ?", studentID, examID).
		Count(&count).Error
	return count > 0, err
}

func (r *ResultPostgreSQL) List(ctx context.Context, filters repositories.ResultFilters) ([]*models.Result, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Result{})

	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.ExamID != nil {
		query = query.Where("exam_id = ?", *filters.ExamID)
	}
	if filters.DepartmentID != nil {
		query = query.Where("department_id = ?", *filters.DepartmentID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*models.Result
	err := applyLimit(query.Order("created_at desc"), filters.Limit, filters.Offset).
		Find(&results).Error
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
