package postgres

import (
	"context"

	"github.com/campus-hq/portal-service/internal/models"
	"github.com/campus-hq/portal-service/internal/repositories"
	"gorm.io/gorm"
)

type ExamPostgreSQL struct {
	db *gorm.DB
}

func NewExamPostgreSQL(db *gorm.DB) repositories.ExamRepository {
	return &ExamPostgreSQL{db: db}
}

func (e *ExamPostgreSQL) Create(ctx context.Context, exam *models.Exam) error {
	return e.db.WithContext(ctx).Create(exam).Error
}

func (e *ExamPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Exam, error) {
	var exam models.Exam
	if err := e.db.WithContext(ctx).Preload("Course").First(&exam, id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

// GetDuration loads only the duration column; the timer endpoint needs
// nothing else.
func (e *ExamPostgreSQL) GetDuration(ctx context.Context, id uint) (int, error) {
	var exam models.Exam
	err := e.db.WithContext(ctx).Select("duration").First(&exam, id).Error
	if err != nil {
		return 0, err
	}
	return exam.Duration, nil
}

func (e *ExamPostgreSQL) ListByCourse(ctx context.Context, courseID uint) ([]*models.Exam, error) {
	var exams []*models.Exam
	err := e.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("created_at desc").
		Find(&exams).Error
	if err != nil {
		return nil, err
	}
	return exams, nil
}

func (e *ExamPostgreSQL) ListActive(ctx context.Context) ([]*models.Exam, error) {
	var exams []*models.Exam
	err := e.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at desc").
		Find(&exams).Error
	if err != nil {
		return nil, err
	}
	return exams, nil
}

func (e *ExamPostgreSQL) Update(ctx context.Context, exam *models.Exam) error {
	return e.db.WithContext(ctx).Save(exam).Error
}

func (e *ExamPostgreSQL) SetActive(ctx context.Context, id uint, active bool) error {
	res := e.db.WithContext(ctx).Model(&models.Exam{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (e *ExamPostgreSQL) Delete(ctx context.Context, id uint) error {
	return e.db.WithContext(ctx).Delete(&models.Exam{}, id).Error
}
