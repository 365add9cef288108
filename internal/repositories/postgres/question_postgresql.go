package postgres

import (
	"context"

	"github.com/campus-hq/portal-service/internal/models"
	"github.com/campus-hq/portal-service/internal/repositories"
	"gorm.io/gorm"
)

type QuestionPostgreSQL struct {
	db *gorm.DB
}

func NewQuestionPostgreSQL(db *gorm.DB) repositories.QuestionRepository {
	return &QuestionPostgreSQL{db: db}
}

func (q *QuestionPostgreSQL) Create(ctx context.Context, question *models.Question) error {
	return q.db.WithContext(ctx).Create(question).Error
}

// CreateBatch inserts all rows in one statement. No wrapping transaction is
// added beyond what the insert itself provides; the store's batch semantics
// decide whether one bad row aborts the whole batch.
func (q *QuestionPostgreSQL) CreateBatch(ctx context.Context, questions []*models.Question) error {
	return q.db.WithContext(ctx).Create(&questions).Error
}

func (q *QuestionPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	if err := q.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (q *QuestionPostgreSQL) GetByIDs(ctx context.Context, ids []uint) ([]*models.Question, error) {
	var questions []*models.Question
	if len(ids) == 0 {
		return questions, nil
	}
	if err := q.db.WithContext(ctx).Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (q *QuestionPostgreSQL) ListByCourse(ctx context.Context, courseID uint, limit, offset int) ([]*models.Question, int64, error) {
	query := q.db.WithContext(ctx).Model(&models.Question{}).Where("course_id = ?", courseID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var questions []*models.Question
	err := applyLimit(query.Order("created_at desc"), limit, offset).Find(&questions).Error
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

func (q *QuestionPostgreSQL) Update(ctx context.Context, question *models.Question) error {
	return q.db.WithContext(ctx).Save(question).Error
}

func (q *QuestionPostgreSQL) Delete(ctx context.Context, id uint) error {
	return q.db.WithContext(ctx).Delete(&models.Question{}, id).Error
}

func (q *QuestionPostgreSQL) CountByCourse(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	err := q.db.WithContext(ctx).Model(&models.Question{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}
