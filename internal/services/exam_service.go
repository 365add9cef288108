package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campus-hq/portal-service/internal/cache"
	"github.com/campus-hq/portal-service/internal/events"
	"github.com/campus-hq/portal-service/internal/models"
	"github.com/campus-hq/portal-service/internal/repositories"
	"github.com/campus-hq/portal-service/internal/utils"
)

type CreateExamRequest struct {
	CourseID    uint       `json:"course_id" validate:"required"`
	Title       string     `json:"title" validate:"required,min=1,max=200"`
	QuestionIDs []uint     `json:"question_ids"`
	Duration    int        `json:"duration" validate:"required,min=1,max=480"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

type UpdateExamRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
	QuestionIDs []uint     `json:"question_ids"`
	Duration    *int       `json:"duration" validate:"omitempty,min=1,max=480"`
	ScheduledAt *time.Time `json:"scheduled_at"`
}

// ExamTimerResponse carries only the configured duration; no countdown
// state is held server-side.
type ExamTimerResponse struct {
	ExamID   uint `json:"exam_id"`
	Duration int  `json:"duration"`
}

type ExamService interface {
	Create(ctx context.Context, req *CreateExamRequest, createdBy uint) (*models.Exam, error)
	GetByID(ctx context.Context, id uint) (*models.Exam, error)
	// GetTimer returns the exam's configured duration in minutes. Lookups
	// are served from cache when possible; the timer endpoint is polled
	// by every sitting student.
	GetTimer(ctx context.Context, id uint) (*ExamTimerResponse, error)
	ListByCourse(ctx context.Context, courseID uint) ([]*models.Exam, error)
	ListActive(ctx context.Context) ([]*models.Exam, error)
	Update(ctx context.Context, id uint, req *UpdateExamRequest) (*models.Exam, error)
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
}

type examService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *utils.Validator
	cache     cache.ExamCache
	publisher events.EventPublisher
}

func NewExamService(
	repo repositories.Repository,
	logger *slog.Logger,
	validator *utils.Validator,
	examCache cache.ExamCache,
	publisher events.EventPublisher,
) ExamService {
	return &examService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		cache:     examCache,
		publisher: publisher,
	}
}

func (s *examService) Create(ctx context.Context, req *CreateExamRequest, createdBy uint) (*models.Exam, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.Academics().GetCourse(ctx, req.CourseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	if len(req.QuestionIDs) > 0 {
		questions, err := s.repo.Questions().GetByIDs(ctx, req.QuestionIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve questions: %w", err)
		}
		if len(questions) != len(req.QuestionIDs) {
			return nil, ErrQuestionNotFound
		}
	}

	exam := &models.Exam{
		CourseID:    req.CourseID,
		Title:       req.Title,
		QuestionIDs: req.QuestionIDs,
		Duration:    req.Duration,
		ScheduledAt: req.ScheduledAt,
		CreatedBy:   createdBy,
	}
	if err := s.repo.Exams().Create(ctx, exam); err != nil {
		return nil, fmt.Errorf("failed to create exam: %w", err)
	}

	s.logger.Info("exam created", "exam_id", exam.ID, "course_id", exam.CourseID)
	return exam, nil
}

func (s *examService) GetByID(ctx context.Context, id uint) (*models.Exam, error) {
	exam, err := s.repo.Exams().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}
	return exam, nil
}

func (s *examService) GetTimer(ctx context.Context, id uint) (*ExamTimerResponse, error) {
	if minutes, ok := s.cache.GetDuration(ctx, id); ok {
		return &ExamTimerResponse{ExamID: id, Duration: minutes}, nil
	}

	minutes, err := s.repo.Exams().GetDuration(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam duration: %w", err)
	}

	if err := s.cache.SetDuration(ctx, id, minutes); err != nil {
		s.logger.Warn("failed to cache exam duration", "exam_id", id, "error", err)
	}

	return &ExamTimerResponse{ExamID: id, Duration: minutes}, nil
}

func (s *examService) ListByCourse(ctx context.Context, courseID uint) ([]*models.Exam, error) {
	return s.repo.Exams().ListByCourse(ctx, courseID)
}

func (s *examService) ListActive(ctx context.Context) ([]*models.Exam, error) {
	return s.repo.Exams().ListActive(ctx)
}

func (s *examService) Update(ctx context.Context, id uint, req *UpdateExamRequest) (*models.Exam, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	exam, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		exam.Title = *req.Title
	}
	if req.QuestionIDs != nil {
		exam.QuestionIDs = req.QuestionIDs
	}
	if req.Duration != nil {
		exam.Duration = *req.Duration
	}
	if req.ScheduledAt != nil {
		exam.ScheduledAt = req.ScheduledAt
	}

	if err := s.repo.Exams().Update(ctx, exam); err != nil {
		return nil, fmt.Errorf("failed to update exam: %w", err)
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("failed to invalidate exam cache", "exam_id", id, "error", err)
	}

	return exam, nil
}

func (s *examService) SetActive(ctx context.Context, id uint, active bool) error {
	if err := s.repo.Exams().SetActive(ctx, id, active); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrExamNotFound
		}
		return fmt.Errorf("failed to set exam active flag: %w", err)
	}

	if active {
		if err := s.publisher.PublishNotificationEvent(ctx, events.NewNotificationEvent(
			events.EventExamActivated,
			map[string]interface{}{"exam_id": id},
		)); err != nil {
			s.logger.Warn("failed to publish exam event", "exam_id", id, "error", err)
		}
	}

	s.logger.Info("exam active flag updated", "exam_id", id, "active", active)
	return nil
}

func (s *examService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Exams().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete exam: %w", err)
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn("failed to invalidate exam cache", "exam_id", id, "error", err)
	}
	return nil
}
