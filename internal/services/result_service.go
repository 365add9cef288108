package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campus-hq/portal-service/internal/events"
	"github.com/campus-hq/portal-service/internal/models"
	"github.com/campus-hq/portal-service/internal/repositories"
	"github.com/campus-hq/portal-service/internal/utils"
)

type SubmittedAnswer struct {
	QuestionID uint   `json:"question_id" validate:"required"`
	Answer     string `json:"answer"`
}

type RecordResultRequest struct {
	ExamID  uint              `json:"exam_id" validate:"required"`
	Answers []SubmittedAnswer `json:"answers" validate:"required,min=1,dive"`
}

// ResultService records exam attempts and serves result queries. A result
// row is written once per student/exam pair and never updated.
type ResultService interface {
	// RecordAttempt grades the submitted answers against the exam's
	// questions and stores a denormalized snapshot of each one, so the
	// recorded result stays accurate even if questions are later edited.
	RecordAttempt(ctx context.Context, req *RecordResultRequest, studentID uint) (*models.Result, error)
	GetByID(ctx context.Context, id uint) (*models.Result, error)
	GetByStudentAndExam(ctx context.Context, studentID, examID uint) (*models.Result, error)
	ListByStudent(ctx context.Context, studentID uint, limit, offset int) ([]*models.Result, int64, error)
	ListByExam(ctx context.Context, examID uint, limit, offset int) ([]*models.Result, int64, error)
}

type resultService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *utils.Validator
	publisher events.EventPublisher
}

func NewResultService(
	repo repositories.Repository,
	logger *slog.Logger,
	validator *utils.Validator,
	publisher events.EventPublisher,
) ResultService {
	return &resultService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

func (s *resultService) RecordAttempt(ctx context.Context, req *RecordResultRequest, studentID uint) (*models.Result, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	student, err := s.repo.Students().GetByID(ctx, studentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	exam, err := s.repo.Exams().GetByID(ctx, req.ExamID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}

	exists, err := s.repo.Results().ExistsForAttempt(ctx, studentID, req.ExamID)
	if err != nil {
		return nil, fmt.Errorf("failed to check prior attempt: %w", err)
	}
	if exists {
		return nil, ErrResultExists
	}

	questions, err := s.repo.Questions().GetByIDs(ctx, exam.QuestionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load exam questions: %w", err)
	}
	questionByID := make(map[uint]*models.Question, len(questions))
	totalMarks := 0
	for _, q := range questions {
		questionByID[q.ID] = q
		totalMarks += q.Marks
	}

	submitted := make(map[uint]string, len(req.Answers))
	for _, ans := range req.Answers {
		submitted[ans.QuestionID] = ans.Answer
	}

	score := 0
	snapshots := make([]models.AnswerSnapshot, 0, len(questions))
	for _, qid := range exam.QuestionIDs {
		q, ok := questionByID[qid]
		if !ok {
			// Referenced question was deleted since the exam was built;
			// skip it rather than fail the whole attempt.
			s.logger.Warn("exam references missing question",
				"exam_id", exam.ID, "question_id", qid)
			continue
		}

		answer, answered := submitted[qid]
		correct := answered && isCorrectAnswer(q, answer)
		if correct {
			score += q.Marks
		}

		optionTexts := make([]string, 0, len(q.Options))
		for _, opt := range q.Options {
			optionTexts = append(optionTexts, opt.Text)
		}

		snapshots = append(snapshots, models.AnswerSnapshot{
			QuestionID:      q.ID,
			QuestionText:    q.Text,
			Options:         optionTexts,
			CorrectAnswers:  q.CorrectAnswers(),
			SubmittedAnswer: answer,
			IsCorrect:       correct,
			Marks:           q.Marks,
		})
	}

	result := &models.Result{
		StudentID:  studentID,
		ExamID:     exam.ID,
		Answers:    snapshots,
		Score:      score,
		TotalMarks: totalMarks,
	}
	if student.DepartmentID != nil {
		result.DepartmentID = *student.DepartmentID
	}

	if err := s.repo.Results().Create(ctx, result); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrResultExists
		}
		return nil, fmt.Errorf("failed to record result: %w", err)
	}

	s.logger.Info("result recorded",
		"result_id", result.ID,
		"student_id", studentID,
		"exam_id", exam.ID,
		"score", score,
		"total_marks", totalMarks)

	if err := s.publisher.PublishNotificationEvent(ctx, events.NewNotificationEvent(
		events.EventResultRecorded,
		map[string]interface{}{
			"result_id":  result.ID,
			"student_id": studentID,
			"exam_id":    exam.ID,
		},
	)); err != nil {
		s.logger.Warn("failed to publish result event", "error", err)
	}

	return result, nil
}

func (s *resultService) GetByID(ctx context.Context, id uint) (*models.Result, error) {
	result, err := s.repo.Results().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	return result, nil
}

func (s *resultService) GetByStudentAndExam(ctx context.Context, studentID, examID uint) (*models.Result, error) {
	result, err := s.repo.Results().GetByStudentAndExam(ctx, studentID, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	return result, nil
}

func (s *resultService) ListByStudent(ctx context.Context, studentID uint, limit, offset int) ([]*models.Result, int64, error) {
	return s.repo.Results().List(ctx, repositories.ResultFilters{
		StudentID: &studentID,
		Limit:     limit,
		Offset:    offset,
	})
}

func (s *resultService) ListByExam(ctx context.Context, examID uint, limit, offset int) ([]*models.Result, int64, error) {
	return s.repo.Results().List(ctx, repositories.ResultFilters{
		ExamID: &examID,
		Limit:  limit,
		Offset: offset,
	})
}

// isCorrectAnswer treats a submission as correct when it matches any
// option flagged correct. Exactly the flagged options form the answer
// key; no single-correct rule is assumed.
func isCorrectAnswer(q *models.Question, answer string) bool {
	for _, opt := range q.Options {
		if opt.IsCorrect && opt.Text == answer {
			return true
		}
	}
	return false
}
