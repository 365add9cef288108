package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/campus-hq/portal-service/internal/models"
	"github.com/campus-hq/portal-service/internal/repositories"
	"github.com/campus-hq/portal-service/internal/utils"
)

type QuestionPayload struct {
	Text    string                  `json:"text" validate:"required,min=1"`
	Options []models.QuestionOption `json:"options" validate:"required,min=2"`
	Marks   int                     `json:"marks" validate:"omitempty,min=1,max=100"`
}

type BulkUploadRequest struct {
	CourseID  uint              `json:"course_id" validate:"required"`
	Questions []QuestionPayload `json:"questions"`
}

type BulkUploadResult struct {
	Created int `json:"created"`
}

type ImportResult struct {
	TotalRows    int      `json:"total_rows"`
	SuccessCount int      `json:"success_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors,omitempty"`
}

// QuestionService owns question CRUD, bulk upload and spreadsheet import.
type QuestionService interface {
	Create(ctx context.Context, courseID uint, payload *QuestionPayload, createdBy uint) (*models.Question, error)
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	ListByCourse(ctx context.Context, courseID uint, limit, offset int) ([]*models.Question, int64, error)
	Update(ctx context.Context, id uint, payload *QuestionPayload) (*models.Question, error)
	Delete(ctx context.Context, id uint) error

	// BulkUpload rejects an empty or malformed array outright; otherwise
	// all rows go to the store in one unordered batch insert. Whether one
	// bad row aborts the batch is the store's call, not this layer's.
	BulkUpload(ctx context.Context, req *BulkUploadRequest, createdBy uint) (*BulkUploadResult, error)

	// ImportFromExcel parses an xlsx sheet of questions and feeds the
	// valid rows through the same batch path.
	ImportFromExcel(ctx context.Context, courseID uint, reader io.Reader, createdBy uint) (*ImportResult, error)
}

type questionService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *utils.Validator
}

func NewQuestionService(repo repositories.Repository, logger *slog.Logger, validator *utils.Validator) QuestionService {
	return &questionService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *questionService) Create(ctx context.Context, courseID uint, payload *QuestionPayload, createdBy uint) (*models.Question, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}
	if _, err := s.repo.Academics().GetCourse(ctx, courseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	question := s.buildQuestion(courseID, payload, createdBy)
	if err := s.repo.Questions().Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	s.logger.Info("question created", "question_id", question.ID, "course_id", courseID)
	return question, nil
}

func (s *questionService) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	question, err := s.repo.Questions().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return question, nil
}

func (s *questionService) ListByCourse(ctx context.Context, courseID uint, limit, offset int) ([]*models.Question, int64, error) {
	return s.repo.Questions().ListByCourse(ctx, courseID, limit, offset)
}

func (s *questionService) Update(ctx context.Context, id uint, payload *QuestionPayload) (*models.Question, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}

	question, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	question.Text = payload.Text
	question.Options = payload.Options
	if payload.Marks > 0 {
		question.Marks = payload.Marks
	}

	if err := s.repo.Questions().Update(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	return question, nil
}

func (s *questionService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Questions().Delete(ctx, id)
}

func (s *questionService) BulkUpload(ctx context.Context, req *BulkUploadRequest, createdBy uint) (*BulkUploadResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if len(req.Questions) == 0 {
		return nil, ErrEmptyBatch
	}
	for i := range req.Questions {
		if err := s.validator.Struct(&req.Questions[i]); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
	}

	if _, err := s.repo.Academics().GetCourse(ctx, req.CourseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	questions := make([]*models.Question, 0, len(req.Questions))
	for i := range req.Questions {
		questions = append(questions, s.buildQuestion(req.CourseID, &req.Questions[i], createdBy))
	}

	if err := s.repo.Questions().CreateBatch(ctx, questions); err != nil {
		return nil, fmt.Errorf("failed to insert question batch: %w", err)
	}

	s.logger.Info("question batch uploaded",
		"course_id", req.CourseID,
		"count", len(questions))

	return &BulkUploadResult{Created: len(questions)}, nil
}

// Expected sheet layout: Question Text | Option A..D | Correct Answer | Marks.
// The correct-answer column holds the letter(s), e.g. "A" or "A,C".
func (s *questionService) ImportFromExcel(ctx context.Context, courseID uint, reader io.Reader, createdBy uint) (*ImportResult, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	if len(rows) <= 1 {
		return nil, ErrEmptyBatch
	}

	result := &ImportResult{TotalRows: len(rows) - 1}
	payloads := make([]QuestionPayload, 0, len(rows)-1)

	for i, row := range rows[1:] { // skip header
		payload, err := parseQuestionRow(row)
		if err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		if err := s.validator.Struct(payload); err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		payloads = append(payloads, *payload)
	}

	if len(payloads) > 0 {
		if _, err := s.BulkUpload(ctx, &BulkUploadRequest{
			CourseID:  courseID,
			Questions: payloads,
		}, createdBy); err != nil {
			return nil, err
		}
	}
	result.SuccessCount = len(payloads)

	s.logger.Info("spreadsheet import completed",
		"course_id", courseID,
		"total_rows", result.TotalRows,
		"success_count", result.SuccessCount,
		"error_count", result.ErrorCount)

	return result, nil
}

func (s *questionService) buildQuestion(courseID uint, payload *QuestionPayload, createdBy uint) *models.Question {
	marks := payload.Marks
	if marks <= 0 {
		marks = 1
	}
	return &models.Question{
		CourseID:  courseID,
		Text:      payload.Text,
		Options:   payload.Options,
		Marks:     marks,
		CreatedBy: createdBy,
	}
}

func parseQuestionRow(row []string) (*QuestionPayload, error) {
	if len(row) < 6 {
		return nil, fmt.Errorf("expected at least 6 columns, got %d", len(row))
	}

	text := strings.TrimSpace(row[0])
	if text == "" {
		return nil, fmt.Errorf("question text is empty")
	}

	correct := map[string]bool{}
	for _, letter := range strings.Split(row[5], ",") {
		correct[strings.ToUpper(strings.TrimSpace(letter))] = true
	}

	letters := []string{"A", "B", "C", "D"}
	var options []models.QuestionOption
	for i, letter := range letters {
		optText := strings.TrimSpace(row[i+1])
		if optText == "" {
			continue
		}
		options = append(options, models.QuestionOption{
			Text:      optText,
			IsCorrect: correct[letter],
		})
	}

	marks := 1
	if len(row) > 6 {
		if m, err := strconv.Atoi(strings.TrimSpace(row[6])); err == nil && m > 0 {
			marks = m
		}
	}

	return &QuestionPayload{Text: text, Options: options, Marks: marks}, nil
}
