package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/campus-hq/portal-service/internal/events"
	"github.com/campus-hq/portal-service/internal/models"
	"github.com/campus-hq/portal-service/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newResultServiceForTest(repo *mockRepository) (ResultService, *events.MockEventPublisher) {
	logger := newTestLogger()
	publisher := events.NewMockEventPublisher(logger)
	svc := NewResultService(repo, logger, utils.NewValidator(), publisher)
	return svc, publisher
}

func gradedQuestion(id uint, text, correct, wrong string, marks int) *models.Question {
	q := &models.Question{
		Text: text,
		Options: []models.QuestionOption{
			{Text: correct, IsCorrect: true},
			{Text: wrong},
		},
		Marks: marks,
	}
	q.ID = id
	return q
}

func TestResultService_RecordAttempt(t *testing.T) {
	ctx := context.Background()

	deptID := uint(3)
	student := &models.Student{DepartmentID: &deptID}
	student.ID = 7

	exam := &models.Exam{
		CourseID:    1,
		Title:       "Midterm",
		QuestionIDs: datatypes.JSONSlice[uint]{10, 11},
		Duration:    60,
	}
	exam.ID = 5

	questions := []*models.Question{
		gradedQuestion(10, "Capital of France?", "Paris", "Lyon", 2),
		gradedQuestion(11, "Largest planet?", "Jupiter", "Mars", 3),
	}

	t.Run("grades answers and snapshots each question", func(t *testing.T) {
		students := &MockStudentRepository{}
		students.On("GetByID", mock.Anything, uint(7)).Return(student, nil)

		exams := &MockExamRepository{}
		exams.On("GetByID", mock.Anything, uint(5)).Return(exam, nil)

		questionRepo := &MockQuestionRepository{}
		questionRepo.On("GetByIDs", mock.Anything, mock.Anything).Return(questions, nil)

		results := &MockResultRepository{}
		results.On("ExistsForAttempt", mock.Anything, uint(7), uint(5)).Return(false, nil)
		results.On("Create", mock.Anything, mock.Anything).Return(nil)

		svc, publisher := newResultServiceForTest(&mockRepository{
			students:  students,
			exams:     exams,
			questions: questionRepo,
			results:   results,
		})

		result, err := svc.RecordAttempt(ctx, &RecordResultRequest{
			ExamID: 5,
			Answers: []SubmittedAnswer{
				{QuestionID: 10, Answer: "Paris"},
				{QuestionID: 11, Answer: "Mars"},
			},
		}, 7)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Score)
		assert.Equal(t, 5, result.TotalMarks)
		assert.Equal(t, deptID, result.DepartmentID)

		require.Len(t, result.Answers, 2)
		first := result.Answers[0]
		assert.Equal(t, uint(10), first.QuestionID)
		assert.Equal(t, "Capital of France?", first.QuestionText)
		assert.Equal(t, []string{"Paris", "Lyon"}, first.Options)
		assert.Equal(t, []string{"Paris"}, first.CorrectAnswers)
		assert.Equal(t, "Paris", first.SubmittedAnswer)
		assert.True(t, first.IsCorrect)

		second := result.Answers[1]
		assert.False(t, second.IsCorrect)
		assert.Equal(t, "Mars", second.SubmittedAnswer)

		require.Len(t, publisher.GetPublishedEvents(), 1)
		assert.Equal(t, events.EventResultRecorded, publisher.GetPublishedEvents()[0].Type)
	})

	t.Run("second attempt for the same exam is refused", func(t *testing.T) {
		students := &MockStudentRepository{}
		students.On("GetByID", mock.Anything, uint(7)).Return(student, nil)

		exams := &MockExamRepository{}
		exams.On("GetByID", mock.Anything, uint(5)).Return(exam, nil)

		results := &MockResultRepository{}
		results.On("ExistsForAttempt", mock.Anything, uint(7), uint(5)).Return(true, nil)

		svc, _ := newResultServiceForTest(&mockRepository{
			students: students,
			exams:    exams,
			results:  results,
		})

		_, err := svc.RecordAttempt(ctx, &RecordResultRequest{
			ExamID:  5,
			Answers: []SubmittedAnswer{{QuestionID: 10, Answer: "Paris"}},
		}, 7)

		assert.ErrorIs(t, err, ErrResultExists)
		assert.True(t, IsConflict(err))
		results.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("concurrent duplicate insert maps to the same conflict", func(t *testing.T) {
		students := &MockStudentRepository{}
		students.On("GetByID", mock.Anything, uint(7)).Return(student, nil)

		exams := &MockExamRepository{}
		exams.On("GetByID", mock.Anything, uint(5)).Return(exam, nil)

		questionRepo := &MockQuestionRepository{}
		questionRepo.On("GetByIDs", mock.Anything, mock.Anything).Return(questions, nil)

		// The existence check raced; the unique index is the backstop.
		results := &MockResultRepository{}
		results.On("ExistsForAttempt", mock.Anything, uint(7), uint(5)).Return(false, nil)
		results.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

		svc, _ := newResultServiceForTest(&mockRepository{
			students:  students,
			exams:     exams,
			questions: questionRepo,
			results:   results,
		})

		_, err := svc.RecordAttempt(ctx, &RecordResultRequest{
			ExamID:  5,
			Answers: []SubmittedAnswer{{QuestionID: 10, Answer: "Paris"}},
		}, 7)

		assert.ErrorIs(t, err, ErrResultExists)
		assert.True(t, IsConflict(err))
	})

	t.Run("unanswered questions score zero but still appear in the snapshot", func(t *testing.T) {
		students := &MockStudentRepository{}
		students.On("GetByID", mock.Anything, uint(7)).Return(student, nil)

		exams := &MockExamRepository{}
		exams.On("GetByID", mock.Anything, uint(5)).Return(exam, nil)

		questionRepo := &MockQuestionRepository{}
		questionRepo.On("GetByIDs", mock.Anything, mock.Anything).Return(questions, nil)

		results := &MockResultRepository{}
		results.On("ExistsForAttempt", mock.Anything, uint(7), uint(5)).Return(false, nil)
		results.On("Create", mock.Anything, mock.Anything).Return(nil)

		svc, _ := newResultServiceForTest(&mockRepository{
			students:  students,
			exams:     exams,
			questions: questionRepo,
			results:   results,
		})

		result, err := svc.RecordAttempt(ctx, &RecordResultRequest{
			ExamID:  5,
			Answers: []SubmittedAnswer{{QuestionID: 10, Answer: "Paris"}},
		}, 7)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Score)
		require.Len(t, result.Answers, 2)
		assert.False(t, result.Answers[1].IsCorrect)
		assert.Empty(t, result.Answers[1].SubmittedAnswer)
	})

	t.Run("no answers fails validation", func(t *testing.T) {
		svc, _ := newResultServiceForTest(&mockRepository{})

		_, err := svc.RecordAttempt(ctx, &RecordResultRequest{ExamID: 5}, 7)

		assert.True(t, IsValidation(err))
	})
}
