package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/campus-hq/portal-service/internal/models"
	"github.com/campus-hq/portal-service/internal/utils"
)

func newQuestionServiceForTest(repo *mockRepository) QuestionService {
	return NewQuestionService(repo, newTestLogger(), utils.NewValidator())
}

func twoOptionPayload(text string) QuestionPayload {
	return QuestionPayload{
		Text: text,
		Options: []models.QuestionOption{
			{Text: "Yes", IsCorrect: true},
			{Text: "No"},
		},
	}
}

func TestQuestionService_BulkUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("empty batch fails validation and inserts nothing", func(t *testing.T) {
		questions := &MockQuestionRepository{}
		academics := &MockAcademicRepository{}
		svc := newQuestionServiceForTest(&mockRepository{questions: questions, academics: academics})

		_, err := svc.BulkUpload(ctx, &BulkUploadRequest{CourseID: 1}, 1)

		assert.ErrorIs(t, err, ErrEmptyBatch)
		assert.True(t, IsValidation(err))
		questions.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	})

	t.Run("valid batch lands in one insert", func(t *testing.T) {
		questions := &MockQuestionRepository{}
		questions.On("CreateBatch", mock.Anything, mock.MatchedBy(func(batch []*models.Question) bool {
			return len(batch) == 2 && batch[0].CourseID == 1 && batch[0].Marks == 1
		})).Return(nil).Once()

		academics := &MockAcademicRepository{}
		academics.On("GetCourse", mock.Anything, uint(1)).Return(&models.Course{Code: "CSC101"}, nil)

		svc := newQuestionServiceForTest(&mockRepository{questions: questions, academics: academics})

		result, err := svc.BulkUpload(ctx, &BulkUploadRequest{
			CourseID: 1,
			Questions: []QuestionPayload{
				twoOptionPayload("Is Go compiled?"),
				twoOptionPayload("Is Go garbage collected?"),
			},
		}, 1)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Created)
		questions.AssertExpectations(t)
	})

	t.Run("one malformed question rejects the whole batch", func(t *testing.T) {
		questions := &MockQuestionRepository{}
		academics := &MockAcademicRepository{}
		svc := newQuestionServiceForTest(&mockRepository{questions: questions, academics: academics})

		_, err := svc.BulkUpload(ctx, &BulkUploadRequest{
			CourseID: 1,
			Questions: []QuestionPayload{
				twoOptionPayload("Fine question"),
				{Text: "Only one option", Options: []models.QuestionOption{{Text: "A"}}},
			},
		}, 1)

		assert.Error(t, err)
		questions.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	})

	t.Run("unknown course", func(t *testing.T) {
		academics := &MockAcademicRepository{}
		academics.On("GetCourse", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := newQuestionServiceForTest(&mockRepository{academics: academics})

		_, err := svc.BulkUpload(ctx, &BulkUploadRequest{
			CourseID:  99,
			Questions: []QuestionPayload{twoOptionPayload("Hello?")},
		}, 1)

		assert.ErrorIs(t, err, ErrCourseNotFound)
	})
}

func buildQuestionSheet(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []interface{}{"Question Text", "Option A", "Option B", "Option C", "Option D", "Correct Answer", "Marks"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestQuestionService_ImportFromExcel(t *testing.T) {
	ctx := context.Background()

	t.Run("valid rows go through the batch path", func(t *testing.T) {
		questions := &MockQuestionRepository{}
		questions.On("CreateBatch", mock.Anything, mock.MatchedBy(func(batch []*models.Question) bool {
			if len(batch) != 2 {
				return false
			}
			first := batch[0]
			return first.Text == "What is 2+2?" &&
				len(first.Options) == 4 &&
				first.Options[1].IsCorrect && // option B
				first.Marks == 2
		})).Return(nil).Once()

		academics := &MockAcademicRepository{}
		academics.On("GetCourse", mock.Anything, uint(1)).Return(&models.Course{Code: "MTH101"}, nil)

		svc := newQuestionServiceForTest(&mockRepository{questions: questions, academics: academics})

		sheet := buildQuestionSheet(t, [][]interface{}{
			{"What is 2+2?", "3", "4", "5", "6", "B", 2},
			{"Pick the even numbers", "1", "2", "3", "4", "B,D", 1},
		})

		result, err := svc.ImportFromExcel(ctx, 1, sheet, 1)

		require.NoError(t, err)
		assert.Equal(t, 2, result.TotalRows)
		assert.Equal(t, 2, result.SuccessCount)
		assert.Equal(t, 0, result.ErrorCount)
		questions.AssertExpectations(t)
	})

	t.Run("bad rows are reported but do not sink good ones", func(t *testing.T) {
		questions := &MockQuestionRepository{}
		questions.On("CreateBatch", mock.Anything, mock.MatchedBy(func(batch []*models.Question) bool {
			return len(batch) == 1
		})).Return(nil).Once()

		academics := &MockAcademicRepository{}
		academics.On("GetCourse", mock.Anything, uint(1)).Return(&models.Course{Code: "MTH101"}, nil)

		svc := newQuestionServiceForTest(&mockRepository{questions: questions, academics: academics})

		sheet := buildQuestionSheet(t, [][]interface{}{
			{"", "3", "4", "5", "6", "B", 1},
			{"What is 2+2?", "3", "4", "5", "6", "B", 1},
		})

		result, err := svc.ImportFromExcel(ctx, 1, sheet, 1)

		require.NoError(t, err)
		assert.Equal(t, 1, result.SuccessCount)
		assert.Equal(t, 1, result.ErrorCount)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "row 2")
	})

	t.Run("header-only sheet is an empty batch", func(t *testing.T) {
		svc := newQuestionServiceForTest(&mockRepository{})

		sheet := buildQuestionSheet(t, nil)
		_, err := svc.ImportFromExcel(ctx, 1, sheet, 1)

		assert.ErrorIs(t, err, ErrEmptyBatch)
	})
}
