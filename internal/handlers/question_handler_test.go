package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-hq/portal-service/internal/services"
	"github.com/campus-hq/portal-service/internal/utils"
)

type stubQuestionService struct {
	services.QuestionService
	bulkResult *services.BulkUploadResult
	bulkErr    error
	lastBulk   *services.BulkUploadRequest
}

func (s *stubQuestionService) BulkUpload(ctx context.Context, req *services.BulkUploadRequest, createdBy uint) (*services.BulkUploadResult, error) {
	s.lastBulk = req
	if s.bulkErr != nil {
		return nil, s.bulkErr
	}
	return s.bulkResult, nil
}

func newBulkRouter(svc services.QuestionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewQuestionHandler(svc, utils.NewDevelopmentLogger())
	router := gin.New()
	router.POST("/questions/bulk", handler.BulkUpload)
	return router
}

func TestQuestionHandler_BulkUpload(t *testing.T) {
	t.Run("successful batch answers 201 with a success message", func(t *testing.T) {
		svc := &stubQuestionService{bulkResult: &services.BulkUploadResult{Created: 3}}
		router := newBulkRouter(svc)

		payload := map[string]interface{}{
			"course_id": 1,
			"questions": []map[string]interface{}{
				{"text": "Q1", "options": []map[string]interface{}{{"text": "a", "is_correct": true}, {"text": "b"}}},
				{"text": "Q2", "options": []map[string]interface{}{{"text": "a", "is_correct": true}, {"text": "b"}}},
				{"text": "Q3", "options": []map[string]interface{}{{"text": "a", "is_correct": true}, {"text": "b"}}},
			},
		}
		body, err := json.Marshal(payload)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/questions/bulk", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp SuccessResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Questions uploaded", resp.Message)

		require.NotNil(t, svc.lastBulk)
		assert.Equal(t, uint(1), svc.lastBulk.CourseID)
		assert.Len(t, svc.lastBulk.Questions, 3)
	})

	t.Run("empty batch answers 400", func(t *testing.T) {
		svc := &stubQuestionService{bulkErr: services.ErrEmptyBatch}
		router := newBulkRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/questions/bulk",
			bytes.NewReader([]byte(`{"course_id":1,"questions":[]}`)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Validation failed", resp.Message)
	})

	t.Run("malformed JSON answers 400 before the service runs", func(t *testing.T) {
		svc := &stubQuestionService{}
		router := newBulkRouter(svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/questions/bulk",
			bytes.NewReader([]byte(`{"course_id":`)))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Nil(t, svc.lastBulk)
	})
}
