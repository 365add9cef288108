package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-hq/portal-service/internal/models"
	"github.com/campus-hq/portal-service/internal/services"
	"github.com/campus-hq/portal-service/internal/utils"
)

// stubExamService cancels out everything except the timer lookup.
type stubExamService struct {
	services.ExamService
	timer    *services.ExamTimerResponse
	timerErr error
}

func (s *stubExamService) GetTimer(ctx context.Context, id uint) (*services.ExamTimerResponse, error) {
	if s.timerErr != nil {
		return nil, s.timerErr
	}
	return s.timer, nil
}

func newTimerRouter(svc services.ExamService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewExamHandler(svc, utils.NewDevelopmentLogger())
	router := gin.New()
	router.GET("/exams/:id/timer", handler.GetTimer)
	return router
}

func TestExamHandler_GetTimer(t *testing.T) {
	t.Run("returns the duration", func(t *testing.T) {
		router := newTimerRouter(&stubExamService{
			timer: &services.ExamTimerResponse{ExamID: 5, Duration: 45},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/exams/5/timer", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body services.ExamTimerResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, uint(5), body.ExamID)
		assert.Equal(t, 45, body.Duration)
	})

	t.Run("unknown exam yields 404 with a message body", func(t *testing.T) {
		router := newTimerRouter(&stubExamService{timerErr: services.ErrExamNotFound})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/exams/999/timer", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Exam not found", body["message"])
	})

	t.Run("id zero reaches the service and yields 404", func(t *testing.T) {
		router := newTimerRouter(&stubExamService{timerErr: services.ErrExamNotFound})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/exams/0/timer", nil)
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Exam not found", body["message"])
	})

	t.Run("non-numeric id is a bad request", func(t *testing.T) {
		router := newTimerRouter(&stubExamService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/exams/abc/timer", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// stubExamListService backs the list endpoint.
type stubExamListService struct {
	services.ExamService
	active []*models.Exam
}

func (s *stubExamListService) ListActive(ctx context.Context) ([]*models.Exam, error) {
	return s.active, nil
}

func TestExamHandler_ListActive(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewExamHandler(&stubExamListService{
		active: []*models.Exam{{Title: "Midterm", Duration: 60, IsActive: true}},
	}, utils.NewDevelopmentLogger())

	router := gin.New()
	router.GET("/exams", handler.ListExams)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/exams", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body []models.Exam
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Midterm", body[0].Title)
}
