package handlers

import (
	"net/http"

	"github.com/campus-hq/portal-service/internal/services"
	"github.com/campus-hq/portal-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ResultHandler struct {
	BaseHandler
	resultService services.ResultService
}

func NewResultHandler(resultService services.ResultService, logger utils.Logger) *ResultHandler {
	return &ResultHandler{
		BaseHandler:   NewBaseHandler(logger),
		resultService: resultService,
	}
}

// RecordResult grades and stores the authenticated student's attempt.
// A second submission for the same exam is rejected with a conflict.
func (h *ResultHandler) RecordResult(c *gin.Context) {
	var req services.RecordResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	studentID := currentUserID(c)
	if studentID == 0 {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Authentication required",
		})
		return
	}

	h.LogRequest(c, "Recording exam result", "exam_id", req.ExamID)

	result, err := h.resultService.RecordAttempt(c.Request.Context(), &req, studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *ResultHandler) GetResult(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.resultService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMyResults lists the authenticated student's results
func (h *ResultHandler) GetMyResults(c *gin.Context) {
	studentID := currentUserID(c)
	if studentID == 0 {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Authentication required",
		})
		return
	}

	page := h.parseIntQuery(c, "page", 1)
	size := h.parseIntQuery(c, "size", 20)

	results, total, err := h.resultService.ListByStudent(c.Request.Context(), studentID, size, (page-1)*size)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"total":   total,
		"page":    page,
		"size":    size,
	})
}

// GetStudentResults lists a student's results for admin review
func (h *ResultHandler) GetStudentResults(c *gin.Context) {
	studentID, ok := h.parseIDParam(c, "student_id")
	if !ok {
		return
	}

	page := h.parseIntQuery(c, "page", 1)
	size := h.parseIntQuery(c, "size", 20)

	results, total, err := h.resultService.ListByStudent(c.Request.Context(), studentID, size, (page-1)*size)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"total":   total,
		"page":    page,
		"size":    size,
	})
}

// GetExamResults lists every recorded result for one exam
func (h *ResultHandler) GetExamResults(c *gin.Context) {
	examID, ok := h.parseIDParam(c, "exam_id")
	if !ok {
		return
	}

	page := h.parseIntQuery(c, "page", 1)
	size := h.parseIntQuery(c, "size", 20)

	results, total, err := h.resultService.ListByExam(c.Request.Context(), examID, size, (page-1)*size)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"total":   total,
		"page":    page,
		"size":    size,
	})
}
