package handlers

import (
	"net/http"

	"github.com/campus-hq/portal-service/internal/services"
	"github.com/campus-hq/portal-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	BaseHandler
	questionService services.QuestionService
}

func NewQuestionHandler(questionService services.QuestionService, logger utils.Logger) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler:     NewBaseHandler(logger),
		questionService: questionService,
	}
}

type createQuestionRequest struct {
	CourseID uint `json:"course_id" validate:"required"`
	services.QuestionPayload
}

// CreateQuestion creates a single question
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req createQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), req.CourseID, &req.QuestionPayload, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, question)
}

func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	question, err := h.questionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

// ListQuestions pages through a course's question pool
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	courseID := h.parseUintQuery(c, "course_id")
	if courseID == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "course_id query parameter is required",
		})
		return
	}

	page := h.parseIntQuery(c, "page", 1)
	size := h.parseIntQuery(c, "size", 20)

	questions, total, err := h.questionService.ListByCourse(c.Request.Context(), *courseID, size, (page-1)*size)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"questions": questions,
		"total":     total,
		"page":      page,
		"size":      size,
	})
}

func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var payload services.QuestionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	question, err := h.questionService.Update(c.Request.Context(), id, &payload)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Question deleted"})
}

// BulkUpload inserts a JSON array of questions in one batch. An empty
// array fails validation and inserts nothing.
func (h *QuestionHandler) BulkUpload(c *gin.Context) {
	h.LogRequest(c, "Bulk uploading questions")

	var req services.BulkUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	result, err := h.questionService.BulkUpload(c.Request.Context(), &req, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Questions uploaded",
		Data:    result,
	})
}

// ImportQuestions accepts an xlsx upload under the "file" form field and
// routes its rows through the batch insert path.
func (h *QuestionHandler) ImportQuestions(c *gin.Context) {
	courseID := h.parseUintQuery(c, "course_id")
	if courseID == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "course_id query parameter is required",
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Missing file upload",
			Details: err.Error(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Unable to read upload",
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	h.LogRequest(c, "Importing questions from spreadsheet",
		"course_id", *courseID, "filename", fileHeader.Filename)

	result, err := h.questionService.ImportFromExcel(c.Request.Context(), *courseID, file, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message: "Import complete",
		Data:    result,
	})
}
