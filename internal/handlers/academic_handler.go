package handlers

import (
	"net/http"

	"github.com/campus-hq/portal-service/internal/models"
	"github.com/campus-hq/portal-service/internal/services"
	"github.com/campus-hq/portal-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type AcademicHandler struct {
	BaseHandler
	academicService services.AcademicService
}

func NewAcademicHandler(academicService services.AcademicService, logger utils.Logger) *AcademicHandler {
	return &AcademicHandler{
		BaseHandler:     NewBaseHandler(logger),
		academicService: academicService,
	}
}

// ===== FACULTIES =====

func (h *AcademicHandler) CreateFaculty(c *gin.Context) {
	var faculty models.Faculty
	if err := c.ShouldBindJSON(&faculty); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	created, err := h.academicService.CreateFaculty(c.Request.Context(), &faculty)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *AcademicHandler) GetFaculty(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	faculty, err := h.academicService.GetFaculty(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, faculty)
}

func (h *AcademicHandler) ListFaculties(c *gin.Context) {
	faculties, err := h.academicService.ListFaculties(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, faculties)
}

func (h *AcademicHandler) DeleteFaculty(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.academicService.DeleteFaculty(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Faculty deleted"})
}

// ===== DEPARTMENTS =====

func (h *AcademicHandler) CreateDepartment(c *gin.Context) {
	var department models.Department
	if err := c.ShouldBindJSON(&department); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	created, err := h.academicService.CreateDepartment(c.Request.Context(), &department)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *AcademicHandler) ListDepartments(c *gin.Context) {
	facultyID := h.parseUintQuery(c, "faculty_id")

	departments, err := h.academicService.ListDepartments(c.Request.Context(), facultyID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, departments)
}

func (h *AcademicHandler) DeleteDepartment(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.academicService.DeleteDepartment(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Department deleted"})
}

// ===== LEVELS =====

func (h *AcademicHandler) CreateLevel(c *gin.Context) {
	var level models.Level
	if err := c.ShouldBindJSON(&level); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	created, err := h.academicService.CreateLevel(c.Request.Context(), &level)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *AcademicHandler) ListLevels(c *gin.Context) {
	departmentID := h.parseUintQuery(c, "department_id")

	levels, err := h.academicService.ListLevels(c.Request.Context(), departmentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, levels)
}

func (h *AcademicHandler) DeleteLevel(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.academicService.DeleteLevel(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Level deleted"})
}

// ===== COURSES =====

func (h *AcademicHandler) CreateCourse(c *gin.Context) {
	h.LogRequest(c, "Creating course")

	var req services.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	course, err := h.academicService.CreateCourse(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

func (h *AcademicHandler) GetCourse(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	course, err := h.academicService.GetCourse(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// ListCourses filters by any combination of faculty, department and level.
func (h *AcademicHandler) ListCourses(c *gin.Context) {
	facultyID := h.parseUintQuery(c, "faculty_id")
	departmentID := h.parseUintQuery(c, "department_id")
	levelID := h.parseUintQuery(c, "level_id")

	courses, err := h.academicService.ListCourses(c.Request.Context(), facultyID, departmentID, levelID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

func (h *AcademicHandler) DeleteCourse(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.academicService.DeleteCourse(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Course deleted"})
}

// ===== NOTES =====

func (h *AcademicHandler) CreateNote(c *gin.Context) {
	var req services.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	note, err := h.academicService.CreateNote(c.Request.Context(), &req, currentUserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, note)
}

func (h *AcademicHandler) ListCourseNotes(c *gin.Context) {
	courseID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	notes, err := h.academicService.ListNotesByCourse(c.Request.Context(), courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, notes)
}

func (h *AcademicHandler) DeleteNote(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.academicService.DeleteNote(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Note deleted"})
}
