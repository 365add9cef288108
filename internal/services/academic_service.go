package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campus-hq/portal-service/internal/models"
	"github.com/campus-hq/portal-service/internal/repositories"
	"github.com/campus-hq/portal-service/internal/utils"
)

type CreateCourseRequest struct {
	Title        string `json:"title" validate:"required,min=2,max=200"`
	Code         string `json:"code" validate:"required,min=2,max=20"`
	FacultyID    uint   `json:"faculty_id" validate:"required"`
	DepartmentID uint   `json:"department_id" validate:"required"`
	LevelID      uint   `json:"level_id" validate:"required"`
	Unit         int    `json:"unit" validate:"omitempty,min=1,max=10"`
}

type CreateNoteRequest struct {
	CourseID uint   `json:"course_id" validate:"required"`
	Title    string `json:"title" validate:"required,min=1,max=200"`
	FileURL  string `json:"file_url" validate:"required,url"`
	FileType string `json:"file_type"`
}

// AcademicService manages the faculty/department/level/course hierarchy
// and course notes.
type AcademicService interface {
	CreateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error)
	GetFaculty(ctx context.Context, id uint) (*models.Faculty, error)
	ListFaculties(ctx context.Context) ([]*models.Faculty, error)
	DeleteFaculty(ctx context.Context, id uint) error

	CreateDepartment(ctx context.Context, department *models.Department) (*models.Department, error)
	ListDepartments(ctx context.Context, facultyID *uint) ([]*models.Department, error)
	DeleteDepartment(ctx context.Context, id uint) error

	CreateLevel(ctx context.Context, level *models.Level) (*models.Level, error)
	ListLevels(ctx context.Context, departmentID *uint) ([]*models.Level, error)
	DeleteLevel(ctx context.Context, id uint) error

	CreateCourse(ctx context.Context, req *CreateCourseRequest) (*models.Course, error)
	GetCourse(ctx context.Context, id uint) (*models.Course, error)
	ListCourses(ctx context.Context, facultyID, departmentID, levelID *uint) ([]*models.Course, error)
	DeleteCourse(ctx context.Context, id uint) error

	CreateNote(ctx context.Context, req *CreateNoteRequest, uploadedBy uint) (*models.Note, error)
	ListNotesByCourse(ctx context.Context, courseID uint) ([]*models.Note, error)
	DeleteNote(ctx context.Context, id uint) error
}

type academicService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *utils.Validator
}

func NewAcademicService(repo repositories.Repository, logger *slog.Logger, validator *utils.Validator) AcademicService {
	return &academicService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// ===== FACULTY =====

func (s *academicService) CreateFaculty(ctx context.Context, faculty *models.Faculty) (*models.Faculty, error) {
	if err := s.validator.Struct(faculty); err != nil {
		return nil, err
	}
	if err := s.repo.Academics().CreateFaculty(ctx, faculty); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create faculty: %w", err)
	}
	s.logger.Info("faculty created", "faculty_id", faculty.ID, "name", faculty.Name)
	return faculty, nil
}

func (s *academicService) GetFaculty(ctx context.Context, id uint) (*models.Faculty, error) {
	faculty, err := s.repo.Academics().GetFaculty(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFacultyNotFound
		}
		return nil, fmt.Errorf("failed to get faculty: %w", err)
	}
	return faculty, nil
}

func (s *academicService) ListFaculties(ctx context.Context) ([]*models.Faculty, error) {
	return s.repo.Academics().ListFaculties(ctx)
}

func (s *academicService) DeleteFaculty(ctx context.Context, id uint) error {
	if _, err := s.GetFaculty(ctx, id); err != nil {
		return err
	}
	return s.repo.Academics().DeleteFaculty(ctx, id)
}

// ===== DEPARTMENT =====

func (s *academicService) CreateDepartment(ctx context.Context, department *models.Department) (*models.Department, error) {
	if err := s.validator.Struct(department); err != nil {
		return nil, err
	}
	if _, err := s.GetFaculty(ctx, department.FacultyID); err != nil {
		return nil, err
	}
	if err := s.repo.Academics().CreateDepartment(ctx, department); err != nil {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}
	s.logger.Info("department created", "department_id", department.ID, "name", department.Name)
	return department, nil
}

func (s *academicService) ListDepartments(ctx context.Context, facultyID *uint) ([]*models.Department, error) {
	return s.repo.Academics().ListDepartments(ctx, facultyID)
}

func (s *academicService) DeleteDepartment(ctx context.Context, id uint) error {
	if _, err := s.repo.Academics().GetDepartment(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrDepartmentNotFound
		}
		return fmt.Errorf("failed to get department: %w", err)
	}
	return s.repo.Academics().DeleteDepartment(ctx, id)
}

// ===== LEVEL =====

func (s *academicService) CreateLevel(ctx context.Context, level *models.Level) (*models.Level, error) {
	if err := s.validator.Struct(level); err != nil {
		return nil, err
	}
	if _, err := s.repo.Academics().GetDepartment(ctx, level.DepartmentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	if err := s.repo.Academics().CreateLevel(ctx, level); err != nil {
		return nil, fmt.Errorf("failed to create level: %w", err)
	}
	return level, nil
}

func (s *academicService) ListLevels(ctx context.Context, departmentID *uint) ([]*models.Level, error) {
	return s.repo.Academics().ListLevels(ctx, departmentID)
}

func (s *academicService) DeleteLevel(ctx context.Context, id uint) error {
	if _, err := s.repo.Academics().GetLevel(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrLevelNotFound
		}
		return fmt.Errorf("failed to get level: %w", err)
	}
	return s.repo.Academics().DeleteLevel(ctx, id)
}

// ===== COURSE =====

// CreateCourse checks all three ancestors exist before writing; a course
// must reference an existing faculty, department and level.
func (s *academicService) CreateCourse(ctx context.Context, req *CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	if _, err := s.GetFaculty(ctx, req.FacultyID); err != nil {
		return nil, err
	}
	if _, err := s.repo.Academics().GetDepartment(ctx, req.DepartmentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	if _, err := s.repo.Academics().GetLevel(ctx, req.LevelID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLevelNotFound
		}
		return nil, fmt.Errorf("failed to get level: %w", err)
	}

	course := &models.Course{
		Title:        req.Title,
		Code:         req.Code,
		FacultyID:    req.FacultyID,
		DepartmentID: req.DepartmentID,
		LevelID:      req.LevelID,
		Unit:         req.Unit,
	}
	if err := s.repo.Academics().CreateCourse(ctx, course); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrCourseCodeTaken
		}
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Info("course created", "course_id", course.ID, "code", course.Code)
	return course, nil
}

func (s *academicService) GetCourse(ctx context.Context, id uint) (*models.Course, error) {
	course, err := s.repo.Academics().GetCourse(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

func (s *academicService) ListCourses(ctx context.Context, facultyID, departmentID, levelID *uint) ([]*models.Course, error) {
	return s.repo.Academics().ListCourses(ctx, facultyID, departmentID, levelID)
}

func (s *academicService) DeleteCourse(ctx context.Context, id uint) error {
	if _, err := s.GetCourse(ctx, id); err != nil {
		return err
	}
	return s.repo.Academics().DeleteCourse(ctx, id)
}

// ===== NOTES =====

func (s *academicService) CreateNote(ctx context.Context, req *CreateNoteRequest, uploadedBy uint) (*models.Note, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if _, err := s.GetCourse(ctx, req.CourseID); err != nil {
		return nil, err
	}

	note := &models.Note{
		CourseID:   req.CourseID,
		Title:      req.Title,
		FileURL:    req.FileURL,
		FileType:   req.FileType,
		UploadedBy: uploadedBy,
	}
	if err := s.repo.Academics().CreateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

func (s *academicService) ListNotesByCourse(ctx context.Context, courseID uint) ([]*models.Note, error) {
	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	return s.repo.Academics().ListNotesByCourse(ctx, courseID)
}

func (s *academicService) DeleteNote(ctx context.Context, id uint) error {
	if _, err := s.repo.Academics().GetNote(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("failed to get note: %w", err)
	}
	return s.repo.Academics().DeleteNote(ctx, id)
}
