package postgres

import (
	"context"

	"github.com/campus-hq/portal-service/internal/models"
	"github.com/campus-hq/portal-service/internal/repositories"
	"gorm.io/gorm"
)

type AcademicPostgreSQL struct {
	db *gorm.DB
}

func NewAcademicPostgreSQL(db *gorm.DB) repositories.AcademicRepository {
	return &AcademicPostgreSQL{db: db}
}

// ===== FACULTY =====

func (a *AcademicPostgreSQL) CreateFaculty(ctx context.Context, faculty *models.Faculty) error {
	return a.db.WithContext(ctx).Create(faculty).Error
}

func (a *AcademicPostgreSQL) GetFaculty(ctx context.Context, id uint) (*models.Faculty, error) {
	var faculty models.Faculty
	if err := a.db.WithContext(ctx).First(&faculty, id).Error; err != nil {
		return nil, err
	}
	return &faculty, nil
}

func (a *AcademicPostgreSQL) ListFaculties(ctx context.Context) ([]*models.Faculty, error) {
	var faculties []*models.Faculty
	if err := a.db.WithContext(ctx).Order("name asc").Find(&faculties).Error; err != nil {
		return nil, err
	}
	return faculties, nil
}

func (a *AcademicPostgreSQL) DeleteFaculty(ctx context.Context, id uint) error {
	return a.db.WithContext(ctx).Delete(&models.Faculty{}, id).Error
}

// ===== DEPARTMENT =====

func (a *AcademicPostgreSQL) CreateDepartment(ctx context.Context, department *models.Department) error {
	return a.db.WithContext(ctx).Create(department).Error
}

func (a *AcademicPostgreSQL) GetDepartment(ctx context.Context, id uint) (*models.Department, error) {
	var department models.Department
	if err := a.db.WithContext(ctx).Preload("Faculty").First(&department, id).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

func (a *AcademicPostgreSQL) ListDepartments(ctx context.Context, facultyID *uint) ([]*models.Department, error) {
	query := a.db.WithContext(ctx).Order("name asc")
	if facultyID != nil {
		query = query.Where("faculty_id = ?", *facultyID)
	}
	var departments []*models.Department
	if err := query.Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

func (a *AcademicPostgreSQL) DeleteDepartment(ctx context.Context, id uint) error {
	return a.db.WithContext(ctx).Delete(&models.Department{}, id).Error
}

// ===== LEVEL =====

func (a *AcademicPostgreSQL) CreateLevel(ctx context.Context, level *models.Level) error {
	return a.db.WithContext(ctx).Create(level).Error
}

func (a *AcademicPostgreSQL) GetLevel(ctx context.Context, id uint) (*models.Level, error) {
	var level models.Level
	if err := a.db.WithContext(ctx).Preload("Department").First(&level, id).Error; err != nil {
		return nil, err
	}
	return &level, nil
}

func (a *AcademicPostgreSQL) ListLevels(ctx context.Context, departmentID *uint) ([]*models.Level, error) {
	query := a.db.WithContext(ctx).Order("name asc")
	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}
	var levels []*models.Level
	if err := query.Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

func (a *AcademicPostgreSQL) DeleteLevel(ctx context.Context, id uint) error {
	return a.db.WithContext(ctx).Delete(&models.Level{}, id).Error
}

// ===== COURSE =====

func (a *AcademicPostgreSQL) CreateCourse(ctx context.Context, course *models.Course) error {
	return a.db.WithContext(ctx).Create(course).Error
}

func (a *AcademicPostgreSQL) GetCourse(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	err := a.db.WithContext(ctx).
		Preload("Faculty").
		Preload("Department").
		Preload("Level").
		First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (a *AcademicPostgreSQL) GetCourseByCode(ctx context.Context, code string) (*models.Course, error) {
	var course models.Course
	if err := a.db.WithContext(ctx).Where("code = ?", code).First(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (a *AcademicPostgreSQL) ListCourses(ctx context.Context, facultyID, departmentID, levelID *uint) ([]*models.Course, error) {
	query := a.db.WithContext(ctx).Order("code asc")
	if facultyID != nil {
		query = query.Where("faculty_id = ?", *facultyID)
	}
	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}
	if levelID != nil {
		query = query.Where("level_id = ?", *levelID)
	}
	var courses []*models.Course
	if err := query.Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (a *AcademicPostgreSQL) UpdateCourse(ctx context.Context, course *models.Course) error {
	return a.db.WithContext(ctx).Save(course).Error
}

func (a *AcademicPostgreSQL) DeleteCourse(ctx context.Context, id uint) error {
	return a.db.WithContext(ctx).Delete(&models.Course{}, id).Error
}

// ===== NOTES =====

func (a *AcademicPostgreSQL) CreateNote(ctx context.Context, note *models.Note) error {
	return a.db.WithContext(ctx).Create(note).Error
}

func (a *AcademicPostgreSQL) GetNote(ctx context.Context, id uint) (*models.Note, error) {
	var note models.Note
	if err := a.db.WithContext(ctx).Preload("Course").First(&note, id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

func (a *AcademicPostgreSQL) ListNotesByCourse(ctx context.Context, courseID uint) ([]*models.Note, error) {
	var notes []*models.Note
	err := a.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("created_at desc").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (a *AcademicPostgreSQL) DeleteNote(ctx context.Context, id uint) error {
	return a.db.WithContext(ctx).Delete(&models.Note{}, id).Error
}
