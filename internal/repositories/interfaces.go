package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/campus-hq/portal-service/internal/models"
	"gorm.io/gorm"
)

// ===== SHARED FILTER STRUCTS =====

type StudentFilters struct {
	FacultyID    *uint  `json:"faculty_id"`
	DepartmentID *uint  `json:"department_id"`
	LevelID      *uint  `json:"level_id"`
	LoggedIn     *bool  `json:"logged_in"`
	Limit        int    `json:"limit"`
	Offset       int    `json:"offset"`
	SortBy       string `json:"sort_by"`    // "created_at", "matric_number"
	SortOrder    string `json:"sort_order"` // "asc", "desc"
}

type ResultFilters struct {
	StudentID    *uint `json:"student_id"`
	ExamID       *uint `json:"exam_id"`
	DepartmentID *uint `json:"department_id"`
	Limit        int   `json:"limit"`
	Offset       int   `json:"offset"`
}

// ===== REPOSITORY INTERFACES =====

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	GetByMatric(ctx context.Context, matric string) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	SetLoggedIn(ctx context.Context, id uint, loggedIn bool) error
	RecordLogin(ctx context.Context, id uint, at time.Time) error
	SetEmailVerified(ctx context.Context, email string) error
	ExistsByMatric(ctx context.Context, matric string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filters StudentFilters) ([]*models.Student, int64, error)
}

type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id uint) (*models.Admin, error)
	GetByMatric(ctx context.Context, matric string) (*models.Admin, error)
	Update(ctx context.Context, admin *models.Admin) error
	List(ctx context.Context, limit, offset int) ([]*models.Admin, error)
}

// AcademicRepository covers the Faculty -> Department -> Level -> Course
// hierarchy and course notes.
type AcademicRepository interface {
	CreateFaculty(ctx context.Context, faculty *models.Faculty) error
	GetFaculty(ctx context.Context, id uint) (*models.Faculty, error)
	ListFaculties(ctx context.Context) ([]*models.Faculty, error)
	DeleteFaculty(ctx context.Context, id uint) error

	CreateDepartment(ctx context.Context, department *models.Department) error
	GetDepartment(ctx context.Context, id uint) (*models.Department, error)
	ListDepartments(ctx context.Context, facultyID *uint) ([]*models.Department, error)
	DeleteDepartment(ctx context.Context, id uint) error

	CreateLevel(ctx context.Context, level *models.Level) error
	GetLevel(ctx context.Context, id uint) (*models.Level, error)
	ListLevels(ctx context.Context, departmentID *uint) ([]*models.Level, error)
	DeleteLevel(ctx context.Context, id uint) error

	CreateCourse(ctx context.Context, course *models.Course) error
	GetCourse(ctx context.Context, id uint) (*models.Course, error)
	GetCourseByCode(ctx context.Context, code string) (*models.Course, error)
	ListCourses(ctx context.Context, facultyID, departmentID, levelID *uint) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id uint) error

	CreateNote(ctx context.Context, note *models.Note) error
	GetNote(ctx context.Context, id uint) (*models.Note, error)
	ListNotesByCourse(ctx context.Context, courseID uint) ([]*models.Note, error)
	DeleteNote(ctx context.Context, id uint) error
}

type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	// CreateBatch inserts all questions in one unordered batch; the
	// store's batch semantics decide partial-failure behavior.
	CreateBatch(ctx context.Context, questions []*models.Question) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*models.Question, error)
	ListByCourse(ctx context.Context, courseID uint, limit, offset int) ([]*models.Question, int64, error)
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id uint) error
	CountByCourse(ctx context.Context, courseID uint) (int64, error)
}

type ExamRepository interface {
	Create(ctx context.Context, exam *models.Exam) error
	GetByID(ctx context.Context, id uint) (*models.Exam, error)
	GetDuration(ctx context.Context, id uint) (int, error)
	ListByCourse(ctx context.Context, courseID uint) ([]*models.Exam, error)
	ListActive(ctx context.Context) ([]*models.Exam, error)
	Update(ctx context.Context, exam *models.Exam) error
	SetActive(ctx context.Context, id uint, active bool) error
	Delete(ctx context.Context, id uint) error
}

type ResultRepository interface {
	Create(ctx context.Context, result *models.Result) error
	GetByID(ctx context.Context, id uint) (*models.Result, error)
	GetByStudentAndExam(ctx context.Context, studentID, examID uint) (*models.Result, error)
	ExistsForAttempt(ctx context.Context, studentID, examID uint) (bool, error)
	List(ctx context.Context, filters ResultFilters) ([]*models.Result, int64, error)
}

type OTPRepository interface {
	Create(ctx context.Context, otp *models.OTP) error
	GetLatestByEmail(ctx context.Context, email string) (*models.OTP, error)
	MarkUsed(ctx context.Context, id uint) error
}

type PushRepository interface {
	CreateSubscription(ctx context.Context, sub *models.PushSubscription) error
	GetSubscriptionByEndpoint(ctx context.Context, endpoint string) (*models.PushSubscription, error)
	ListActiveSubscriptions(ctx context.Context) ([]*models.PushSubscription, error)
	DeactivateSubscription(ctx context.Context, id uint) error
	DeleteSubscriptionByEndpoint(ctx context.Context, endpoint string) error

	CreateLog(ctx context.Context, n *models.PushNotification) error
	// ListLogs returns entries most-recent-first; the cap is enforced here.
	ListLogs(ctx context.Context, limit int) ([]*models.PushNotification, error)
	DeleteLog(ctx context.Context, id uint) error
}

type SettingsRepository interface {
	GetAds(ctx context.Context) (*models.AdSettings, error)
	// UpsertAds writes the single settings row, creating it on first use.
	UpsertAds(ctx context.Context, enabled bool) (*models.AdSettings, error)
}

// ===== AGGREGATE =====

// Repository bundles every collection's repository behind one handle.
type Repository interface {
	Students() StudentRepository
	Admins() AdminRepository
	Academics() AcademicRepository
	Questions() QuestionRepository
	Exams() ExamRepository
	Results() ResultRepository
	OTPs() OTPRepository
	Push() PushRepository
	Settings() SettingsRepository
}

// IsNotFoundError reports whether err is the store's "no such row" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateError reports whether err is a uniqueness violation.
func IsDuplicateError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
