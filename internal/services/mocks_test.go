package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/campus-hq/portal-service/internal/models"
	"github.com/campus-hq/portal-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockRepository satisfies repositories.Repository with whatever mocks a
// test actually needs; untouched collections stay nil.
type mockRepository struct {
	students  repositories.StudentRepository
	admins    repositories.AdminRepository
	academics repositories.AcademicRepository
	questions repositories.QuestionRepository
	exams     repositories.ExamRepository
	results   repositories.ResultRepository
	otps      repositories.OTPRepository
	push      repositories.PushRepository
	settings  repositories.SettingsRepository
}

func (m *mockRepository) Students() repositories.StudentRepository   { return m.students }
func (m *mockRepository) Admins() repositories.AdminRepository       { return m.admins }
func (m *mockRepository) Academics() repositories.AcademicRepository { return m.academics }
func (m *mockRepository) Questions() repositories.QuestionRepository { return m.questions }
func (m *mockRepository) Exams() repositories.ExamRepository         { return m.exams }
func (m *mockRepository) Results() repositories.ResultRepository     { return m.results }
func (m *mockRepository) OTPs() repositories.OTPRepository           { return m.otps }
func (m *mockRepository) Push() repositories.PushRepository          { return m.push }
func (m *mockRepository) Settings() repositories.SettingsRepository  { return m.settings }

// ===== STUDENT =====

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) GetByMatric(ctx context.Context, matric string) (*models.Student, error) {
	args := m.Called(ctx, matric)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) Update(ctx context.Context, student *models.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) SetLoggedIn(ctx context.Context, id uint, loggedIn bool) error {
	args := m.Called(ctx, id, loggedIn)
	return args.Error(0)
}

func (m *MockStudentRepository) RecordLogin(ctx context.Context, id uint, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockStudentRepository) SetEmailVerified(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockStudentRepository) ExistsByMatric(ctx context.Context, matric string) (bool, error) {
	args := m.Called(ctx, matric)
	return args.Bool(0), args.Error(1)
}

func (m *MockStudentRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockStudentRepository) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Student), args.Get(1).(int64), args.Error(2)
}

// ===== ACADEMIC =====

type MockAcademicRepository struct {
	mock.Mock
}

func (m *MockAcademicRepository) CreateFaculty(ctx context.Context, faculty *models.Faculty) error {
	args := m.Called(ctx, faculty)
	return args.Error(0)
}

func (m *MockAcademicRepository) GetFaculty(ctx context.Context, id uint) (*models.Faculty, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Faculty), args.Error(1)
}

func (m *MockAcademicRepository) ListFaculties(ctx context.Context) ([]*models.Faculty, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Faculty), args.Error(1)
}

func (m *MockAcademicRepository) DeleteFaculty(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAcademicRepository) CreateDepartment(ctx context.Context, department *models.Department) error {
	args := m.Called(ctx, department)
	return args.Error(0)
}

func (m *MockAcademicRepository) GetDepartment(ctx context.Context, id uint) (*models.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Department), args.Error(1)
}

func (m *MockAcademicRepository) ListDepartments(ctx context.Context, facultyID *uint) ([]*models.Department, error) {
	args := m.Called(ctx, facultyID)
	return args.Get(0).([]*models.Department), args.Error(1)
}

func (m *MockAcademicRepository) DeleteDepartment(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAcademicRepository) CreateLevel(ctx context.Context, level *models.Level) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}

func (m *MockAcademicRepository) GetLevel(ctx context.Context, id uint) (*models.Level, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Level), args.Error(1)
}

func (m *MockAcademicRepository) ListLevels(ctx context.Context, departmentID *uint) ([]*models.Level, error) {
	args := m.Called(ctx, departmentID)
	return args.Get(0).([]*models.Level), args.Error(1)
}

func (m *MockAcademicRepository) DeleteLevel(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAcademicRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockAcademicRepository) GetCourse(ctx context.Context, id uint) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockAcademicRepository) GetCourseByCode(ctx context.Context, code string) (*models.Course, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockAcademicRepository) ListCourses(ctx context.Context, facultyID, departmentID, levelID *uint) ([]*models.Course, error) {
	args := m.Called(ctx, facultyID, departmentID, levelID)
	return args.Get(0).([]*models.Course), args.Error(1)
}

func (m *MockAcademicRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockAcademicRepository) DeleteCourse(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAcademicRepository) CreateNote(ctx context.Context, note *models.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockAcademicRepository) GetNote(ctx context.Context, id uint) (*models.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockAcademicRepository) ListNotesByCourse(ctx context.Context, courseID uint) ([]*models.Note, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).([]*models.Note), args.Error(1)
}

func (m *MockAcademicRepository) DeleteNote(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ===== QUESTION =====

type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *models.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) CreateBatch(ctx context.Context, questions []*models.Question) error {
	args := m.Called(ctx, questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByIDs(ctx context.Context, ids []uint) ([]*models.Question, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) ListByCourse(ctx context.Context, courseID uint, limit, offset int) ([]*models.Question, int64, error) {
	args := m.Called(ctx, courseID, limit, offset)
	return args.Get(0).([]*models.Question), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuestionRepository) Update(ctx context.Context, question *models.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionRepository) CountByCourse(ctx context.Context, courseID uint) (int64, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).(int64), args.Error(1)
}

// ===== EXAM =====

type MockExamRepository struct {
	mock.Mock
}

func (m *MockExamRepository) Create(ctx context.Context, exam *models.Exam) error {
	args := m.Called(ctx, exam)
	return args.Error(0)
}

func (m *MockExamRepository) GetByID(ctx context.Context, id uint) (*models.Exam, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exam), args.Error(1)
}

func (m *MockExamRepository) GetDuration(ctx context.Context, id uint) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockExamRepository) ListByCourse(ctx context.Context, courseID uint) ([]*models.Exam, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).([]*models.Exam), args.Error(1)
}

func (m *MockExamRepository) ListActive(ctx context.Context) ([]*models.Exam, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Exam), args.Error(1)
}

func (m *MockExamRepository) Update(ctx context.Context, exam *models.Exam) error {
	args := m.Called(ctx, exam)
	return args.Error(0)
}

func (m *MockExamRepository) SetActive(ctx context.Context, id uint, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockExamRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ===== RESULT =====

type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) Create(ctx context.Context, result *models.Result) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockResultRepository) GetByID(ctx context.Context, id uint) (*models.Result, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Result), args.Error(1)
}

func (m *MockResultRepository) GetByStudentAndExam(ctx context.Context, studentID, examID uint) (*models.Result, error) {
	args := m.Called(ctx, studentID, examID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Result), args.Error(1)
}

func (m *MockResultRepository) ExistsForAttempt(ctx context.Context, studentID, examID uint) (bool, error) {
	args := m.Called(ctx, studentID, examID)
	return args.Bool(0), args.Error(1)
}

func (m *MockResultRepository) List(ctx context.Context, filters repositories.ResultFilters) ([]*models.Result, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Result), args.Get(1).(int64), args.Error(2)
}

// ===== OTP =====

type MockOTPRepository struct {
	mock.Mock
}

func (m *MockOTPRepository) Create(ctx context.Context, otp *models.OTP) error {
	args := m.Called(ctx, otp)
	return args.Error(0)
}

func (m *MockOTPRepository) GetLatestByEmail(ctx context.Context, email string) (*models.OTP, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OTP), args.Error(1)
}

func (m *MockOTPRepository) MarkUsed(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ===== PUSH =====

type MockPushRepository struct {
	mock.Mock
}

func (m *MockPushRepository) CreateSubscription(ctx context.Context, sub *models.PushSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockPushRepository) GetSubscriptionByEndpoint(ctx context.Context, endpoint string) (*models.PushSubscription, error) {
	args := m.Called(ctx, endpoint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PushSubscription), args.Error(1)
}

func (m *MockPushRepository) ListActiveSubscriptions(ctx context.Context) ([]*models.PushSubscription, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.PushSubscription), args.Error(1)
}

func (m *MockPushRepository) DeactivateSubscription(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPushRepository) DeleteSubscriptionByEndpoint(ctx context.Context, endpoint string) error {
	args := m.Called(ctx, endpoint)
	return args.Error(0)
}

func (m *MockPushRepository) CreateLog(ctx context.Context, n *models.PushNotification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockPushRepository) ListLogs(ctx context.Context, limit int) ([]*models.PushNotification, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*models.PushNotification), args.Error(1)
}

func (m *MockPushRepository) DeleteLog(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ===== SETTINGS =====

// fakeSettingsRepository is an in-memory stand-in that mirrors the
// store's upsert semantics: reads before the first write report the
// toggle as off.
type fakeSettingsRepository struct {
	mu      sync.Mutex
	written bool
	enabled bool
}

func (f *fakeSettingsRepository) GetAds(ctx context.Context) (*models.AdSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.written {
		return &models.AdSettings{ID: 1, Enabled: false}, nil
	}
	return &models.AdSettings{ID: 1, Enabled: f.enabled}, nil
}

func (f *fakeSettingsRepository) UpsertAds(ctx context.Context, enabled bool) (*models.AdSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.written = true
	f.enabled = enabled
	return &models.AdSettings{ID: 1, Enabled: enabled}, nil
}
