package postgres

import (
	"github.com/campus-hq/portal-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
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

// NewRepository wires every collection repository over one gorm handle.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		students:  NewStudentPostgreSQL(db),
		admins:    NewAdminPostgreSQL(db),
		academics: NewAcademicPostgreSQL(db),
		questions: NewQuestionPostgreSQL(db),
		exams:     NewExamPostgreSQL(db),
		results:   NewResultPostgreSQL(db),
		otps:      NewOTPPostgreSQL(db),
		push:      NewPushPostgreSQL(db),
		settings:  NewSettingsPostgreSQL(db),
	}
}

func (r *repository) Students() repositories.StudentRepository   { return r.students }
func (r *repository) Admins() repositories.AdminRepository       { return r.admins }
func (r *repository) Academics() repositories.AcademicRepository { return r.academics }
func (r *repository) Questions() repositories.QuestionRepository { return r.questions }
func (r *repository) Exams() repositories.ExamRepository         { return r.exams }
func (r *repository) Results() repositories.ResultRepository     { return r.results }
func (r *repository) OTPs() repositories.OTPRepository           { return r.otps }
func (r *repository) Push() repositories.PushRepository          { return r.push }
func (r *repository) Settings() repositories.SettingsRepository  { return r.settings }

// applySort appends an ORDER BY clause from filter fields, defaulting to
// newest-first.
func applySort(db *gorm.DB, sortBy, sortOrder string, allowed map[string]bool) *gorm.DB {
	if sortBy == "" || !allowed[sortBy] {
		sortBy = "created_at"
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	return db.Order(sortBy + " " + sortOrder)
}

// applyLimit applies pagination with a sane default page size.
func applyLimit(db *gorm.DB, limit, offset int) *gorm.DB {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return db.Limit(limit).Offset(offset)
}
