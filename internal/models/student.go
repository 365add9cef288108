package models

import (
	"time"

	"gorm.io/gorm"
)

type StudentRole string
type AdminRole string

const (
	RoleStudent StudentRole = "student"

	RoleAdmin    AdminRole = "Admin"
	RoleSubAdmin AdminRole = "Sub-Admin"
)

// Student is an account created at signup. Matric number and email are
// unique across the portal; login state is tracked on the row itself.
type Student struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	MatricNumber string      `json:"matric_number" gorm:"uniqueIndex;not null;size:30" validate:"required,matric_number"`
	Email        string      `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	PhoneNumber  *string     `json:"phone_number" gorm:"size:20" validate:"omitempty,min=7,max=20"`
	PasswordHash string      `json:"-" gorm:"not null;size:255"`
	Role         StudentRole `json:"role" gorm:"default:student;size:20"`
	LoggedIn     bool        `json:"logged_in" gorm:"default:false"`

	FacultyID    *uint `json:"faculty_id" gorm:"index"`
	DepartmentID *uint `json:"department_id" gorm:"index"`
	LevelID      *uint `json:"level_id" gorm:"index"`

	EmailVerified bool       `json:"email_verified" gorm:"default:false"`
	LastLoginAt   *time.Time `json:"last_login_at"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Faculty    *Faculty    `json:"faculty,omitempty" gorm:"foreignKey:FacultyID"`
	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Level      *Level      `json:"level,omitempty" gorm:"foreignKey:LevelID"`
}

func (Student) TableName() string {
	return "students"
}

// Admin is a staff account. Sub-Admins are scoped to a faculty/department
// assignment; full Admins have no assignment.
type Admin struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	MatricNumber string    `json:"matric_number" gorm:"uniqueIndex;not null;size:30" validate:"required"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"not null;size:255"`
	Role         AdminRole `json:"role" gorm:"not null;size:20" validate:"required,admin_role"`

	FacultyID    *uint `json:"faculty_id" gorm:"index"`
	DepartmentID *uint `json:"department_id" gorm:"index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Faculty    *Faculty    `json:"faculty,omitempty" gorm:"foreignKey:FacultyID"`
	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
}

func (Admin) TableName() string {
	return "admins"
}
