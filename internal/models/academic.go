package models

import (
	"time"

	"gorm.io/gorm"
)

// Faculty -> Department -> Level -> Course is a strict containment
// hierarchy; each row references its parent by ID.

type Faculty struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null;size:150" validate:"required,min=2,max=150"`
	Code string `json:"code" gorm:"size:20"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Faculty) TableName() string {
	return "faculties"
}

type Department struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"not null;size:150" validate:"required,min=2,max=150"`
	FacultyID uint   `json:"faculty_id" gorm:"not null;index" validate:"required"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Faculty *Faculty `json:"faculty,omitempty" gorm:"foreignKey:FacultyID"`
}

func (Department) TableName() string {
	return "departments"
}

type Level struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"not null;size:20" validate:"required"` // "100", "200", ...
	DepartmentID uint   `json:"department_id" gorm:"not null;index" validate:"required"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
}

func (Level) TableName() string {
	return "levels"
}

// Course carries all three ancestor IDs so a course can be resolved
// without walking the hierarchy. Creation validates the referenced
// faculty, department and level exist.
type Course struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Title        string `json:"title" gorm:"not null;size:200" validate:"required,min=2,max=200"`
	Code         string `json:"code" gorm:"uniqueIndex;not null;size:20" validate:"required,min=2,max=20"`
	FacultyID    uint   `json:"faculty_id" gorm:"not null;index" validate:"required"`
	DepartmentID uint   `json:"department_id" gorm:"not null;index" validate:"required"`
	LevelID      uint   `json:"level_id" gorm:"not null;index" validate:"required"`
	Unit         int    `json:"unit" gorm:"default:2" validate:"omitempty,min=1,max=10"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Faculty    *Faculty    `json:"faculty,omitempty" gorm:"foreignKey:FacultyID"`
	Department *Department `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Level      *Level      `json:"level,omitempty" gorm:"foreignKey:LevelID"`
}

func (Course) TableName() string {
	return "courses"
}

// Note is a pointer to an externally stored lecture file plus metadata.
// The file itself lives with the storage provider; only the URL is kept.
type Note struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	CourseID uint   `json:"course_id" gorm:"not null;index" validate:"required"`
	Title    string `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	FileURL  string `json:"file_url" gorm:"not null;size:500" validate:"required,url"`
	FileType string `json:"file_type" gorm:"size:50"`

	UploadedBy uint `json:"uploaded_by" gorm:"index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

func (Note) TableName() string {
	return "notes"
}
