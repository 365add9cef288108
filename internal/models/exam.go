package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuestionOption is one entry in a question's ordered option list.
// Exactly the options flagged correct form the answer set; no
// "exactly one correct" rule is enforced at this layer.
type QuestionOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type Question struct {
	ID       uint                                 `json:"id" gorm:"primaryKey"`
	CourseID uint                                 `json:"course_id" gorm:"not null;index" validate:"required"`
	Text     string                               `json:"text" gorm:"type:text;not null" validate:"required,min=1"`
	Options  datatypes.JSONSlice[QuestionOption] `json:"options" gorm:"type:jsonb" validate:"required,min=2,dive"`
	Marks    int                                  `json:"marks" gorm:"default:1" validate:"omitempty,min=1,max=100"`

	CreatedBy uint           `json:"created_by" gorm:"index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

func (Question) TableName() string {
	return "questions"
}

// CorrectAnswers returns the texts of the correctly flagged options.
func (q *Question) CorrectAnswers() []string {
	var out []string
	for _, opt := range q.Options {
		if opt.IsCorrect {
			out = append(out, opt.Text)
		}
	}
	return out
}

// Exam references its questions by ID in display order. Duration is in
// minutes; no countdown state is held server-side.
type Exam struct {
	ID          uint                      `json:"id" gorm:"primaryKey"`
	CourseID    uint                      `json:"course_id" gorm:"not null;index" validate:"required"`
	Title       string                    `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	QuestionIDs datatypes.JSONSlice[uint] `json:"question_ids" gorm:"type:jsonb"`
	Duration    int                       `json:"duration" gorm:"not null" validate:"required,min=1,max=480"`
	ScheduledAt *time.Time                `json:"scheduled_at"`
	IsActive    bool                      `json:"is_active" gorm:"default:false;index"`

	CreatedBy uint           `json:"created_by" gorm:"index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

func (Exam) TableName() string {
	return "exams"
}
