package models

import (
	"time"

	"gorm.io/datatypes"
)

// AnswerSnapshot is a denormalized copy of an answered question taken at
// submission time. Duplicating the question text and options here keeps
// historical results accurate if the question is later edited; this is
// intentional, not an oversight.
type AnswerSnapshot struct {
	QuestionID      uint     `json:"question_id"`
	QuestionText    string   `json:"question_text"`
	Options         []string `json:"options"`
	CorrectAnswers  []string `json:"correct_answers"`
	SubmittedAnswer string   `json:"submitted_answer"`
	IsCorrect       bool     `json:"is_correct"`
	Marks           int      `json:"marks"`
}

// Result is created once per exam attempt and never updated afterwards.
// The student/exam pair is unique so a second attempt surfaces as a
// conflict rather than silently overwriting the first.
type Result struct {
	ID           uint `json:"id" gorm:"primaryKey"`
	StudentID    uint `json:"student_id" gorm:"not null;index;uniqueIndex:idx_results_student_exam" validate:"required"`
	ExamID       uint `json:"exam_id" gorm:"not null;index;uniqueIndex:idx_results_student_exam" validate:"required"`
	DepartmentID uint `json:"department_id" gorm:"index"`

	Answers    datatypes.JSONSlice[AnswerSnapshot] `json:"answers" gorm:"type:jsonb"`
	Score      int                                 `json:"score" gorm:"not null"`
	TotalMarks int                                 `json:"total_marks" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`

	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Exam    *Exam    `json:"exam,omitempty" gorm:"foreignKey:ExamID"`
}

func (Result) TableName() string {
	return "results"
}
