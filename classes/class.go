package classes

import (
	"github.com/jrsteele09/go-school-client/internal/utils"
	"github.com/jrsteele09/go-school-client/students"
)

// Class is a section of a class number (5-A, 5-B) in one school, with its
// class teacher for an academic year.
type Class struct {
	AssignmentID *int          `json:"class_assignment_id"`
	ID           utils.FlexInt `json:"class_id"`
	ClassNumber  int           `json:"class_number"`
	Section      string        `json:"section"`
	TeacherID    *int          `json:"teacher_id"`
	TeacherName  string        `json:"teacher_name"`
	SchoolID     utils.FlexInt `json:"school_id"`
	StudentCount int           `json:"student_count"`
	BoardID      int           `json:"school_board_id"`
	BoardName    string        `json:"school_board_name"`
}

// Name renders the class as "5-A".
func (c *Class) Name() string {
	return formatName(c.ClassNumber, c.Section)
}

// HasTeacher reports whether a class teacher is assigned for the year. The
// backend sends null or 0 when there is none.
func (c *Class) HasTeacher() bool {
	return utils.Deref(c.TeacherID, 0) > 0
}

// Detail is a single class together with its roster.
type Detail struct {
	Class
	// The backend spells this member "studends_list".
	Students []students.Student `json:"studends_list"`
}

// Created is the assignment returned when a class is created.
type Created struct {
	AssignmentID   int    `json:"id"`
	ClassID        int    `json:"class_id"`
	ClassNumber    int    `json:"class_number"`
	Section        string `json:"section"`
	TeacherID      *int   `json:"teacher_id"`
	AcademicYearID int    `json:"academic_year_id"`
}

// Available is a class number offered by the platform, before any school
// creates sections for it.
type Available struct {
	ID          int `json:"id"`
	ClassNumber int `json:"class_number"`
}

type CreateRequest struct {
	SchoolID       int    `json:"school_id,omitempty"`
	ClassNumber    int    `json:"class_number" validate:"required,gt=0"`
	Section        string `json:"section" validate:"notblank,max=5"`
	TeacherID      int    `json:"teacher_id,omitempty"`
	BoardID        int    `json:"board_id" validate:"required,gt=0"`
	AcademicYearID int    `json:"academic_year_id,omitempty"`
}

// UpdateRequest reassigns the class teacher for an academic year.
type UpdateRequest struct {
	SchoolID       int `json:"school_id,omitempty"`
	ClassID        int `json:"class_id" validate:"required,gt=0"`
	TeacherID      int `json:"teacher_id" validate:"required,gt=0"`
	AcademicYearID int `json:"academic_year_id,omitempty"`
}
