package teachers

// Teacher is a row of a school's teacher list.
type Teacher struct {
	ID            int    `json:"teacher_id"`
	FirstName     string `json:"teacher_first_name"`
	LastName      string `json:"teacher_last_name"`
	Email         string `json:"email"`
	Qualification string `json:"qualification"`
	PhoneNumber   string `json:"phone_number"`
}

func (t *Teacher) FullName() string {
	if t.LastName == "" {
		return t.FirstName
	}
	return t.FirstName + " " + t.LastName
}

// Detail is a single teacher with the subjects they teach in the academic year.
type Detail struct {
	Teacher
	Address            string       `json:"address"`
	Gender             string       `json:"gender"`
	Experience         *float64     `json:"experience"`
	JoiningDate        string       `json:"joining_date"`
	EmergencyContact   string       `json:"emergency_contact"`
	SubjectAssignments []Assignment `json:"subject_assignments"`
}

// Assignment is one subject taught to one class section.
type Assignment struct {
	SubjectID   int    `json:"subject_id"`
	SubjectName string `json:"subject_name,omitempty"`
	ClassID     int    `json:"class_id"`
	ClassNumber int    `json:"class_number,omitempty"`
	Section     string `json:"section,omitempty"`
}

// SubjectAssignment is the request form of Assignment.
type SubjectAssignment struct {
	SubjectID int `json:"subject_id" validate:"required,gt=0"`
	ClassID   int `json:"class_id" validate:"required,gt=0"`
}

type AddRequest struct {
	FirstName          string              `json:"first_name" validate:"notblank"`
	LastName           string              `json:"last_name,omitempty"`
	UserName           string              `json:"user_name" validate:"notblank"`
	Password           string              `json:"password" validate:"strong_password"`
	Email              string              `json:"email" validate:"required,email"`
	PhoneNumber        string              `json:"phone_number" validate:"notblank"`
	SchoolID           int                 `json:"school_id,omitempty"`
	Gender             string              `json:"gender,omitempty"`
	Address            string              `json:"address,omitempty"`
	SubjectAssignments []SubjectAssignment `json:"subject_assignments,omitempty" validate:"dive"`
	Qualification      string              `json:"qualification,omitempty"`
	Experience         *float64            `json:"experience,omitempty" validate:"omitempty,gte=0"`
	JoiningDate        string              `json:"joining_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EmergencyContact   string              `json:"emergency_contact,omitempty"`
	AcademicYearID     int                 `json:"academic_year_id,omitempty"`
}

// UpdateRequest changes a teacher. SubjectAssignments, when given, replaces
// the teacher's assignments for the academic year.
type UpdateRequest struct {
	TeacherID          int                 `json:"teacher_id" validate:"required,gt=0"`
	SchoolID           int                 `json:"school_id,omitempty"`
	FirstName          string              `json:"first_name,omitempty"`
	LastName           string              `json:"last_name,omitempty"`
	Email              string              `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber        string              `json:"phone_number,omitempty"`
	Gender             string              `json:"gender,omitempty"`
	Address            string              `json:"address,omitempty"`
	SubjectAssignments []SubjectAssignment `json:"subject_assignments,omitempty" validate:"dive"`
	Qualification      string              `json:"qualification,omitempty"`
	Experience         *float64            `json:"experience,omitempty" validate:"omitempty,gte=0"`
	JoiningDate        string              `json:"joining_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EmergencyContact   string              `json:"emergency_contact,omitempty"`
	AcademicYearID     int                 `json:"academic_year_id,omitempty"`
}
