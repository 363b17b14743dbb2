package students

// Student is a row of a student list, as returned for a school or a class.
type Student struct {
	ID          int    `json:"student_id"`
	Name        string `json:"student_name"`
	RollNumber  string `json:"roll_number"`
	ParentName  string `json:"parent_name"`
	ParentPhone string `json:"parent_phone"`
	IsActive    bool   `json:"is_active"`
	ClassNumber int    `json:"class_number"`
	ClassID     int    `json:"class_id"`
	Section     string `json:"section"`
	Email       string `json:"email"`
}

// Detail is a single student with personal details and current class.
type Detail struct {
	ID            int    `json:"student_id"`
	FirstName     string `json:"student_first_name"`
	LastName      string `json:"student_last_name"`
	RollNumber    string `json:"roll_number"`
	ParentName    string `json:"parent_name"`
	ParentPhone   string `json:"parent_phone"`
	IsActive      bool   `json:"is_active"`
	ClassNumber   int    `json:"class_number"`
	ClassID       int    `json:"class_id"`
	Section       string `json:"section"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	DateOfBirth   string `json:"date_of_birth"`
	Gender        string `json:"gender"`
	AdmissionDate string `json:"admission_date"`
}

func (d *Detail) FullName() string {
	if d.LastName == "" {
		return d.FirstName
	}
	return d.FirstName + " " + d.LastName
}

// CreateRequest enrols a student: it creates the user account and assigns
// the student to a class for the academic year.
type CreateRequest struct {
	SchoolID       int    `json:"school_id,omitempty"`
	FirstName      string `json:"first_name" validate:"notblank"`
	LastName       string `json:"last_name,omitempty"`
	UserName       string `json:"user_name" validate:"notblank"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"strong_password"`
	PhoneNumber    string `json:"phone_number,omitempty"`
	ClassID        int    `json:"class_id" validate:"required,gt=0"`
	RollNumber     string `json:"roll_number" validate:"notblank"`
	DateOfBirth    string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Gender         string `json:"gender,omitempty"`
	Address        string `json:"address,omitempty"`
	AdmissionDate  string `json:"admission_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ParentName     string `json:"parent_name,omitempty"`
	ParentPhone    string `json:"parent_phone,omitempty"`
	ParentEmail    string `json:"parent_email,omitempty" validate:"omitempty,email"`
	AcademicYearID int    `json:"academic_year_id,omitempty"`
}

// UpdateRequest changes a student's record. Empty fields are left unchanged.
type UpdateRequest struct {
	SchoolID          int    `json:"school_id,omitempty"`
	StudentID         int    `json:"student_id" validate:"required,gt=0"`
	FirstName         string `json:"first_name,omitempty"`
	LastName          string `json:"last_name,omitempty"`
	Email             string `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber       string `json:"phone_number,omitempty"`
	ClassAssignmentID int    `json:"class_assignment_id,omitempty"`
	ClassID           int    `json:"class_id,omitempty"`
	RollNumber        string `json:"roll_number,omitempty"`
	DateOfBirth       string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Gender            string `json:"gender,omitempty"`
	Address           string `json:"address,omitempty"`
	AdmissionDate     string `json:"admission_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ParentName        string `json:"parent_name,omitempty"`
	ParentPhone       string `json:"parent_phone,omitempty"`
	ParentEmail       string `json:"parent_email,omitempty" validate:"omitempty,email"`
	AcademicYearID    int    `json:"academic_year_id,omitempty"`
}
