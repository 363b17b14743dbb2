package schools

// School is a row of the school list. Each school owns its own database on
// the backend and is administered by a single school admin.
type School struct {
	ID            int    `json:"school_id"`
	Name          string `json:"school_name"`
	Address       string `json:"school_address"`
	ContactNumber string `json:"school_contact_number"`
	Email         string `json:"school_email"`
	TeacherCount  int    `json:"teacher_count"`
}

// Detail is a single school with its admin contact.
type Detail struct {
	ID               int    `json:"school_id"`
	Name             string `json:"school_name"`
	Address          string `json:"school_address"`
	ContactNumber    string `json:"school_contact_number"`
	Email            string `json:"school_email"`
	AdminUserName    string `json:"school_admin_username"`
	AdminEmail       string `json:"school_admin_email"`
	AdminFullName    string `json:"school_admin_full_name"`
	AdminPhoneNumber string `json:"school_admin_phone_number"`
}

// Board is an examination board (CBSE, ICSE, ...) a school can follow.
type Board struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CreateRequest registers a school together with its admin account and first
// academic year.
type CreateRequest struct {
	SchoolName        string `json:"school_name" validate:"notblank"`
	Address           string `json:"address" validate:"notblank"`
	ContactNumber     string `json:"contact_number" validate:"notblank"`
	Email             string `json:"email,omitempty" validate:"omitempty,email"`
	AdminEmail        string `json:"admin_email" validate:"required,email"`
	AdminUserName     string `json:"admin_username" validate:"notblank"`
	Password          string `json:"password" validate:"strong_password"`
	AdminPhoneNumber  string `json:"admin_phone_number" validate:"notblank"`
	AdminFirstName    string `json:"admin_first_name" validate:"notblank"`
	AdminLastName     string `json:"admin_last_name,omitempty"`
	Boards            []int  `json:"boards" validate:"min=1,dive,gt=0"`
	AcademicStartYear int    `json:"academic_start_year" validate:"required,gte=1900"`
	AcademicEndYear   int    `json:"academic_end_year" validate:"required,gtfield=AcademicStartYear"`
}

// UpdateRequest changes a school's contact details. Empty fields keep their
// current values; a nil Boards leaves the board mapping untouched.
type UpdateRequest struct {
	SchoolID      int    `json:"school_id" validate:"required,gt=0"`
	Name          string `json:"school_name,omitempty"`
	Address       string `json:"school_address,omitempty"`
	ContactNumber string `json:"school_contact_number,omitempty"`
	Email         string `json:"school_email,omitempty" validate:"omitempty,email"`
	Boards        []int  `json:"boards,omitempty" validate:"omitempty,dive,gt=0"`
}
