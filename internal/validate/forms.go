package validate

// StudentForm is the candidate payload for registering or updating a student.
// Every field is required on the add-student screen.
type StudentForm struct {
	FullName  string `json:"full_name" validate:"notblank"`
	Email     string `json:"email" validate:"notblank,email_basic"`
	Contact   string `json:"contact" validate:"notblank,contact"`
	Mode      string `json:"mode" validate:"notblank,mode"`
	BatchNum  string `json:"batch_number" validate:"notblank"`
	DOB       string `json:"dob" validate:"notblank"`
	Address   string `json:"address" validate:"notblank"`
	RegNumber string `json:"reg_number" validate:"notblank"`
}

// LecturerForm is the candidate payload for registering or updating a
// lecturer. DOB, address and NIC are optional.
type LecturerForm struct {
	FullName  string `json:"full_name" validate:"notblank"`
	Email     string `json:"email" validate:"notblank,email_basic"`
	Contact   string `json:"contact" validate:"notblank,contact"`
	Mode      string `json:"mode" validate:"notblank,mode"`
	Subject   string `json:"subject" validate:"notblank"`
	DOB       string `json:"dob"`
	Address   string `json:"address"`
	NIC       string `json:"nic"`
	RegNumber string `json:"reg_number" validate:"notblank"`
}

// CourseForm is the candidate payload for the client-only course catalog.
type CourseForm struct {
	Title            string `json:"title" validate:"notblank"`
	ShortDescription string `json:"short_description" validate:"notblank"`
	Description      string `json:"description"`
	Thumbnail        string `json:"thumbnail"`
	Mode             string `json:"mode" validate:"notblank,mode"`
	Language         string `json:"language" validate:"notblank"`
	Duration         string `json:"duration" validate:"notblank"`
}

// LoginForm is the credential pair for the login screen.
type LoginForm struct {
	Email    string `json:"email" validate:"notblank,email_basic"`
	Password string `json:"password" validate:"notblank"`
}

// ResetPasswordForm completes the OTP password-reset flow.
type ResetPasswordForm struct {
	Email       string `json:"email" validate:"notblank,email_basic"`
	OTP         string `json:"otp" validate:"notblank"`
	NewPassword string `json:"new_password" validate:"notblank"`
}
