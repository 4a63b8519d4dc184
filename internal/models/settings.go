package models

// Settings is the whole-document configuration saved by the settings screen.
// It is loaded once at screen mount, mutated field by field in memory and
// persisted as a single document on explicit save.
type Settings struct {
	General  GeneralSettings  `json:"general"`
	Course   CourseSettings   `json:"course"`
	User     UserSettings     `json:"user"`
	Payment  PaymentSettings  `json:"payment"`
	Email    EmailSettings    `json:"email"`
	Platform PlatformSettings `json:"platform"`
}

type GeneralSettings struct {
	PlatformName string `json:"platform_name"`
	Logo         string `json:"logo"`
	SupportEmail string `json:"support_email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
}

type CourseSettings struct {
	DefaultLanguage        string `json:"default_language"`
	AllowFreeCourses       bool   `json:"allow_free_courses"`
	CourseApprovalRequired bool   `json:"course_approval_required"`
	MaxUploadSize          string `json:"max_upload_size"`
}

type UserSettings struct {
	AllowStudentRegistration  bool   `json:"allow_student_registration"`
	EmailVerificationRequired bool   `json:"email_verification_required"`
	DefaultUserRole           string `json:"default_user_role"`
}

type PaymentSettings struct {
	Currency          string `json:"currency"`
	PaymentGatewayKey string `json:"payment_gateway_key"`
	EnablePayments    bool   `json:"enable_payments"`
}

type EmailSettings struct {
	SMTPHost     string `json:"smtp_host"`
	SMTPPort     string `json:"smtp_port"`
	SMTPEmail    string `json:"smtp_email"`
	SMTPPassword string `json:"smtp_password"`
}

type PlatformSettings struct {
	MaintenanceMode   bool   `json:"maintenance_mode"`
	DefaultThemeColor string `json:"default_theme_color"`
	FooterText        string `json:"footer_text"`
}

// SettingsSections lists the section names accepted by the settings screen.
var SettingsSections = []string{"general", "course", "user", "payment", "email", "platform"}

// DefaultSettings returns the built-in configuration used when the mirror
// holds no saved document.
func DefaultSettings() Settings {
	return Settings{
		General: GeneralSettings{
			PlatformName: "Moodle LMS",
			SupportEmail: "support@moodle.local",
			ContactPhone: "+1 (555) 123-4567",
			Address:      "123 Education Street, City, Country",
		},
		Course: CourseSettings{
			DefaultLanguage:  "English",
			AllowFreeCourses: true,
			MaxUploadSize:    "100MB",
		},
		User: UserSettings{
			AllowStudentRegistration:  true,
			EmailVerificationRequired: true,
			DefaultUserRole:           "student",
		},
		Payment: PaymentSettings{
			Currency: "USD",
		},
		Email: EmailSettings{
			SMTPHost: "smtp.gmail.com",
			SMTPPort: "587",
		},
		Platform: PlatformSettings{
			DefaultThemeColor: "#3B82F6",
			FooterText:        "© 2026 Moodle LMS. All rights reserved.",
		},
	}
}
