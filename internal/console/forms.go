package console

import (
	"fmt"

	"github.com/openlms-dev/admin-console/internal/models"
	"github.com/openlms-dev/admin-console/internal/validate"
)

// promptDefault asks for a field, keeping the existing value on empty input.
func (c *Console) promptDefault(label, current string) string {
	suffix := ": "
	if current != "" {
		suffix = fmt.Sprintf(" [%s]: ", current)
	}
	answer := c.promptLine(label + suffix)
	if answer == "" {
		return current
	}
	return answer
}

// readStudentForm collects and validates a student form, prefilled from an
// existing record when editing. Validation failure aborts the submission
// before any gateway call.
func (c *Console) readStudentForm(existing *models.Student) (validate.StudentForm, bool) {
	var base validate.StudentForm
	if existing != nil {
		base = validate.StudentForm{
			FullName:  existing.FullName,
			Email:     existing.Email,
			Contact:   existing.Phone,
			Mode:      string(existing.Mode),
			BatchNum:  existing.BatchNumber,
			DOB:       existing.DOB,
			Address:   existing.Address,
			RegNumber: existing.RegNumber,
		}
	}

	form := validate.StudentForm{
		FullName:  c.promptDefault("Full Name", base.FullName),
		Email:     c.promptDefault("Email", base.Email),
		Contact:   c.promptDefault("Contact Number", base.Contact),
		Mode:      c.promptDefault("Mode (Online/Physical/Hybrid)", base.Mode),
		BatchNum:  c.promptDefault("Batch Number", base.BatchNum),
		DOB:       c.promptDefault("Date of Birth (YYYY-MM-DD)", base.DOB),
		Address:   c.promptDefault("Address", base.Address),
		RegNumber: c.promptDefault("Registration Number", base.RegNumber),
	}

	if errs := c.Validator.Check(form); len(errs) > 0 {
		c.warn("Please fix the following and try again:")
		c.showFieldErrors(errs)
		return validate.StudentForm{}, false
	}
	return form, true
}

// readLecturerForm collects and validates a lecturer form.
func (c *Console) readLecturerForm(existing *models.Lecturer) (validate.LecturerForm, bool) {
	var base validate.LecturerForm
	if existing != nil {
		base = validate.LecturerForm{
			FullName:  existing.FullName,
			Email:     existing.Email,
			Contact:   existing.Phone,
			Mode:      string(existing.Mode),
			Subject:   existing.Subject,
			DOB:       existing.DOB,
			Address:   existing.Address,
			NIC:       existing.NIC,
			RegNumber: existing.RegNumber,
		}
	}

	form := validate.LecturerForm{
		FullName:  c.promptDefault("Full Name", base.FullName),
		Email:     c.promptDefault("Email", base.Email),
		Contact:   c.promptDefault("Contact Number", base.Contact),
		Mode:      c.promptDefault("Mode (Online/Physical/Hybrid)", base.Mode),
		Subject:   c.promptDefault("Subject", base.Subject),
		DOB:       c.promptDefault("Date of Birth (YYYY-MM-DD)", base.DOB),
		Address:   c.promptDefault("Address", base.Address),
		NIC:       c.promptDefault("NIC", base.NIC),
		RegNumber: c.promptDefault("Registration Number", base.RegNumber),
	}

	if errs := c.Validator.Check(form); len(errs) > 0 {
		c.warn("Please fix the following and try again:")
		c.showFieldErrors(errs)
		return validate.LecturerForm{}, false
	}
	return form, true
}

// readCourseForm collects and validates a course form.
func (c *Console) readCourseForm() (validate.CourseForm, bool) {
	form := validate.CourseForm{
		Title:            c.promptLine("Title: "),
		ShortDescription: c.promptLine("Short Description: "),
		Description:      c.promptLine("Description: "),
		Thumbnail:        c.promptLine("Thumbnail URL: "),
		Mode:             c.promptLine("Mode (Online/Physical/Hybrid): "),
		Language:         c.promptLine("Language: "),
		Duration:         c.promptLine("Duration: "),
	}

	if errs := c.Validator.Check(form); len(errs) > 0 {
		c.warn("Please fix the following and try again:")
		c.showFieldErrors(errs)
		return validate.CourseForm{}, false
	}
	return form, true
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-('a'-'A')) + s[1:]
}
