package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStudentForm() StudentForm {
	return StudentForm{
		FullName:  "Alice Perera",
		Email:     "alice@example.com",
		Contact:   "0771234567",
		Mode:      "Online",
		BatchNum:  "B2024-A",
		DOB:       "2000-04-12",
		Address:   "12 Lake Road, Colombo",
		RegNumber: "STU2024001",
	}
}

func TestCheckAcceptsCompleteStudentForm(t *testing.T) {
	v := New()
	errs := v.Check(validStudentForm())
	assert.Empty(t, errs)
}

func TestCheckFlagsEveryMissingField(t *testing.T) {
	v := New()
	errs := v.Check(StudentForm{})

	require.Len(t, errs, 8)
	assert.Equal(t, "Full name is required.", errs["full_name"])
	assert.Equal(t, "Email is required.", errs["email"])
	assert.Equal(t, "Contact is required.", errs["contact"])
	assert.Equal(t, "Batch number is required.", errs["batch_number"])
}

func TestCheckTreatsWhitespaceAsEmpty(t *testing.T) {
	v := New()
	form := validStudentForm()
	form.Address = "   "
	errs := v.Check(form)

	require.Len(t, errs, 1)
	assert.Equal(t, "Address is required.", errs["address"])
}

func TestCheckRejectsMalformedEmail(t *testing.T) {
	v := New()
	for _, email := range []string{
		"plainaddress",
		"@no-local.com",
		"trailing@",
		"two@@example.com",
		"nodot@example",
		"dot-at-end@example.",
	} {
		form := validStudentForm()
		form.Email = email
		errs := v.Check(form)
		require.Len(t, errs, 1, "email %q should be rejected", email)
		assert.Equal(t, "Enter a valid email address.", errs["email"])
	}
}

func TestCheckAcceptsContactVariants(t *testing.T) {
	v := New()
	for _, contact := range []string{
		"0771234567",
		"+94 77 123 4567",
		"077-123-4567",
		"7712345",
		// 15-digit national number behind a country code.
		"+1 234 567 890 123 456",
	} {
		form := validStudentForm()
		form.Contact = contact
		assert.Empty(t, v.Check(form), "contact %q should be accepted", contact)
	}
}

func TestCheckRejectsBadContacts(t *testing.T) {
	v := New()
	for _, contact := range []string{
		"12345",
		"1234567890123456",
		"077abc4567",
		// Country code digits do not count toward the 7-digit minimum.
		"+94 12345",
	} {
		form := validStudentForm()
		form.Contact = contact
		errs := v.Check(form)
		require.Len(t, errs, 1, "contact %q should be rejected", contact)
		assert.Equal(t, "Contact should be 7-15 digits.", errs["contact"])
	}
}

func TestCheckValidatesMode(t *testing.T) {
	v := New()

	for _, mode := range []string{"Online", "physical", "HYBRID"} {
		form := validStudentForm()
		form.Mode = mode
		assert.Empty(t, v.Check(form))
	}

	form := validStudentForm()
	form.Mode = "remote"
	errs := v.Check(form)
	require.Len(t, errs, 1)
	assert.Equal(t, "Mode must be Online, Physical or Hybrid.", errs["mode"])
}

func TestCheckReportsFirstMessagePerField(t *testing.T) {
	v := New()
	form := validStudentForm()
	form.Email = ""
	errs := v.Check(form)

	// Blank email fails both notblank and email_basic; only the first shows.
	require.Len(t, errs, 1)
	assert.Equal(t, "Email is required.", errs["email"])
}

func TestLecturerFormOptionalFields(t *testing.T) {
	v := New()
	form := LecturerForm{
		FullName:  "Dr. Nimal Silva",
		Email:     "nimal@example.com",
		Contact:   "0712345678",
		Mode:      "Physical",
		Subject:   "Mathematics",
		RegNumber: "LEC2024010",
	}
	assert.Empty(t, v.Check(form))

	form.Subject = ""
	errs := v.Check(form)
	require.Len(t, errs, 1)
	assert.Equal(t, "Subject is required.", errs["subject"])
}

func TestLoginAndResetForms(t *testing.T) {
	v := New()

	assert.Empty(t, v.Check(LoginForm{Email: "admin@example.com", Password: "secret"}))

	errs := v.Check(LoginForm{Email: "admin@example.com"})
	require.Len(t, errs, 1)
	assert.Equal(t, "Password is required.", errs["password"])

	errs = v.Check(ResetPasswordForm{Email: "bad-email", OTP: "123456", NewPassword: "secret"})
	require.Len(t, errs, 1)
	assert.Equal(t, "Enter a valid email address.", errs["email"])
}
