package gateway

import (
	"context"
	"strings"

	"github.com/openlms-dev/admin-console/internal/models"
	"github.com/openlms-dev/admin-console/internal/validate"
)

const roleStudent = 2

// studentPayload is the normalized wire shape for student writes. Form field
// names are unified client-side; the mapping to snake_case happens here and
// nowhere else.
type studentPayload struct {
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Mode        string `json:"mode"`
	DOB         string `json:"dob"`
	RegNumber   string `json:"reg_number"`
	BatchNumber string `json:"batch_number"`
	Email       string `json:"email"`
	RoleID      int    `json:"role_id,omitempty"`
}

func newStudentPayload(form validate.StudentForm, roleID int) studentPayload {
	return studentPayload{
		FullName:    form.FullName,
		Phone:       form.Contact,
		Address:     form.Address,
		Mode:        strings.ToLower(form.Mode),
		DOB:         form.DOB,
		RegNumber:   form.RegNumber,
		BatchNumber: form.BatchNum,
		Email:       form.Email,
		RoleID:      roleID,
	}
}

// StudentGateway covers the student endpoints.
type StudentGateway struct {
	c *Client
}

// NewStudentGateway binds the shared client to the student routes.
func NewStudentGateway(c *Client) *StudentGateway {
	return &StudentGateway{c: c}
}

// List fetches every student.
func (g *StudentGateway) List(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := g.c.do(ctx, "student", "list", "GET", "/student/getAllStudent", nil, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// Get fetches one student by id.
func (g *StudentGateway) Get(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	if err := g.c.do(ctx, "student", "get", "GET", "/student/getStudentById/"+id, nil, &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// Create registers a new student. The form must already have passed the
// validator.
func (g *StudentGateway) Create(ctx context.Context, form validate.StudentForm) error {
	payload := newStudentPayload(form, roleStudent)
	return g.c.do(ctx, "student", "create", "POST", "/student/registerStudent", payload, nil)
}

// Update replaces a student's editable fields. The role is never sent on
// update.
func (g *StudentGateway) Update(ctx context.Context, id string, form validate.StudentForm) error {
	payload := newStudentPayload(form, 0)
	return g.c.do(ctx, "student", "update", "PUT", "/student/updateStudentById/"+id, payload, nil)
}

// Delete removes a student.
func (g *StudentGateway) Delete(ctx context.Context, id string) error {
	return g.c.do(ctx, "student", "delete", "DELETE", "/student/deleteStudentById/"+id, nil, nil)
}

// SetStatus flips the account status between active and inactive.
func (g *StudentGateway) SetStatus(ctx context.Context, id string, status models.AccountStatus) error {
	body := map[string]string{"account_status": string(status)}
	return g.c.do(ctx, "student", "set_status", "PUT", "/student/updateAccountStatusById/"+id, body, nil)
}
