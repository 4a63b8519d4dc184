package gateway

import (
	"context"
	"strings"

	"github.com/openlms-dev/admin-console/internal/models"
	"github.com/openlms-dev/admin-console/internal/validate"
)

const roleLecturer = 1

type lecturerPayload struct {
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Mode      string `json:"mode"`
	DOB       string `json:"dob"`
	RegNumber string `json:"reg_number"`
	NIC       string `json:"nic"`
	Subject   string `json:"subject"`
	Email     string `json:"email"`
	RoleID    int    `json:"role_id,omitempty"`
}

func newLecturerPayload(form validate.LecturerForm, roleID int) lecturerPayload {
	return lecturerPayload{
		FullName:  form.FullName,
		Phone:     form.Contact,
		Address:   form.Address,
		Mode:      strings.ToLower(form.Mode),
		DOB:       form.DOB,
		RegNumber: form.RegNumber,
		NIC:       form.NIC,
		Subject:   form.Subject,
		Email:     form.Email,
		RoleID:    roleID,
	}
}

// LecturerGateway covers the lecturer endpoints. The backend spells the
// resource "lecture" in its paths; that quirk stays on the wire only.
type LecturerGateway struct {
	c *Client
}

// NewLecturerGateway binds the shared client to the lecturer routes.
func NewLecturerGateway(c *Client) *LecturerGateway {
	return &LecturerGateway{c: c}
}

// List fetches every lecturer.
func (g *LecturerGateway) List(ctx context.Context) ([]models.Lecturer, error) {
	var lecturers []models.Lecturer
	if err := g.c.do(ctx, "lecturer", "list", "GET", "/lecture/getAllLecture", nil, &lecturers); err != nil {
		return nil, err
	}
	return lecturers, nil
}

// Get fetches one lecturer by id.
func (g *LecturerGateway) Get(ctx context.Context, id string) (*models.Lecturer, error) {
	var lecturer models.Lecturer
	if err := g.c.do(ctx, "lecturer", "get", "GET", "/lecture/getLectureById/"+id, nil, &lecturer); err != nil {
		return nil, err
	}
	return &lecturer, nil
}

// Create registers a new lecturer.
func (g *LecturerGateway) Create(ctx context.Context, form validate.LecturerForm) error {
	payload := newLecturerPayload(form, roleLecturer)
	return g.c.do(ctx, "lecturer", "create", "POST", "/lecture/registerLecture", payload, nil)
}

// Update replaces a lecturer's editable fields.
func (g *LecturerGateway) Update(ctx context.Context, id string, form validate.LecturerForm) error {
	payload := newLecturerPayload(form, 0)
	return g.c.do(ctx, "lecturer", "update", "PUT", "/lecture/updateLectureById/"+id, payload, nil)
}

// Delete removes a lecturer.
func (g *LecturerGateway) Delete(ctx context.Context, id string) error {
	return g.c.do(ctx, "lecturer", "delete", "DELETE", "/lecture/deleteLectureById/"+id, nil, nil)
}

// SetStatus flips the account status between active and inactive.
func (g *LecturerGateway) SetStatus(ctx context.Context, id string, status models.AccountStatus) error {
	body := map[string]string{"account_status": string(status)}
	return g.c.do(ctx, "lecturer", "set_status", "PUT", "/lecture/updateAccountStatusById/"+id, body, nil)
}
