package gateway

import (
	"context"

	"github.com/openlms-dev/admin-console/internal/models"
	appErrors "github.com/openlms-dev/admin-console/pkg/errors"
)

// AdminGateway covers the admin endpoints. The backend exposes no admin
// registration or status toggle.
type AdminGateway struct {
	c *Client
}

// NewAdminGateway binds the shared client to the admin routes.
func NewAdminGateway(c *Client) *AdminGateway {
	return &AdminGateway{c: c}
}

// List fetches every admin account.
func (g *AdminGateway) List(ctx context.Context) ([]models.Admin, error) {
	var admins []models.Admin
	if err := g.c.do(ctx, "admin", "list", "GET", "/admin/getAllAdmin", nil, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// Update replaces an admin's editable fields.
func (g *AdminGateway) Update(ctx context.Context, id string, admin models.Admin) error {
	body := map[string]string{
		"full_name": admin.FullName,
		"email":     admin.Email,
		"phone":     admin.Phone,
	}
	return g.c.do(ctx, "admin", "update", "PUT", "/admin/updateAdminById/"+id, body, nil)
}

// Delete removes an admin account.
func (g *AdminGateway) Delete(ctx context.Context, id string) error {
	return g.c.do(ctx, "admin", "delete", "DELETE", "/admin/deleteAdminById/"+id, nil, nil)
}

// AdminRemote widens AdminGateway to the full controller contract. The
// backend exposes no admin registration or status toggle, so those decline
// locally without a network call.
type AdminRemote struct {
	*AdminGateway
}

// Create declines: admins are provisioned on the backend directly.
func (AdminRemote) Create(context.Context, models.Admin) error {
	return appErrors.Clone(appErrors.ErrApplication, "admin registration is not available")
}

// SetStatus declines: admin accounts carry no status flag.
func (AdminRemote) SetStatus(context.Context, string, models.AccountStatus) error {
	return appErrors.Clone(appErrors.ErrApplication, "admin accounts have no status toggle")
}
