package gateway

import (
	"context"

	"github.com/openlms-dev/admin-console/internal/models"
)

// LoginResult is the payload of a successful login.
type LoginResult struct {
	Token       string             `json:"token"`
	UserDetails models.UserDetails `json:"userDetails"`
}

// AuthGateway covers the authentication endpoints. None of its calls carry a
// bearer token requirement; an existing token is still attached if present.
type AuthGateway struct {
	c *Client
}

// NewAuthGateway binds the shared client to the user routes.
func NewAuthGateway(c *Client) *AuthGateway {
	return &AuthGateway{c: c}
}

// Login exchanges credentials for a token and the user's profile.
func (g *AuthGateway) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var result LoginResult
	if err := g.c.do(ctx, "user", "login", "POST", "/user/userLogin", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SendOTP requests a one-time password for the reset flow.
func (g *AuthGateway) SendOTP(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return g.c.do(ctx, "user", "send_otp", "POST", "/user/sendOTP", body, nil)
}

// ResetPassword completes the OTP reset flow.
func (g *AuthGateway) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	body := map[string]string{"email": email, "otp": otp, "newPassword": newPassword}
	return g.c.do(ctx, "user", "reset_password", "POST", "/user/resetPassword", body, nil)
}
