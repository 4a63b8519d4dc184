package models

// UserDetails is the logged-in user's profile payload returned by the login
// endpoint and kept for the lifetime of the session.
type UserDetails struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
