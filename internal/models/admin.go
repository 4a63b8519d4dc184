package models

// Admin represents a platform administrator account.
type Admin struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// EntityID implements Entity.
func (a Admin) EntityID() string { return a.ID }

// SearchFields implements Entity.
func (a Admin) SearchFields() []string {
	return []string{a.FullName, a.Email, a.Phone}
}
