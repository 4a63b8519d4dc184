package models

// Lecturer represents a teaching staff member.
type Lecturer struct {
	ID            string        `json:"id"`
	RegNumber     string        `json:"reg_number"`
	FullName      string        `json:"full_name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	DOB           string        `json:"dob"`
	Mode          Mode          `json:"mode"`
	NIC           string        `json:"nic"`
	Subject       string        `json:"subject"`
	AccountStatus AccountStatus `json:"account_status"`
}

// EntityID implements Entity.
func (l Lecturer) EntityID() string { return l.ID }

// SearchFields implements Entity.
func (l Lecturer) SearchFields() []string {
	return []string{l.FullName, l.Email, l.Phone, l.RegNumber, l.Subject}
}
