package models

// Student represents a learner registered on the platform.
type Student struct {
	ID            string        `json:"id"`
	RegNumber     string        `json:"reg_number"`
	FullName      string        `json:"full_name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	DOB           string        `json:"dob"`
	Mode          Mode          `json:"mode"`
	BatchNumber   string        `json:"batch_number"`
	AccountStatus AccountStatus `json:"account_status"`
}

// EntityID implements Entity.
func (s Student) EntityID() string { return s.ID }

// SearchFields implements Entity.
func (s Student) SearchFields() []string {
	return []string{s.FullName, s.Email, s.Phone, s.RegNumber, s.BatchNumber}
}
