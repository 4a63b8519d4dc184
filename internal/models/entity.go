package models

// Mode is the delivery mode of a course, student, or lecturer.
type Mode string

const (
	ModeOnline   Mode = "online"
	ModePhysical Mode = "physical"
	ModeHybrid   Mode = "hybrid"
)

// Valid reports whether the mode is one of the three known values.
func (m Mode) Valid() bool {
	switch m {
	case ModeOnline, ModePhysical, ModeHybrid:
		return true
	}
	return false
}

// AccountStatus is the two-state activation flag on students and lecturers.
// It is only ever changed through an explicit status toggle, never through a
// general update.
type AccountStatus string

const (
	StatusActive   AccountStatus = "active"
	StatusInactive AccountStatus = "inactive"
)

// Toggled returns the opposite status.
func (s AccountStatus) Toggled() AccountStatus {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}

// Valid reports whether the status is one of the two known values.
func (s AccountStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Entity is implemented by every row type the console manages. EntityID is
// unique within a collection; SearchFields lists the string fields a
// free-text query is matched against.
type Entity interface {
	EntityID() string
	SearchFields() []string
}
