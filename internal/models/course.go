package models

// Course is a catalog entry. Courses are a client-only collection: they are
// never sent to the backend and live entirely in the local mirror.
type Course struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	ShortDescription string `json:"short_description"`
	Description      string `json:"description"`
	Thumbnail        string `json:"thumbnail"`
	Mode             Mode   `json:"mode"`
	Language         string `json:"language"`
	Duration         string `json:"duration"`
}

// EntityID implements Entity.
func (c Course) EntityID() string { return c.ID }

// SearchFields implements Entity.
func (c Course) SearchFields() []string {
	return []string{c.Title, c.ShortDescription, c.Language, c.Duration}
}

// StarterCourses seeds the catalog the first time the courses screen opens
// with nothing in the mirror.
func StarterCourses() []Course {
	return []Course{
		{
			ID:               "1",
			Title:            "S2 - Pre Academic Week - 25S1",
			ShortDescription: "Foundation course for academic preparation",
			Description:      "Prepares students for their academic journey with essential skills and knowledge for higher education.",
			Mode:             ModeOnline,
			Language:         "English",
			Duration:         "1 week",
		},
		{
			ID:               "2",
			Title:            "BIT Student Matters (25S1)",
			ShortDescription: "Essential student services and support",
			Description:      "Covers academic advising, career services and student life resources.",
			Mode:             ModePhysical,
			Language:         "English",
			Duration:         "2 weeks",
		},
		{
			ID:               "3",
			Title:            "BIT Administrative Matters - 2024",
			ShortDescription: "Administrative processes and procedures",
			Description:      "Registration, enrollment and compliance requirements for students.",
			Mode:             ModeOnline,
			Language:         "English",
			Duration:         "3 days",
		},
		{
			ID:               "4",
			Title:            "Orientation 24In2 (Pre Academic Preparation)",
			ShortDescription: "Campus orientation and preparation",
			Description:      "Hybrid orientation combining online modules with in-person sessions.",
			Mode:             ModeHybrid,
			Language:         "English",
			Duration:         "1 week",
		},
	}
}
