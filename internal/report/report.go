// Package report derives the reports screen's figures from the collections
// the other screens already hold and renders them to CSV or PDF.
package report

import (
	"strings"

	"github.com/openlms-dev/admin-console/internal/models"
)

// Summary backs the reports screen's summary cards.
type Summary struct {
	TotalStudents   int
	ActiveStudents  int
	TotalLecturers  int
	ActiveLecturers int
	TotalCourses    int
}

// BuildSummary counts the collections.
func BuildSummary(students []models.Student, lecturers []models.Lecturer, courses []models.Course) Summary {
	s := Summary{
		TotalStudents:  len(students),
		TotalLecturers: len(lecturers),
		TotalCourses:   len(courses),
	}
	for _, st := range students {
		if st.AccountStatus == models.StatusActive {
			s.ActiveStudents++
		}
	}
	for _, l := range lecturers {
		if l.AccountStatus == models.StatusActive {
			s.ActiveLecturers++
		}
	}
	return s
}

// Filters narrows report tables. Course and Instructor are case-insensitive
// substring matches; StartDate and EndDate bound the date-of-birth column on
// the people tables (YYYY-MM-DD, either end open). Empty values match
// everything.
type Filters struct {
	StartDate  string
	EndDate    string
	Course     string
	Instructor string
}

// StudentRows builds the student report table.
func StudentRows(students []models.Student, f Filters) Dataset {
	data := Dataset{Headers: []string{"Reg Number", "Full Name", "Email", "Mode", "Batch", "Status"}}
	for _, s := range students {
		if !inDateRange(s.DOB, f.StartDate, f.EndDate) {
			continue
		}
		data.Rows = append(data.Rows, map[string]string{
			"Reg Number": s.RegNumber,
			"Full Name":  s.FullName,
			"Email":      s.Email,
			"Mode":       string(s.Mode),
			"Batch":      s.BatchNumber,
			"Status":     string(s.AccountStatus),
		})
	}
	return data
}

// CourseRows builds the course report table.
func CourseRows(courses []models.Course, f Filters) Dataset {
	data := Dataset{Headers: []string{"Title", "Mode", "Language", "Duration"}}
	for _, c := range courses {
		if !matches(c.Title, f.Course) {
			continue
		}
		data.Rows = append(data.Rows, map[string]string{
			"Title":    c.Title,
			"Mode":     string(c.Mode),
			"Language": c.Language,
			"Duration": c.Duration,
		})
	}
	return data
}

// LecturerRows builds the instructor report table.
func LecturerRows(lecturers []models.Lecturer, f Filters) Dataset {
	data := Dataset{Headers: []string{"Reg Number", "Full Name", "Subject", "Mode", "Status"}}
	for _, l := range lecturers {
		if !matches(l.FullName, f.Instructor) || !inDateRange(l.DOB, f.StartDate, f.EndDate) {
			continue
		}
		data.Rows = append(data.Rows, map[string]string{
			"Reg Number": l.RegNumber,
			"Full Name":  l.FullName,
			"Subject":    l.Subject,
			"Mode":       string(l.Mode),
			"Status":     string(l.AccountStatus),
		})
	}
	return data
}

func matches(value, filter string) bool {
	f := strings.ToLower(strings.TrimSpace(filter))
	if f == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), f)
}

// inDateRange compares YYYY-MM-DD strings lexicographically. A row with no
// date is kept only when no bound is set; it cannot satisfy one.
func inDateRange(value, start, end string) bool {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" && end == "" {
		return true
	}
	if value == "" {
		return false
	}
	if start != "" && value < start {
		return false
	}
	if end != "" && value > end {
		return false
	}
	return true
}
