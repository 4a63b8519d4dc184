// Package mirror persists the last known-good copy of each collection so the
// console can fall back to it when the backend is unreachable. Writes are
// whole-document and last-write-wins; there is no field-level merge.
package mirror

import "context"

// Fixed keys, one per collection or session document. No two controllers
// share a key.
const (
	KeyStudents     = "students"
	KeyLecturers    = "lecturers"
	KeyAdmins       = "admins"
	KeyCourses      = "courses"
	KeySettings     = "settings"
	KeySessionToken = "session_token"
	KeySessionUser  = "session_user"
)

// ErrAbsent is returned by Load when the key was never written or the stored
// document cannot be parsed. Corruption is deliberately indistinguishable
// from absence.
var ErrAbsent = errAbsent{}

type errAbsent struct{}

func (errAbsent) Error() string { return "mirror: no usable document" }

// Store is the local mirror contract. Save overwrites the whole document for
// a key; Load unmarshals the stored document into dst or returns ErrAbsent.
type Store interface {
	Save(ctx context.Context, key string, v any) error
	Load(ctx context.Context, key string, dst any) error
	Delete(ctx context.Context, key string) error
}
