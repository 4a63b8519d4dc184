package mirror

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlms-dev/admin-console/internal/models"
)

func newTestStore(t *testing.T) *Filesystem {
	t.Helper()
	store, err := NewFilesystem(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestFilesystemRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	in := []models.Student{
		{ID: "1", FullName: "John Doe", Email: "john@example.com"},
		{ID: "2", FullName: "Jane Smith", Email: "jane@example.com"},
	}
	require.NoError(t, store.Save(ctx, KeyStudents, in))

	var out []models.Student
	require.NoError(t, store.Load(ctx, KeyStudents, &out))
	assert.Equal(t, in, out)
}

func TestFilesystemLoadMissingKeyIsAbsent(t *testing.T) {
	store := newTestStore(t)

	var out []models.Student
	err := store.Load(context.Background(), KeyStudents, &out)
	assert.ErrorIs(t, err, ErrAbsent)
}

func TestFilesystemCorruptDocumentIsAbsent(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFilesystem(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyStudents+".json"), []byte("{not json"), 0o644))

	var out []models.Student
	err = store.Load(context.Background(), KeyStudents, &out)
	assert.ErrorIs(t, err, ErrAbsent)
}

func TestFilesystemKeysDoNotCollide(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, key := range []string{KeyStudents, KeyLecturers, KeyAdmins, KeyCourses} {
		require.NoError(t, store.Save(ctx, key, []string{key}))
	}

	var out []string
	require.NoError(t, store.Load(ctx, KeyAdmins, &out))
	assert.Equal(t, []string{KeyAdmins}, out)
}

func TestFilesystemSaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, KeyCourses, []models.Course{{ID: "1", Title: "First"}}))
	require.NoError(t, store.Save(ctx, KeyCourses, []models.Course{{ID: "2", Title: "Second"}}))

	var out []models.Course
	require.NoError(t, store.Load(ctx, KeyCourses, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Second", out[0].Title)
}

func TestFilesystemDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, KeySessionToken, "abc"))
	require.NoError(t, store.Delete(ctx, KeySessionToken))

	var out string
	assert.ErrorIs(t, store.Load(ctx, KeySessionToken, &out), ErrAbsent)

	// Deleting an already-absent key is not an error.
	assert.NoError(t, store.Delete(ctx, KeySessionToken))
}
