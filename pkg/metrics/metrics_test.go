package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.Observe("student", "list", "success", 12*time.Millisecond)
	r.Observe("student", "list", "success", 8*time.Millisecond)
	r.Observe("student", "create", "declined", 5*time.Millisecond)
	r.Observe("admin", "list", "transport", 30*time.Millisecond)

	rows, err := r.Snapshot()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Sorted by entity, verb, outcome.
	assert.Equal(t, Row{Entity: "admin", Verb: "list", Outcome: "transport", Count: 1}, rows[0])
	assert.Equal(t, Row{Entity: "student", Verb: "create", Outcome: "declined", Count: 1}, rows[1])
	assert.Equal(t, Row{Entity: "student", Verb: "list", Outcome: "success", Count: 2}, rows[2])
}

func TestRecorderNilIsSafe(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Observe("student", "list", "success", time.Millisecond)
	})
}

func TestRecorderEmptySnapshot(t *testing.T) {
	rows, err := NewRecorder().Snapshot()
	require.NoError(t, err)
	assert.Empty(t, rows)
}
