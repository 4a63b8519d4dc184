package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlms-dev/admin-console/internal/mirror"
	"github.com/openlms-dev/admin-console/internal/models"
	appErrors "github.com/openlms-dev/admin-console/pkg/errors"
)

// fakeGateway is a hand-rolled RemoteGateway over an in-memory student slice.
type fakeGateway struct {
	items []models.Student

	listErr   error
	createErr error
	updateErr error
	deleteErr error
	statusErr error

	listCalls   int
	createCalls int
	deleteCalls int
	statusCalls int

	lastStatus models.AccountStatus

	listStarted   chan struct{}
	listGate      chan struct{}
	createStarted chan struct{}
	createGate    chan struct{}
}

func (g *fakeGateway) List(context.Context) ([]models.Student, error) {
	g.listCalls++
	if g.listStarted != nil {
		g.listStarted <- struct{}{}
		g.listStarted = nil
	}
	if g.listGate != nil {
		gate := g.listGate
		g.listGate = nil
		<-gate
	}
	if g.listErr != nil {
		return nil, g.listErr
	}
	out := make([]models.Student, len(g.items))
	copy(out, g.items)
	return out, nil
}

func (g *fakeGateway) Create(_ context.Context, form models.Student) error {
	g.createCalls++
	if g.createStarted != nil {
		g.createStarted <- struct{}{}
		g.createStarted = nil
	}
	if g.createGate != nil {
		gate := g.createGate
		g.createGate = nil
		<-gate
	}
	if g.createErr != nil {
		return g.createErr
	}
	g.items = append(g.items, form)
	return nil
}

func (g *fakeGateway) Update(_ context.Context, id string, form models.Student) error {
	if g.updateErr != nil {
		return g.updateErr
	}
	for i, item := range g.items {
		if item.ID == id {
			form.ID = id
			g.items[i] = form
		}
	}
	return nil
}

func (g *fakeGateway) Delete(_ context.Context, id string) error {
	g.deleteCalls++
	if g.deleteErr != nil {
		return g.deleteErr
	}
	kept := g.items[:0]
	for _, item := range g.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	g.items = kept
	return nil
}

func (g *fakeGateway) SetStatus(_ context.Context, id string, status models.AccountStatus) error {
	g.statusCalls++
	g.lastStatus = status
	if g.statusErr != nil {
		return g.statusErr
	}
	for i, item := range g.items {
		if item.ID == id {
			g.items[i].AccountStatus = status
		}
	}
	return nil
}

func newRemoteFixture(t *testing.T, gw *fakeGateway) (*Remote[models.Student, models.Student], mirror.Store) {
	t.Helper()
	store, err := mirror.NewFilesystem(t.TempDir())
	require.NoError(t, err)
	return NewRemote[models.Student, models.Student](gw, store, mirror.KeyStudents, nil), store
}

func TestRemoteRefreshReplacesCollectionAndMirrors(t *testing.T) {
	gw := &fakeGateway{items: []models.Student{
		{ID: "1", FullName: "John Doe", AccountStatus: models.StatusActive},
		{ID: "2", FullName: "Jane Smith", AccountStatus: models.StatusActive},
	}}
	ctrl, store := newRemoteFixture(t, gw)
	ctx := context.Background()

	require.NoError(t, ctrl.Refresh(ctx))
	assert.Len(t, ctrl.Items(), 2)

	var mirrored []models.Student
	require.NoError(t, store.Load(ctx, mirror.KeyStudents, &mirrored))
	assert.Equal(t, gw.items, mirrored)
}

func TestRemoteRefreshIsIdempotent(t *testing.T) {
	gw := &fakeGateway{items: []models.Student{{ID: "1", FullName: "John Doe"}}}
	ctrl, _ := newRemoteFixture(t, gw)
	ctx := context.Background()

	require.NoError(t, ctrl.Refresh(ctx))
	first := ctrl.Items()
	require.NoError(t, ctrl.Refresh(ctx))
	assert.Equal(t, first, ctrl.Items())
	assert.Equal(t, 2, gw.listCalls)
}

func TestRemoteRefreshFallsBackToMirrorOnFailure(t *testing.T) {
	gw := &fakeGateway{listErr: appErrors.ErrTransport}
	ctrl, store := newRemoteFixture(t, gw)
	ctx := context.Background()

	saved := []models.Student{{ID: "1", FullName: "John Doe"}}
	require.NoError(t, store.Save(ctx, mirror.KeyStudents, saved))

	err := ctrl.Refresh(ctx)
	require.Error(t, err)
	assert.True(t, appErrors.IsTransport(err))
	assert.Equal(t, saved, ctrl.Items())
}

func TestRemoteRefreshFailureWithoutMirrorYieldsEmpty(t *testing.T) {
	gw := &fakeGateway{listErr: appErrors.ErrTransport}
	ctrl, _ := newRemoteFixture(t, gw)

	err := ctrl.Refresh(context.Background())
	require.Error(t, err)
	assert.Empty(t, ctrl.Items())
}

func TestRemoteCreateTriggersRefresh(t *testing.T) {
	gw := &fakeGateway{}
	ctrl, _ := newRemoteFixture(t, gw)
	ctx := context.Background()

	require.NoError(t, ctrl.Refresh(ctx))
	require.NoError(t, ctrl.Create(ctx, models.Student{ID: "9", FullName: "New Student"}))

	assert.Equal(t, 1, gw.createCalls)
	assert.Equal(t, 2, gw.listCalls)
	_, found := ctrl.Find("9")
	assert.True(t, found)
}

func TestRemoteCreateFailureLeavesCollectionUntouched(t *testing.T) {
	gw := &fakeGateway{items: []models.Student{{ID: "1", FullName: "John Doe"}}}
	ctrl, _ := newRemoteFixture(t, gw)
	ctx := context.Background()

	require.NoError(t, ctrl.Refresh(ctx))
	gw.createErr = appErrors.Clone(appErrors.ErrApplication, "email already registered")

	err := ctrl.Create(ctx, models.Student{ID: "9"})
	require.Error(t, err)
	assert.True(t, appErrors.IsApplication(err))
	assert.Len(t, ctrl.Items(), 1)
	assert.Equal(t, 1, gw.listCalls)
}

func TestRemoteRemoveDeclinedMakesNoCalls(t *testing.T) {
	gw := &fakeGateway{items: []models.Student{{ID: "1", FullName: "John Doe"}}}
	ctrl, _ := newRemoteFixture(t, gw)
	ctx := context.Background()

	require.NoError(t, ctrl.Refresh(ctx))

	removed, err := ctrl.Remove(ctx, "1", func() bool { return false })
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 0, gw.deleteCalls)
	assert.Equal(t, 1, gw.listCalls)
	assert.Len(t, ctrl.Items(), 1)

	removed, err = ctrl.Remove(ctx, "1", nil)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 0, gw.deleteCalls)
}

func TestRemoteRemoveConfirmed(t *testing.T) {
	gw := &fakeGateway{items: []models.Student{
		{ID: "1", FullName: "John Doe"},
		{ID: "2", FullName: "Jane Smith"},
	}}
	ctrl, _ := newRemoteFixture(t, gw)
	ctx := context.Background()

	require.NoError(t, ctrl.Refresh(ctx))

	removed, err := ctrl.Remove(ctx, "1", func() bool { return true })
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 1, gw.deleteCalls)

	items := ctrl.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ID)
}

func TestRemoteSetStatusRejectsUnknownValue(t *testing.T) {
	gw := &fakeGateway{items: []models.Student{{ID: "1", AccountStatus: models.StatusActive}}}
	ctrl, _ := newRemoteFixture(t, gw)

	err := ctrl.SetStatus(context.Background(), "1", models.AccountStatus("suspended"))
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, 0, gw.statusCalls)
}

func TestRemoteSetStatusTogglesExactly(t *testing.T) {
	gw := &fakeGateway{items: []models.Student{{ID: "1", AccountStatus: models.StatusActive}}}
	ctrl, _ := newRemoteFixture(t, gw)
	ctx := context.Background()

	require.NoError(t, ctrl.Refresh(ctx))

	current, found := ctrl.Find("1")
	require.True(t, found)
	require.NoError(t, ctrl.SetStatus(ctx, "1", current.AccountStatus.Toggled()))

	assert.Equal(t, 1, gw.statusCalls)
	assert.Equal(t, models.StatusInactive, gw.lastStatus)

	updated, found := ctrl.Find("1")
	require.True(t, found)
	assert.Equal(t, models.StatusInactive, updated.AccountStatus)
}

func TestRemoteSecondMutationWhileInFlightIsBusy(t *testing.T) {
	gw := &fakeGateway{
		createStarted: make(chan struct{}, 1),
		createGate:    make(chan struct{}),
	}
	gate := gw.createGate
	started := gw.createStarted
	ctrl, _ := newRemoteFixture(t, gw)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		done <- ctrl.Create(ctx, models.Student{ID: "1"})
	}()

	// Wait for the first mutation to reach the gateway.
	<-started

	err := ctrl.Create(ctx, models.Student{ID: "2"})
	assert.ErrorIs(t, err, appErrors.ErrBusy)

	close(gate)
	require.NoError(t, <-done)
	assert.Equal(t, 1, gw.createCalls)
}

func TestRemoteResetDropsInFlightResponse(t *testing.T) {
	gw := &fakeGateway{
		items:       []models.Student{{ID: "1", FullName: "John Doe"}},
		listStarted: make(chan struct{}, 1),
		listGate:    make(chan struct{}),
	}
	gate := gw.listGate
	started := gw.listStarted
	ctrl, _ := newRemoteFixture(t, gw)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		done <- ctrl.Refresh(ctx)
	}()

	<-started
	ctrl.Reset()
	close(gate)
	require.NoError(t, <-done)

	// The response belonged to the old view and must not be installed.
	assert.Empty(t, ctrl.Items())
}
