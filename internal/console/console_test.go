package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/openlms-dev/admin-console/internal/controller"
	"github.com/openlms-dev/admin-console/internal/gateway"
	"github.com/openlms-dev/admin-console/internal/gateway/gatewaytest"
	"github.com/openlms-dev/admin-console/internal/mirror"
	"github.com/openlms-dev/admin-console/internal/models"
	"github.com/openlms-dev/admin-console/internal/report"
	"github.com/openlms-dev/admin-console/internal/session"
	"github.com/openlms-dev/admin-console/internal/validate"
	"github.com/openlms-dev/admin-console/pkg/config"
	"github.com/openlms-dev/admin-console/pkg/metrics"
)

type fixture struct {
	backend *gatewaytest.Server
	store   mirror.Store
	deps    Deps
}

func newFixture(t *testing.T, backend *gatewaytest.Server, baseURL string) *fixture {
	t.Helper()

	store, err := mirror.NewFilesystem(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		API:    config.APIConfig{BaseURL: baseURL, Timeout: 2 * time.Second},
		UI:     config.UIConfig{PageSize: 5, Theme: config.ThemeLight},
		Export: config.ExportConfig{Dir: t.TempDir()},
	}

	sess := session.New(store)
	client := gateway.NewClient(cfg.API, sess, metrics.NewRecorder(), nil)
	exporter, err := report.NewExporter(cfg.Export.Dir)
	require.NoError(t, err)

	logr := zap.NewNop()
	deps := Deps{
		Config:    cfg,
		Logger:    logr,
		Session:   sess,
		Auth:      gateway.NewAuthGateway(client),
		Students:  controller.NewRemote[models.Student, validate.StudentForm](gateway.NewStudentGateway(client), store, mirror.KeyStudents, logr),
		Lecturers: controller.NewRemote[models.Lecturer, validate.LecturerForm](gateway.NewLecturerGateway(client), store, mirror.KeyLecturers, logr),
		Admins:    controller.NewRemote[models.Admin, models.Admin](gateway.AdminRemote{AdminGateway: gateway.NewAdminGateway(client)}, store, mirror.KeyAdmins, logr),
		Courses:   controller.NewLocal[models.Course](store, mirror.KeyCourses, models.StarterCourses, logr),
		Settings:  controller.NewSettings(store),
		Validator: validate.New(),
		Exporter:  exporter,
		Recorder:  metrics.NewRecorder(),
	}
	return &fixture{backend: backend, store: store, deps: deps}
}

func startFixture(t *testing.T, backend *gatewaytest.Server) *fixture {
	t.Helper()
	srv := backend.Start()
	t.Cleanup(srv.Close)
	return newFixture(t, backend, srv.URL+"/api")
}

// run drives the console with a scripted input and returns everything it
// printed.
func (f *fixture) run(t *testing.T, input string) string {
	t.Helper()
	out := &bytes.Buffer{}
	c := New(f.deps, strings.NewReader(input), out)
	require.NoError(t, c.Run(context.Background()))
	return out.String()
}

func TestConsoleDeleteDeclinedMakesNoGatewayCall(t *testing.T) {
	backend := gatewaytest.New()
	backend.SeedStudents(models.Student{ID: "1", FullName: "John Doe", AccountStatus: models.StatusActive})
	f := startFixture(t, backend)

	out := f.run(t, "delete 1\nn\nexit\n")

	assert.Contains(t, out, "Cancelled.")
	assert.Zero(t, backend.Calls("student.delete"))
	assert.Len(t, backend.Students(), 1)
}

func TestConsoleDeleteConfirmed(t *testing.T) {
	backend := gatewaytest.New()
	backend.SeedStudents(models.Student{ID: "1", FullName: "John Doe", AccountStatus: models.StatusActive})
	f := startFixture(t, backend)

	out := f.run(t, "delete 1\ny\nexit\n")

	assert.Contains(t, out, "Student deleted.")
	assert.Equal(t, 1, backend.Calls("student.delete"))
	assert.Empty(t, backend.Students())
}

func TestConsoleSearchNarrowsTheTable(t *testing.T) {
	backend := gatewaytest.New()
	backend.SeedStudents(
		models.Student{ID: "1", FullName: "John Doe", Email: "john@example.com"},
		models.Student{ID: "2", FullName: "Jane Smith", Email: "jane@example.com"},
	)
	f := startFixture(t, backend)

	out := f.run(t, "search jane\nexit\n")

	// Everything after the first prompt is the post-search render.
	afterSearch := out[strings.Index(out, "]> "):]
	assert.Contains(t, afterSearch, "Jane Smith")
	assert.NotContains(t, afterSearch, "John Doe")
	assert.Contains(t, out, "Showing 1-1, page 1/1 (total 2)")
}

func TestConsolePagination(t *testing.T) {
	backend := gatewaytest.New()
	var students []models.Student
	for _, s := range []struct{ id, name string }{
		{"1", "Student One"}, {"2", "Student Two"}, {"3", "Student Three"},
		{"4", "Student Four"}, {"5", "Student Five"}, {"6", "Student Six"},
		{"7", "Student Seven"},
	} {
		students = append(students, models.Student{ID: s.id, FullName: s.name})
	}
	backend.SeedStudents(students...)
	f := startFixture(t, backend)

	out := f.run(t, "next\nexit\n")
	assert.Contains(t, out, "Showing 1-5, page 1/2 (total 7)")
	assert.Contains(t, out, "Showing 6-7, page 2/2 (total 7)")

	// Paging past the end clamps to the last page.
	out = f.run(t, "page 99\nexit\n")
	assert.Contains(t, out, "Showing 6-7, page 2/2 (total 7)")
}

func TestConsoleDeactivateTogglesAccount(t *testing.T) {
	backend := gatewaytest.New()
	backend.SeedStudents(models.Student{ID: "1", FullName: "John Doe", AccountStatus: models.StatusActive})
	f := startFixture(t, backend)

	out := f.run(t, "deactivate 1\nexit\n")

	assert.Contains(t, out, "Account deactivated.")
	require.Len(t, backend.Students(), 1)
	assert.Equal(t, models.StatusInactive, backend.Students()[0].AccountStatus)
}

func TestConsoleAddStudentStopsOnValidationFailure(t *testing.T) {
	backend := gatewaytest.New()
	f := startFixture(t, backend)

	// Eight empty answers leave every field blank.
	out := f.run(t, "add\n\n\n\n\n\n\n\n\nexit\n")

	assert.Contains(t, out, "Please fix the following and try again:")
	assert.Contains(t, out, "Full name is required.")
	assert.Zero(t, backend.Calls("student.create"))
}

func TestConsoleAddStudentSubmitsValidForm(t *testing.T) {
	backend := gatewaytest.New()
	f := startFixture(t, backend)

	answers := strings.Join([]string{
		"add",
		"Alice Perera",
		"alice@example.com",
		"0771234567",
		"Online",
		"B2024-A",
		"2000-04-12",
		"12 Lake Road",
		"STU2024001",
		"exit",
	}, "\n") + "\n"
	out := f.run(t, answers)

	assert.Contains(t, out, "Student registered.")
	require.Len(t, backend.Students(), 1)
	assert.Equal(t, "Alice Perera", backend.Students()[0].FullName)
}

func TestConsoleLoginAndWhoami(t *testing.T) {
	backend := gatewaytest.New()
	backend.SeedUser("admin@example.com", "secret")
	f := startFixture(t, backend)

	out := f.run(t, "login\nadmin@example.com\nsecret\nwhoami\nexit\n")

	assert.Contains(t, out, "Logged in as Admin User.")
	assert.Contains(t, out, "Admin User <admin@example.com> (admin)")
	assert.True(t, f.deps.Session.Authenticated())
	assert.Equal(t, "Bearer "+backend.Token(), backend.LastAuthorization())
}

func TestOneShotLoginEstablishesSession(t *testing.T) {
	backend := gatewaytest.New()
	backend.SeedUser("admin@example.com", "secret")
	f := startFixture(t, backend)

	out := &bytes.Buffer{}
	err := OneShotLogin(context.Background(), f.deps, "admin@example.com", strings.NewReader("secret\n"), out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Logged in as Admin User.")
	assert.True(t, f.deps.Session.Authenticated())

	// A fresh session over the same store resumes the credential.
	resumed := session.New(f.store)
	resumed.Restore(context.Background())
	assert.Equal(t, backend.Token(), resumed.Token())
}

func TestOneShotLoginFailsOnBadCredentials(t *testing.T) {
	backend := gatewaytest.New()
	backend.SeedUser("admin@example.com", "secret")
	f := startFixture(t, backend)

	out := &bytes.Buffer{}
	err := OneShotLogin(context.Background(), f.deps, "admin@example.com", strings.NewReader("wrong\n"), out)
	require.Error(t, err)
	assert.False(t, f.deps.Session.Authenticated())

	// Invalid input is rejected before any gateway call.
	calls := backend.Calls("user.login")
	err = OneShotLogin(context.Background(), f.deps, "not-an-email", strings.NewReader("secret\n"), out)
	require.Error(t, err)
	assert.Equal(t, calls, backend.Calls("user.login"))
}

func TestConsoleLoginRejectedShowsSessionMessage(t *testing.T) {
	backend := gatewaytest.New()
	backend.SeedUser("admin@example.com", "secret")
	f := startFixture(t, backend)

	out := f.run(t, "login\nadmin@example.com\nwrong\nexit\n")

	assert.Contains(t, out, "invalid email or password")
	assert.False(t, f.deps.Session.Authenticated())
}

func TestConsoleOfflineFallsBackToMirroredData(t *testing.T) {
	backend := gatewaytest.New()
	// Point at a port nothing listens on; the mirror already holds data from a
	// previous session.
	f := newFixture(t, backend, "http://127.0.0.1:1/api")
	require.NoError(t, f.store.Save(context.Background(), mirror.KeyStudents, []models.Student{
		{ID: "1", FullName: "Mirrored Student"},
	}))

	out := f.run(t, "exit\n")

	assert.Contains(t, out, "could not reach the server, please try again (showing last saved data if available)")
	assert.Contains(t, out, "Mirrored Student")
}

func TestConsoleSettingsEditAndSave(t *testing.T) {
	backend := gatewaytest.New()
	f := startFixture(t, backend)
	f.deps.StartScreen = ScreenSettings

	out := f.run(t, "set general platform_name Acme Academy\nsave general\nexit\n")

	assert.Contains(t, out, "Updated (not saved yet).")
	assert.Contains(t, out, "General settings saved successfully!")

	var saved models.Settings
	require.NoError(t, f.store.Load(context.Background(), mirror.KeySettings, &saved))
	assert.Equal(t, "Acme Academy", saved.General.PlatformName)
}

func TestConsoleCourseCatalogIsClientOnly(t *testing.T) {
	backend := gatewaytest.New()
	f := startFixture(t, backend)
	f.deps.StartScreen = ScreenCourses

	out := f.run(t, "delete 1\ny\nexit\n")

	assert.Contains(t, out, "Course deleted.")
	// Nothing about courses ever reaches the backend.
	assert.Zero(t, backend.Calls("student.list"))

	var mirrored []models.Course
	require.NoError(t, f.store.Load(context.Background(), mirror.KeyCourses, &mirrored))
	assert.Len(t, mirrored, len(models.StarterCourses())-1)
}

func TestConsoleReportExport(t *testing.T) {
	backend := gatewaytest.New()
	backend.SeedStudents(models.Student{ID: "1", FullName: "John Doe", AccountStatus: models.StatusActive})
	f := startFixture(t, backend)
	f.deps.StartScreen = ScreenReports

	out := f.run(t, "export csv students\nexit\n")

	assert.Contains(t, out, "Students: 1 (1 active)")
	assert.Contains(t, out, "Exported ")
}

func TestConsoleUnknownCommand(t *testing.T) {
	backend := gatewaytest.New()
	f := startFixture(t, backend)

	out := f.run(t, "frobnicate\nexit\n")
	assert.Contains(t, out, "unknown command; try 'help'")
}
