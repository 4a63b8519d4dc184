// Package console is the interactive shell: one screen at a time, each
// backed by its controller, with search and pagination derived on every
// render. It is the terminal rendition of the admin dashboard's single page.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/openlms-dev/admin-console/internal/controller"
	"github.com/openlms-dev/admin-console/internal/gateway"
	"github.com/openlms-dev/admin-console/internal/models"
	"github.com/openlms-dev/admin-console/internal/report"
	"github.com/openlms-dev/admin-console/internal/session"
	"github.com/openlms-dev/admin-console/internal/validate"
	"github.com/openlms-dev/admin-console/pkg/config"
	appErrors "github.com/openlms-dev/admin-console/pkg/errors"
	"github.com/openlms-dev/admin-console/pkg/metrics"
)

// Screen names.
const (
	ScreenStudents  = "students"
	ScreenLecturers = "lecturers"
	ScreenAdmins    = "admins"
	ScreenCourses   = "courses"
	ScreenSettings  = "settings"
	ScreenReports   = "reports"
)

var screens = []string{ScreenStudents, ScreenLecturers, ScreenAdmins, ScreenCourses, ScreenSettings, ScreenReports}

// Deps bundles everything the shell drives.
type Deps struct {
	Config    *config.Config
	Logger    *zap.Logger
	Session   *session.Session
	Auth      *gateway.AuthGateway
	Students  *controller.Remote[models.Student, validate.StudentForm]
	Lecturers *controller.Remote[models.Lecturer, validate.LecturerForm]
	Admins    *controller.Remote[models.Admin, models.Admin]
	Courses   *controller.Local[models.Course]
	Settings  *controller.Settings
	Validator *validate.Validator
	Exporter  *report.Exporter
	Recorder  *metrics.Recorder

	// StartScreen optionally opens the console somewhere other than the
	// students screen.
	StartScreen string
}

// Console runs the command loop over an input/output pair. Tests drive it
// through strings.Reader and bytes.Buffer.
type Console struct {
	Deps

	in  *bufio.Scanner
	out io.Writer

	screen  string
	query   string
	page    int
	dark    bool
	filters report.Filters

	// readPassword is swapped out in tests and when stdin is not a TTY.
	readPassword func() (string, error)
}

// New builds a console reading from in and writing to out.
func New(deps Deps, in io.Reader, out io.Writer) *Console {
	start := ScreenStudents
	for _, screen := range screens {
		if deps.StartScreen == screen {
			start = screen
		}
	}
	c := &Console{
		Deps:   deps,
		in:     bufio.NewScanner(in),
		out:    out,
		screen: start,
		page:   1,
		dark:   deps.Config.UI.Theme == config.ThemeDark,
	}
	c.readPassword = c.promptPassword
	return c
}

// Run executes the command loop until exit or EOF.
func (c *Console) Run(ctx context.Context) error {
	c.banner()
	c.openScreen(ctx, c.screen)

	for {
		fmt.Fprintf(c.out, "%s> ", c.prompt())
		if !c.in.Scan() {
			return c.in.Err()
		}
		line := strings.TrimSpace(c.in.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			fmt.Fprintln(c.out, "Bye.")
			return nil
		}
		c.dispatch(ctx, line)
	}
}

func (c *Console) prompt() string {
	p := fmt.Sprintf("[%s p%d]", c.screen, c.page)
	if c.dark {
		return "\033[37;44m" + p + "\033[0m"
	}
	return p
}

func (c *Console) banner() {
	user := "not logged in"
	if u := c.Session.User(); u != nil {
		user = u.FullName
	}
	fmt.Fprintf(c.out, "LMS Admin Console - %s\n", user)
	if c.Session.Authenticated() && c.Session.Expired() {
		c.warn("Session token has expired; log in again.")
	}
	fmt.Fprintln(c.out, "Type 'help' for commands.")
}

func (c *Console) dispatch(ctx context.Context, line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	// Screen switches first: typing a screen name navigates to it.
	for _, screen := range screens {
		if cmd == screen || (cmd == "open" && len(args) == 1 && args[0] == screen) {
			c.openScreen(ctx, screen)
			return
		}
	}

	switch cmd {
	case "help":
		c.help()
	case "list":
		c.render()
	case "search":
		c.query = strings.Join(args, " ")
		c.page = 1
		c.render()
	case "page":
		if len(args) != 1 {
			c.warn("usage: page <n>")
			return
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			c.warn("usage: page <n>")
			return
		}
		c.page = n
		c.render()
	case "next":
		c.page++
		c.render()
	case "prev":
		c.page--
		c.render()
	case "refresh":
		c.refresh(ctx)
		c.render()
	case "theme":
		c.dark = !c.dark
		if c.dark {
			fmt.Fprintln(c.out, "Theme: dark")
		} else {
			fmt.Fprintln(c.out, "Theme: light")
		}
	case "whoami":
		c.whoami()
	case "stats":
		c.stats()
	case "login":
		c.login(ctx)
	case "logout":
		c.logout(ctx)
	case "reset-password":
		c.resetPassword(ctx)
	default:
		c.screenCommand(ctx, cmd, args)
	}
}

// openScreen is the mount point: leaving a server-backed screen discards any
// response still in flight for it, and the new screen refreshes.
func (c *Console) openScreen(ctx context.Context, screen string) {
	switch c.screen {
	case ScreenStudents:
		c.Students.Reset()
	case ScreenLecturers:
		c.Lecturers.Reset()
	case ScreenAdmins:
		c.Admins.Reset()
	}

	c.screen = screen
	c.query = ""
	c.page = 1

	c.refresh(ctx)
	c.render()
}

func (c *Console) refresh(ctx context.Context) {
	var err error
	switch c.screen {
	case ScreenStudents:
		err = c.Students.Refresh(ctx)
	case ScreenLecturers:
		err = c.Lecturers.Refresh(ctx)
	case ScreenAdmins:
		err = c.Admins.Refresh(ctx)
	case ScreenCourses:
		err = c.Courses.Refresh(ctx)
	case ScreenSettings:
		c.Settings.Load(ctx)
	case ScreenReports:
		// Reports read the other screens' collections; make sure the
		// server-backed ones are populated.
		if refreshErr := c.Students.Refresh(ctx); refreshErr != nil && err == nil {
			err = refreshErr
		}
		if refreshErr := c.Lecturers.Refresh(ctx); refreshErr != nil && err == nil {
			err = refreshErr
		}
		_ = c.Courses.Refresh(ctx)
	}
	if err != nil {
		c.showError(err)
	}
}

// showError surfaces every controller failure as a visible banner; nothing
// is swallowed.
func (c *Console) showError(err error) {
	e := appErrors.FromError(err)
	switch {
	case appErrors.IsTransport(err):
		c.warn(e.Message + " (showing last saved data if available)")
	default:
		c.warn(e.Message)
	}
	c.Logger.Debug("operation_failed", zap.String("code", e.Code), zap.Error(err))
}

func (c *Console) warn(msg string) {
	if c.dark {
		fmt.Fprintf(c.out, "\033[33m! %s\033[0m\n", msg)
	} else {
		fmt.Fprintf(c.out, "! %s\n", msg)
	}
}

func (c *Console) whoami() {
	user := c.Session.User()
	if user == nil {
		fmt.Fprintln(c.out, "Not logged in.")
		return
	}
	fmt.Fprintf(c.out, "%s <%s> (%s)\n", user.FullName, user.Email, user.Role)
	if exp := c.Session.ExpiresAt(); !exp.IsZero() {
		fmt.Fprintf(c.out, "Token expires: %s\n", exp.Format("2006-01-02 15:04:05"))
	}
}

func (c *Console) stats() {
	rows, err := c.Recorder.Snapshot()
	if err != nil {
		c.showError(err)
		return
	}
	if len(rows) == 0 {
		fmt.Fprintln(c.out, "No gateway calls yet.")
		return
	}
	for _, row := range rows {
		fmt.Fprintf(c.out, "%-10s %-14s %-10s %.0f\n", row.Entity, row.Verb, row.Outcome, row.Count)
	}
}

func (c *Console) login(ctx context.Context) {
	email := c.promptLine("Email: ")
	if err := c.loginAs(ctx, email); err != nil {
		c.showError(err)
	}
}

// loginAs prompts for the password, authenticates and persists the session.
func (c *Console) loginAs(ctx context.Context, email string) error {
	password, err := c.readPassword()
	if err != nil {
		return err
	}

	form := validate.LoginForm{Email: email, Password: password}
	if errs := c.Validator.Check(form); len(errs) > 0 {
		c.showFieldErrors(errs)
		return appErrors.Clone(appErrors.ErrValidation, "login details are invalid")
	}

	result, err := c.Auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := c.Session.Establish(ctx, result.Token, result.UserDetails); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Logged in as %s.\n", result.UserDetails.FullName)
	return nil
}

// OneShotLogin authenticates as email and persists the session without
// entering the command loop, for scripted use.
func OneShotLogin(ctx context.Context, deps Deps, email string, in io.Reader, out io.Writer) error {
	return New(deps, in, out).loginAs(ctx, email)
}

func (c *Console) logout(ctx context.Context) {
	if err := c.Session.Clear(ctx); err != nil {
		c.showError(err)
		return
	}
	fmt.Fprintln(c.out, "Logged out.")
}

func (c *Console) resetPassword(ctx context.Context) {
	email := c.promptLine("Email: ")
	if err := c.Auth.SendOTP(ctx, email); err != nil {
		c.showError(err)
		return
	}
	fmt.Fprintln(c.out, "OTP sent; check the account's inbox.")

	otp := c.promptLine("OTP: ")
	password, err := c.readPassword()
	if err != nil {
		c.showError(err)
		return
	}

	form := validate.ResetPasswordForm{Email: email, OTP: otp, NewPassword: password}
	if errs := c.Validator.Check(form); len(errs) > 0 {
		c.showFieldErrors(errs)
		return
	}

	if err := c.Auth.ResetPassword(ctx, email, otp, password); err != nil {
		c.showError(err)
		return
	}
	fmt.Fprintln(c.out, "Password reset; log in with the new password.")
}

func (c *Console) showFieldErrors(errs validate.FieldErrors) {
	for field, msg := range errs {
		fmt.Fprintf(c.out, "  %s: %s\n", field, msg)
	}
}

func (c *Console) promptLine(label string) string {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

// promptPassword reads without echo on a real terminal and falls back to a
// plain line otherwise.
func (c *Console) promptPassword() (string, error) {
	fmt.Fprint(c.out, "Password: ")
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(c.out)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	if !c.in.Scan() {
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// confirm blocks a destructive action until the user answers; anything but
// yes declines.
func (c *Console) confirm(question string) bool {
	answer := strings.ToLower(c.promptLine(question + " [y/N] "))
	return answer == "y" || answer == "yes"
}

func (c *Console) help() {
	fmt.Fprintln(c.out, `Screens: students, lecturers, admins, courses, settings, reports
Anywhere: list, search <q>, page <n>, next, prev, refresh, theme,
          whoami, stats, login, logout, reset-password, help, exit
Students/Lecturers: add, edit <id>, view <id>, delete <id>,
          activate <id>, deactivate <id>
Admins:   edit <id>, delete <id>
Courses:  add, view <id>, delete <id>
Settings: show, set <section> <field> <value>, save <section>
Reports:  show, filter course=<q> instructor=<q> start=<date> end=<date>,
          export csv|pdf <table>`)
}
