package console

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/openlms-dev/admin-console/internal/models"
	"github.com/openlms-dev/admin-console/internal/report"
	"github.com/openlms-dev/admin-console/internal/view"
)

func (c *Console) screenCommand(ctx context.Context, cmd string, args []string) {
	switch c.screen {
	case ScreenStudents:
		c.studentCommand(ctx, cmd, args)
	case ScreenLecturers:
		c.lecturerCommand(ctx, cmd, args)
	case ScreenAdmins:
		c.adminCommand(ctx, cmd, args)
	case ScreenCourses:
		c.courseCommand(ctx, cmd, args)
	case ScreenSettings:
		c.settingsCommand(ctx, cmd, args)
	case ScreenReports:
		c.reportsCommand(cmd, args)
	}
}

func (c *Console) render() {
	switch c.screen {
	case ScreenStudents:
		items, pages := view.Paginate(view.Filter(c.Students.Items(), c.query), c.page, c.Config.UI.PageSize)
		c.page = pages.Current
		w := c.table()
		fmt.Fprintln(w, "ID\tREG\tNAME\tEMAIL\tMODE\tBATCH\tSTATUS")
		for _, s := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", s.ID, s.RegNumber, s.FullName, s.Email, s.Mode, s.BatchNumber, s.AccountStatus)
		}
		w.Flush()
		c.footer(pages, len(c.Students.Items()))
	case ScreenLecturers:
		items, pages := view.Paginate(view.Filter(c.Lecturers.Items(), c.query), c.page, c.Config.UI.PageSize)
		c.page = pages.Current
		w := c.table()
		fmt.Fprintln(w, "ID\tREG\tNAME\tEMAIL\tSUBJECT\tMODE\tSTATUS")
		for _, l := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", l.ID, l.RegNumber, l.FullName, l.Email, l.Subject, l.Mode, l.AccountStatus)
		}
		w.Flush()
		c.footer(pages, len(c.Lecturers.Items()))
	case ScreenAdmins:
		items, pages := view.Paginate(view.Filter(c.Admins.Items(), c.query), c.page, c.Config.UI.PageSize)
		c.page = pages.Current
		w := c.table()
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE")
		for _, a := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, a.FullName, a.Email, a.Phone)
		}
		w.Flush()
		c.footer(pages, len(c.Admins.Items()))
	case ScreenCourses:
		items, pages := view.Paginate(view.Filter(c.Courses.Items(), c.query), c.page, c.Config.UI.PageSize)
		c.page = pages.Current
		w := c.table()
		fmt.Fprintln(w, "ID\tTITLE\tMODE\tLANGUAGE\tDURATION")
		for _, course := range items {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", course.ID, course.Title, course.Mode, course.Language, course.Duration)
		}
		w.Flush()
		c.footer(pages, len(c.Courses.Items()))
	case ScreenSettings:
		c.renderSettings()
	case ScreenReports:
		c.renderReports()
	}
}

func (c *Console) table() *tabwriter.Writer {
	return tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
}

func (c *Console) footer(pages view.Pages, total int) {
	if pages.From == 0 {
		fmt.Fprintf(c.out, "No entries (total %d)\n", total)
		return
	}
	fmt.Fprintf(c.out, "Showing %d-%d, page %d/%d (total %d)\n", pages.From, pages.To, pages.Current, pages.Total, total)
}

func (c *Console) studentCommand(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "add":
		form, ok := c.readStudentForm(nil)
		if !ok {
			return
		}
		if err := c.Students.Create(ctx, form); err != nil {
			c.showError(err)
			return
		}
		fmt.Fprintln(c.out, "Student registered.")
		c.render()
	case "edit":
		if len(args) != 1 {
			c.warn("usage: edit <id>")
			return
		}
		existing, found := c.Students.Find(args[0])
		if !found {
			c.warn("no student with id " + args[0])
			return
		}
		form, ok := c.readStudentForm(&existing)
		if !ok {
			return
		}
		if err := c.Students.Update(ctx, args[0], form); err != nil {
			c.showError(err)
			return
		}
		fmt.Fprintln(c.out, "Student updated.")
		c.render()
	case "view":
		if len(args) != 1 {
			c.warn("usage: view <id>")
			return
		}
		s, found := c.Students.Find(args[0])
		if !found {
			c.warn("no student with id " + args[0])
			return
		}
		fmt.Fprintf(c.out, "%s (%s)\n  email: %s\n  phone: %s\n  mode: %s\n  batch: %s\n  dob: %s\n  address: %s\n  status: %s\n",
			s.FullName, s.RegNumber, s.Email, s.Phone, s.Mode, s.BatchNumber, s.DOB, s.Address, s.AccountStatus)
	case "delete":
		if len(args) != 1 {
			c.warn("usage: delete <id>")
			return
		}
		s, found := c.Students.Find(args[0])
		if !found {
			c.warn("no student with id " + args[0])
			return
		}
		removed, err := c.Students.Remove(ctx, args[0], func() bool {
			return c.confirm(fmt.Sprintf("Delete student %q? This action cannot be undone.", s.FullName))
		})
		if err != nil {
			c.showError(err)
			return
		}
		if !removed {
			fmt.Fprintln(c.out, "Cancelled.")
			return
		}
		fmt.Fprintln(c.out, "Student deleted.")
		c.render()
	case "activate", "deactivate":
		if len(args) != 1 {
			c.warn("usage: " + cmd + " <id>")
			return
		}
		status := models.StatusActive
		if cmd == "deactivate" {
			status = models.StatusInactive
		}
		if err := c.Students.SetStatus(ctx, args[0], status); err != nil {
			c.showError(err)
			return
		}
		fmt.Fprintf(c.out, "Account %sd.\n", cmd)
		c.render()
	default:
		c.warn("unknown command; try 'help'")
	}
}

func (c *Console) lecturerCommand(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "add":
		form, ok := c.readLecturerForm(nil)
		if !ok {
			return
		}
		if err := c.Lecturers.Create(ctx, form); err != nil {
			c.showError(err)
			return
		}
		fmt.Fprintln(c.out, "Lecturer registered.")
		c.render()
	case "edit":
		if len(args) != 1 {
			c.warn("usage: edit <id>")
			return
		}
		existing, found := c.Lecturers.Find(args[0])
		if !found {
			c.warn("no lecturer with id " + args[0])
			return
		}
		form, ok := c.readLecturerForm(&existing)
		if !ok {
			return
		}
		if err := c.Lecturers.Update(ctx, args[0], form); err != nil {
			c.showError(err)
			return
		}
		fmt.Fprintln(c.out, "Lecturer updated.")
		c.render()
	case "view":
		if len(args) != 1 {
			c.warn("usage: view <id>")
			return
		}
		l, found := c.Lecturers.Find(args[0])
		if !found {
			c.warn("no lecturer with id " + args[0])
			return
		}
		fmt.Fprintf(c.out, "%s (%s)\n  email: %s\n  phone: %s\n  subject: %s\n  mode: %s\n  nic: %s\n  dob: %s\n  address: %s\n  status: %s\n",
			l.FullName, l.RegNumber, l.Email, l.Phone, l.Subject, l.Mode, l.NIC, l.DOB, l.Address, l.AccountStatus)
	case "delete":
		if len(args) != 1 {
			c.warn("usage: delete <id>")
			return
		}
		l, found := c.Lecturers.Find(args[0])
		if !found {
			c.warn("no lecturer with id " + args[0])
			return
		}
		removed, err := c.Lecturers.Remove(ctx, args[0], func() bool {
			return c.confirm(fmt.Sprintf("Delete lecturer %q? This action cannot be undone.", l.FullName))
		})
		if err != nil {
			c.showError(err)
			return
		}
		if !removed {
			fmt.Fprintln(c.out, "Cancelled.")
			return
		}
		fmt.Fprintln(c.out, "Lecturer deleted.")
		c.render()
	case "activate", "deactivate":
		if len(args) != 1 {
			c.warn("usage: " + cmd + " <id>")
			return
		}
		status := models.StatusActive
		if cmd == "deactivate" {
			status = models.StatusInactive
		}
		if err := c.Lecturers.SetStatus(ctx, args[0], status); err != nil {
			c.showError(err)
			return
		}
		fmt.Fprintf(c.out, "Account %sd.\n", cmd)
		c.render()
	default:
		c.warn("unknown command; try 'help'")
	}
}

func (c *Console) adminCommand(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "edit":
		if len(args) != 1 {
			c.warn("usage: edit <id>")
			return
		}
		existing, found := c.Admins.Find(args[0])
		if !found {
			c.warn("no admin with id " + args[0])
			return
		}
		updated := existing
		updated.FullName = c.promptDefault("Full Name", existing.FullName)
		updated.Email = c.promptDefault("Email", existing.Email)
		updated.Phone = c.promptDefault("Phone", existing.Phone)
		if err := c.Admins.Update(ctx, args[0], updated); err != nil {
			c.showError(err)
			return
		}
		fmt.Fprintln(c.out, "Admin updated.")
		c.render()
	case "delete":
		if len(args) != 1 {
			c.warn("usage: delete <id>")
			return
		}
		a, found := c.Admins.Find(args[0])
		if !found {
			c.warn("no admin with id " + args[0])
			return
		}
		removed, err := c.Admins.Remove(ctx, args[0], func() bool {
			return c.confirm(fmt.Sprintf("Delete admin %q? This action cannot be undone.", a.FullName))
		})
		if err != nil {
			c.showError(err)
			return
		}
		if !removed {
			fmt.Fprintln(c.out, "Cancelled.")
			return
		}
		fmt.Fprintln(c.out, "Admin deleted.")
		c.render()
	default:
		c.warn("unknown command; try 'help'")
	}
}

func (c *Console) courseCommand(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "add":
		form, ok := c.readCourseForm()
		if !ok {
			return
		}
		err := c.Courses.Create(ctx, func(id string) models.Course {
			return models.Course{
				ID:               id,
				Title:            form.Title,
				ShortDescription: form.ShortDescription,
				Description:      form.Description,
				Thumbnail:        form.Thumbnail,
				Mode:             models.Mode(strings.ToLower(form.Mode)),
				Language:         form.Language,
				Duration:         form.Duration,
			}
		})
		if err != nil {
			c.showError(err)
			return
		}
		fmt.Fprintln(c.out, "Course created.")
		c.render()
	case "view":
		if len(args) != 1 {
			c.warn("usage: view <id>")
			return
		}
		course, found := c.Courses.Find(args[0])
		if !found {
			c.warn("no course with id " + args[0])
			return
		}
		fmt.Fprintf(c.out, "%s\n  %s\n  mode: %s | language: %s | duration: %s\n  %s\n",
			course.Title, course.ShortDescription, course.Mode, course.Language, course.Duration, course.Description)
	case "delete":
		if len(args) != 1 {
			c.warn("usage: delete <id>")
			return
		}
		course, found := c.Courses.Find(args[0])
		if !found {
			c.warn("no course with id " + args[0])
			return
		}
		removed, err := c.Courses.Remove(ctx, args[0], func() bool {
			return c.confirm(fmt.Sprintf("Delete course %q?", course.Title))
		})
		if err != nil {
			c.showError(err)
			return
		}
		if !removed {
			fmt.Fprintln(c.out, "Cancelled.")
			return
		}
		fmt.Fprintln(c.out, "Course deleted.")
		c.render()
	default:
		c.warn("unknown command; try 'help'")
	}
}

func (c *Console) settingsCommand(ctx context.Context, cmd string, args []string) {
	switch cmd {
	case "show":
		c.renderSettings()
	case "set":
		if len(args) < 3 {
			c.warn("usage: set <section> <field> <value>")
			return
		}
		value := strings.Join(args[2:], " ")
		if err := c.Settings.Set(args[0], args[1], value); err != nil {
			c.warn(err.Error())
			return
		}
		fmt.Fprintln(c.out, "Updated (not saved yet).")
	case "save":
		if len(args) != 1 {
			c.warn("usage: save <section>")
			return
		}
		if err := c.Settings.Save(ctx, args[0]); err != nil {
			c.warn(err.Error())
			return
		}
		fmt.Fprintf(c.out, "%s settings saved successfully!\n", capitalize(args[0]))
	default:
		c.warn("unknown command; try 'help'")
	}
}

func (c *Console) renderSettings() {
	settings := c.Settings.Get()
	fmt.Fprintf(c.out, "general:\n  platform_name: %s\n  support_email: %s\n  contact_phone: %s\n  address: %s\n",
		settings.General.PlatformName, settings.General.SupportEmail, settings.General.ContactPhone, settings.General.Address)
	fmt.Fprintf(c.out, "course:\n  default_language: %s\n  allow_free_courses: %t\n  course_approval_required: %t\n  max_upload_size: %s\n",
		settings.Course.DefaultLanguage, settings.Course.AllowFreeCourses, settings.Course.CourseApprovalRequired, settings.Course.MaxUploadSize)
	fmt.Fprintf(c.out, "user:\n  allow_student_registration: %t\n  email_verification_required: %t\n  default_user_role: %s\n",
		settings.User.AllowStudentRegistration, settings.User.EmailVerificationRequired, settings.User.DefaultUserRole)
	fmt.Fprintf(c.out, "payment:\n  currency: %s\n  enable_payments: %t\n",
		settings.Payment.Currency, settings.Payment.EnablePayments)
	fmt.Fprintf(c.out, "email:\n  smtp_host: %s\n  smtp_port: %s\n  smtp_email: %s\n",
		settings.Email.SMTPHost, settings.Email.SMTPPort, settings.Email.SMTPEmail)
	fmt.Fprintf(c.out, "platform:\n  maintenance_mode: %t\n  default_theme_color: %s\n  footer_text: %s\n",
		settings.Platform.MaintenanceMode, settings.Platform.DefaultThemeColor, settings.Platform.FooterText)
}

func (c *Console) reportsCommand(cmd string, args []string) {
	switch cmd {
	case "show":
		c.renderReports()
	case "filter":
		for _, arg := range args {
			key, value, found := strings.Cut(arg, "=")
			if !found {
				c.warn("usage: filter course=<q> instructor=<q> start=<date> end=<date>")
				return
			}
			switch key {
			case "course":
				c.filters.Course = value
			case "instructor":
				c.filters.Instructor = value
			case "start":
				c.filters.StartDate = value
			case "end":
				c.filters.EndDate = value
			default:
				c.warn("unknown filter " + key)
				return
			}
		}
		c.renderReports()
	case "export":
		if len(args) != 2 {
			c.warn("usage: export csv|pdf students|lecturers|courses")
			return
		}
		c.exportReport(args[0], args[1])
	default:
		c.warn("unknown command; try 'help'")
	}
}

func (c *Console) renderReports() {
	summary := report.BuildSummary(c.Students.Items(), c.Lecturers.Items(), c.Courses.Items())
	fmt.Fprintf(c.out, "Students: %d (%d active) | Lecturers: %d (%d active) | Courses: %d\n",
		summary.TotalStudents, summary.ActiveStudents, summary.TotalLecturers, summary.ActiveLecturers, summary.TotalCourses)
	if c.filters.Course != "" || c.filters.Instructor != "" {
		fmt.Fprintf(c.out, "Filters: course=%q instructor=%q\n", c.filters.Course, c.filters.Instructor)
	}
	if c.filters.StartDate != "" || c.filters.EndDate != "" {
		fmt.Fprintf(c.out, "Date of birth range: %s .. %s\n", c.filters.StartDate, c.filters.EndDate)
	}
}

func (c *Console) exportReport(format, table string) {
	var data report.Dataset
	switch table {
	case "students":
		data = report.StudentRows(c.Students.Items(), c.filters)
	case "lecturers":
		data = report.LecturerRows(c.Lecturers.Items(), c.filters)
	case "courses":
		data = report.CourseRows(c.Courses.Items(), c.filters)
	default:
		c.warn("unknown table " + table)
		return
	}

	name := fmt.Sprintf("%s_report_%s", table, time.Now().Format("20060102_150405"))
	var (
		path string
		err  error
	)
	switch format {
	case "csv":
		path, err = c.Exporter.ExportCSV(name+".csv", data)
	case "pdf":
		path, err = c.Exporter.ExportPDF(name+".pdf", table+" report", data)
	default:
		c.warn("unknown format " + format)
		return
	}
	if err != nil {
		c.showError(err)
		return
	}
	fmt.Fprintf(c.out, "Exported %s\n", path)
}
