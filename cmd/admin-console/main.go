package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/openlms-dev/admin-console/internal/console"
	"github.com/openlms-dev/admin-console/internal/controller"
	"github.com/openlms-dev/admin-console/internal/gateway"
	"github.com/openlms-dev/admin-console/internal/mirror"
	"github.com/openlms-dev/admin-console/internal/models"
	"github.com/openlms-dev/admin-console/internal/report"
	"github.com/openlms-dev/admin-console/internal/session"
	"github.com/openlms-dev/admin-console/internal/validate"
	"github.com/openlms-dev/admin-console/pkg/config"
	"github.com/openlms-dev/admin-console/pkg/logger"
	"github.com/openlms-dev/admin-console/pkg/metrics"
)

func main() {
	var (
		startScreen  string
		loginEmail   string
		exportFormat string
		exportTable  string
	)

	flag.StringVar(&startScreen, "screen", console.ScreenStudents, "screen to open at start")
	flag.StringVar(&loginEmail, "login", "", "one-shot login: authenticate as this email and exit")
	flag.StringVar(&exportFormat, "export", "", "one-shot report export: csv or pdf")
	flag.StringVar(&exportTable, "table", "students", "table for one-shot export: students, lecturers or courses")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	store, cleanup, err := buildStore(cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to init mirror store", "backend", cfg.Mirror.Backend, "error", err)
	}
	defer cleanup()

	ctx := context.Background()

	sess := session.New(store)
	sess.Restore(ctx)

	recorder := metrics.NewRecorder()
	client := gateway.NewClient(cfg.API, sess, recorder, logr)

	exporter, err := report.NewExporter(cfg.Export.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init exporter", "error", err)
	}

	deps := console.Deps{
		Config:  cfg,
		Logger:  logr,
		Session: sess,
		Auth:    gateway.NewAuthGateway(client),
		Students: controller.NewRemote[models.Student, validate.StudentForm](
			gateway.NewStudentGateway(client), store, mirror.KeyStudents, logr),
		Lecturers: controller.NewRemote[models.Lecturer, validate.LecturerForm](
			gateway.NewLecturerGateway(client), store, mirror.KeyLecturers, logr),
		Admins: controller.NewRemote[models.Admin, models.Admin](
			gateway.AdminRemote{AdminGateway: gateway.NewAdminGateway(client)}, store, mirror.KeyAdmins, logr),
		Courses:     controller.NewLocal[models.Course](store, mirror.KeyCourses, models.StarterCourses, logr),
		Settings:    controller.NewSettings(store),
		Validator:   validate.New(),
		Exporter:    exporter,
		Recorder:    recorder,
		StartScreen: startScreen,
	}

	if loginEmail != "" {
		if err := console.OneShotLogin(ctx, deps, loginEmail, os.Stdin, os.Stdout); err != nil {
			logr.Sugar().Fatalw("login failed", "email", loginEmail, "error", err)
		}
		return
	}

	if exportFormat != "" {
		if err := oneShotExport(ctx, deps, exportFormat, exportTable); err != nil {
			logr.Sugar().Fatalw("export failed", "error", err)
		}
		return
	}

	c := console.New(deps, os.Stdin, os.Stdout)
	if err := c.Run(ctx); err != nil {
		logr.Sugar().Fatalw("console failed", "error", err)
	}
}

func buildStore(cfg *config.Config) (mirror.Store, func(), error) {
	switch cfg.Mirror.Backend {
	case config.MirrorRedis:
		store, err := mirror.NewRedis(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		store, err := mirror.NewFilesystem(cfg.Mirror.Dir)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

func oneShotExport(ctx context.Context, deps console.Deps, format, table string) error {
	var data report.Dataset
	switch table {
	case "students":
		if err := deps.Students.Refresh(ctx); err != nil {
			return err
		}
		data = report.StudentRows(deps.Students.Items(), report.Filters{})
	case "lecturers":
		if err := deps.Lecturers.Refresh(ctx); err != nil {
			return err
		}
		data = report.LecturerRows(deps.Lecturers.Items(), report.Filters{})
	case "courses":
		if err := deps.Courses.Refresh(ctx); err != nil {
			return err
		}
		data = report.CourseRows(deps.Courses.Items(), report.Filters{})
	default:
		return fmt.Errorf("unknown table %q", table)
	}

	var (
		path string
		err  error
	)
	switch format {
	case "csv":
		path, err = deps.Exporter.ExportCSV(table+"_report.csv", data)
	case "pdf":
		path, err = deps.Exporter.ExportPDF(table+"_report.pdf", table+" report", data)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return err
	}
	fmt.Println("exported", path)
	return nil
}
