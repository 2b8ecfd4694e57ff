package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/matt-steen/pocket-calendar/pkg/calendar"
	"github.com/matt-steen/pocket-calendar/pkg/config"
	"github.com/matt-steen/pocket-calendar/pkg/controller"
	"github.com/matt-steen/pocket-calendar/pkg/db"
	"github.com/matt-steen/pocket-calendar/pkg/ics"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const filePerms = 0o666

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	if err := config.LoadEnv(); err != nil {
		return err
	}

	defaultPath, err := config.DefaultPath()
	if err != nil {
		return err
	}

	configPath := flag.String("config", defaultPath, "path to the config file")
	exportPath := flag.String("export", "", "write all events to this .ics file and exit")
	importPath := flag.String("import", "", "add the events of this .ics file and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o700); err != nil {
		return fmt.Errorf("error creating log dir: %w", err)
	}

	logFile, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, fs.FileMode(filePerms))
	if err != nil {
		return fmt.Errorf("error opening log file: %w", err)
	}

	defer logFile.Close()

	zerolog.SetGlobalLevel(cfg.Level())
	log.Logger = log.With().Caller().Logger().Output(zerolog.ConsoleWriter{
		Out: logFile, TimeFormat: "2006-01-02_15:04:05",
	})

	log.Info().Str("config", *configPath).Str("database", cfg.Database).Msg("starting application...")

	database, err := db.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}

	defer database.Close()

	cal, err := calendar.New(ctx, database, calendar.WithWeekStart(cfg.FirstWeekday()))
	if err != nil {
		return err
	}

	switch {
	case *exportPath != "":
		return exportICS(cal, *exportPath)
	case *importPath != "":
		return importICS(ctx, cal, *importPath)
	}

	controller, err := controller.NewController(ctx, cal)
	if err != nil {
		return err
	}

	return controller.Go()
}

func exportICS(cal *calendar.Calendar, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}

	if err := ics.Export(f, cal, time.Now()); err != nil {
		f.Close()

		return err
	}

	return f.Close()
}

func importICS(ctx context.Context, cal *calendar.Calendar, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	ids, err := ics.Import(ctx, f, cal)
	if err != nil {
		return err
	}

	fmt.Printf("imported %d events from %s\n", len(ids), path)

	return nil
}
