package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	agentinadapter "timetrack/internal/modules/agent/adapter/in"
	agentoutadapter "timetrack/internal/modules/agent/adapter/out"
	"timetrack/internal/modules/agent/domain"
	agentservice "timetrack/internal/modules/agent/service"
	sessioninadapter "timetrack/internal/modules/session/adapter/in"
	sessionoutadapter "timetrack/internal/modules/session/adapter/out"
	sessionout "timetrack/internal/modules/session/port/out"
	sessionusecase "timetrack/internal/modules/session/usecase"
	taskinadapter "timetrack/internal/modules/task/adapter/in"
	taskoutadapter "timetrack/internal/modules/task/adapter/out"
	taskout "timetrack/internal/modules/task/port/out"
	taskusecase "timetrack/internal/modules/task/usecase"
	"timetrack/internal/platform/clock"
	"timetrack/internal/platform/config"
	"timetrack/internal/platform/id"
	"timetrack/internal/platform/logging"
	"timetrack/internal/platform/sqlitedb"
	uiapp "timetrack/internal/ui/app"
)

type Mode int

const (
	ModeCLI Mode = iota
	ModeTUI
	ModeDaemon
)

type App struct {
	Config   config.Config
	Settings config.Settings
	Logger   *logrus.Logger

	TaskCLI    taskinadapter.CLIHandler
	SessionCLI sessioninadapter.CLIHandler

	clock    clock.Clock
	tasks    taskout.TaskStore
	sessions sessionout.SessionStore
	db       *sql.DB
	logFile  io.Closer
}

// New loads settings, opens the logger and the database. In TUI mode the log
// goes to a file because the terminal belongs to the UI.
func New(cfg config.Config, mode Mode, logOut io.Writer) (*App, error) {
	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		return nil, err
	}

	logPath := settings.LogFile
	if logPath == "" && mode == ModeTUI {
		logPath = cfg.LogPath
	}
	logger, logFile, err := logging.New(settings.LogLevel, logPath, logOut)
	if err != nil {
		return nil, err
	}

	db, err := sqlitedb.Open(cfg.DBPath)
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}

	clk := clock.SystemClock{}
	tasks := taskoutadapter.NewSQLiteTaskStore(db)
	sessions := sessionoutadapter.NewSQLiteSessionStore(db)

	return &App{
		Config:     cfg,
		Settings:   settings,
		Logger:     logger,
		TaskCLI:    taskinadapter.NewCLIHandler(taskusecase.NewInteractor(tasks, clk)),
		SessionCLI: sessioninadapter.NewCLIHandler(sessionusecase.NewInteractor(sessions)),
		clock:      clk,
		tasks:      tasks,
		sessions:   sessions,
		db:         db,
		logFile:    logFile,
	}, nil
}

func (a *App) Close() error {
	return errors.Join(a.db.Close(), a.logFile.Close())
}

func (a *App) newRuntime() *agentservice.Runtime {
	return agentservice.NewRuntime(
		agentservice.Config{
			ActiveTimeout:         a.Settings.ActiveTimeout(),
			UserID:                a.Settings.UserID,
			PollInterval:          a.Settings.PollInterval(),
			StartCountsAsActivity: a.Settings.StartCountsAsActivity,
			MaxSaveAttempts:       a.Settings.MaxSaveAttempts,
		},
		agentoutadapter.NewStorageBridge(a.tasks, a.sessions),
		a.clock,
		id.UUID{},
		a.Logger,
	)
}

// RunTUI runs the agent with the terminal UI as its window listener.
func RunTUI(ctx context.Context, app *App) error {
	rt := app.newRuntime()
	commander := rt.Commander()
	model := uiapp.NewModel(
		commander,
		agentinadapter.NewActivityReporter(commander, app.Settings.ActivityDebounce()),
		rt.Subscribe(),
		rt.SubscribeControl(),
		app.clock,
	)

	retry, err := agentinadapter.NewRetryScheduler(commander, app.Settings.RetryInterval(), app.Logger)
	if err != nil {
		return err
	}
	retry.Start()
	defer func() { _ = retry.Shutdown() }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return rt.Run(gctx) })
	g.Go(func() error { return agentinadapter.NewSignalSource(commander, app.Logger).Run(gctx) })

	_, uiErr := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	// The UI can exit before the runtime does, e.g. on a program error.
	commander.Send(domain.Quit{})
	cancel()
	return errors.Join(uiErr, g.Wait())
}

// RunDaemon runs the agent without a window: signals act as the tray menu,
// the tty is the input source and events are logged.
func RunDaemon(ctx context.Context, app *App, ttyPath string) error {
	rt := app.newRuntime()
	commander := rt.Commander()
	listener := agentoutadapter.NewLogListener(app.Logger)
	events := rt.Subscribe()
	controls := rt.SubscribeControl()
	reporter := agentinadapter.NewActivityReporter(commander, app.Settings.ActivityDebounce())

	retry, err := agentinadapter.NewRetryScheduler(commander, app.Settings.RetryInterval(), app.Logger)
	if err != nil {
		return err
	}
	retry.Start()
	defer func() { _ = retry.Shutdown() }()

	if ttyPath == "" {
		if ttyPath, err = agentinadapter.DefaultTTY(); err != nil {
			app.Logger.WithError(err).Warn("no terminal to watch, activity detection disabled")
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	sourcesCtx, stopSources := context.WithCancel(gctx)
	defer stopSources()

	g.Go(func() error {
		defer stopSources()
		return rt.Run(gctx)
	})
	g.Go(func() error { return listener.Run(gctx, events) })
	g.Go(func() error { return listener.RunControl(gctx, controls) })
	g.Go(func() error { return agentinadapter.NewSignalSource(commander, app.Logger).Run(sourcesCtx) })
	if ttyPath != "" {
		tty := agentinadapter.NewTTYActivitySource(ttyPath, app.Settings.PollInterval()*5, reporter, app.clock, app.Logger)
		g.Go(func() error {
			if err := tty.Run(sourcesCtx); err != nil {
				app.Logger.WithError(err).Warn("tty activity source stopped")
			}
			return nil
		})
	}
	return g.Wait()
}
