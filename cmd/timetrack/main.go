package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"timetrack/internal/bootstrap"
	"timetrack/internal/platform/clock"
	"timetrack/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "timetrack",
		Short:         "Personal time tracker that pauses while you are idle",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", config.DefaultDataDir(), "directory holding settings.yaml and sessions.db")

	root.AddCommand(newRunCmd(&dataDir))
	root.AddCommand(newDaemonCmd(&dataDir))
	root.AddCommand(newTaskCmd(&dataDir))
	root.AddCommand(newSessionCmd(&dataDir))
	root.AddCommand(newReportCmd(&dataDir))
	root.AddCommand(newConfigCmd(&dataDir))
	return root
}

func loadApp(cmd *cobra.Command, dataDir string, mode bootstrap.Mode) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, mode, cmd.ErrOrStderr())
}

func newRunCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the tracker with the terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir, bootstrap.ModeTUI)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(cmd.Context(), app)
		},
	}
}

func newDaemonCmd(dataDir *string) *cobra.Command {
	var tty string
	daemon := &cobra.Command{
		Use:   "daemon",
		Short: "Run the tracker headless (SIGUSR1 shows, SIGTERM quits)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir, bootstrap.ModeDaemon)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunDaemon(cmd.Context(), app, tty)
		},
	}
	daemon.Flags().StringVar(&tty, "tty", "", "terminal device watched for input (defaults to stdin's tty)")
	return daemon
}

func newTaskCmd(dataDir *string) *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "Manage tasks"}

	var name, priority string
	add := &cobra.Command{
		Use:   "add --name <name> [--priority low|medium|high]",
		Short: "Add a task",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name is required")
			}
			app, err := loadApp(cmd, *dataDir, bootstrap.ModeCLI)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.TaskCLI.Add(context.Background(), name, priority)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "task added: %d %s (%s)\n", out.ID, out.Name, out.Priority)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "task name")
	add.Flags().StringVar(&priority, "priority", "low", "priority: low|medium|high")

	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks in creation order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir, bootstrap.ModeCLI)
			if err != nil {
				return err
			}
			defer app.Close()
			tasks, err := app.TaskCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no tasks")
				return nil
			}
			for _, t := range tasks {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", t.ID, t.Priority, t.Name)
			}
			return nil
		},
	}

	task.AddCommand(add, list)
	return task
}

func newSessionCmd(dataDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Inspect recorded sessions"}

	var limit int
	list := &cobra.Command{
		Use:   "list [--limit n]",
		Short: "List recent sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir, bootstrap.ModeCLI)
			if err != nil {
				return err
			}
			defer app.Close()
			sessions, err := app.SessionCLI.List(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, s := range sessions {
				_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.StartedAt.Local().Format("2006-01-02 15:04"), clock.FormatDuration(s.Duration), s.TaskName, s.Comment)
			}
			return w.Flush()
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "maximum sessions to show")

	session.AddCommand(list)
	return session
}

func newReportCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show active time per task",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, *dataDir, bootstrap.ModeCLI)
			if err != nil {
				return err
			}
			defer app.Close()
			report, err := app.SessionCLI.Report(context.Background())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, t := range report.Tasks {
				_, _ = fmt.Fprintf(w, "%s\t%d sessions\t%s\n", t.TaskName, t.Sessions, clock.FormatDuration(t.Total))
			}
			_, _ = fmt.Fprintf(w, "total\t\t%s\n", clock.FormatDuration(report.Total))
			return w.Flush()
		},
	}
}

func newConfigCmd(dataDir *string) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Settings"}
	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings and paths",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.New(*dataDir)
			if err != nil {
				return err
			}
			settings, err := config.LoadSettings(cfg.SettingsPath)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(settings)
			if err != nil {
				return fmt.Errorf("encode settings: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "# settings: %s\n# database: %s\n%s", cfg.SettingsPath, cfg.DBPath, out)
			return nil
		},
	})
	return cfgCmd
}
