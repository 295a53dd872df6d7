package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/dori/taskflow/internal/app"
	"github.com/dori/taskflow/internal/client"
	"github.com/dori/taskflow/internal/config"
	"github.com/dori/taskflow/internal/logging"
	"github.com/dori/taskflow/internal/model"
	"github.com/dori/taskflow/internal/notify"
	"github.com/dori/taskflow/internal/server"
	"github.com/dori/taskflow/internal/tasklist"
	"github.com/dori/taskflow/internal/ui"
	"github.com/dori/taskflow/internal/ui/theme"
	"github.com/dori/taskflow/internal/ui/views"
)

var version = "dev"

// program is the part of *tea.Program the root command needs
type program interface {
	Run() (tea.Model, error)
}

var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m, tea.WithAltScreen())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand(os.Stdout, os.Stderr, os.Getenv)
	if err := fang.Execute(ctx, root, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

// cli carries flags and I/O shared by every subcommand
type cli struct {
	stdout     io.Writer
	stderr     io.Writer
	getenv     func(string) string
	paths      config.Paths
	configPath string
	apiURL     string
}

// session is the resolved configuration plus the logger built from it
type session struct {
	cfg        config.Config
	configPath string
	log        *logging.Runtime
}

func newRootCommand(stdout, stderr io.Writer, getenv func(string) string) *cobra.Command {
	c := &cli{
		stdout: stdout,
		stderr: stderr,
		getenv: getenv,
		paths:  config.PathsFor(getenv, os.UserHomeDir),
	}

	root := &cobra.Command{
		Use:           "taskflow",
		Short:         "A task list with progress tracking and celebrations",
		Long:          "taskflow keeps a task list on a REST backend: add tasks with a priority, mark them done, filter by status and watch the progress ring fill.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runTUI(cmd.Context())
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to config TOML")
	root.PersistentFlags().StringVar(&c.apiURL, "api-url", "", "backend API root, e.g. http://127.0.0.1:8000/api")

	root.AddCommand(
		c.serveCommand(),
		c.addCommand(),
		c.listCommand(),
		c.toggleCommand(),
		c.rmCommand(),
		c.clearCommand(),
		c.statsCommand(),
		c.pathsCommand(),
	)
	return root
}

// load resolves the config path (flag, TASKFLOW_CONFIG, XDG default), reads
// it, applies env and flag overrides and builds the logger.
func (c *cli) load() (*session, error) {
	path := strings.TrimSpace(c.configPath)
	if path == "" {
		if env := strings.TrimSpace(c.getenv("TASKFLOW_CONFIG")); env != "" {
			path = env
		} else {
			path = c.paths.ConfigPath
		}
	}

	cfg, err := config.Load(path, config.Default(c.paths))
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", path, err)
	}
	cfg.ApplyEnv(c.getenv)
	if url := strings.TrimSpace(c.apiURL); url != "" {
		cfg.Client.APIURL = url
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	log, err := logging.New(c.stderr, cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("configure logger: %w", err)
	}
	log.Debug("configuration loaded", "config_path", path, "api_url", cfg.Client.APIURL)
	return &session{cfg: cfg, configPath: path, log: log}, nil
}

func (r *session) close(stderr io.Writer) {
	if err := r.log.Close(); err != nil {
		_, _ = fmt.Fprintf(stderr, "warning: close log sink: %v\n", err)
	}
}

// container builds the task list over the HTTP client
func (r *session) container(celebrate tasklist.Celebrator) (*tasklist.Container, error) {
	timeout, err := r.cfg.RequestTimeout()
	if err != nil {
		return nil, err
	}
	api, err := client.New(r.cfg.Client.APIURL, client.WithTimeout(timeout))
	if err != nil {
		return nil, err
	}
	opts := []tasklist.Option{tasklist.WithLogger(r.log)}
	if celebrate != nil {
		opts = append(opts, tasklist.WithCelebrator(celebrate))
	}
	return tasklist.New(api, opts...), nil
}

// withContainer runs fn against a freshly built container for quick commands
func (c *cli) withContainer(fn func(*tasklist.Container) error) error {
	rt, err := c.load()
	if err != nil {
		return err
	}
	defer rt.close(c.stderr)

	tasks, err := rt.container(nil)
	if err != nil {
		return err
	}
	return fn(tasks)
}

func (c *cli) runTUI(ctx context.Context) error {
	rt, err := c.load()
	if err != nil {
		return err
	}
	defer rt.close(c.stderr)

	// Keep the screen clean: logs go to the file sink only while the TUI runs.
	rt.log.SetConsoleEnabled(false)

	if t, ok := theme.ByName(rt.cfg.UI.Theme); ok {
		theme.SetTheme(t)
	} else {
		rt.log.Warn("unknown theme, using default", "theme", rt.cfg.UI.Theme)
	}

	var (
		celebrators tasklist.Celebrators
		opts        []ui.Option
	)
	if rt.cfg.UI.Celebrations {
		ch := ui.NewChannelCelebrator()
		celebrators = append(celebrators, ch)
		opts = append(opts, ui.WithCelebrations(ch))
	}
	if rt.cfg.UI.Notifications {
		celebrators = append(celebrators, notify.NewNotifier(true, notify.WithLogger(rt.log)))
	}

	var celebrate tasklist.Celebrator
	if len(celebrators) > 0 {
		celebrate = celebrators
	}
	tasks, err := rt.container(celebrate)
	if err != nil {
		return err
	}

	rt.log.Info("starting tui", "api_url", rt.cfg.Client.APIURL, "theme", theme.Current.Theme.Name)
	if _, err := programFactory(ui.NewRootModel(tasks, opts...)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func (c *cli) serveCommand() *cobra.Command {
	var bind, driver string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the task API backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := c.load()
			if err != nil {
				return err
			}
			defer rt.close(c.stderr)

			if bind != "" {
				rt.cfg.Server.Bind = bind
			}
			if driver != "" {
				rt.cfg.Database.Driver = config.Driver(driver)
				if err := rt.cfg.Validate(); err != nil {
					return fmt.Errorf("config: %w", err)
				}
			}

			a, err := app.New(cmd.Context(), rt.cfg.Database, rt.log)
			if err != nil {
				if errors.Is(err, app.ErrAlreadyRunning) {
					return fmt.Errorf("%w (data dir %s)", err, rt.cfg.Database.Path)
				}
				return err
			}
			defer func() {
				if err := a.Close(); err != nil {
					rt.log.Warn("store close failed", "err", err)
				}
			}()

			handler := server.NewHandler(a.Service, rt.log)
			return server.Run(cmd.Context(), rt.cfg.Server.Bind, handler, rt.log)
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "", "listen address (overrides server.bind)")
	cmd.Flags().StringVar(&driver, "driver", "", "store driver: sqlite, postgres or memory")
	return cmd
}

func (c *cli) addCommand() *cobra.Command {
	var priority string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := model.ParsePriority(priority)
			if !ok {
				return fmt.Errorf("unknown priority %q (want high, medium or low)", priority)
			}
			title := strings.Join(args, " ")
			return c.withContainer(func(tasks *tasklist.Container) error {
				if err := tasks.AddTask(cmd.Context(), title, p); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(c.stdout, "Added %q %s\n", strings.TrimSpace(title), views.PriorityBadge(p))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "task priority: high, medium or low")
	return cmd
}

func (c *cli) listCommand() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := model.ParseFilter(filter)
			if err != nil {
				return err
			}
			return c.withContainer(func(tasks *tasklist.Container) error {
				if err := tasks.Load(cmd.Context()); err != nil {
					return err
				}
				tasks.SetFilter(f)
				printList(c.stdout, tasks.Snapshot())
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "all, pending or completed")
	return cmd
}

func printList(w io.Writer, s tasklist.State) {
	visible := s.Filtered()
	if len(visible) == 0 {
		_, _ = fmt.Fprintln(w, views.EmptyMessage(s.Filter))
	}
	for _, task := range visible {
		_, _ = fmt.Fprintf(w, "%s  %s\n", views.TaskItem(task, false, 80), task.ID)
	}
	_, _ = fmt.Fprintf(w, "\n%d total, %d completed, %d pending, %s\n",
		s.Stats.Total, s.Stats.Completed, s.Stats.Pending, views.ProgressLabel(s.Stats.ProgressPercentage))
	if banner := views.AllDoneBanner(s.Stats); banner != "" {
		_, _ = fmt.Fprintln(w, banner)
	}
}

func (c *cli) toggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a task done or not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return c.withContainer(func(tasks *tasklist.Container) error {
				// Load first so the celebration sees the whole list.
				if err := tasks.Load(cmd.Context()); err != nil {
					return err
				}
				cel, err := tasks.ToggleTask(cmd.Context(), id)
				if err != nil {
					if client.IsNotFound(err) {
						return fmt.Errorf("task %s not found", id)
					}
					return err
				}
				task, ok := tasks.Snapshot().Task(id)
				switch {
				case ok && task.Completed:
					_, _ = fmt.Fprintf(c.stdout, "Completed %q\n", task.Title)
				case ok:
					_, _ = fmt.Fprintf(c.stdout, "Reopened %q\n", task.Title)
				}
				if cel == tasklist.CelebrationLarge {
					_, _ = fmt.Fprintln(c.stdout, views.AllDoneMessage)
				}
				return nil
			})
		},
	}
}

func (c *cli) rmCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return c.withContainer(func(tasks *tasklist.Container) error {
				if err := tasks.DeleteTask(cmd.Context(), id); err != nil {
					if client.IsNotFound(err) {
						return fmt.Errorf("task %s not found", id)
					}
					return err
				}
				_, _ = fmt.Fprintf(c.stdout, "Deleted %s\n", id)
				return nil
			})
		},
	}
}

func (c *cli) clearCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to delete every task without --yes")
			}
			return c.withContainer(func(tasks *tasklist.Container) error {
				if err := tasks.ClearAll(cmd.Context()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(c.stdout, "Cleared all tasks")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deleting every task")
	return cmd
}

func (c *cli) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show progress and per-priority counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withContainer(func(tasks *tasklist.Container) error {
				if err := tasks.LoadDetails(cmd.Context()); err != nil {
					return err
				}
				d := tasks.Snapshot().Details
				_, _ = fmt.Fprintln(c.stdout, views.ProgressLabel(d.ProgressPercentage))
				_, _ = fmt.Fprintln(c.stdout, views.StatsCards(d.Stats))
				_, _ = fmt.Fprintln(c.stdout, views.DetailsPanel(*d))
				return nil
			})
		},
	}
}

func (c *cli) pathsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print resolved config, data and log locations",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			rt, err := c.load()
			if err != nil {
				return err
			}
			defer rt.close(c.stderr)

			_, _ = fmt.Fprintf(c.stdout, "config: %s\n", rt.configPath)
			_, _ = fmt.Fprintf(c.stdout, "data_dir: %s\n", c.paths.DataDir)
			_, _ = fmt.Fprintf(c.stdout, "db: %s\n", rt.cfg.Database.Path)
			_, _ = fmt.Fprintf(c.stdout, "api_url: %s\n", rt.cfg.Client.APIURL)
			if path := rt.log.FilePath(); path != "" {
				_, _ = fmt.Fprintf(c.stdout, "log: %s\n", path)
			}
			return nil
		},
	}
}
