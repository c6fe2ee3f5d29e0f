package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	ucli "github.com/urfave/cli/v2"

	"github.com/idilsaglam/tasklist/internal/config"
	"github.com/idilsaglam/tasklist/internal/logging"
	"github.com/idilsaglam/tasklist/internal/store/jsonstore"
	"github.com/idilsaglam/tasklist/internal/todo"
	"github.com/idilsaglam/tasklist/internal/tui"
	"github.com/idilsaglam/tasklist/internal/ui"
)

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var version = "dev"

// Env carries the process surroundings so tests can swap them.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	Loader config.Loader
	// RunTUI starts the interactive list; nil means tui.Run.
	RunTUI func(l *todo.List, logger *log.Logger) error
}

// DefaultEnv wires the real terminal and config locations.
func DefaultEnv() Env {
	return Env{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Loader: config.DefaultLoader(),
		RunTUI: tui.Run,
	}
}

// Run executes args (including the program name) and returns an exit code.
func Run(args []string, env Env) int {
	app := NewApp(env)
	err := app.Run(args)
	if err == nil {
		return exitOK
	}
	var ec ucli.ExitCoder
	if errors.As(err, &ec) {
		if msg := strings.TrimSpace(ec.Error()); msg != "" {
			ui.Fail(env.Stderr, msg)
		}
		return ec.ExitCode()
	}
	ui.Fail(env.Stderr, err.Error())
	return exitUsage
}

// NewApp builds the command tree.
func NewApp(env Env) *ucli.App {
	if env.RunTUI == nil {
		env.RunTUI = tui.Run
	}
	r := &runner{env: env}

	return &ucli.App{
		Name:            "tasklist",
		Usage:           "a small to-do list kept in a JSON file",
		Version:         version,
		Writer:          env.Stdout,
		ErrWriter:       env.Stderr,
		HideHelpCommand: true,
		// Exit codes are mapped by Run; never let the library call os.Exit.
		ExitErrHandler: func(*ucli.Context, error) {},
		Flags: []ucli.Flag{
			&ucli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "task file (default tasks.json)"},
			&ucli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "TOML config file"},
			&ucli.StringFlag{Name: "theme", Usage: "classic, neon or mono"},
			&ucli.StringFlag{Name: "log-level", Usage: "debug, info, warn, error"},
			&ucli.StringFlag{Name: "log-format", Usage: "text, json or logfmt"},
			&ucli.BoolFlag{Name: "no-color", Usage: "disable colors"},
		},
		Action: r.doUI,
		Commands: []*ucli.Command{
			{
				Name:      "add",
				Usage:     "Add a new task (title can be multiple words)",
				ArgsUsage: "<title...>",
				Action:    r.doAdd,
			},
			{
				Name:    "ls",
				Aliases: []string{"list"},
				Usage:   "List tasks",
				Flags: []ucli.Flag{
					&ucli.BoolFlag{Name: "group", Aliases: []string{"g"}, Usage: "group output by pending/done"},
				},
				Action: r.doList,
			},
			{
				Name:      "done",
				Aliases:   []string{"toggle"},
				Usage:     "Toggle done for a task",
				ArgsUsage: "<id|id-prefix|index>",
				Action:    r.doToggle,
			},
			{
				Name:      "rm",
				Aliases:   []string{"remove"},
				Usage:     "Remove a task",
				ArgsUsage: "<id|id-prefix|index>",
				Action:    r.doRemove,
			},
			{
				Name:   "ui",
				Usage:  "Open the interactive list (default)",
				Action: r.doUI,
			},
		},
	}
}

// runner resolves settings once per invocation and owns the task list.
type runner struct {
	env    Env
	cfg    *config.Config
	logger *log.Logger
	closer io.Closer
}

// setup loads config, applies flags and opens the list. Interactive runs keep
// the logger off the terminal unless a log file is configured.
func (r *runner) setup(c *ucli.Context, interactive bool) (*todo.List, error) {
	cfg, err := r.env.Loader.Load(c.String("config"))
	if err != nil {
		return nil, ucli.Exit("config: "+err.Error(), exitError)
	}
	if c.IsSet("file") {
		cfg.File = c.String("file")
	}
	if c.IsSet("theme") {
		cfg.Theme = c.String("theme")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}
	if c.Bool("no-color") {
		cfg.NoColor = true
	}
	r.cfg = cfg

	ui.SetTheme(cfg.Theme, !cfg.NoColor)

	opts := logging.DefaultOptions()
	opts.Level = cfg.LogLevel
	opts.Format = cfg.LogFormat
	switch {
	case cfg.LogFile != "":
		f, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			return nil, ucli.Exit("log: "+err.Error(), exitError)
		}
		r.closer = f
		opts.ReportTimestamp = true
		r.logger = logging.New(f, opts)
	case interactive:
		r.logger = logging.Discard()
	default:
		r.logger = logging.New(r.env.Stderr, opts)
	}

	store := jsonstore.New(cfg.File,
		jsonstore.WithLogger(r.logger),
		jsonstore.WithKeepCorrupt(cfg.KeepCorrupt),
	)
	return todo.New(store), nil
}

// close releases the log file. The logger may be writing to that file, so a
// failure is reported on stderr instead.
func (r *runner) close() {
	if r.closer == nil {
		return
	}
	if err := r.closer.Close(); err != nil {
		ui.Fail(r.env.Stderr, "close log file: "+err.Error())
	}
	r.closer = nil
}

func usage(c *ucli.Context, format string, args ...any) error {
	return ucli.Exit(fmt.Sprintf("usage: tasklist %s %s", c.Command.Name, fmt.Sprintf(format, args...)), exitUsage)
}
