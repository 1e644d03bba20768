package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/example/chalkboard/internal/canvas"
	"github.com/example/chalkboard/internal/config"
	"github.com/example/chalkboard/internal/interaction"
	"github.com/example/chalkboard/internal/notify"
	"github.com/example/chalkboard/internal/theme"
	"github.com/example/chalkboard/internal/toolstate"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	notifier     *notify.Notifier
	config       *config.Config
	log          *logrus.Logger
	saveAlerts   bool
	copyAlerts   bool
	exportAlerts bool
	themeName    string
	logLevel     string
	activeTheme  *theme.Theme
}

func (r *root) Program() string {
	if r == nil || r.program == "" {
		return "chalkboard"
	}
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
		config.ApplyEnv(cfg)
	}

	r := &root{
		fs:       flag.NewFlagSet("chalkboard", flag.ExitOnError),
		program:  "chalkboard",
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving a drawing")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after exporting a PDF")

	// Precedence: CLI > Env > Config > Default. The loader has already
	// folded the environment into cfg, so an empty flag falls back to it.
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, dark, high_contrast or a theme file)")
	r.fs.StringVar(&r.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if err := r.setupLogging(); err != nil {
		return err
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
		r.notifier.Enable(notify.EventExport, r.exportAlerts)
	}
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "window":
		cmd, err = parseWindowCmd(subArgs, r)
	case "replay":
		cmd, err = parseReplayCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r)
	case "fonts":
		cmd, err = parseFontsCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "tools":
		cmd, err = parseToolsCmd(subArgs, r)
	case "monitors":
		cmd, err = parseMonitorsCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) setupLogging() error {
	level := r.logLevel
	if level == "" && r.config != nil {
		level = r.config.LogLevel
	}
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	r.log = logrus.New()
	r.log.SetOutput(os.Stderr)
	r.log.SetLevel(lvl)
	r.log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return nil
}

func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" && r.config != nil {
		name = r.config.Theme
	}
	loader := theme.NewLoader()
	if r.config != nil {
		loader.Defined = r.config.Themes
	}
	t, err := loader.Load(name)
	if err != nil {
		if name != "default" {
			r.logger("theme").WithError(err).Warnf("failed to load theme %q, using default", name)
		}
		t = theme.Default()
	}
	return t
}

// logger returns an entry tagged with component. It works before Run has
// configured logging and on a nil root.
func (r *root) logger(component string) *logrus.Entry {
	if r == nil || r.log == nil {
		return logrus.WithField("component", component)
	}
	return r.log.WithField("component", component)
}

func (r *root) theme() *theme.Theme {
	if r == nil || r.activeTheme == nil {
		return theme.Default()
	}
	return r.activeTheme
}

func (r *root) cfg() *config.Config {
	if r == nil || r.config == nil {
		return config.New()
	}
	return r.config
}

// newStore builds the tool state a session starts with from the config.
func (r *root) newStore() (*toolstate.Store, error) {
	opts, err := r.cfg().ToolOptions()
	if err != nil {
		return nil, err
	}
	return toolstate.New(opts...), nil
}

// newSession returns a machine drawing onto surface with the configured
// tool state.
func (r *root) newSession(surface canvas.Surface) (*interaction.Machine, error) {
	store, err := r.newStore()
	if err != nil {
		return nil, err
	}
	m := interaction.New(store,
		interaction.WithLogger(r.logger("interaction")),
		interaction.WithSurface(surface))
	return m, nil
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}

func (r *root) notifyExport(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Export(path)
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, strings.TrimSpace(err.Error()))
		}
		os.Exit(1)
	}
}
