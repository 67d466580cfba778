package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/regexlens/internal/app"
	"github.com/zjrosen/regexlens/internal/config"
	"github.com/zjrosen/regexlens/internal/log"
	"github.com/zjrosen/regexlens/internal/ui/styles"
	"github.com/zjrosen/regexlens/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in the pattern input.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// localConfigPath is checked before the user config.
const localConfigPath = ".regexlens/config.yaml"

var (
	version = "dev"
	cfgFile string
	// configUsed is the file the effective config was read from, if any.
	configUsed string
	debugFlag  bool
	noWatch    bool
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "regexlens [file]",
	Short: "Interactive regular expression highlighter",
	Long: `Type a regular expression and see it syntax-colored, its errors marked
under the offending characters, and its matches highlighted in a subject text.

The subject is read from the file argument, or from standard input when it is
piped. Files are reloaded when they change on disk.

Examples:
  regexlens access.log
  journalctl -n 200 | regexlens --pattern 'error: (\w+)'`,
	Version:      version,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runApp,
	SilenceUsage: true,
}

func init() {
	// Assigned here: initConfig reads rootCmd's flags.
	rootCmd.PersistentPreRunE = initConfig

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .regexlens/config.yaml or ~/.config/regexlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (path from REGEXLENS_LOG, default debug.log)")
	rootCmd.Flags().StringP("pattern", "p", "", "initial pattern")
	rootCmd.Flags().Int("size-limit", 0, "maximum compiled program size (instructions)")
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false,
		"do not reload the subject file when it changes")
}

func initConfig(_ *cobra.Command, _ []string) error {
	loaded, used, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}
	cfg = loaded
	configUsed = used
	return nil
}

// newViper returns a viper instance seeded with the defaults. Theme color
// tokens contain dots, so nested keys are split on "::" instead.
func newViper() *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))

	defaults := config.Defaults()
	v.SetDefault("engine::size_limit", defaults.Engine.SizeLimit)
	v.SetDefault("engine::max_recursion_depth", defaults.Engine.MaxRecursionDepth)
	v.SetDefault("subject::watch", defaults.Subject.Watch)
	v.SetDefault("subject::debounce", defaults.Subject.Debounce)
	v.SetDefault("ui::show_captures", defaults.UI.ShowCaptures)
	v.SetDefault("ui::show_help", defaults.UI.ShowHelp)

	// Bind flags to viper
	_ = v.BindPFlag("ui::initial_pattern", rootCmd.Flags().Lookup("pattern"))
	_ = v.BindPFlag("engine::size_limit", rootCmd.Flags().Lookup("size-limit"))

	return v
}

// loadConfig reads the effective configuration. Lookup order when path is
// empty:
//  1. .regexlens/config.yaml (current directory)
//  2. ~/.config/regexlens/config.yaml (user config)
//
// A missing config file is not an error; an explicit path must exist.
func loadConfig(path string) (config.Config, string, error) {
	v := newViper()

	switch {
	case path != "":
		v.SetConfigFile(path)
	case fileExists(localConfigPath):
		v.SetConfigFile(localConfigPath)
	default:
		if userPath := config.DefaultConfigPath(); userPath != "" {
			v.AddConfigPath(filepath.Dir(userPath))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config.Config{}, "", fmt.Errorf("reading config: %w", err)
		}
		log.Debug(log.CatConfig, "No config file found, using defaults")
	}

	var loaded config.Config
	if err := v.Unmarshal(&loaded); err != nil {
		return config.Config{}, "", fmt.Errorf("parsing config: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return config.Config{}, "", fmt.Errorf("invalid config: %w", err)
	}
	return loaded, v.ConfigFileUsed(), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// initLogging enables the file logger when --debug or REGEXLENS_DEBUG is set.
// REGEXLENS_LOG_LEVEL raises the minimum level. The returned cleanup is never
// nil on success.
func initLogging() (func(), error) {
	if os.Getenv("REGEXLENS_DEBUG") == "" && !debugFlag {
		return func() {}, nil
	}
	logPath := os.Getenv("REGEXLENS_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, "regexlens")
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	if name := os.Getenv("REGEXLENS_LOG_LEVEL"); name != "" {
		level, err := log.ParseLevel(name)
		if err != nil {
			cleanup()
			return nil, err
		}
		log.SetMinLevel(level)
	}
	log.Info(log.CatConfig, "regexlens starting", "version", version, "config", configUsed, "logPath", logPath)
	return cleanup, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	cleanup, err := initLogging()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Colors: cfg.Theme.FlattenedColors(),
	}); err != nil {
		return fmt.Errorf("invalid theme configuration: %w", err)
	}

	// Handle --no-watch flag (negated logic)
	if noWatch {
		cfg.Subject.Watch = false
	}

	path := cfg.Subject.Path
	if len(args) == 1 {
		path = args[0]
	}
	subject, subjectPath, err := readSubject(path, cmd.InOrStdin(), stdinPiped())
	if err != nil {
		return err
	}

	model := app.New(app.Options{
		Config:      cfg,
		Subject:     subject,
		SubjectPath: subjectPath,
	})
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()

	// Clean up watcher resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// readSubject resolves the subject text. A named file wins and is returned
// as an absolute path for watching; "-", or no name with piped input, reads
// stdin.
func readSubject(path string, stdin io.Reader, piped bool) (text, file string, err error) {
	if path != "" && path != "-" {
		u := watcher.Load(path)
		if u.Err != nil {
			return "", "", u.Err
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		log.Debug(log.CatSubject, "Loaded subject", "path", path, "bytes", len(u.Content))
		return u.Content, path, nil
	}

	if path == "-" || piped {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		log.Debug(log.CatSubject, "Loaded subject from stdin", "bytes", len(data))
		return string(data), "", nil
	}

	return "", "", nil
}

func stdinPiped() bool {
	fi, err := os.Stdin.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice == 0
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
