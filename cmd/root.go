package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"promptbuilder/pkg/config"
	"promptbuilder/pkg/ignore"
	"promptbuilder/pkg/logging"
	"promptbuilder/pkg/prompt"
	"promptbuilder/pkg/version"
)

// AppName is reported in every log line.
const AppName = "promptbuilder"

// localIgnoreFile is read from the working directory when present.
const localIgnoreFile = ".promptignore"

// app holds the state shared by all subcommands of one invocation.
type app struct {
	logger  *zap.Logger
	cfg     *config.Config
	cfgFile string
	cfgPath string // Resolved config location.
	debug   bool
}

// sessionFlags are the flags that seed a prompt.Session.
type sessionFlags struct {
	ext       string
	recursive bool
	ignores   []string
}

// Execute builds the command tree and runs it.
func Execute(logger *zap.Logger) error {
	return newRootCmd(logger).Execute()
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &app{logger: logger}

	root := &cobra.Command{
		Use:   "promptbuilder",
		Short: "Build LLM prompts from a query and selected files",
		Long: `promptbuilder concatenates a free-text query with the contents of the files you
register, producing one prompt ready to paste into a language model.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default $HOME/.config/promptbuilder/config.yaml)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(newBuildCmd(a), newShellCmd(a), newConfigCmd(a), newVersionCmd())
	return root
}

// setup loads configuration and, with --debug, swaps in a development logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.debug {
		l, err := logging.Setup(true, AppName, version.Version)
		if err != nil {
			a.logger.Warn("Failed to initialize debug logger", zap.Error(err))
		} else {
			a.logger = l
		}
	}

	a.cfgPath = a.cfgFile
	if a.cfgPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			a.logger.Warn("Cannot determine default config path, using defaults", zap.Error(err))
			a.cfg = config.Default()
			return nil
		}
		a.cfgPath = path
	}

	cfg, err := config.LoadConfigFile(a.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", a.cfgPath, err)
	}
	a.cfg = cfg
	a.logger.Debug("Loaded configuration", zap.String("path", a.cfgPath), zap.String("whitelist", cfg.Whitelist))
	return nil
}

func addSessionFlags(cmd *cobra.Command, f *sessionFlags) {
	cmd.Flags().StringVar(&f.ext, "ext", "", `comma-separated extension whitelist, e.g. "py,go" (empty allows all)`)
	cmd.Flags().BoolVarP(&f.recursive, "recursive", "r", false, "descend into subdirectories when adding folders")
	cmd.Flags().StringArrayVar(&f.ignores, "ignore", nil, "glob pattern to skip during traversal (repeatable)")
}

// newSession merges configuration with explicitly set flags.
func (a *app) newSession(cmd *cobra.Command, f *sessionFlags) (*prompt.Session, error) {
	whitelist := a.cfg.Whitelist
	if cmd.Flags().Changed("ext") {
		whitelist = f.ext
	}
	recursive := a.cfg.Recursive
	if cmd.Flags().Changed("recursive") {
		recursive = f.recursive
	}

	patterns := append(append([]string{}, a.cfg.Ignore...), f.ignores...)
	matcher, err := ignore.Load(patterns, []string{a.cfg.IgnoreFile, localIgnoreFile}, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load ignore patterns: %w", err)
	}
	a.logger.Debug("Loaded ignore patterns", zap.Int("totalPatterns", len(matcher.Patterns)))

	return prompt.NewSession(prompt.SessionOptions{
		Whitelist:     whitelist,
		Recursive:     recursive,
		Ignore:        matcher,
		Censor:        a.cfg.CensorConfig(),
		MaxFileSizeKB: a.cfg.MaxFileSizeKB,
	}, a.logger), nil
}
