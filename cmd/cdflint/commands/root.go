// Package commands implements the CLI commands for cdflint.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/civictools/cdflint/cmd"
	"github.com/civictools/cdflint/internal/config"
	"github.com/civictools/cdflint/internal/errors"
	"github.com/civictools/cdflint/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// cfg is the loaded configuration file, nil until initConfig ran.
var cfg *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv); on validate also lists every finding")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./config.yaml, then $XDG_CONFIG_HOME/cdflint/config.yaml)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("cdflint version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	cfg, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "cdflint",
	Short: "Validator for civics common-data-format feeds",
	Long: `cdflint checks civics common-data-format XML feeds against a schema
and a catalogue of semantic best-practice rules: referential integrity,
enumerated values, date ordering, geography well-formedness, and vote
count plausibility.

Rules are grouped into rule sets matching the kind of feed being
validated: election, officeholder, election_results, and metadata. Pick
the set with --rule_set and narrow it further with the include and
exclude filters.`,
	Example: `  # Validate a pre-election feed
  cdflint validate feed.xml --xsd election_spec.xsd

  # Results feed, warnings included, every finding listed
  cdflint validate results.xml --xsd election_spec.xsd \
    --rule_set election_results -s Warning -v

  # Skip two rules
  cdflint validate feed.xml --xsd election_spec.xsd -e Encoding,GpUnitOcdId

  # See what would run
  cdflint list --rule_set officeholder`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity
		if v == 0 {
			if val, ok := os.LookupEnv("CDFLINT_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var primaryHandler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primaryHandler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primaryHandler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primaryHandler}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		// File output uses JSON format
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{
			Level: level,
		}))
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig surfaces config file load failures before any command runs.
func checkConfig(cmd *cobra.Command) error {
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}
	if configLoadErr != nil {
		return errors.NewUserError(configLoadErr,
			"Check the config file syntax, or pass --config to point at another file")
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
