package commands

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/civictools/cdflint/internal/cdf"
	"github.com/civictools/cdflint/internal/config"
	"github.com/civictools/cdflint/internal/diag"
	"github.com/civictools/cdflint/internal/errors"
	"github.com/civictools/cdflint/internal/logging"
	"github.com/civictools/cdflint/internal/ocdid"
	"github.com/civictools/cdflint/internal/rules"
	"github.com/civictools/cdflint/internal/schema"
	"github.com/civictools/cdflint/internal/stats"
)

var (
	validateXSD       string
	validateRuleSet   string
	validateInclude   []string
	validateExclude   []string
	validateSeverity  string
	validateJSON      bool
	validateOCDIDFile string
	validateCountry   string
	validateOverrides string
	validateStrict    bool
)

func init() {
	validateCmd.Flags().StringVar(&validateXSD, "xsd", "",
		"schema file the feeds are validated against (required)")
	validateCmd.Flags().StringVar(&validateRuleSet, "rule_set", "",
		"rule set to apply: election, officeholder, election_results, metadata")
	validateCmd.Flags().StringSliceVarP(&validateInclude, "include", "i", nil,
		"restrict the run to the named rules")
	validateCmd.Flags().StringSliceVarP(&validateExclude, "exclude", "e", nil,
		"remove the named rules from the run")
	validateCmd.Flags().StringVarP(&validateSeverity, "severity", "s", "",
		"minimum severity to report: Error, Warning, Info")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false,
		"output the report as JSON")
	validateCmd.Flags().StringVar(&validateOCDIDFile, "ocdid-file", "",
		"local OCD-ID division list CSV (default: the cached country list)")
	validateCmd.Flags().StringVar(&validateCountry, "country", "",
		"country code selecting the cached OCD-ID division list")
	validateCmd.Flags().StringVar(&validateOverrides, "overrides", "",
		"TOML file remapping per-rule severities")
	validateCmd.Flags().BoolVar(&validateStrict, "stop-on-schema-error", false,
		"skip semantic rules for feeds that fail the structural pre-pass")
	_ = validateCmd.MarkFlagRequired("xsd")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <files|globs...>",
	Short: "Validate feed files against the schema and rule catalogue",
	Long: `Validate one or more feed files. Each argument may be a file path or
a glob pattern (** is supported). Every file gets its own report; the
exit code reflects the whole run.

Exit codes:
  0 - All feeds validated without reportable findings
  1 - Usage or configuration error
  2 - System error (unreadable file, unparseable feed or schema)
  3 - Findings at or above the minimum severity remain`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger := logging.FromContext(cmd.Context())

	run, err := resolveRun()
	if err != nil {
		return err
	}

	files, err := expandGlobs(args)
	if err != nil {
		return err
	}

	effective, err := rules.Select(run.RuleSet, run.Include, run.Exclude)
	if err != nil {
		return errors.NewUserError(err, "Run 'cdflint list' to see the known rules and rule sets")
	}

	sch, err := schema.Load(validateXSD)
	if err != nil {
		return errors.NewSystemError(err, "Check that the --xsd file exists and is valid XSD")
	}

	ocdids, err := loadOCDIDs(run)
	if err != nil {
		return errors.NewSystemError(err, "Check the --ocdid-file path, or omit it to skip list membership checks")
	}
	if ocdids.Len() > 0 {
		logger.Debug("loaded OCD-ID division list", "count", ocdids.Len())
	}

	findings := 0
	for _, file := range files {
		report, err := validateOne(cmd, file, sch, ocdids, effective, run, logger)
		if err != nil {
			return err
		}
		findings += report.Summary.Total()
	}

	if findings > 0 {
		return errors.NewFindingsError(findings)
	}
	return nil
}

// validateOne runs the full pipeline over a single feed file and prints
// its report.
func validateOne(cmd *cobra.Command, file string, sch *schema.Schema, ocdids *ocdid.Set, effective []rules.Rule, run *config.Run, logger *slog.Logger) (*diag.Report, error) {
	runID := uuid.NewString()
	logger.Info("validating feed", "file", file, "run", runID, "rule_set", run.RuleSet)

	doc, err := cdf.Parse(file)
	if err != nil {
		return nil, errors.NewSystemError(err, "The feed must be well-formed XML")
	}

	index, dupDiags := cdf.BuildIndex(doc)
	schemaDiags := sch.Validate(doc)

	var found []diag.Diagnostic
	if run.StopOnSchemaError && len(schemaDiags) > 0 {
		logger.Warn("structural pre-pass failed, skipping semantic rules",
			"file", file, "violations", len(schemaDiags))
		found = schemaDiags
	} else {
		rc := &rules.Context{
			Doc:          doc,
			Index:        index,
			Schema:       sch,
			Run:          run,
			OCDIDs:       ocdids,
			SchemaDiags:  schemaDiags,
			DuplicateIDs: dupDiags,
			Logger:       logger,
		}
		found = rules.Run(effective, rc)
	}

	report := diag.Aggregate(runID, file, found, run.MinSeverity)

	format := diag.FormatText
	if validateJSON {
		format = diag.FormatJSON
	}
	reporter := diag.NewReporter(cmd.OutOrStdout(), format, run.Verbose)
	if err := reporter.Report(report); err != nil {
		return nil, errors.NewSystemError(err, "")
	}

	if run.Verbose && !validateJSON {
		fmt.Fprint(cmd.OutOrStdout(), stats.Format(stats.Count(index)))
	}

	return report, nil
}

// resolveRun merges the config file defaults with the validate flags into
// the run configuration.
func resolveRun() (*config.Run, error) {
	ruleSet := cfg.RuleSet
	if validateRuleSet != "" {
		ruleSet = validateRuleSet
	}

	severityName := cfg.Severity
	if validateSeverity != "" {
		severityName = validateSeverity
	}
	minSeverity, err := diag.ParseSeverity(severityName)
	if err != nil {
		return nil, errors.NewUserError(err, "Valid severities are Error, Warning, and Info")
	}

	country := cfg.Country
	if validateCountry != "" {
		country = validateCountry
	}

	overridesPath := cfg.Overrides
	if validateOverrides != "" {
		overridesPath = validateOverrides
	}
	var overrides map[string]diag.Severity
	if overridesPath != "" {
		overrides, err = config.LoadOverrides(overridesPath)
		if err != nil {
			return nil, errors.NewUserError(err, "Check the overrides file syntax")
		}
	}

	return &config.Run{
		RuleSet:           ruleSet,
		Include:           validateInclude,
		Exclude:           validateExclude,
		MinSeverity:       minSeverity,
		Verbose:           verbosity > 0,
		StopOnSchemaError: validateStrict,
		Country:           country,
		OCDIDFile:         validateOCDIDFile,
		SeverityOverrides: overrides,
	}, nil
}

// expandGlobs resolves the file arguments, treating each as a glob
// pattern. A literal path that exists passes through untouched.
func expandGlobs(args []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	for _, arg := range args {
		if _, err := os.Stat(arg); err == nil {
			if _, ok := seen[arg]; !ok {
				seen[arg] = struct{}{}
				files = append(files, arg)
			}
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, errors.NewUserError(err, "Check the glob pattern syntax")
		}
		if len(matches) == 0 {
			return nil, errors.NewUserError(
				errors.Newf("no files match %q", arg), "")
		}
		for _, m := range matches {
			if _, ok := seen[m]; !ok {
				seen[m] = struct{}{}
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// loadOCDIDs loads the division list named by the run: an explicit file
// wins, then the cached country list. No list at all is fine; membership
// checks degrade to format checks.
func loadOCDIDs(run *config.Run) (*ocdid.Set, error) {
	path := run.OCDIDFile
	if path == "" {
		cached := ocdid.CachePath(run.Country)
		if _, err := os.Stat(cached); err != nil {
			return nil, nil
		}
		path = cached
	}
	return ocdid.LoadCSV(path)
}
