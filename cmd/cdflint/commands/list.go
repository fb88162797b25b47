package commands

import (
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/civictools/cdflint/internal/errors"
	"github.com/civictools/cdflint/internal/rules"
)

var (
	listRuleSet     string
	listFormat      string
	listInteractive bool
)

func init() {
	listCmd.Flags().StringVar(&listRuleSet, "rule_set", "",
		"only list rules belonging to this rule set")
	listCmd.Flags().StringVar(&listFormat, "format", "text",
		"output format: text, yaml")
	listCmd.Flags().BoolVarP(&listInteractive, "interactive", "I", false,
		"pick a rule interactively and show its details")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the known validation rules",
	Long: `List every rule in the catalogue with its default severity and the
rule sets it belongs to. Restrict the listing with --rule_set.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	if listRuleSet != "" && !rules.ValidRuleSet(listRuleSet) {
		err := errors.Newf("unknown rule set %q (valid: %s)",
			listRuleSet, strings.Join(rules.RuleSets, ", "))
		return errors.NewUserError(err, "")
	}

	var descriptors []rules.Descriptor
	for _, r := range rules.All() {
		d := r.Describe()
		if listRuleSet != "" && !d.AppliesTo(listRuleSet) {
			continue
		}
		descriptors = append(descriptors, d)
	}

	if listInteractive {
		return pickRule(cmd, descriptors)
	}

	switch listFormat {
	case "yaml":
		out, err := yaml.Marshal(descriptors)
		if err != nil {
			return errors.Wrap(err, "marshaling rule list")
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
	case "text":
		printRules(cmd, descriptors)
	default:
		err := errors.Newf("unknown format %q (valid: text, yaml)", listFormat)
		return errors.NewUserError(err, "")
	}
	return nil
}

func printRules(cmd *cobra.Command, descriptors []rules.Descriptor) {
	for _, d := range descriptors {
		fmt.Fprintf(cmd.OutOrStdout(), "%-26s %-8s %s\n",
			d.Name, d.Severity, d.Description)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d rules\n", len(descriptors))
}

// pickRule opens the fuzzy finder over the rule names and prints the
// chosen rule's full descriptor.
func pickRule(cmd *cobra.Command, descriptors []rules.Descriptor) error {
	if len(descriptors) == 0 {
		return errors.NewUserError(errors.New("no rules to pick from"), "")
	}

	idx, err := fuzzyfinder.Find(
		descriptors,
		func(i int) string {
			return descriptors[i].Name
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i < 0 {
				return ""
			}
			d := descriptors[i]
			return fmt.Sprintf("%s\n\n%s\n\nSeverity:  %s\nRule sets: %s",
				d.Name, d.Description, d.Severity,
				strings.Join(d.RuleSets, ", "))
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive rule selection")
	}

	d := descriptors[idx]
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n  %s\n  Severity:  %s\n  Rule sets: %s\n",
		d.Name, d.Description, d.Severity, strings.Join(d.RuleSets, ", "))
	return nil
}
