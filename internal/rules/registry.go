package rules

import (
	"sort"
	"strings"

	"github.com/civictools/cdflint/internal/errors"
)

// registry is the process-wide rule catalogue. It is populated once at
// package initialization and never mutated, so concurrent runs and
// concurrent rule dispatch can look rules up without coordination.
var registry = []Rule{
	&SchemaRule{},
	&EncodingRule{},
	&DuplicateIDRule{},
	&ValidIDREFRule{},
	&OptionalAndEmptyRule{},
	&EmptyTextRule{},
	&LanguageCodeRule{},
	&UniqueLabelRule{},
	&HungarianStyleNotationRule{},
	&OtherTypeRule{},
	&EnumerationsRule{},
	&ElectionDatesRule{},
	&OfficeTermDatesRule{},
	&ElectoralDistrictOcdIdRule{},
	&GpUnitOcdIdRule{},
	&GpUnitCyclesRule{},
	&DuplicateGpUnitsRule{},
	&ReusedCandidateRule{},
	&PartisanPrimaryRule{},
	&PartisanPrimaryHeuristicRule{},
	&VoteCountPlausibilityRule{},
}

// All returns every registered rule in registry order.
func All() []Rule {
	out := make([]Rule, len(registry))
	copy(out, registry)
	return out
}

// Find returns the registered rule with the given name.
func Find(name string) (Rule, bool) {
	for _, r := range registry {
		if r.Describe().Name == name {
			return r, true
		}
	}
	return nil, false
}

// Names returns every registered rule name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, r := range registry {
		names = append(names, r.Describe().Name)
	}
	sort.Strings(names)
	return names
}

// ValidRuleSet reports whether name is a known rule set.
func ValidRuleSet(name string) bool {
	for _, rs := range RuleSets {
		if rs == name {
			return true
		}
	}
	return false
}

// Select resolves the effective rule list for a run: the registry rules
// that apply to the rule set, restricted to the include list when it is
// non-empty, minus the exclude list. A rule named in both lists is
// excluded; exclusion is the stronger, more explicit signal. Rule names in
// either filter that are absent from the registry are a configuration
// error, reported before any rule runs.
func Select(ruleSet string, include, exclude []string) ([]Rule, error) {
	if !ValidRuleSet(ruleSet) {
		return nil, errors.Wrapf(errors.ErrUnknownRuleSet,
			"%q (options are %s)", ruleSet, strings.Join(RuleSets, ", "))
	}

	var unknown []string
	for _, name := range append(append([]string{}, include...), exclude...) {
		if _, ok := Find(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return nil, errors.Wrapf(errors.ErrUnknownRule,
			"%s", strings.Join(unknown, ", "))
	}

	included := make(map[string]struct{}, len(include))
	for _, name := range include {
		included[name] = struct{}{}
	}
	excluded := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		excluded[name] = struct{}{}
	}

	var effective []Rule
	for _, r := range registry {
		name := r.Describe().Name
		if !r.Describe().AppliesTo(ruleSet) {
			continue
		}
		if len(included) > 0 {
			if _, ok := included[name]; !ok {
				continue
			}
		}
		if _, ok := excluded[name]; ok {
			continue
		}
		effective = append(effective, r)
	}
	return effective, nil
}
