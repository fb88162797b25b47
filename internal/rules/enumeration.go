package rules

import (
	"fmt"
	"strings"

	"github.com/civictools/cdflint/internal/cdf"
	"github.com/civictools/cdflint/internal/diag"
)

// enumCheck binds one element class and child tag to its closed value set.
type enumCheck struct {
	class  string
	child  string
	values cdf.Enumeration
	label  string
}

var enumChecks = []enumCheck{
	{"Election", "Type", cdf.ElectionTypes, "election type"},
	{"Office", "Level", cdf.OfficeLevels, "office level"},
	{"Office", "Role", cdf.OfficeRoles, "office role"},
	{"Person", "Gender", cdf.Genders, "gender"},
	{"ElectionDate", "Type", cdf.ElectionDateTypes, "election date type"},
	{"ElectionDate", "Status", cdf.ElectionDateStatuses, "election date status"},
	{"Feed", "FeedType", cdf.FeedTypes, "feed type"},
	{"Feed", "FeedLongevity", cdf.FeedLongevities, "feed longevity"},
}

// EnumerationsRule checks closed-enumeration fields against their value
// sets, preferring the schema's own simple-type definitions when a schema
// companion is loaded.
type EnumerationsRule struct{}

func (*EnumerationsRule) Describe() Descriptor {
	return Descriptor{
		Name:        "Enumerations",
		Description: "Checks that enumerated fields hold values from their closed sets.",
		Severity:    diag.SeverityError,
		RuleSets:    RuleSets,
	}
}

func (r *EnumerationsRule) Check(rc *Context) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, check := range enumChecks {
		values := check.values
		if rc.Schema != nil {
			if schemaValues := rc.Schema.Enum(check.class + check.child + "Type"); len(schemaValues) > 0 {
				values = cdf.NewEnumeration(schemaValues...)
			}
		}
		for _, node := range rc.Index.ByClass(check.class) {
			child := node.Child(check.child)
			if child == nil || child.Text == "" {
				continue
			}
			if !values.Contains(child.Text) {
				out = append(out, diag.Errorf("Enumerations",
					"%q is not a valid %s%s", child.Text, check.label,
					suggestion(values, child.Text),
				).At(child.Path, node.ObjectID))
			}
		}
	}
	return out
}

// suggestion points at a same-letters-different-case match when one exists,
// the most common way these fields go wrong.
func suggestion(values cdf.Enumeration, got string) string {
	for v := range values {
		if v != got && strings.EqualFold(v, got) {
			return fmt.Sprintf("; did you mean %q", v)
		}
	}
	return ""
}
