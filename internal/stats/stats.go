// Package stats derives entity and attribute counts from a parsed feed,
// printed after verbose validation runs.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/civictools/cdflint/internal/cdf"
)

// entityChildren lists, per top-level entity, the nested elements worth
// counting presence of.
var entityChildren = map[string][]string{
	"Candidate": {
		"BallotName", "ExternalIdentifiers", "FileDate", "IsIncumbent",
		"PartyId", "PersonId",
	},
	"Contest": {
		"BallotSelection", "ElectoralDistrictId", "ExternalIdentifiers",
		"Name", "TotalSubUnits",
	},
	"GpUnit": {
		"ComposingGpUnitIds", "ExternalIdentifiers", "Name", "SummaryCounts",
	},
	"Office": {
		"ContactInformation", "ElectoralDistrictId", "ExternalIdentifiers",
		"FilingDeadline", "Name", "OfficeHolderPersonIds", "Term",
	},
	"Party": {
		"Abbreviation", "Color", "ExternalIdentifiers", "Name",
		"InternationalizedAbbreviation",
	},
	"Person": {
		"ContactInformation", "DateOfBirth", "FirstName", "FullName",
		"Gender", "LastName", "MiddleName", "Nickname", "PartyId",
		"Prefix", "Profession", "Suffix", "Title",
	},
}

// EntityCount holds the totals for one entity class.
type EntityCount struct {
	Name       string
	Total      int
	Attributes []AttributeCount
}

// AttributeCount is presence data for one nested attribute.
type AttributeCount struct {
	Name    string
	Present int
}

// Count tallies each known top-level entity and how many instances carry
// each nested attribute. Entities absent from the feed are omitted.
func Count(ix *cdf.EntityIndex) []EntityCount {
	names := make([]string, 0, len(entityChildren))
	for name := range entityChildren {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []EntityCount
	for _, name := range names {
		instances := ix.ByClass(name)
		if len(instances) == 0 {
			continue
		}
		ec := EntityCount{Name: name, Total: len(instances)}
		for _, attr := range entityChildren[name] {
			ac := AttributeCount{Name: attr}
			for _, n := range instances {
				if n.Find(attr) != nil {
					ac.Present++
				}
			}
			ec.Attributes = append(ec.Attributes, ac)
		}
		// Most common attributes first; ties keep the declared order.
		sort.SliceStable(ec.Attributes, func(i, j int) bool {
			return ec.Attributes[i].Present > ec.Attributes[j].Present
		})
		out = append(out, ec)
	}
	return out
}

// Format renders counts as the table printed after verbose runs.
func Format(counts []EntityCount) string {
	var sb strings.Builder
	sb.WriteString("     Entity and Attribute Counts:\n")
	for _, ec := range counts {
		sb.WriteString("        " + strings.Repeat("-", 65) + "\n")
		fmt.Fprintf(&sb, "        %-30s%-22s%s\n",
			fmt.Sprintf("%s (Total: %d)", ec.Name, ec.Total),
			"| # with attribute", "| # missing attribute")
		sb.WriteString("        " + strings.Repeat("-", 65) + "\n")
		for _, ac := range ec.Attributes {
			fmt.Fprintf(&sb, "        %-30s%8d%15d\n",
				ac.Name, ac.Present, ec.Total-ac.Present)
		}
	}
	return sb.String()
}
