package rules

import (
	"github.com/civictools/cdflint/internal/cdf"
	"github.com/civictools/cdflint/internal/diag"
)

// checkDatePair validates the format of a start/end element pair and their
// ordering. Ordering violations are warnings; a pair that cannot be ordered
// because it mixes precisions is reported at info level.
func checkDatePair(rule string, owner, start, end *cdf.Node) []diag.Diagnostic {
	var out []diag.Diagnostic

	var startDate, endDate cdf.PartialDate
	startOK, endOK := false, false
	if start != nil && start.Text != "" {
		if startDate, startOK = cdf.ParsePartialDate(start.Text); !startOK {
			out = append(out, diag.Errorf(rule,
				"the %s text %q should be of the formats: yyyy-mm-dd, or yyyy, or yyyy-mm",
				start.Tag, start.Text,
			).At(start.Path, owner.ObjectID))
		}
	}
	if end != nil && end.Text != "" {
		if endDate, endOK = cdf.ParsePartialDate(end.Text); !endOK {
			out = append(out, diag.Errorf(rule,
				"the %s text %q should be of the formats: yyyy-mm-dd, or yyyy, or yyyy-mm",
				end.Tag, end.Text,
			).At(end.Path, owner.ObjectID))
		}
	}
	if !startOK || !endOK {
		return out
	}

	delta, conclusive := startDate.Compare(endDate)
	switch {
	case !conclusive:
		out = append(out, diag.Infof(rule,
			"the dates %s (%s) and %s (%s) are written at different precisions and cannot be ordered",
			start.Tag, startDate, end.Tag, endDate,
		).At(start.Path, owner.ObjectID))
	case delta > 0:
		out = append(out, diag.Warningf(rule,
			"the %s %s is before the %s %s",
			end.Tag, endDate, start.Tag, startDate,
		).At(end.Path, owner.ObjectID))
	}
	return out
}

// ElectionDatesRule checks election date formats and ordering: the
// StartDate/EndDate pair of each Election, and on date feeds the scheduled
// ElectionDate entries, which must run registration start, registration
// deadline, election day.
type ElectionDatesRule struct{}

func (*ElectionDatesRule) Describe() Descriptor {
	return Descriptor{
		Name:        "ElectionDates",
		Description: "Checks election date formats and StartDate/EndDate ordering.",
		Severity:    diag.SeverityWarning,
		RuleSets:    []string{RuleSetElection, RuleSetElectionResults, RuleSetMetadata},
	}
}

func (r *ElectionDatesRule) Check(rc *Context) []diag.Diagnostic {
	const name = "ElectionDates"
	var out []diag.Diagnostic
	for _, election := range rc.Index.ByClass("Election") {
		out = append(out, checkDatePair(name, election,
			election.Child("StartDate"), election.Child("EndDate"))...)
		out = append(out, r.checkScheduled(election)...)
	}
	return out
}

// scheduledChain is the expected order of the typed ElectionDate entries:
// registration opens, registration closes, the election is held.
var scheduledChain = []struct {
	key, label string
}{
	{"registration-start", "registration start"},
	{"registration-deadline", "registration deadline"},
	{"election-day", "election day"},
}

// checkScheduled orders the typed ElectionDate entries of a date feed along
// scheduledChain. Adjacent entries that are present must not be reversed;
// mixed precisions that defeat the comparison are reported at info level.
func (*ElectionDatesRule) checkScheduled(election *cdf.Node) []diag.Diagnostic {
	const name = "ElectionDates"
	var out []diag.Diagnostic

	dates := make(map[string]cdf.PartialDate)
	for _, ed := range election.FindAll("ElectionDate") {
		dateType := ed.ChildText("Type")
		text := ed.ChildText("Date")
		if dateType == "" || text == "" {
			continue
		}
		d, ok := cdf.ParsePartialDate(text)
		if !ok {
			out = append(out, diag.Errorf(name,
				"the ElectionDate Date text %q should be of the formats: yyyy-mm-dd, or yyyy, or yyyy-mm",
				text,
			).At(ed.Path, election.ObjectID))
			continue
		}
		dates[dateType] = d
	}

	prev := -1
	for i, link := range scheduledChain {
		if _, ok := dates[link.key]; !ok {
			continue
		}
		if prev >= 0 {
			earlier, later := scheduledChain[prev], link
			delta, conclusive := dates[earlier.key].Compare(dates[later.key])
			switch {
			case !conclusive:
				out = append(out, diag.Infof(name,
					"the %s %s and the %s %s are written at different precisions and cannot be ordered",
					earlier.label, dates[earlier.key], later.label, dates[later.key],
				).At(election.Path, election.ObjectID))
			case delta > 0:
				out = append(out, diag.Warningf(name,
					"the %s %s is after the %s %s",
					earlier.label, dates[earlier.key], later.label, dates[later.key],
				).At(election.Path, election.ObjectID))
			}
		}
		prev = i
	}
	return out
}

// OfficeTermDatesRule checks the term date pair on each office.
type OfficeTermDatesRule struct{}

func (*OfficeTermDatesRule) Describe() Descriptor {
	return Descriptor{
		Name:        "OfficeTermDates",
		Description: "Checks office term date formats and StartDate/EndDate ordering.",
		Severity:    diag.SeverityWarning,
		RuleSets:    []string{RuleSetOfficeholder},
	}
}

func (*OfficeTermDatesRule) Check(rc *Context) []diag.Diagnostic {
	const name = "OfficeTermDates"
	var out []diag.Diagnostic
	for _, office := range rc.Index.ByClass("Office") {
		term := office.Child("Term")
		if term == nil {
			continue
		}
		out = append(out, checkDatePair(name, office,
			term.Child("StartDate"), term.Child("EndDate"))...)
	}
	return out
}
