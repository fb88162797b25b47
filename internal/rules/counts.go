package rules

import (
	"strconv"
	"strings"

	"github.com/civictools/cdflint/internal/cdf"
	"github.com/civictools/cdflint/internal/diag"
)

// countTolerance is the relative overcount allowed before a contest's
// summed selection counts count as implausible against its declared
// ballot total. Rounding in upstream tabulation systems makes exact
// agreement too strict.
const countTolerance = 0.005

// VoteCountPlausibilityRule checks results feeds: the vote counts summed
// across a contest's selections must not exceed the ballot total the
// contest declares. Sums below the total are undervotes and expected.
type VoteCountPlausibilityRule struct{}

func (*VoteCountPlausibilityRule) Describe() Descriptor {
	return Descriptor{
		Name:        "VoteCountPlausibility",
		Description: "Checks that summed selection vote counts do not exceed the declared ballot total.",
		Severity:    diag.SeverityWarning,
		RuleSets:    []string{RuleSetElectionResults},
	}
}

func (r *VoteCountPlausibilityRule) Check(rc *Context) []diag.Diagnostic {
	const name = "VoteCountPlausibility"
	var out []diag.Diagnostic
	for _, contest := range rc.Index.ByClass("Contest") {
		declared, ok := declaredBallots(contest)
		if !ok {
			continue
		}
		sum, counted := selectionVotes(contest)
		if !counted {
			continue
		}
		// Undervotes are normal; only an overcount beyond the tolerance
		// is implausible.
		if float64(sum-declared) > float64(declared)*countTolerance {
			out = append(out, diag.Warningf(name,
				"contest %s selection vote counts sum to %d but the contest declares %d ballots",
				contest.ObjectID, sum, declared,
			).At(contest.Path, contest.ObjectID))
		}
	}
	return out
}

// declaredBallots reads the contest's declared ballot total, trying the
// two spellings the feeds use.
func declaredBallots(contest *cdf.Node) (int64, bool) {
	for _, tag := range []string{"BallotsCast", "TotalBallots"} {
		text := contest.ChildText(tag)
		if text == "" {
			continue
		}
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil || n <= 0 {
			continue
		}
		return n, true
	}
	return 0, false
}

// selectionVotes sums every Count under the contest's selections. The
// second result is false when the contest carries no counted selections.
func selectionVotes(contest *cdf.Node) (int64, bool) {
	var sum int64
	counted := false
	for _, child := range contest.Children {
		if !isSelection(child) {
			continue
		}
		child.Walk(func(n *cdf.Node) {
			if n.Tag != "Count" || n.Text == "" {
				return
			}
			if v, err := strconv.ParseInt(n.Text, 10, 64); err == nil {
				sum += v
				counted = true
			}
		})
	}
	return sum, counted
}

func isSelection(n *cdf.Node) bool {
	return strings.HasSuffix(n.Class(), "Selection")
}
