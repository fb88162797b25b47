package rules

import (
	"sort"
	"strings"

	"github.com/civictools/cdflint/internal/cdf"
	"github.com/civictools/cdflint/internal/diag"
)

// composingIDs returns the composing references of a unit, empty when the
// unit has none.
func composingIDs(unit *cdf.Node) []string {
	ids := unit.Child("ComposingGpUnitIds")
	if ids == nil {
		return nil
	}
	return ids.TextValues()
}

// GpUnitCyclesRule checks that the composing-unit graph is acyclic. Each
// distinct cycle is reported once, naming every unit on it; a composing
// reference to a unit that does not exist is its own finding.
type GpUnitCyclesRule struct{}

func (*GpUnitCyclesRule) Describe() Descriptor {
	return Descriptor{
		Name:        "GpUnitCycles",
		Description: "Checks that GpUnit composing references do not form cycles.",
		Severity:    diag.SeverityError,
		RuleSets:    RuleSets,
	}
}

func (r *GpUnitCyclesRule) Check(rc *Context) []diag.Diagnostic {
	const name = "GpUnitCycles"

	units := make(map[string]*cdf.Node)
	var order []string
	for _, unit := range rc.GpUnits() {
		if unit.ObjectID == "" {
			continue
		}
		units[unit.ObjectID] = unit
		order = append(order, unit.ObjectID)
	}

	var out []diag.Diagnostic
	visiting := make(map[string]bool)
	visited := make(map[string]bool)
	reported := make(map[string]bool)
	var stack []string

	var visit func(id string)
	visit = func(id string) {
		visiting[id] = true
		stack = append(stack, id)
		for _, next := range composingIDs(units[id]) {
			target, ok := units[next]
			if !ok || target == nil {
				out = append(out, diag.Errorf(name,
					"GpUnit %s composes %s which is not a GpUnit in the feed",
					id, next,
				).At(units[id].Path, id))
				continue
			}
			if visiting[next] {
				// Close the loop from where next first appeared on the stack.
				start := 0
				for i, member := range stack {
					if member == next {
						start = i
						break
					}
				}
				cycle := append([]string(nil), stack[start:]...)
				key := cycleKey(cycle)
				if !reported[key] {
					reported[key] = true
					out = append(out, diag.Errorf(name,
						"GpUnits [%s] form a composing cycle",
						strings.Join(cycle, ", "),
					).At(target.Path, next))
				}
				continue
			}
			if !visited[next] {
				visit(next)
			}
		}
		stack = stack[:len(stack)-1]
		visiting[id] = false
		visited[id] = true
	}

	for _, id := range order {
		if !visited[id] {
			visit(id)
		}
	}
	return out
}

// cycleKey identifies a cycle independent of where the walk entered it.
func cycleKey(members []string) string {
	sorted := append([]string(nil), members...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}

// DuplicateGpUnitsRule checks that no two units flatten to the same set of
// leaf composing units. Units on a cycle are skipped; GpUnitCycles owns
// that defect.
type DuplicateGpUnitsRule struct{}

func (*DuplicateGpUnitsRule) Describe() Descriptor {
	return Descriptor{
		Name:        "DuplicateGpUnits",
		Description: "Checks that no two GpUnits compose the same set of leaf units.",
		Severity:    diag.SeverityError,
		RuleSets:    RuleSets,
	}
}

func (r *DuplicateGpUnitsRule) Check(rc *Context) []diag.Diagnostic {
	units := make(map[string]*cdf.Node)
	var order []string
	for _, unit := range rc.GpUnits() {
		if unit.ObjectID == "" {
			continue
		}
		units[unit.ObjectID] = unit
		order = append(order, unit.ObjectID)
	}

	// Only composite units compete: a leaf unit trivially flattens to
	// itself and is not a duplicate of the unit composing it.
	leaves := make(map[string][]string)
	byLeafSet := make(map[string][]string)
	for _, id := range order {
		if len(composingIDs(units[id])) == 0 {
			continue
		}
		set := flattenLeaves(id, units, leaves, make(map[string]bool))
		if len(set) == 0 {
			continue
		}
		key := strings.Join(set, "\x00")
		byLeafSet[key] = append(byLeafSet[key], id)
	}

	var out []diag.Diagnostic
	seen := make(map[string]bool)
	for _, id := range order {
		set := leaves[id]
		if len(set) == 0 || len(composingIDs(units[id])) == 0 {
			continue
		}
		key := strings.Join(set, "\x00")
		dupes := byLeafSet[key]
		if len(dupes) > 1 && !seen[key] {
			seen[key] = true
			out = append(out, diag.Errorf("DuplicateGpUnits",
				"GpUnits [%s] are duplicates",
				strings.Join(dupes, ", "),
			).At(units[id].Path, id))
		}
	}
	return out
}

// flattenLeaves resolves a unit to its sorted set of leaf composing units.
// A unit with no composing references is its own leaf. The in-progress map
// guards against cycles; a unit on a cycle flattens to nothing.
func flattenLeaves(id string, units map[string]*cdf.Node, memo map[string][]string, inProgress map[string]bool) []string {
	if set, ok := memo[id]; ok {
		return set
	}
	if inProgress[id] {
		return nil
	}
	inProgress[id] = true
	defer delete(inProgress, id)

	composing := composingIDs(units[id])
	if len(composing) == 0 {
		memo[id] = []string{id}
		return memo[id]
	}

	set := make(map[string]struct{})
	for _, next := range composing {
		if _, ok := units[next]; !ok {
			continue
		}
		for _, leaf := range flattenLeaves(next, units, memo, inProgress) {
			set[leaf] = struct{}{}
		}
	}
	sorted := make([]string, 0, len(set))
	for leaf := range set {
		sorted = append(sorted, leaf)
	}
	sort.Strings(sorted)
	memo[id] = sorted
	return sorted
}
