package rules

import (
	"log/slog"

	"github.com/civictools/cdflint/internal/diag"
)

// Run executes each effective rule in order and returns the combined
// diagnostics. A failure inside one rule is contained at the per-rule
// boundary and converted into a single synthetic Error diagnostic naming
// the rule; the remaining rules still run. Severity overrides from the run
// configuration are applied to the combined output.
func Run(effective []Rule, rc *Context) []diag.Diagnostic {
	logger := rc.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var out []diag.Diagnostic
	for _, r := range effective {
		name := r.Describe().Name
		logger.Debug("running rule", "rule", name)
		found := runOne(r, rc, logger)
		logger.Debug("rule finished", "rule", name, "findings", len(found))
		out = append(out, found...)
	}

	if len(rc.Run.SeverityOverrides) > 0 {
		for i, d := range out {
			if sev, ok := rc.Run.SeverityOverrides[d.Rule]; ok {
				out[i].Severity = sev
			}
		}
	}
	return out
}

func runOne(r Rule, rc *Context, logger *slog.Logger) (found []diag.Diagnostic) {
	name := r.Describe().Name
	defer func() {
		if p := recover(); p != nil {
			logger.Error("rule failed internally", "rule", name, "panic", p)
			found = []diag.Diagnostic{diag.Errorf(name,
				"rule %s failed internally and its checks were skipped", name)}
		}
	}()
	return r.Check(rc)
}
