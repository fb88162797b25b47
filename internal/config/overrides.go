package config

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/civictools/cdflint/internal/diag"
	"github.com/civictools/cdflint/internal/errors"
)

// overridesFile is the TOML layout of a severity-overrides sidecar:
//
//	[rules]
//	HungarianStyleNotation = "Warning"
//	EmptyText = "Info"
type overridesFile struct {
	Rules map[string]string `toml:"rules"`
}

// LoadOverrides reads a TOML file remapping rule severities. Unknown rule
// names are tolerated here; the selector rejects them when they also appear
// in include/exclude filters, and an override for a rule that never runs is
// inert.
func LoadOverrides(path string) (map[string]diag.Severity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading overrides file %s", path)
	}

	var f overridesFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, "parsing overrides file %s", path)
	}

	out := make(map[string]diag.Severity, len(f.Rules))
	for rule, name := range f.Rules {
		sev, err := diag.ParseSeverity(name)
		if err != nil {
			return nil, errors.Wrapf(err, "overrides file %s, rule %s", path, rule)
		}
		out[rule] = sev
	}
	return out, nil
}
