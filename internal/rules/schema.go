package rules

import (
	"strings"

	"github.com/civictools/cdflint/internal/diag"
	"github.com/civictools/cdflint/internal/schema"
)

// SchemaRule surfaces the result of the external structural schema pass.
type SchemaRule struct{}

func (*SchemaRule) Describe() Descriptor {
	return Descriptor{
		Name:        "Schema",
		Description: "Checks that the feed validates against the provided schema.",
		Severity:    diag.SeverityError,
		RuleSets:    RuleSets,
	}
}

func (*SchemaRule) Check(rc *Context) []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(rc.SchemaDiags))
	copy(out, rc.SchemaDiags)
	for i := range out {
		out[i].Rule = schema.RuleName
	}
	return out
}

// EncodingRule checks that the feed declares UTF-8 encoding.
type EncodingRule struct{}

func (*EncodingRule) Describe() Descriptor {
	return Descriptor{
		Name:        "Encoding",
		Description: "Checks that the file declares UTF-8 encoding.",
		Severity:    diag.SeverityError,
		RuleSets:    RuleSets,
	}
}

func (*EncodingRule) Check(rc *Context) []diag.Diagnostic {
	if strings.EqualFold(rc.Doc.Encoding, "utf-8") {
		return nil
	}
	return []diag.Diagnostic{diag.Errorf("Encoding", "encoding on file is not UTF-8")}
}

// DuplicateIDRule surfaces the duplicate object identifiers found while the
// entity index was built, so individual rules never re-derive them.
type DuplicateIDRule struct{}

func (*DuplicateIDRule) Describe() Descriptor {
	return Descriptor{
		Name:        "DuplicateID",
		Description: "Checks that the feed does not contain duplicate object IDs.",
		Severity:    diag.SeverityError,
		RuleSets:    RuleSets,
	}
}

func (*DuplicateIDRule) Check(rc *Context) []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(rc.DuplicateIDs))
	copy(out, rc.DuplicateIDs)
	return out
}
