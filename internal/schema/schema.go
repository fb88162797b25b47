// Package schema reads the XSD the feed is validated against and exposes
// the parts of it the rule engine consults: which element names exist,
// which elements are optional, which carry IDREF references, which complex
// types own an OtherType escape hatch, and the members of each closed
// enumeration. Full structural XSD validation is a collaborator concern;
// Validate performs the lightweight declared-element pre-pass whose result
// the Schema rule reports.
package schema

import (
	"github.com/beevik/etree"

	"github.com/civictools/cdflint/internal/cdf"
	"github.com/civictools/cdflint/internal/diag"
	"github.com/civictools/cdflint/internal/errors"
)

// RuleName labels structural pre-pass diagnostics.
const RuleName = "Schema"

// Schema is the parsed companion view of one XSD file.
type Schema struct {
	declared   map[string]struct{}
	optional   map[string]struct{}
	idref      map[string]struct{}
	otherOwner map[string]struct{}
	enums      map[string][]string
}

// Load parses the XSD at path.
func Load(path string) (*Schema, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromFile(path); err != nil {
		return nil, errors.Wrapf(err, "parsing schema %s", path)
	}
	return fromTree(tree)
}

// ParseBytes parses XSD bytes.
func ParseBytes(data []byte) (*Schema, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, "parsing schema")
	}
	return fromTree(tree)
}

func fromTree(tree *etree.Document) (*Schema, error) {
	root := tree.Root()
	if root == nil {
		return nil, errors.New("schema has no root element")
	}

	s := &Schema{
		declared:   make(map[string]struct{}),
		optional:   make(map[string]struct{}),
		idref:      make(map[string]struct{}),
		otherOwner: make(map[string]struct{}),
		enums:      make(map[string][]string),
	}

	var walk func(el *etree.Element, owningType string)
	walk = func(el *etree.Element, owningType string) {
		switch el.Tag {
		case "element":
			name := el.SelectAttrValue("name", "")
			if name != "" {
				s.declared[name] = struct{}{}
				if el.SelectAttrValue("minOccurs", "") == "0" {
					s.optional[name] = struct{}{}
				}
				switch el.SelectAttrValue("type", "") {
				case "xs:IDREF", "xs:IDREFS", "xsd:IDREF", "xsd:IDREFS":
					s.idref[name] = struct{}{}
				}
				if name == "OtherType" && owningType != "" {
					s.otherOwner[owningType] = struct{}{}
				}
			}
		case "complexType":
			if name := el.SelectAttrValue("name", ""); name != "" {
				owningType = name
			}
		case "restriction":
			if name := enclosingTypeName(el); name != "" {
				for _, enum := range el.FindElements(".//enumeration") {
					if v := enum.SelectAttrValue("value", ""); v != "" {
						s.enums[name] = append(s.enums[name], v)
					}
				}
			}
		}
		for _, c := range el.ChildElements() {
			walk(c, owningType)
		}
	}
	walk(root, "")

	return s, nil
}

// enclosingTypeName climbs to the named simpleType a restriction belongs to.
func enclosingTypeName(el *etree.Element) string {
	for p := el.Parent(); p != nil; p = p.Parent() {
		if p.Tag == "simpleType" {
			return p.SelectAttrValue("name", "")
		}
	}
	return ""
}

// Declares reports whether the schema declares an element with the name.
func (s *Schema) Declares(name string) bool {
	_, ok := s.declared[name]
	return ok
}

// Optional reports whether the element is declared with minOccurs="0".
func (s *Schema) Optional(name string) bool {
	_, ok := s.optional[name]
	return ok
}

// IsIDRef reports whether the named element is IDREF/IDREFS typed.
func (s *Schema) IsIDRef(name string) bool {
	_, ok := s.idref[name]
	return ok
}

// OwnsOtherType reports whether the named complex type declares an
// OtherType child.
func (s *Schema) OwnsOtherType(typeName string) bool {
	_, ok := s.otherOwner[typeName]
	return ok
}

// Enum returns the members of a named enumeration type, nil when unknown.
func (s *Schema) Enum(typeName string) []string {
	return s.enums[typeName]
}

// Validate performs the structural pre-pass: every element of the document
// must be declared by the schema. The result is handed to the rule engine
// as the SchemaViolation diagnostic category; it does not abort the run.
func (s *Schema) Validate(doc *cdf.Document) []diag.Diagnostic {
	var out []diag.Diagnostic
	doc.Root.Walk(func(n *cdf.Node) {
		if !s.Declares(n.Tag) {
			out = append(out, diag.Errorf(RuleName,
				"element %s is not declared by the schema", n.Tag,
			).At(n.Path, n.ObjectID))
		}
	})
	return out
}
