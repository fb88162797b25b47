package cdf

import (
	"github.com/civictools/cdflint/internal/diag"
)

// DuplicateIDRuleName labels the diagnostics the index builder emits for
// colliding object identifiers.
const DuplicateIDRuleName = "DuplicateID"

// EntityIndex provides identifier and element-type lookups over one parsed
// document. It is built once per validation run and read-only thereafter.
type EntityIndex struct {
	byID       map[string]*Node
	byClass    map[string][]*Node
	duplicates map[string]struct{}
}

// BuildIndex walks the tree once, recording every node carrying a non-empty
// objectId and bucketing every node by element class. A second declaration
// of an identifier is reported as a duplicate-identifier Error; the first
// occurrence stays in the map but the identifier is poisoned so reference
// lookups treat it as unresolved rather than silently picking a winner.
func BuildIndex(doc *Document) (*EntityIndex, []diag.Diagnostic) {
	ix := &EntityIndex{
		byID:       make(map[string]*Node),
		byClass:    make(map[string][]*Node),
		duplicates: make(map[string]struct{}),
	}
	var diagnostics []diag.Diagnostic

	doc.Root.Walk(func(n *Node) {
		class := n.Class()
		ix.byClass[class] = append(ix.byClass[class], n)
		if class != n.Tag {
			// An xsi:type subtype is also reachable under its base tag.
			ix.byClass[n.Tag] = append(ix.byClass[n.Tag], n)
		}

		if n.ObjectID == "" {
			return
		}
		if _, seen := ix.byID[n.ObjectID]; seen {
			if _, reported := ix.duplicates[n.ObjectID]; !reported {
				diagnostics = append(diagnostics, diag.Errorf(
					DuplicateIDRuleName,
					"%s is a duplicate object ID", n.ObjectID,
				).At(n.Path, n.ObjectID))
			}
			ix.duplicates[n.ObjectID] = struct{}{}
			return
		}
		ix.byID[n.ObjectID] = n
	})

	return ix, diagnostics
}

// ByID resolves an object identifier. Identifiers declared more than once
// resolve to nothing: a reference to a contested identifier is as broken as
// a reference to a missing one.
func (ix *EntityIndex) ByID(id string) (*Node, bool) {
	if _, dup := ix.duplicates[id]; dup {
		return nil, false
	}
	n, ok := ix.byID[id]
	return n, ok
}

// ByClass returns the nodes of the given element class in document order.
func (ix *EntityIndex) ByClass(class string) []*Node {
	return ix.byClass[class]
}

// IsDuplicate reports whether the identifier was declared more than once.
func (ix *EntityIndex) IsDuplicate(id string) bool {
	_, dup := ix.duplicates[id]
	return dup
}
