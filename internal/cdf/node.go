// Package cdf models parsed civics common-data-format feeds: the document
// tree, the partial date type, the closed enumerations of the schema family,
// and the entity index built over one document for a validation run.
package cdf

import "strings"

// Node is one element of a parsed feed document. The tree owns its nodes;
// validation only reads them.
type Node struct {
	// Tag is the element type name with any namespace stripped.
	Tag string

	// XSIType carries an xsi:type attribute when present. Entities such as
	// Contest use it to declare a subtype (CandidateContest, PartyContest).
	XSIType string

	// ObjectID is the unique identifier attribute, empty when absent.
	ObjectID string

	// Attrs holds the remaining attributes.
	Attrs map[string]string

	// Text is the trimmed character data directly inside the element.
	Text string

	// Path locates the element from the document root, e.g.
	// /ElectionReport/Election/ContestCollection/Contest.
	Path string

	// Children are the element's child nodes in document order.
	Children []*Node
}

// Class returns the element class used for rule dispatch: the xsi:type
// subtype when declared, otherwise the tag.
func (n *Node) Class() string {
	if n.XSIType != "" {
		return n.XSIType
	}
	return n.Tag
}

// Attr returns the named attribute, or "" when absent.
func (n *Node) Attr(name string) string {
	if n.Attrs == nil {
		return ""
	}
	return n.Attrs[name]
}

// Child returns the first direct child with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildText returns the trimmed text of the first direct child with the
// given tag, or "" when the child is absent.
func (n *Node) ChildText(tag string) string {
	if c := n.Child(tag); c != nil {
		return c.Text
	}
	return ""
}

// Find returns the first descendant with the given tag in document order,
// or nil. The receiver itself is not considered.
func (n *Node) Find(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
		if found := c.Find(tag); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant with the given tag in document order.
func (n *Node) FindAll(tag string) []*Node {
	var out []*Node
	n.Walk(func(d *Node) {
		if d != n && d.Tag == tag {
			out = append(out, d)
		}
	})
	return out
}

// Walk visits the node and all descendants in document order. The tree depth
// is bounded by schema nesting, so recursion here cannot run away; only the
// identifier-reference graph between entities can be cyclic, and that graph
// is traversed through the EntityIndex, never through child pointers.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// TextValues splits the element text on whitespace. IDREFS-typed fields
// carry several references in one text node.
func (n *Node) TextValues() []string {
	return strings.Fields(n.Text)
}
