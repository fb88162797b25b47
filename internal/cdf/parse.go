package cdf

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/civictools/cdflint/internal/errors"
)

// Document is one parsed feed file.
type Document struct {
	// Root is the document element.
	Root *Node

	// Encoding is the encoding declared in the XML prolog, "" when the
	// prolog omits it.
	Encoding string
}

// Parse reads and converts a feed file into a Document.
func Parse(path string) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromFile(path); err != nil {
		return nil, errors.Wrapf(errors.ErrParse, "%s: %v", path, err)
	}
	return fromTree(tree)
}

// ParseBytes converts feed bytes into a Document.
func ParseBytes(data []byte) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, errors.Wrapf(errors.ErrParse, "%v", err)
	}
	return fromTree(tree)
}

func fromTree(tree *etree.Document) (*Document, error) {
	root := tree.Root()
	if root == nil {
		return nil, errors.Wrap(errors.ErrParse, "document has no root element")
	}

	doc := &Document{
		Root: convert(root, ""),
	}

	// etree surfaces the prolog as a ProcInst token named "xml".
	for _, tok := range tree.Child {
		pi, ok := tok.(*etree.ProcInst)
		if !ok || pi.Target != "xml" {
			continue
		}
		doc.Encoding = prologAttr(pi.Inst, "encoding")
	}

	return doc, nil
}

func convert(el *etree.Element, parentPath string) *Node {
	n := &Node{
		Tag:  el.Tag,
		Text: strings.TrimSpace(el.Text()),
	}
	n.Path = parentPath + "/" + n.Tag

	for _, a := range el.Attr {
		switch {
		case a.Key == "objectId" && a.Space == "":
			n.ObjectID = a.Value
		case a.Key == "type" && (a.Space == "xsi" || a.Space == ""):
			n.XSIType = a.Value
		default:
			if n.Attrs == nil {
				n.Attrs = make(map[string]string)
			}
			n.Attrs[a.Key] = a.Value
		}
	}

	children := el.ChildElements()
	if len(children) > 0 {
		n.Children = make([]*Node, 0, len(children))
		for _, c := range children {
			n.Children = append(n.Children, convert(c, n.Path))
		}
	}
	return n
}

// prologAttr pulls a pseudo-attribute like encoding="UTF-8" out of the XML
// declaration.
func prologAttr(inst, key string) string {
	rest := inst
	for {
		idx := strings.Index(rest, key+"=")
		if idx < 0 {
			return ""
		}
		rest = rest[idx+len(key)+1:]
		if len(rest) < 2 {
			return ""
		}
		quote := rest[0]
		if quote != '"' && quote != '\'' {
			continue
		}
		end := strings.IndexByte(rest[1:], quote)
		if end < 0 {
			return ""
		}
		return rest[1 : 1+end]
	}
}
