package dom

import (
	"github.com/antchfx/xpath"
	"github.com/pkg/errors"
)

// Navigator adapts a Node tree to the xpath engine's cursor interface,
// so compiled XPath expressions can be evaluated over parsed documents.
// attr >= 0 means the cursor sits on that attribute of cur.
type Navigator struct {
	root *Node
	cur  *Node
	attr int
}

// NewNavigator creates a navigator positioned on root.
func NewNavigator(root *Node) *Navigator {
	return &Navigator{root: root, cur: root, attr: -1}
}

// Current returns the node under the cursor.
func (n *Navigator) Current() *Node {
	return n.cur
}

func (n *Navigator) NodeType() xpath.NodeType {
	if n.attr >= 0 {
		return xpath.AttributeNode
	}
	switch n.cur.Type {
	case DocumentNode:
		return xpath.RootNode
	case ElementNode:
		return xpath.ElementNode
	case TextNode:
		return xpath.TextNode
	default:
		// comments, PIs and doctypes all navigate like comments
		return xpath.CommentNode
	}
}

func (n *Navigator) LocalName() string {
	if n.attr >= 0 {
		return n.cur.Attrs[n.attr].Name.Local
	}
	return n.cur.Name.Local
}

func (n *Navigator) Prefix() string {
	if n.attr >= 0 {
		return n.cur.Attrs[n.attr].Name.Prefix
	}
	return n.cur.Name.Prefix
}

func (n *Navigator) Value() string {
	if n.attr >= 0 {
		return n.cur.Attrs[n.attr].Value
	}
	switch n.cur.Type {
	case ElementNode, DocumentNode:
		return n.cur.InnerText()
	default:
		return n.cur.Data
	}
}

func (n *Navigator) Copy() xpath.NodeNavigator {
	c := *n
	return &c
}

func (n *Navigator) MoveToRoot() {
	n.cur = n.root
	n.attr = -1
}

func (n *Navigator) MoveToParent() bool {
	if n.attr >= 0 {
		n.attr = -1
		return true
	}
	if n.cur.Parent == nil {
		return false
	}
	n.cur = n.cur.Parent
	return true
}

func (n *Navigator) MoveToNextAttribute() bool {
	if n.cur.Type != ElementNode || n.attr+1 >= len(n.cur.Attrs) {
		return false
	}
	n.attr++
	return true
}

func (n *Navigator) MoveToChild() bool {
	if n.attr >= 0 || n.cur.FirstChild == nil {
		return false
	}
	n.cur = n.cur.FirstChild
	return true
}

func (n *Navigator) MoveToFirst() bool {
	if n.attr >= 0 {
		return false
	}
	for n.cur.PrevSibling != nil {
		n.cur = n.cur.PrevSibling
	}
	return true
}

func (n *Navigator) MoveToNext() bool {
	if n.attr >= 0 || n.cur.NextSibling == nil {
		return false
	}
	n.cur = n.cur.NextSibling
	return true
}

func (n *Navigator) MoveToPrevious() bool {
	if n.attr >= 0 || n.cur.PrevSibling == nil {
		return false
	}
	n.cur = n.cur.PrevSibling
	return true
}

func (n *Navigator) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*Navigator)
	if !ok || o.root != n.root {
		return false
	}
	n.cur = o.cur
	n.attr = o.attr
	return true
}

// Query evaluates an XPath expression against the tree rooted at root
// and returns the matching nodes in document order.
func Query(root *Node, expr string) ([]*Node, error) {
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "compiling xpath %q", expr)
	}
	var nodes []*Node
	iter := e.Select(NewNavigator(root))
	for iter.MoveNext() {
		nav, ok := iter.Current().(*Navigator)
		if !ok {
			continue
		}
		nodes = append(nodes, nav.Current())
	}
	return nodes, nil
}
