// Package dom materializes parser events into a lightweight node tree.
// It sits at the terminal end of the pipeline: the TreeBuilder receives
// events from the last pipeline stage and copies whatever it keeps,
// since the spans it is handed die when each callback returns.
package dom

import (
	"strings"

	"github.com/heathj/marksoup/parser"
)

type NodeType uint

const (
	DocumentNode NodeType = iota + 1
	ElementNode
	TextNode
	CommentNode
	ProcessingInstructionNode
	DoctypeNode
)

// Attr is an owned copy of a start-tag attribute.
type Attr struct {
	Name  parser.QName
	Value string
}

// Node is a generic tree node. One struct covers every node variant,
// discriminated by Type; element-specific behavior hangs off the
// attribute list rather than per-tag types.
type Node struct {
	Type NodeType

	// Name is the element name, PI target or doctype name.
	Name parser.QName
	// Data holds text, comment or PI content.
	Data string

	PublicID string
	SystemID string

	Attrs []Attr

	Parent      *Node
	FirstChild  *Node
	LastChild   *Node
	PrevSibling *Node
	NextSibling *Node
}

// AppendChild attaches c as n's last child.
func (n *Node) AppendChild(c *Node) {
	c.Parent = n
	c.PrevSibling = n.LastChild
	if n.LastChild != nil {
		n.LastChild.NextSibling = c
	} else {
		n.FirstChild = c
	}
	n.LastChild = c
}

// Attr returns the value of the attribute with the given raw name.
func (n *Node) Attr(raw string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Raw == raw {
			return a.Value, true
		}
	}
	return "", false
}

// InnerText concatenates all text beneath n in document order.
func (n *Node) InnerText() string {
	var sb strings.Builder
	n.appendText(&sb)
	return sb.String()
}

func (n *Node) appendText(sb *strings.Builder) {
	if n.Type == TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		c.appendText(sb)
	}
}
