package dom

import "github.com/heathj/marksoup/parser"

// TreeBuilder is a document handler that builds a Node tree from the
// event stream. Adjacent character runs coalesce into a single text
// node. Safe to reuse: each StartDocument begins a fresh tree.
type TreeBuilder struct {
	doc    *Node
	cur    *Node
	source parser.DocumentSource
}

func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{}
}

// Document returns the tree of the last finished or in-progress parse.
func (b *TreeBuilder) Document() *Node {
	return b.doc
}

// SetDocumentSource records the upstream pipeline stage.
func (b *TreeBuilder) SetDocumentSource(src parser.DocumentSource) {
	b.source = src
}

func (b *TreeBuilder) StartDocument(loc *parser.Locator) error {
	b.doc = &Node{Type: DocumentNode}
	if loc != nil {
		b.doc.SystemID = loc.SystemID
	}
	b.cur = b.doc
	return nil
}

func (b *TreeBuilder) DoctypeDecl(name, publicID, systemID string) error {
	b.cur.AppendChild(&Node{
		Type:     DoctypeNode,
		Name:     parser.QName{Raw: name, Local: name},
		PublicID: publicID,
		SystemID: systemID,
	})
	return nil
}

func (b *TreeBuilder) Comment(text *parser.Span) error {
	b.cur.AppendChild(&Node{Type: CommentNode, Data: text.String()})
	return nil
}

func (b *TreeBuilder) ProcessingInstruction(target string, data *parser.Span) error {
	b.cur.AppendChild(&Node{
		Type: ProcessingInstructionNode,
		Name: parser.QName{Raw: target, Local: target},
		Data: data.String(),
	})
	return nil
}

func (b *TreeBuilder) StartElement(name parser.QName, attrs *parser.Attributes) error {
	el := &Node{Type: ElementNode, Name: name}
	for i := 0; i < attrs.Len(); i++ {
		el.Attrs = append(el.Attrs, Attr{Name: attrs.Name(i), Value: attrs.Value(i)})
	}
	b.cur.AppendChild(el)
	b.cur = el
	return nil
}

func (b *TreeBuilder) Characters(text *parser.Span) error {
	if last := b.cur.LastChild; last != nil && last.Type == TextNode {
		last.Data += text.String()
		return nil
	}
	b.cur.AppendChild(&Node{Type: TextNode, Data: text.String()})
	return nil
}

func (b *TreeBuilder) EndElement(name parser.QName) error {
	// close the nearest open element of that name; an unrepaired stream
	// (balance-tags off) can deliver mismatched or stray end tags, so a
	// tag closing nothing is ignored rather than mis-nesting the tree
	for n := b.cur; n != b.doc; n = n.Parent {
		if n.Name.Raw == name.Raw {
			b.cur = n.Parent
			return nil
		}
	}
	return nil
}

func (b *TreeBuilder) EndDocument() error {
	b.cur = b.doc
	return nil
}
