package topic

import "doccomp/internal/source"

// Kind classifies documentation nodes.
type Kind uint8

const (
	KindModule Kind = iota
	KindSymbol
	KindArticle
	KindTutorial
	KindTutorialArticle
	KindTechnology
	KindVolume
	KindChapter
	KindOnPageLandmark
	KindExtension
)

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindSymbol:
		return "symbol"
	case KindArticle:
		return "article"
	case KindTutorial:
		return "tutorial"
	case KindTutorialArticle:
		return "tutorialArticle"
	case KindTechnology:
		return "technology"
	case KindVolume:
		return "volume"
	case KindChapter:
		return "chapter"
	case KindOnPageLandmark:
		return "landmark"
	case KindExtension:
		return "extension"
	}
	return "unknown"
}

// ContentLocation says where a node's content comes from.
type ContentLocation interface {
	isContentLocation()
}

// FileLocation is a node backed by a whole file.
type FileLocation struct {
	URL string
}

// RangeLocation is a node backed by part of a file, e.g. a landmark heading.
type RangeLocation struct {
	URL   string
	Range source.Range
}

// ExternalLocation is a node with no local source, e.g. a symbol-graph symbol
// without a documentation extension.
type ExternalLocation struct{}

func (FileLocation) isContentLocation()     {}
func (RangeLocation) isContentLocation()    {}
func (ExternalLocation) isContentLocation() {}

// Node is one page or page fragment in the hierarchy. Nodes are identified by
// Reference only; the other fields are never compared.
type Node struct {
	Reference Reference
	Kind      Kind
	Source    ContentLocation
	Title     string
	// IsResolvable is false for nodes that only mark structural relationships.
	IsResolvable bool
	// IsVirtual nodes are never rendered.
	IsVirtual        bool
	IsEmptyExtension bool
}

// NewNode returns a resolvable, non-virtual node.
func NewNode(ref Reference, kind Kind, src ContentLocation, title string) *Node {
	if src == nil {
		src = ExternalLocation{}
	}
	return &Node{
		Reference:    ref,
		Kind:         kind,
		Source:       src,
		Title:        title,
		IsResolvable: true,
	}
}

// Equal reports whether both nodes carry the same reference.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.Reference == other.Reference
}
