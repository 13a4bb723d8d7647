package render

// InlineType discriminates InlineContent.
type InlineType string

const (
	InlineText      InlineType = "text"
	InlineCodeVoice InlineType = "codeVoice"
	InlineReference InlineType = "reference"
	InlineEmphasis  InlineType = "emphasis"
)

// InlineContent is a tagged inline value; only the fields of its Type are set.
type InlineContent struct {
	Type       InlineType      `json:"type" msgpack:"type"`
	Text       string          `json:"text,omitempty" msgpack:"text,omitempty"`
	Code       string          `json:"code,omitempty" msgpack:"code,omitempty"`
	Identifier string          `json:"identifier,omitempty" msgpack:"identifier,omitempty"`
	IsActive   bool            `json:"isActive,omitempty" msgpack:"isActive,omitempty"`
	Inline     []InlineContent `json:"inlineContent,omitempty" msgpack:"inlineContent,omitempty"`
}

func Text(s string) InlineContent { return InlineContent{Type: InlineText, Text: s} }

func CodeVoice(code string) InlineContent { return InlineContent{Type: InlineCodeVoice, Code: code} }

func ReferenceTo(identifier string) InlineContent {
	return InlineContent{Type: InlineReference, Identifier: identifier, IsActive: true}
}

func Emphasis(children ...InlineContent) InlineContent {
	return InlineContent{Type: InlineEmphasis, Inline: children}
}

// BlockType discriminates BlockContent.
type BlockType string

const (
	BlockParagraph   BlockType = "paragraph"
	BlockCodeListing BlockType = "codeListing"
)

// BlockContent is a tagged block value.
type BlockContent struct {
	Type   BlockType       `json:"type" msgpack:"type"`
	Inline []InlineContent `json:"inlineContent,omitempty" msgpack:"inlineContent,omitempty"`
	Syntax string          `json:"syntax,omitempty" msgpack:"syntax,omitempty"`
	Code   []string        `json:"code,omitempty" msgpack:"code,omitempty"`
}

func Paragraph(inline ...InlineContent) BlockContent {
	return BlockContent{Type: BlockParagraph, Inline: inline}
}

func CodeListing(syntax string, lines ...string) BlockContent {
	return BlockContent{Type: BlockCodeListing, Syntax: syntax, Code: lines}
}
