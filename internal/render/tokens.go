package render

import "strings"

// TokenKind classifies a declaration token.
type TokenKind string

const (
	TokenKeyword          TokenKind = "keyword"
	TokenAttribute        TokenKind = "attribute"
	TokenNumber           TokenKind = "number"
	TokenString           TokenKind = "string"
	TokenIdentifier       TokenKind = "identifier"
	TokenTypeIdentifier   TokenKind = "typeIdentifier"
	TokenGenericParameter TokenKind = "genericParameter"
	TokenInternalParam    TokenKind = "internalParam"
	TokenExternalParam    TokenKind = "externalParam"
	TokenLabel            TokenKind = "label"
	TokenText             TokenKind = "text"
)

// DeclarationToken is one highlighted unit of a rendered declaration.
type DeclarationToken struct {
	Text              string    `json:"text" msgpack:"text"`
	Kind              TokenKind `json:"kind" msgpack:"kind"`
	Identifier        string    `json:"identifier,omitempty" msgpack:"identifier,omitempty"`
	PreciseIdentifier string    `json:"preciseIdentifier,omitempty" msgpack:"preciseIdentifier,omitempty"`
	Highlight         bool      `json:"highlight,omitempty" msgpack:"highlight,omitempty"`
}

// Same reports whether two tokens render the same text, ignoring highlight.
func (t DeclarationToken) Same(other DeclarationToken) bool {
	return t.Kind == other.Kind && t.Text == other.Text && t.PreciseIdentifier == other.PreciseIdentifier
}

// IsWhitespace reports whether t is a text token made only of whitespace.
func (t DeclarationToken) IsWhitespace() bool {
	return t.Kind == TokenText && strings.TrimSpace(t.Text) == ""
}

// MergeAdjacent joins runs of text tokens that share a highlight state.
func MergeAdjacent(tokens []DeclarationToken) []DeclarationToken {
	out := make([]DeclarationToken, 0, len(tokens))
	for _, tok := range tokens {
		if n := len(out); n > 0 && tok.Kind == TokenText && out[n-1].Kind == TokenText && out[n-1].Highlight == tok.Highlight {
			out[n-1].Text += tok.Text
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Plain concatenates the token texts.
func Plain(tokens []DeclarationToken) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}
