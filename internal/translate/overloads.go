package translate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"doccomp/internal/lcs"
	"doccomp/internal/render"
)

// highlightOverloads marks, in every declaration, the tokens that are not
// shared by all of them. Text tokens are compared per whitespace run and per
// punctuation character so `(_ x: Int)` and `(_ y: Int)` differ only in `x`/`y`.
func highlightOverloads(decls [][]render.DeclarationToken) [][]render.DeclarationToken {
	split := make([][]render.DeclarationToken, len(decls))
	for i, d := range decls {
		split[i] = splitTextTokens(d)
	}
	common := lcs.CommonAll(split, sameToken)

	out := make([][]render.DeclarationToken, len(split))
	for i, toks := range split {
		marks := lcs.Mark(toks, common, sameToken)
		for j := range toks {
			toks[j].Highlight = !marks[j]
		}
		toks = render.MergeAdjacent(toks)
		toks = demoteWhitespace(toks)
		out[i] = render.MergeAdjacent(toks)
	}
	return out
}

func sameToken(a, b render.DeclarationToken) bool {
	return a.Same(b)
}

type runClass uint8

const (
	classWord runClass = iota
	classSpace
	classPunct
)

func classify(r rune) runClass {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
		return classWord
	}
	return classPunct
}

// splitTextTokens breaks text tokens into whitespace runs, word runs and single
// punctuation characters. Other tokens are copied unchanged.
func splitTextTokens(tokens []render.DeclarationToken) []render.DeclarationToken {
	out := make([]render.DeclarationToken, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind != render.TokenText || tok.Text == "" {
			out = append(out, tok)
			continue
		}
		text := tok.Text
		for len(text) > 0 {
			r, size := utf8.DecodeRuneInString(text)
			class := classify(r)
			end := size
			if class != classPunct {
				for end < len(text) {
					next, n := utf8.DecodeRuneInString(text[end:])
					if classify(next) != class {
						break
					}
					end += n
				}
			}
			piece := tok
			piece.Text = text[:end]
			out = append(out, piece)
			text = text[end:]
		}
	}
	return out
}

// demoteWhitespace moves leading and trailing whitespace of highlighted text
// tokens out of the highlight.
func demoteWhitespace(tokens []render.DeclarationToken) []render.DeclarationToken {
	out := make([]render.DeclarationToken, 0, len(tokens))
	for _, tok := range tokens {
		if !tok.Highlight || tok.Kind != render.TokenText {
			out = append(out, tok)
			continue
		}
		core := strings.TrimFunc(tok.Text, unicode.IsSpace)
		if core == "" {
			tok.Highlight = false
			out = append(out, tok)
			continue
		}
		lead := tok.Text[:len(tok.Text)-len(strings.TrimLeftFunc(tok.Text, unicode.IsSpace))]
		trail := tok.Text[len(lead)+len(core):]
		if lead != "" {
			out = append(out, render.DeclarationToken{Kind: render.TokenText, Text: lead})
		}
		tok.Text = core
		out = append(out, tok)
		if trail != "" {
			out = append(out, render.DeclarationToken{Kind: render.TokenText, Text: trail})
		}
	}
	return out
}
