// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package slidetext turns parsed slide parts into ordered plain-text blocks.
//
// Flatten linearizes one shape into text, keeping paragraph boundaries as
// newlines. Sanitize normalizes a flattened block. Blocks does
// both for every text shape on a slide.
package slidetext

import (
	"regexp"
	"strings"

	"github.com/pdiddy/pptx2pro/internal/pptx"
	"github.com/pdiddy/pptx2pro/pkg/types"
)

const (
	fieldRun     = "a:r"
	fieldParaEnd = "a:endParaRPr"
	fieldTxBody  = "p:txBody"

	// autofitPlaceholder is emitted by the source decks for autosized text.
	autofitPlaceholder = "$"
)

// ignoredFields carry language and spell-check metadata only.
var ignoredFields = map[string]bool{
	"lang":  true,
	"dirty": true,
}

var shapePath = []string{"p:sld", "p:cSld", "p:spTree", "p:sp"}

// Flatten returns the text of n. The runs of a paragraph are concatenated
// and followed by one newline, and every paragraph end marker becomes a
// newline.
func Flatten(n pptx.Node) string {
	var b strings.Builder
	flatten(&b, n)
	return b.String()
}

func flatten(b *strings.Builder, n pptx.Node) {
	switch v := n.(type) {
	case pptx.Text:
		if v != autofitPlaceholder {
			b.WriteString(string(v))
		}
	case pptx.List:
		for _, item := range v {
			flatten(b, item)
		}
	case pptx.Keyed:
		for _, f := range v {
			switch {
			case ignoredFields[f.Name]:
			case f.Name == fieldParaEnd:
				b.WriteByte('\n')
			case f.Name == fieldRun:
				flatten(b, f.Value)
				b.WriteByte('\n')
			default:
				flatten(b, f.Value)
			}
		}
	}
}

// Blocks returns the sanitized, non-empty text of every shape on the slide
// that has a text body, in document order.
func Blocks(slide pptx.Node) types.SlideText {
	shapes, ok := pptx.Lookup(slide, shapePath...)
	if !ok {
		return nil
	}

	var blocks types.SlideText
	for _, shape := range pptx.Items(shapes) {
		k, ok := shape.(pptx.Keyed)
		if !ok {
			continue
		}
		if _, ok := k.Get(fieldTxBody); !ok {
			continue
		}
		if text := Sanitize(Flatten(k)); text != "" {
			blocks = append(blocks, text)
		}
	}
	return blocks
}

var (
	reBlankLines   = regexp.MustCompile(`\n{2,}`)
	reDanglingChar = regexp.MustCompile(`\n[^\n]$`)
)

// Sanitize removes the decorative tilde, collapses blank lines, trims the
// block, turns a dangling one-character final line into a period, and merges
// comma-only lines into the line above. Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "~", "")
	s = reBlankLines.ReplaceAllString(s, "\n")
	s = strings.TrimSpace(s)
	s = reDanglingChar.ReplaceAllString(s, ".")
	for strings.Contains(s, "\n,\n") {
		s = strings.ReplaceAll(s, "\n,\n", ",\n")
	}
	return s
}
