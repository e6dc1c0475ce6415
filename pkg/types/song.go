// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// VerseType is the semantic role of one verse in a song.
type VerseType string

const (
	VerseVerse   VerseType = "verse"
	VerseChorus  VerseType = "chorus"
	VerseBridge  VerseType = "bridge"
	VerseEnding  VerseType = "ending"
	VerseRefrain VerseType = "refrain"
)

// SlideText holds the ordered, sanitized, non-empty text blocks of one slide,
// one block per top-level text shape. Block 0 is the verse body; on the title
// slide block 1 is the title and block 2 the credit line.
type SlideText []string

// Verse is one unit of song content taken from a single content slide.
type Verse struct {
	// Content is the sanitized multi-line verse text. Never empty.
	Content string `json:"content" yaml:"content"`

	// Type is the classified role of the verse.
	Type VerseType `json:"type" yaml:"type"`
}

// Song is the structured model recovered from one slide deck.
type Song struct {
	// ID is the three-digit, zero-padded song number (e.g. "007").
	ID string `json:"id" yaml:"id"`

	// Title comes from the second block of the title slide.
	Title string `json:"title" yaml:"title"`

	// Author is the credited author or composer, or "" when unknown.
	Author string `json:"author" yaml:"author"`

	// Year is a four-digit year, or "" when unknown.
	Year string `json:"year" yaml:"year"`

	// Verses lists the content slides in slide order.
	Verses []Verse `json:"verses" yaml:"verses"`
}

// DocumentStatus is the outcome of converting one input document.
type DocumentStatus string

const (
	DocumentConverted DocumentStatus = "converted"
	DocumentEmpty     DocumentStatus = "empty"
	DocumentFailed    DocumentStatus = "failed"
)
