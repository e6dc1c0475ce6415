// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns a Song into a ProPresenter 6 presentation document.
// Build lays out groups and slides; MarshalPro6 serializes the layout into
// RVPresentationDocument XML with base64 RTF text payloads.
package render

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pptx2pro/pkg/types"
)

// Split thresholds. A verse with more lines or more characters than these
// is spread over two slides.
const (
	MaxLines = 7
	MaxRunes = 260
)

// Options controls rendering of one batch.
type Options struct {
	// Prefix is the hymnal prefix ("sb" or "ph"). It is upper-cased in
	// captions.
	Prefix string
}

// Document is a laid-out song ready to be serialized.
type Document struct {
	ID     string
	Title  string
	Author string
	Year   string
	Groups []Group
}

// Group is one named slide group, such as "Verse 2" or "Chorus".
type Group struct {
	Name   string
	Slides []Slide
}

// Slide holds the plain text of the three text elements on a slide.
type Slide struct {
	Caption string
	Title   string
	Body    string
}

// SlideCount returns the number of slides across all groups, excluding the
// blank slide added during serialization.
func (d Document) SlideCount() int {
	n := 0
	for _, g := range d.Groups {
		n += len(g.Slides)
	}
	return n
}

// Build lays out s as one group per verse. Verse-typed entries are numbered
// in slide order. Long verses are split in two and the split is logged.
func Build(s types.Song, opts Options, log zerolog.Logger) Document {
	doc := Document{
		ID:     s.ID,
		Title:  s.Title,
		Author: s.Author,
		Year:   s.Year,
		Groups: make([]Group, 0, len(s.Verses)),
	}

	prefix := strings.ToUpper(opts.Prefix)
	number := strings.TrimLeft(s.ID, "0")
	verseCount := 0

	for i, v := range s.Verses {
		var name string
		if v.Type == types.VerseVerse {
			verseCount++
			name = "Verse " + strconv.Itoa(verseCount)
		} else {
			name = GroupName(v.Type)
		}

		title := ""
		if i == 0 {
			title = s.Title
		}
		caption := prefix + " " + number + " " + strings.ToLower(name)

		g := Group{Name: name}
		parts := Split(v.Content)
		if len(parts) > 1 {
			log.Info().
				Str("song", prefix+s.ID).
				Str("group", name).
				Int("verse", i+1).
				Msgf("%s %d is split over %d slides", name, i+1, len(parts))
		}
		for j, body := range parts {
			sl := Slide{Caption: caption, Body: body}
			if j == 0 {
				sl.Title = title
			}
			g.Slides = append(g.Slides, sl)
		}
		doc.Groups = append(doc.Groups, g)
	}
	return doc
}

// GroupName returns the group label for a non-verse role. Refrains share
// the chorus label.
func GroupName(t types.VerseType) string {
	switch t {
	case types.VerseBridge:
		return "Bridge"
	case types.VerseEnding:
		return "Ending"
	case types.VerseVerse:
		return "Verse"
	default:
		return "Chorus"
	}
}

// Split returns the slide bodies for one verse. Content over MaxLines lines
// or MaxRunes characters is cut at the middle line.
func Split(content string) []string {
	lines := strings.Split(content, "\n")
	if len(lines) <= MaxLines && utf8.RuneCountInString(content) <= MaxRunes {
		return []string{content}
	}
	n := (len(lines) + 1) / 2
	return []string{
		strings.Join(lines[:n], "\n"),
		strings.Join(lines[n:], "\n"),
	}
}
