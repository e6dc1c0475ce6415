// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package song assembles a Song model from the text blocks of every slide in
// one deck.
package song

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pptx2pro/internal/classify"
	"github.com/pdiddy/pptx2pro/internal/credit"
	"github.com/pdiddy/pptx2pro/internal/slidetext"
	"github.com/pdiddy/pptx2pro/pkg/types"
)

// ErrBadFilename is returned when no song number can be read from a filename.
var ErrBadFilename = errors.New("filename does not match (sb|ph)<digits>")

var reFilename = regexp.MustCompile(`(?i)(sb|ph)([0-9]+)`)

const maxID = 999

// ParseID derives the three-digit song id from a source filename such as
// "SB7.pptx" or "ph123 - Title.pptx".
func ParseID(filename string) (string, error) {
	base := filepath.Base(filename)
	m := reFilename.FindStringSubmatch(base)
	if m == nil {
		return "", fmt.Errorf("%s: %w", base, ErrBadFilename)
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n > maxID {
		return "", fmt.Errorf("%s: number %s out of range: %w", base, m[2], ErrBadFilename)
	}
	return fmt.Sprintf("%03d", n), nil
}

// Assemble builds a Song from the blocks of each slide in order. Slide 0 is
// the title slide and contributes the title and credit. Every later slide
// with at least one block contributes one verse. Unresolved labels and
// discarded credits are logged and fall back to defaults.
func Assemble(id string, slides []types.SlideText, log zerolog.Logger) types.Song {
	s := types.Song{ID: id}

	for i, blocks := range slides {
		if len(blocks) == 0 {
			continue
		}

		if i == 0 {
			s.Title, s.Author, s.Year = titleSlide(id, blocks, log)
			continue
		}

		role, ok := classify.Classify(blocks[1:])
		if !ok {
			log.Warn().
				Str("song", id).
				Int("slide", i+1).
				Strs("blocks", blocks).
				Str("fallback", string(role)).
				Msg("no-verse-id-match")
		}
		s.Verses = append(s.Verses, types.Verse{
			Content: slidetext.Sanitize(blocks[0]),
			Type:    role,
		})
	}
	return s
}

func titleSlide(id string, blocks types.SlideText, log zerolog.Logger) (title, author, year string) {
	if len(blocks) > 1 {
		title = slidetext.Sanitize(blocks[1])
	}
	if len(blocks) < 3 {
		log.Warn().Str("song", id).Strs("blocks", blocks).Msg("title slide has no credit line")
		return title, "", ""
	}

	c, ok := credit.Extract(blocks[2])
	if !ok {
		log.Warn().Str("song", id).Str("credit", blocks[2]).Msg("credit discarded: type prefix in author")
	}
	return title, c.Author, c.Year
}
