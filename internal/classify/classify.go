// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify maps the label blocks of a content slide to a verse role.
package classify

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/pptx2pro/pkg/types"
)

const (
	minLabelLen = 4
	maxLabelLen = 50

	refrainBlock = "Refrain"

	// splitVerseLabel names a combined first and second verse in one deck.
	splitVerseLabel = "SB64 V1-2"
)

// Fallback is the role assigned when no label can be resolved.
const Fallback = types.VerseChorus

var (
	reDigit = regexp.MustCompile(`[0-9]+`)
	reVerse = regexp.MustCompile(`(?i)v[0-9 ab]+$`)
)

// roleRules are tried in order once a label has been chosen.
var roleRules = []struct {
	re   *regexp.Regexp
	role types.VerseType
}{
	{regexp.MustCompile(`(?i)refrain`), types.VerseChorus},
	{regexp.MustCompile(`(?i)chorus`), types.VerseChorus},
	{regexp.MustCompile(`(?i)repeat`), types.VerseChorus},
	{regexp.MustCompile(`(?i)bridge`), types.VerseBridge},
	{regexp.MustCompile(`(?i)ending`), types.VerseEnding},
	{regexp.MustCompile(`(?i)end`), types.VerseEnding},
}

// Classify returns the role for a content slide given its blocks after the
// body (block 0). The ok result is false when no label resolved and Fallback
// was returned.
func Classify(blocks []string) (types.VerseType, bool) {
	label, found := Label(blocks)
	if !found {
		switch n := count(blocks, refrainBlock); {
		case n == 1:
			return types.VerseRefrain, true
		case n > 1:
			return Fallback, false
		}
		if label, found = shortest(blocks, isShort); !found {
			return Fallback, false
		}
	}
	return Role(label)
}

// Label picks the verse label among blocks: the shortest block that either
// has 4 to 49 characters including a digit, or starts with "SB". Ties go to
// the earlier block.
func Label(blocks []string) (string, bool) {
	return shortest(blocks, isCandidate)
}

// Role maps a chosen label to a verse role.
func Role(label string) (types.VerseType, bool) {
	if reVerse.MatchString(label) || label == splitVerseLabel {
		return types.VerseVerse, true
	}
	for _, r := range roleRules {
		if r.re.MatchString(label) {
			return r.role, true
		}
	}
	return Fallback, false
}

func isCandidate(s string) bool {
	n := utf8.RuneCountInString(s)
	if n >= minLabelLen && n < maxLabelLen && reDigit.MatchString(s) {
		return true
	}
	return strings.HasPrefix(s, "SB")
}

// isShort admits bare labels such as "V1" or "Chorus" that carry no hymnal
// number.
func isShort(s string) bool {
	return utf8.RuneCountInString(s) < maxLabelLen
}

func shortest(blocks []string, keep func(string) bool) (string, bool) {
	var (
		best  string
		n     int
		found bool
	)
	for _, b := range blocks {
		if !keep(b) {
			continue
		}
		if l := utf8.RuneCountInString(b); !found || l < n {
			best, n, found = b, l, true
		}
	}
	return best, found
}

func count(blocks []string, s string) int {
	n := 0
	for _, b := range blocks {
		if b == s {
			n++
		}
	}
	return n
}
