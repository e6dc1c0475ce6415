// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package credit parses the credit line of a hymn title slide into an author
// and a year.
//
// Extraction runs an ordered list of rules and stops at the first rule that
// matches. A fixed table of historical credit lines that defeat the heuristic
// comes first; the general heuristic parser is the final rule.
package credit

import (
	"regexp"
	"strings"
)

// Credit is the author and year recovered from a credit line. Either field
// may be empty when unknown.
type Credit struct {
	Author string `json:"author" yaml:"author"`
	Year   string `json:"year" yaml:"year"`
}

// Rule pairs a matcher with the handler that produces the credit.
type Rule struct {
	Name   string
	Match  func(line string) bool
	Handle func(line string) Credit
}

// Literal returns a rule matching exactly line and returning c.
func Literal(line string, c Credit) Rule {
	return Rule{
		Name:   "literal",
		Match:  func(s string) bool { return s == line },
		Handle: func(string) Credit { return c },
	}
}

// Overrides lists credit lines that are malformed beyond heuristic repair.
var Overrides = []Rule{
	Literal("“From the Depths My Prayer Ascendeth Ethelbert W. Bullinger, 1877", Credit{"Ethelbert W. Bullinger", "1877"}),
	Literal("“By Babel’s Streams We Sat and WeptWilliam B. Bradbury, 1853", Credit{"William B. Bradbury", "1853"}),
	Literal("“With All My Heart Will I RecordLouis Bourgeois, 1543", Credit{"Louis Bourgeois", "1543"}),
	Literal("“To God My Earnest Voice I RaiseLowell Mason, 1824", Credit{"Lowell Mason", "1824"}),
	Literal("“Father, Again in Jesus’ Name We MeetJames Langran, 1862", Credit{"James Langran", "1862"}),
	Literal("\"The Ends of all the Earth Shall Hear“Composed by: William H. Doane", Credit{"William H. Doane", ""}),
	Literal("“I Sought the Lord, and Afterward I KnewJean Silbelius, 1865-1957", Credit{"Jean Silbelius", "1957"}),
}

// Heuristic is the general-purpose credit parser.
var Heuristic = Rule{
	Name:   "heuristic",
	Match:  func(string) bool { return true },
	Handle: parse,
}

// DefaultRules is Overrides followed by Heuristic.
var DefaultRules = append(append([]Rule{}, Overrides...), Heuristic)

// Extract applies DefaultRules to line. The second result is false when the
// parsed author carried a leaked type-prefix token and both fields were
// discarded.
func Extract(line string) (Credit, bool) {
	return ExtractWith(DefaultRules, line)
}

// ExtractWith applies rules in order and returns the credit of the first match.
func ExtractWith(rules []Rule, line string) (Credit, bool) {
	for _, r := range rules {
		if !r.Match(line) {
			continue
		}
		c := r.Handle(line)
		if leaked(c.Author) {
			return Credit{}, false
		}
		return c, true
	}
	return Credit{}, true
}

// arrangerFragment is a credit fragment from one deck that otherwise merges an
// arranger into the author list.
const arrangerFragment = " (v5-7)Music arrgd by:"

var (
	reYear        = regexp.MustCompile(`[0-9]{4}$`)
	reYearTail    = regexp.MustCompile(`[0-9]{4}.*$`)
	reRoleWords   = regexp.MustCompile(`(?i)(^| )(words|by|music|translated|and|from|arranged|lyrics|arrng|arrg|adapt)`)
	reBareRoles   = regexp.MustCompile(`(?i)(music|words)`)
	reSeparators  = regexp.MustCompile(`[;:]`)
	reSpaces      = regexp.MustCompile(` {2,}`)
	reCommaPeriod = regexp.MustCompile(`(\.,|,\.)`)
	reCommas      = regexp.MustCompile(`,{2,}`)
	reTrailing    = regexp.MustCompile(`[ ,]+$`)
	reLeading     = regexp.MustCompile(`^[ ,]+`)
)

// creditPart isolates the part of line that holds the credit: the second
// line, else the text after the first closing curly quote, else the text
// after the last straight quote.
func creditPart(line string) string {
	switch {
	case strings.Contains(line, "\n"):
		return strings.Split(line, "\n")[1]
	case strings.Contains(line, "”"):
		return line[strings.Index(line, "”")+len("”"):]
	case strings.Contains(line, `"`):
		return line[strings.LastIndex(line, `"`)+1:]
	}
	return line
}

func parse(line string) Credit {
	part := creditPart(line)
	year := reYear.FindString(part)

	author := reYearTail.ReplaceAllString(part, "")
	author = strings.Replace(author, arrangerFragment, ",", 1)
	author = strings.ReplaceAll(author, "&amp;", "&")
	author = reRoleWords.ReplaceAllString(author, "")
	author = reBareRoles.ReplaceAllString(author, "")
	author = reSeparators.ReplaceAllString(author, ",")
	author = reSpaces.ReplaceAllString(author, " ")
	author = reCommaPeriod.ReplaceAllString(author, ",")
	author = reCommas.ReplaceAllString(author, ",")
	author = reTrailing.ReplaceAllString(author, "")
	author = reLeading.ReplaceAllString(author, "")
	author = strings.ReplaceAll(author, " ,", ",")
	author = strings.TrimSpace(author)

	return Credit{Author: author, Year: year}
}

// leaked reports whether a hymnal type prefix ended up in the author.
func leaked(author string) bool {
	return strings.Contains(author, "PH") || strings.Contains(author, "SB")
}
