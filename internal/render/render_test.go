// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pptx2pro/pkg/types"
)

func lines(n int) string {
	l := make([]string, n)
	for i := range l {
		l[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(l, "\n")
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantParts []int
	}{
		{"seven lines", lines(7), []int{7}},
		{"eight lines", lines(8), []int{4, 4}},
		{"nine lines", lines(9), []int{5, 4}},
		{"260 runes", strings.Repeat("a", 260), []int{1}},
		{"261 runes", strings.Repeat("a", 261), []int{1, 1}},
		{"260 multibyte runes", strings.Repeat("é", 260), []int{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := Split(tt.content)
			require.Len(t, parts, len(tt.wantParts))
			for i, p := range parts {
				assert.Equal(t, tt.wantParts[i], len(strings.Split(p, "\n")), "part %d", i)
			}
			assert.Equal(t, tt.content, strings.Join(parts, "\n")[:len(tt.content)])
		})
	}
}

func song() types.Song {
	return types.Song{
		ID:     "007",
		Title:  "Holy, Holy, Holy",
		Author: "Reginald Heber",
		Year:   "1826",
		Verses: []types.Verse{
			{Content: "Holy, holy, holy", Type: types.VerseVerse},
			{Content: "All the saints adore thee", Type: types.VerseChorus},
			{Content: lines(8), Type: types.VerseVerse},
			{Content: "Amen", Type: types.VerseEnding},
			{Content: "Sing it again", Type: types.VerseRefrain},
			{Content: "Bridge text", Type: types.VerseBridge},
		},
	}
}

func TestBuild(t *testing.T) {
	var logBuf bytes.Buffer
	doc := Build(song(), Options{Prefix: "sb"}, zerolog.New(&logBuf))

	names := make([]string, len(doc.Groups))
	for i, g := range doc.Groups {
		names[i] = g.Name
	}
	assert.Equal(t, []string{"Verse 1", "Chorus", "Verse 2", "Ending", "Chorus", "Bridge"}, names)

	first := doc.Groups[0].Slides
	require.Len(t, first, 1)
	assert.Equal(t, "SB 7 verse 1", first[0].Caption)
	assert.Equal(t, "Holy, Holy, Holy", first[0].Title)

	split := doc.Groups[2].Slides
	require.Len(t, split, 2)
	assert.Empty(t, split[0].Title)
	assert.Empty(t, split[1].Title)
	assert.Equal(t, "SB 7 verse 2", split[1].Caption)
	assert.Equal(t, lines(4), split[0].Body)

	assert.Empty(t, doc.Groups[1].Slides[0].Title)
	assert.Equal(t, 7, doc.SlideCount())
	assert.Contains(t, logBuf.String(), "Verse 2 3 is split over 2 slides")
}

func TestBuild_VerseCounterMonotonic(t *testing.T) {
	s := types.Song{ID: "100"}
	for i := 0; i < 5; i++ {
		s.Verses = append(s.Verses,
			types.Verse{Content: "v", Type: types.VerseVerse},
			types.Verse{Content: "c", Type: types.VerseChorus},
		)
	}
	doc := Build(s, Options{Prefix: "ph"}, zerolog.Nop())

	k := 0
	for _, g := range doc.Groups {
		if g.Name == "Chorus" {
			assert.Equal(t, "PH 100 chorus", g.Slides[0].Caption)
			continue
		}
		k++
		assert.Equal(t, fmt.Sprintf("Verse %d", k), g.Name)
	}
	assert.Equal(t, 5, k)
}

func TestBuild_FirstSlideWithoutVerseTitle(t *testing.T) {
	s := types.Song{ID: "001", Title: "T", Verses: []types.Verse{{Content: lines(10), Type: types.VerseChorus}}}
	doc := Build(s, Options{Prefix: "sb"}, zerolog.Nop())

	require.Len(t, doc.Groups[0].Slides, 2)
	assert.Equal(t, "T", doc.Groups[0].Slides[0].Title)
	assert.Empty(t, doc.Groups[0].Slides[1].Title)
}

func TestEscapeRTF(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"Jesus’ name", `Jesus\'92 name`},
		{"a\nb", "a\\\nb"},
		{`{x}\`, `\{x\}\\`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeRTF(tt.in))
	}
}

func TestRTFTemplates(t *testing.T) {
	body := BodyRTF("Line one\nLine two")
	assert.True(t, strings.HasPrefix(body, `{\rtf1\ansi\ansicpg1252\cocoartf2513`+"\n"))
	assert.Contains(t, body, `\pard\pardeftab720\qc\partightenfactor0`+"\n\n")
	assert.True(t, strings.HasSuffix(body, `\f0\fs180 \cf1Line one\`+"\nLine two}\\cf0"))

	title := TitleRTF("Title")
	assert.Contains(t, title, `\fcharset0 Helvetica-Bold;}`)
	assert.True(t, strings.HasSuffix(title, `\f0\b\fs180 \cf1  Title}`))

	caption := CaptionRTF("SB 7 chorus")
	assert.Contains(t, caption, `\qr\partightenfactor0`)
	assert.True(t, strings.HasSuffix(caption, `\f0\fs120 \cf1 SB 7 chorus}`))
}

func counter() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("ID-%d", n)
	}
}

func TestMarshalPro6(t *testing.T) {
	doc := Build(song(), Options{Prefix: "sb"}, zerolog.Nop())
	doc.Title = `Holy "Holy" & <Holy>`

	out, err := doc.MarshalPro6(counter())
	require.NoError(t, err)

	root, err := xmlquery.Parse(bytes.NewReader(out))
	require.NoError(t, err)

	pres := xmlquery.FindOne(root, "/RVPresentationDocument")
	require.NotNil(t, pres)
	assert.Equal(t, `Holy "Holy" & <Holy>`, pres.SelectAttr("CCLISongTitle"))
	assert.Equal(t, "Reginald Heber", pres.SelectAttr("CCLIArtistCredits"))
	assert.Equal(t, "1826", pres.SelectAttr("CCLICopyrightYear"))
	assert.Equal(t, "600", pres.SelectAttr("versionNumber"))

	groups := xmlquery.Find(root, `//array[@rvXMLIvarName="groups"]/RVSlideGrouping`)
	require.Len(t, groups, len(doc.Groups)+1)
	assert.Equal(t, "", groups[0].SelectAttr("name"))
	blank := xmlquery.FindOne(groups[0], ".//RVDisplaySlide")
	assert.Equal(t, "Blank Slide", blank.SelectAttr("label"))
	assert.Empty(t, xmlquery.Find(groups[0], ".//RVTextElement"))
	assert.Equal(t, "Verse 1", groups[1].SelectAttr("name"))

	slides := xmlquery.Find(root, "//RVDisplaySlide")
	assert.Len(t, slides, doc.SlideCount()+1)
	for _, s := range slides[1:] {
		assert.Len(t, xmlquery.Find(s, ".//RVTextElement"), 3)
	}

	first := xmlquery.Find(slides[1], ".//NSString[@rvXMLIvarName='RTFData']")
	require.Len(t, first, 3)
	decoded := make([]string, 3)
	for i, n := range first {
		b, err := base64.StdEncoding.DecodeString(n.InnerText())
		require.NoError(t, err)
		decoded[i] = string(b)
	}
	assert.Equal(t, CaptionRTF("SB 7 verse 1"), decoded[0])
	assert.Equal(t, TitleRTF("Holy, Holy, Holy"), decoded[1])
	assert.Equal(t, BodyRTF("Holy, holy, holy"), decoded[2])

	pos := xmlquery.Find(slides[1], ".//RVRect3D")
	require.Len(t, pos, 3)
	assert.Equal(t, "{991 1042 0 852 80}", pos[0].InnerText())
	assert.Equal(t, "{67 58 0 1813 230}", pos[1].InnerText())
	assert.Equal(t, "{82 2 0 1755 1195}", pos[2].InnerText())
}

func TestMarshalPro6_FreshUUIDs(t *testing.T) {
	doc := Build(song(), Options{Prefix: "sb"}, zerolog.Nop())

	out, err := doc.MarshalPro6(nil)
	require.NoError(t, err)

	re := regexp.MustCompile(`(?i)uuid="([^"]*)"`)
	matches := re.FindAllStringSubmatch(string(out), -1)
	// document + groups + slides + three elements per content slide
	want := 1 + (len(doc.Groups) + 1) + (doc.SlideCount() + 1) + 3*doc.SlideCount()
	require.Len(t, matches, want)

	seen := make(map[string]bool, len(matches))
	upper := regexp.MustCompile(`^[0-9A-F]{8}-[0-9A-F]{4}-4[0-9A-F]{3}-[89AB][0-9A-F]{3}-[0-9A-F]{12}$`)
	for _, m := range matches {
		assert.Regexp(t, upper, m[1])
		assert.False(t, seen[m[1]], "duplicate uuid %s", m[1])
		seen[m[1]] = true
	}
}

func TestMarshalPro6_EmptyDocument(t *testing.T) {
	doc := Build(types.Song{ID: "012"}, Options{Prefix: "ph"}, zerolog.Nop())

	out, err := doc.MarshalPro6(counter())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "<?xml"))
	assert.Contains(t, string(out), `<array rvXMLIvarName="arrangements"></array>`)
	assert.Equal(t, 1, strings.Count(string(out), "<RVSlideGrouping"))
}
