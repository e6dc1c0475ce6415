// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package song

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pptx2pro/pkg/types"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"lower sb", "sb7.pptx", "007", false},
		{"upper ph", "PH123.pptx", "123", false},
		{"mixed case with path", "/decks/src-sb/Sb42 Holy Holy.pptx", "042", false},
		{"leading zeros", "ph0009.pptx", "009", false},
		{"zero", "sb0.pptx", "000", false},
		{"no prefix", "hymn12.pptx", "", true},
		{"no digits", "sb.pptx", "", true},
		{"too large", "sb1234.pptx", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseID(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrBadFilename))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAssemble(t *testing.T) {
	slides := []types.SlideText{
		{"SB7", "Holy, Holy, Holy", "Holy, Holy, Holy\nReginald Heber, 1826"},
		{"Holy, holy, holy\nLord God Almighty", "V1"},
		{"Holy, holy, holy\nall the saints adore thee", "Chorus"},
		{},
		{"Holy, holy, holy\nthough the darkness hide thee", "V2"},
	}

	var logBuf bytes.Buffer
	s := Assemble("007", slides, zerolog.New(&logBuf))

	assert.Equal(t, "007", s.ID)
	assert.Equal(t, "Holy, Holy, Holy", s.Title)
	assert.Equal(t, "Reginald Heber", s.Author)
	assert.Equal(t, "1826", s.Year)

	require.Len(t, s.Verses, 3)
	assert.Equal(t, types.VerseVerse, s.Verses[0].Type)
	assert.Equal(t, types.VerseChorus, s.Verses[1].Type)
	assert.Equal(t, types.VerseVerse, s.Verses[2].Type)
	assert.Equal(t, "Holy, holy, holy\nLord God Almighty", s.Verses[0].Content)
	assert.Empty(t, logBuf.String())
}

func TestAssemble_Fallbacks(t *testing.T) {
	slides := []types.SlideText{
		{"SB9", "Title only"},
		{"Some words", "SB9 Interlude"},
	}

	var logBuf bytes.Buffer
	s := Assemble("009", slides, zerolog.New(&logBuf))

	assert.Equal(t, "Title only", s.Title)
	assert.Empty(t, s.Author)
	assert.Empty(t, s.Year)
	require.Len(t, s.Verses, 1)
	assert.Equal(t, types.VerseChorus, s.Verses[0].Type)

	log := logBuf.String()
	assert.Contains(t, log, "title slide has no credit line")
	assert.Contains(t, log, "no-verse-id-match")
	assert.Contains(t, log, "SB9 Interlude")
}

func TestAssemble_RepeatedRefrainLogged(t *testing.T) {
	slides := []types.SlideText{
		{"SB4", "Title", "Isaac Watts, 1719"},
		{"Joy to the world", "Refrain", "Refrain"},
	}

	var logBuf bytes.Buffer
	s := Assemble("004", slides, zerolog.New(&logBuf))

	require.Len(t, s.Verses, 1)
	assert.Equal(t, types.VerseChorus, s.Verses[0].Type)
	assert.Contains(t, logBuf.String(), "no-verse-id-match")
}

func TestAssemble_LeakedCredit(t *testing.T) {
	slides := []types.SlideText{
		{"PH3", "Title", "Title\nPH 3, 1900"},
	}
	var logBuf bytes.Buffer
	s := Assemble("003", slides, zerolog.New(&logBuf))

	assert.Empty(t, s.Author)
	assert.Empty(t, s.Year)
	assert.Empty(t, s.Verses)
	assert.Contains(t, logBuf.String(), "credit discarded")
}

func TestAssemble_BlankTitleSlide(t *testing.T) {
	slides := []types.SlideText{
		{},
		{"Only verse", "Refrain"},
	}
	s := Assemble("001", slides, zerolog.Nop())

	assert.Empty(t, s.Title)
	require.Len(t, s.Verses, 1)
	assert.Equal(t, types.VerseRefrain, s.Verses[0].Type)
}
